package media

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/storynest-backend/internal/domain"
	"github.com/yungbote/storynest-backend/internal/pkg/logger"
)

type AudioRepo interface {
	Create(ctx context.Context, tx *gorm.DB, audios []*types.Audio) ([]*types.Audio, error)
	GetByID(ctx context.Context, tx *gorm.DB, audioID uuid.UUID) (*types.Audio, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Audio, error)
}

type audioRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAudioRepo(db *gorm.DB, baseLog *logger.Logger) AudioRepo {
	repoLog := baseLog.With("repo", "AudioRepo")
	return &audioRepo{db: db, log: repoLog}
}

func (ar *audioRepo) Create(ctx context.Context, tx *gorm.DB, audios []*types.Audio) ([]*types.Audio, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(audios) == 0 {
		return []*types.Audio{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&audios).Error; err != nil {
		return nil, err
	}
	return audios, nil
}

func (ar *audioRepo) GetByID(ctx context.Context, tx *gorm.DB, audioID uuid.UUID) (*types.Audio, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Audio
	if err := transaction.WithContext(ctx).
		Where("id = ?", audioID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *audioRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Audio, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Audio
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
