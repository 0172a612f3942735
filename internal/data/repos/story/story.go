package story

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/storynest-backend/internal/domain"
	"github.com/yungbote/storynest-backend/internal/pkg/logger"
)

type StoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, stories []*types.Story) ([]*types.Story, error)
	GetByID(ctx context.Context, tx *gorm.DB, storyID uuid.UUID) (*types.Story, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Story, error)
}

type storyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStoryRepo(db *gorm.DB, baseLog *logger.Logger) StoryRepo {
	repoLog := baseLog.With("repo", "StoryRepo")
	return &storyRepo{db: db, log: repoLog}
}

func (sr *storyRepo) Create(ctx context.Context, tx *gorm.DB, stories []*types.Story) ([]*types.Story, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(stories) == 0 {
		return []*types.Story{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&stories).Error; err != nil {
		return nil, err
	}
	return stories, nil
}

func (sr *storyRepo) GetByID(ctx context.Context, tx *gorm.DB, storyID uuid.UUID) (*types.Story, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.Story
	if err := transaction.WithContext(ctx).
		Preload("Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("story_page.index ASC")
		}).
		Where("id = ?", storyID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *storyRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Story, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Story
	if err := transaction.WithContext(ctx).
		Preload("Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("story_page.index ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
