package assessment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/storynest-backend/internal/domain"
	"github.com/yungbote/storynest-backend/internal/pkg/logger"
)

type FeedbackRepo interface {
	Create(ctx context.Context, tx *gorm.DB, feedbacks []*types.Feedback) ([]*types.Feedback, error)
	GetLatestByStoryAndUser(ctx context.Context, tx *gorm.DB, storyID, userID uuid.UUID) (*types.Feedback, error)
}

type feedbackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeedbackRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackRepo {
	repoLog := baseLog.With("repo", "FeedbackRepo")
	return &feedbackRepo{db: db, log: repoLog}
}

func (fr *feedbackRepo) Create(ctx context.Context, tx *gorm.DB, feedbacks []*types.Feedback) ([]*types.Feedback, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	if len(feedbacks) == 0 {
		return []*types.Feedback{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&feedbacks).Error; err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (fr *feedbackRepo) GetLatestByStoryAndUser(ctx context.Context, tx *gorm.DB, storyID, userID uuid.UUID) (*types.Feedback, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var result types.Feedback
	if err := transaction.WithContext(ctx).
		Preload("Results", func(db *gorm.DB) *gorm.DB {
			return db.Order("feedback_result.index ASC")
		}).
		Where("story_id = ? AND user_id = ?", storyID, userID).
		Order("created_at DESC").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
