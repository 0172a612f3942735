package assessment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/storynest-backend/internal/domain"
	"github.com/yungbote/storynest-backend/internal/pkg/logger"
)

type AssignmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assignments []*types.Assignment) ([]*types.Assignment, error)
	GetByStoryAndUser(ctx context.Context, tx *gorm.DB, storyID, userID uuid.UUID) (*types.Assignment, error)
}

type assignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	repoLog := baseLog.With("repo", "AssignmentRepo")
	return &assignmentRepo{db: db, log: repoLog}
}

func (ar *assignmentRepo) Create(ctx context.Context, tx *gorm.DB, assignments []*types.Assignment) ([]*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(assignments) == 0 {
		return []*types.Assignment{}, nil
	}

	// The (story_id, user_id) unique index rejects a concurrent insert
	// of the same assignment; the caller re-reads the winner.
	if err := transaction.WithContext(ctx).Create(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (ar *assignmentRepo) GetByStoryAndUser(ctx context.Context, tx *gorm.DB, storyID, userID uuid.UUID) (*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Assignment
	if err := transaction.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("assignment_question.index ASC")
		}).
		Where("story_id = ? AND user_id = ?", storyID, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
