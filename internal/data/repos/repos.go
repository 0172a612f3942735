package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/storynest-backend/internal/data/repos/assessment"
	"github.com/yungbote/storynest-backend/internal/data/repos/auth"
	"github.com/yungbote/storynest-backend/internal/data/repos/media"
	"github.com/yungbote/storynest-backend/internal/data/repos/story"
	"github.com/yungbote/storynest-backend/internal/data/repos/user"
	"github.com/yungbote/storynest-backend/internal/pkg/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type StoryRepo = story.StoryRepo

type AssignmentRepo = assessment.AssignmentRepo
type FeedbackRepo = assessment.FeedbackRepo

type AudioRepo = media.AudioRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewStoryRepo(db *gorm.DB, baseLog *logger.Logger) StoryRepo {
	return story.NewStoryRepo(db, baseLog)
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	return assessment.NewAssignmentRepo(db, baseLog)
}
func NewFeedbackRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackRepo {
	return assessment.NewFeedbackRepo(db, baseLog)
}

func NewAudioRepo(db *gorm.DB, baseLog *logger.Logger) AudioRepo {
	return media.NewAudioRepo(db, baseLog)
}
