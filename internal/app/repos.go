package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/storynest-backend/internal/data/repos"
	"github.com/yungbote/storynest-backend/internal/pkg/logger"
)

type Repos struct {
	User       repos.UserRepo
	UserToken  repos.UserTokenRepo
	Story      repos.StoryRepo
	Assignment repos.AssignmentRepo
	Feedback   repos.FeedbackRepo
	Audio      repos.AudioRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:       repos.NewUserRepo(db, log),
		UserToken:  repos.NewUserTokenRepo(db, log),
		Story:      repos.NewStoryRepo(db, log),
		Assignment: repos.NewAssignmentRepo(db, log),
		Feedback:   repos.NewFeedbackRepo(db, log),
		Audio:      repos.NewAudioRepo(db, log),
	}
}
