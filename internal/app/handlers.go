package app

import (
	"github.com/yungbote/storynest-backend/internal/http/handlers"
	"github.com/yungbote/storynest-backend/internal/pkg/logger"
)

type Handlers struct {
	Health *handlers.HealthHandler
	User   *handlers.UserHandler
	Story  *handlers.StoryHandler
	Audio  *handlers.AudioHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: handlers.NewHealthHandler(),
		User:   handlers.NewUserHandler(serviceset.Auth),
		Story:  handlers.NewStoryHandler(serviceset.Story, serviceset.Assessment),
		Audio:  handlers.NewAudioHandler(serviceset.Upload),
	}
}
