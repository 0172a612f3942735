package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/storynest-backend/internal/pkg/logger"
	"github.com/yungbote/storynest-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	Story      services.StoryService
	Assessment services.AssessmentService
	Upload     services.UploadService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")
	return Services{
		Auth: services.NewAuthService(db, log, reposet.User, reposet.UserToken,
			cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Story: services.NewStoryService(db, log, reposet.User, reposet.Story,
			clients.Provider, clients.ObjectStore, cfg.MaxStoryPages),
		Assessment: services.NewAssessmentService(db, log, reposet.Story,
			reposet.Assignment, reposet.Feedback, clients.Provider),
		Upload: services.NewUploadService(db, log, reposet.Story, reposet.Audio,
			clients.ObjectStore, cfg.UploadDir),
	}
}
