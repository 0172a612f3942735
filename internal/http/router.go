package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/storynest-backend/internal/http/handlers"
	httpMW "github.com/yungbote/storynest-backend/internal/http/middleware"
)

type RouterConfig struct {
	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler *httpH.HealthHandler
	UserHandler   *httpH.UserHandler
	StoryHandler  *httpH.StoryHandler
	AudioHandler  *httpH.AudioHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	if cfg.UserHandler != nil {
		user := api.Group("/user")
		user.POST("/signup", cfg.UserHandler.Signup)
		user.POST("/login", cfg.UserHandler.Login)
		user.POST("/refresh", cfg.UserHandler.Refresh)
		if cfg.AuthMiddleware != nil {
			user.POST("/logout", cfg.AuthMiddleware.RequireAuth(), cfg.UserHandler.Logout)
		}
	}

	if cfg.StoryHandler != nil && cfg.AuthMiddleware != nil {
		story := api.Group("/story")
		story.Use(cfg.AuthMiddleware.RequireAuth())
		story.POST("/create", cfg.StoryHandler.Create)
		story.GET("/stories/:uid", cfg.StoryHandler.ListStories)
		story.GET("/getStory/:sid", cfg.StoryHandler.GetStory)
		story.GET("/getFullStory/:sid", cfg.StoryHandler.GetFullStory)
		story.GET("/getQuestions/:sid", cfg.StoryHandler.GetQuestions)
		story.POST("/feedback/:sid", cfg.StoryHandler.SubmitFeedback)
		story.GET("/getFeedback/:sid", cfg.StoryHandler.GetFeedback)
	}

	// Audio routes stay unauthenticated: the transcription/scoring
	// service consumes them without a user session.
	if cfg.AudioHandler != nil {
		api.GET("/audio/upload-url/:sid", cfg.AudioHandler.GetUploadURL)
		api.POST("/audio/confirm-upload/:sid", cfg.AudioHandler.ConfirmUpload)
		api.POST("/upload/:sid", cfg.AudioHandler.LegacyUpload)
		api.GET("/audios", cfg.AudioHandler.ListAudios)
		api.GET("/audio/finalFeedback/:aid", cfg.AudioHandler.FinalFeedback)
	}

	return r
}
