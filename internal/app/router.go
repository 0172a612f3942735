package app

import (
	"github.com/gin-gonic/gin"

	apihttp "github.com/yungbote/storynest-backend/internal/http"
)

func wireRouter(handlerset Handlers, mw Middleware) *gin.Engine {
	return apihttp.NewRouter(apihttp.RouterConfig{
		AuthMiddleware: mw.Auth,

		HealthHandler: handlerset.Health,
		UserHandler:   handlerset.User,
		StoryHandler:  handlerset.Story,
		AudioHandler:  handlerset.Audio,
	})
}
