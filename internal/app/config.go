package app

import (
	"time"

	"github.com/yungbote/storynest-backend/internal/pkg/logger"
	"github.com/yungbote/storynest-backend/internal/utils"
)

type Config struct {
	Port string

	PostgresDSN string

	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	AIProvider   string
	OpenAIAPIKey string
	GeminiAPIKey string

	MaxStoryPages int
	UploadDir     string

	S3Endpoint   string
	S3AccessKey  string
	S3SecretKey  string
	S3BucketName string
	S3UseSSL     bool
	CDNBaseURL   string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port: utils.GetEnv("PORT", "8080", log),

		PostgresDSN: utils.GetEnv("POSTGRES_DSN",
			"host=localhost user=postgres password=postgres dbname=storynest port=5432 sslmode=disable", log),

		JWTSecretKey:    utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL:  time.Duration(utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)) * time.Second,
		RefreshTokenTTL: time.Duration(utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)) * time.Second,

		AIProvider:   utils.GetEnv("AI_PROVIDER", "openai", log),
		OpenAIAPIKey: utils.GetEnv("OPENAI_API_KEY", "", log),
		GeminiAPIKey: utils.GetEnv("GEMINI_API_KEY", "", log),

		MaxStoryPages: utils.GetEnvAsInt("MAX_STORY_PAGES", 10, log),
		UploadDir:     utils.GetEnv("UPLOAD_DIR", "uploads", log),

		S3Endpoint:   utils.GetEnv("S3_ENDPOINT", "localhost:9000", log),
		S3AccessKey:  utils.GetEnv("S3_ACCESS_KEY", "", log),
		S3SecretKey:  utils.GetEnv("S3_SECRET_KEY", "", log),
		S3BucketName: utils.GetEnv("S3_BUCKET_NAME", "storynest", log),
		S3UseSSL:     utils.GetEnvAsBool("S3_USE_SSL", false, log),
		CDNBaseURL:   utils.GetEnv("CDN_BASE_URL", "", log),
	}
}
