package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/storynest-backend/internal/ai"
	"github.com/yungbote/storynest-backend/internal/ai/geminigen"
	"github.com/yungbote/storynest-backend/internal/ai/openaigen"
	"github.com/yungbote/storynest-backend/internal/clients/objectstore"
	"github.com/yungbote/storynest-backend/internal/pkg/logger"
)

type Clients struct {
	Provider    ai.Provider
	ObjectStore objectstore.Store
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...", "ai_provider", cfg.AIProvider)

	var provider ai.Provider
	var err error
	switch strings.ToLower(cfg.AIProvider) {
	case "gemini":
		provider, err = geminigen.New(ctx, cfg.GeminiAPIKey, log)
	case "openai", "":
		provider, err = openaigen.New(cfg.OpenAIAPIKey, log)
	default:
		err = fmt.Errorf("unknown AI_PROVIDER %q (expected openai or gemini)", cfg.AIProvider)
	}
	if err != nil {
		return Clients{}, err
	}

	store, err := objectstore.New(objectstore.Config{
		Endpoint:   cfg.S3Endpoint,
		AccessKey:  cfg.S3AccessKey,
		SecretKey:  cfg.S3SecretKey,
		Bucket:     cfg.S3BucketName,
		UseSSL:     cfg.S3UseSSL,
		CDNBaseURL: cfg.CDNBaseURL,
	}, log)
	if err != nil {
		return Clients{}, err
	}

	return Clients{
		Provider:    provider,
		ObjectStore: store,
	}, nil
}
