// Package objectstore wraps the S3-compatible bucket used for audio
// recordings and story illustrations.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yungbote/storynest-backend/internal/pkg/logger"
)

type Config struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	UseSSL     bool
	CDNBaseURL string
}

type Store interface {
	PresignedPut(ctx context.Context, key string, expiry time.Duration) (string, error)
	PresignedGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	// ObjectURL returns a read URL for a stored object: the CDN location
	// when a CDN base is configured, a presigned GET otherwise.
	ObjectURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	// PublicURL returns the durable URL for a stored object: the CDN
	// location when a CDN base is configured, the endpoint URL otherwise.
	PublicURL(key string) string
}

type store struct {
	client *minio.Client
	cfg    Config
	log    *logger.Logger
}

func New(cfg Config, baseLog *logger.Logger) (Store, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("missing object store endpoint or bucket")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	return &store{
		client: client,
		cfg:    cfg,
		log:    baseLog.With("client", "ObjectStore"),
	}, nil
}

func (s *store) PresignedPut(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.cfg.Bucket, key, expiry)
	if err != nil {
		return "", fmt.Errorf("presign put %q: %w", key, err)
	}
	return u.String(), nil
}

func (s *store) PresignedGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign get %q: %w", key, err)
	}
	return u.String(), nil
}

func (s *store) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %q: %w", key, err)
	}
	return nil
}

func (s *store) ObjectURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if s.cfg.CDNBaseURL != "" {
		return strings.TrimSuffix(s.cfg.CDNBaseURL, "/") + "/" + strings.TrimPrefix(key, "/"), nil
	}
	return s.PresignedGet(ctx, key, expiry)
}

func (s *store) PublicURL(key string) string {
	if s.cfg.CDNBaseURL != "" {
		return strings.TrimSuffix(s.cfg.CDNBaseURL, "/") + "/" + key
	}
	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, key)
}
