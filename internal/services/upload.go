package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storynest-backend/internal/clients/objectstore"
	"github.com/yungbote/storynest-backend/internal/data/repos"
	types "github.com/yungbote/storynest-backend/internal/domain"
	"github.com/yungbote/storynest-backend/internal/pkg/apperr"
	"github.com/yungbote/storynest-backend/internal/pkg/logger"
)

const (
	uploadURLValidity  = 300 * time.Second
	playbackURLExpiry  = time.Hour
	defaultContentType = "audio/wav"
)

type UploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

type AudioFeedback struct {
	Audio       *types.Audio `json:"audio"`
	Story       *types.Story `json:"story"`
	PlaybackURL string       `json:"playbackUrl,omitempty"`
}

type UploadService interface {
	IssueUpload(ctx context.Context, storyID uuid.UUID, fileName, contentType string) (*UploadTicket, error)
	ConfirmUpload(ctx context.Context, storyID uuid.UUID, objectKey, fileName string) (*types.Audio, error)
	LegacyUpload(ctx context.Context, storyID uuid.UUID, fileName string, body io.Reader) (*types.Audio, error)
	GetAudioFeedback(ctx context.Context, audioID uuid.UUID) (*AudioFeedback, error)
	ListAudios(ctx context.Context) ([]*types.Audio, error)
}

type uploadService struct {
	db        *gorm.DB
	log       *logger.Logger
	storyRepo repos.StoryRepo
	audioRepo repos.AudioRepo
	store     objectstore.Store
	uploadDir string
}

func NewUploadService(
	db *gorm.DB,
	log *logger.Logger,
	storyRepo repos.StoryRepo,
	audioRepo repos.AudioRepo,
	store objectstore.Store,
	uploadDir string,
) UploadService {
	serviceLog := log.With("service", "UploadService")
	return &uploadService{
		db:        db,
		log:       serviceLog,
		storyRepo: storyRepo,
		audioRepo: audioRepo,
		store:     store,
		uploadDir: uploadDir,
	}
}

func (us *uploadService) loadStory(ctx context.Context, storyID uuid.UUID) (*types.Story, error) {
	story, err := us.storyRepo.GetByID(ctx, nil, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: story %s", apperr.ErrNotFound, storyID)
		}
		return nil, fmt.Errorf("failed to load story: %w", err)
	}
	return story, nil
}

func (us *uploadService) IssueUpload(ctx context.Context, storyID uuid.UUID, fileName, contentType string) (*UploadTicket, error) {
	if fileName == "" {
		return nil, fmt.Errorf("%w: fileName is required", apperr.ErrInvalidArgument)
	}
	if contentType == "" {
		contentType = defaultContentType
	}
	if _, err := us.loadStory(ctx, storyID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("uploads/audio/%d-%s", time.Now().UnixMilli(), fileName)
	uploadURL, err := us.store.PresignedPut(ctx, key, uploadURLValidity)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	us.log.Info("upload url issued", "storyID", storyID, "key", key)
	return &UploadTicket{UploadURL: uploadURL, Key: key}, nil
}

// ConfirmUpload records the audio after the caller has pushed bytes to
// the object store directly. The object is not probed for existence; a
// caller that confirms without uploading owns the resulting dead record.
func (us *uploadService) ConfirmUpload(ctx context.Context, storyID uuid.UUID, objectKey, fileName string) (*types.Audio, error) {
	if objectKey == "" || fileName == "" {
		return nil, fmt.Errorf("%w: Missing s3Key or fileName", apperr.ErrInvalidArgument)
	}
	story, err := us.loadStory(ctx, storyID)
	if err != nil {
		return nil, err
	}

	audio := &types.Audio{
		ID:         uuid.New(),
		StoryID:    story.ID,
		ObjectKey:  &objectKey,
		FileName:   fileName,
		WholeStory: story.WholeText(),
	}
	if _, err := us.audioRepo.Create(ctx, nil, []*types.Audio{audio}); err != nil {
		return nil, fmt.Errorf("failed to persist audio: %w", err)
	}

	us.log.Info("upload confirmed", "storyID", storyID, "audioID", audio.ID, "key", objectKey)
	return audio, nil
}

// LegacyUpload is the one-phase fallback: the multipart stream lands on
// local disk and the record carries a file path instead of an object key.
func (us *uploadService) LegacyUpload(ctx context.Context, storyID uuid.UUID, fileName string, body io.Reader) (*types.Audio, error) {
	if fileName == "" {
		return nil, fmt.Errorf("%w: missing audio file", apperr.ErrInvalidArgument)
	}
	story, err := us.loadStory(ctx, storyID)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(us.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	diskName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(fileName))
	fullPath := filepath.Join(us.uploadDir, diskName)

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(dst, body); err != nil {
		dst.Close()
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	audio := &types.Audio{
		ID:         uuid.New(),
		StoryID:    story.ID,
		FilePath:   &fullPath,
		FileName:   fileName,
		WholeStory: story.WholeText(),
	}
	if _, err := us.audioRepo.Create(ctx, nil, []*types.Audio{audio}); err != nil {
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to persist audio: %w", err)
	}

	us.log.Info("legacy upload stored", "storyID", storyID, "audioID", audio.ID, "path", fullPath)
	return audio, nil
}

func (us *uploadService) GetAudioFeedback(ctx context.Context, audioID uuid.UUID) (*AudioFeedback, error) {
	audio, err := us.audioRepo.GetByID(ctx, nil, audioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: audio %s", apperr.ErrNotFound, audioID)
		}
		return nil, fmt.Errorf("failed to load audio: %w", err)
	}
	story, err := us.loadStory(ctx, audio.StoryID)
	if err != nil {
		return nil, err
	}

	out := &AudioFeedback{Audio: audio, Story: story}
	if audio.ObjectKey != nil && *audio.ObjectKey != "" {
		url, err := us.store.ObjectURL(ctx, *audio.ObjectKey, playbackURLExpiry)
		if err != nil {
			us.log.Warn("failed to build playback url", "audioID", audio.ID, "error", err)
		} else {
			out.PlaybackURL = url
		}
	}
	return out, nil
}

func (us *uploadService) ListAudios(ctx context.Context) ([]*types.Audio, error) {
	audios, err := us.audioRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list audios: %w", err)
	}
	return audios, nil
}
