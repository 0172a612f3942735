package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storynest-backend/internal/ai"
	"github.com/yungbote/storynest-backend/internal/clients/objectstore"
	"github.com/yungbote/storynest-backend/internal/data/repos"
	types "github.com/yungbote/storynest-backend/internal/domain"
	"github.com/yungbote/storynest-backend/internal/pkg/apperr"
	"github.com/yungbote/storynest-backend/internal/pkg/logger"
)

// Pages that get an illustration when the caller asks for one. Fixed to
// the cover page and a mid-story page.
var illustratedPageIndexes = map[int]bool{0: true, 2: true}

const illustrationFetchTimeout = 30 * time.Second

type CreateStoryInput struct {
	Title            string `json:"storyTitle"`
	Description      string `json:"storyDescription"`
	MaxPages         int    `json:"maxPages"`
	ChildAge         int    `json:"childAge"`
	WithIllustration bool   `json:"includeImage"`
}

type StoryService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateStoryInput) (*types.Story, error)
	Get(ctx context.Context, userID, storyID uuid.UUID) (*types.Story, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Story, error)
	FullText(ctx context.Context, storyID uuid.UUID) (string, error)
}

type storyService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   repos.UserRepo
	storyRepo  repos.StoryRepo
	provider   ai.Provider
	store      objectstore.Store
	httpClient *http.Client
	maxPages   int
}

func NewStoryService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	storyRepo repos.StoryRepo,
	provider ai.Provider,
	store objectstore.Store,
	maxPages int,
) StoryService {
	serviceLog := log.With("service", "StoryService")
	return &storyService{
		db:         db,
		log:        serviceLog,
		userRepo:   userRepo,
		storyRepo:  storyRepo,
		provider:   provider,
		store:      store,
		httpClient: &http.Client{Timeout: illustrationFetchTimeout},
		maxPages:   maxPages,
	}
}

func (ss *storyService) validateCreate(input CreateStoryInput) error {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("%w: storyTitle and storyDescription are required", apperr.ErrInvalidArgument)
	}
	if input.MaxPages < 1 || input.MaxPages > ss.maxPages {
		return fmt.Errorf("%w: maxPages must be between 1 and %d", apperr.ErrInvalidArgument, ss.maxPages)
	}
	if input.ChildAge != 0 && (input.ChildAge < minChildAge || input.ChildAge > maxChildAge) {
		return fmt.Errorf("%w: childAge must be between %d and %d",
			apperr.ErrInvalidArgument, minChildAge, maxChildAge)
	}
	return nil
}

// Create runs one story generation call, assembles the pages in order,
// attempts illustrations for the fixed page indexes when requested, and
// persists the whole story atomically. A failed story generation aborts
// with nothing persisted; a failed illustration only loses the image.
func (ss *storyService) Create(ctx context.Context, userID uuid.UUID, input CreateStoryInput) (*types.Story, error) {
	if err := ss.validateCreate(input); err != nil {
		return nil, err
	}

	user, err := ss.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	draft, err := ss.provider.GenerateStory(ctx, ai.StoryPrompt{
		Title:       input.Title,
		Description: input.Description,
		MaxPages:    input.MaxPages,
		ChildAge:    input.ChildAge,
	})
	if err != nil {
		return nil, err
	}
	if len(draft.Pages) != input.MaxPages {
		return nil, apperr.NewGenerationError(ai.CapabilityStory, apperr.KindShape, "",
			fmt.Errorf("expected %d pages, model returned %d", input.MaxPages, len(draft.Pages)))
	}

	story := &types.Story{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Author:      user.ParentName,
		MaxPages:    input.MaxPages,
	}
	for i, text := range draft.Pages {
		page := types.StoryPage{
			ID:    uuid.New(),
			Index: i,
			Text:  text,
		}
		if input.WithIllustration && illustratedPageIndexes[i] {
			if imageURL := ss.illustrate(ctx, story.ID, i, text); imageURL != "" {
				page.ImageURL = &imageURL
			}
		}
		story.Pages = append(story.Pages, page)
	}

	if _, err := ss.storyRepo.Create(ctx, nil, []*types.Story{story}); err != nil {
		return nil, fmt.Errorf("failed to persist story: %w", err)
	}

	ss.log.Info("story created", "storyID", story.ID, "pages", len(story.Pages))
	return story, nil
}

// illustrate generates an image for one page and hosts it in the object
// store. Every failure path logs and returns "", degrading the story to
// text-only for that page.
func (ss *storyService) illustrate(ctx context.Context, storyID uuid.UUID, pageIndex int, pageText string) string {
	illustration, err := ss.provider.GenerateImage(ctx, pageText)
	if err != nil {
		ss.log.Warn("illustration generation failed", "storyID", storyID, "page", pageIndex, "error", err)
		return ""
	}
	if illustration == nil {
		return ""
	}

	data := illustration.Data
	if len(data) == 0 && illustration.URL != "" {
		data, err = ss.fetchImage(ctx, illustration.URL)
		if err != nil {
			ss.log.Warn("illustration fetch failed", "storyID", storyID, "page", pageIndex, "error", err)
			return ""
		}
	}
	if len(data) == 0 {
		return ""
	}

	key := fmt.Sprintf("stories/%s/page-%d.png", storyID, pageIndex)
	contentType := illustration.MIMEType
	if contentType == "" {
		contentType = "image/png"
	}
	if err := ss.store.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		ss.log.Warn("illustration upload failed", "storyID", storyID, "page", pageIndex, "error", err)
		return ""
	}
	return ss.store.PublicURL(key)
}

// fetchImage pulls the provider-hosted image so it can be rehosted
// durably; provider URLs expire.
func (ss *storyService) fetchImage(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := ss.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching image", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (ss *storyService) Get(ctx context.Context, userID, storyID uuid.UUID) (*types.Story, error) {
	story, err := ss.storyRepo.GetByID(ctx, nil, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: story %s", apperr.ErrNotFound, storyID)
		}
		return nil, fmt.Errorf("failed to load story: %w", err)
	}
	if story.UserID != userID {
		return nil, apperr.ErrUnauthorized
	}
	return story, nil
}

func (ss *storyService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Story, error) {
	stories, err := ss.storyRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}

// FullText is the denormalized read used by the recording flow; it is
// not ownership-checked because the audio pipeline runs without a user
// session.
func (ss *storyService) FullText(ctx context.Context, storyID uuid.UUID) (string, error) {
	story, err := ss.storyRepo.GetByID(ctx, nil, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: story %s", apperr.ErrNotFound, storyID)
		}
		return "", fmt.Errorf("failed to load story: %w", err)
	}
	return story.WholeText(), nil
}
