package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storynest-backend/internal/ai"
	types "github.com/yungbote/storynest-backend/internal/domain"
)

type fakeProvider struct {
	storyFn     func(ctx context.Context, prompt ai.StoryPrompt) (*ai.StoryDraft, error)
	questionsFn func(ctx context.Context, storyTitle, wholeStory string) (*ai.QuestionSet, error)
	feedbackFn  func(ctx context.Context, input ai.GradingInput) (*ai.ResultSet, error)
	imageFn     func(ctx context.Context, pageText string) (*ai.Illustration, error)

	storyCalls     int
	questionsCalls int
	feedbackCalls  int
	imageCalls     int
}

func (f *fakeProvider) GenerateStory(ctx context.Context, prompt ai.StoryPrompt) (*ai.StoryDraft, error) {
	f.storyCalls++
	return f.storyFn(ctx, prompt)
}

func (f *fakeProvider) GenerateQuestions(ctx context.Context, storyTitle, wholeStory string) (*ai.QuestionSet, error) {
	f.questionsCalls++
	return f.questionsFn(ctx, storyTitle, wholeStory)
}

func (f *fakeProvider) GenerateFeedback(ctx context.Context, input ai.GradingInput) (*ai.ResultSet, error) {
	f.feedbackCalls++
	return f.feedbackFn(ctx, input)
}

func (f *fakeProvider) GenerateImage(ctx context.Context, pageText string) (*ai.Illustration, error) {
	f.imageCalls++
	if f.imageFn == nil {
		return nil, nil
	}
	return f.imageFn(ctx, pageText)
}

type fakeStore struct {
	uploads   map[string][]byte
	presigned []string
	putErr    error
	uploadErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{uploads: map[string][]byte{}}
}

func (f *fakeStore) PresignedPut(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	f.presigned = append(f.presigned, key)
	return "https://bucket.example.com/put/" + key, nil
}

func (f *fakeStore) PresignedGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://bucket.example.com/get/" + key, nil
}

func (f *fakeStore) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.uploads[key] = data
	return nil
}

func (f *fakeStore) ObjectURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type fakeUserRepo struct {
	users map[uuid.UUID]*types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*types.User{}}
}

func (f *fakeUserRepo) add(userID uuid.UUID) *types.User {
	u := &types.User{ID: userID, ParentName: "Ravi", ParentEmail: userID.String() + "@example.com"}
	f.users[userID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	for _, u := range users {
		f.users[u.ID] = u
	}
	return users, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, parentEmail string) (*types.User, error) {
	for _, u := range f.users {
		if u.ParentEmail == parentEmail {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, parentEmail string) (bool, error) {
	_, err := f.GetByEmail(ctx, tx, parentEmail)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type fakeStoryRepo struct {
	stories map[uuid.UUID]*types.Story
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{stories: map[uuid.UUID]*types.Story{}}
}

func (f *fakeStoryRepo) Create(ctx context.Context, tx *gorm.DB, stories []*types.Story) ([]*types.Story, error) {
	for _, s := range stories {
		f.stories[s.ID] = s
	}
	return stories, nil
}

func (f *fakeStoryRepo) GetByID(ctx context.Context, tx *gorm.DB, storyID uuid.UUID) (*types.Story, error) {
	s, ok := f.stories[storyID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeStoryRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Story, error) {
	var out []*types.Story
	for _, s := range f.stories {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeUserTokenRepo struct {
	tokens map[string]*types.UserToken
}

func newFakeUserTokenRepo() *fakeUserTokenRepo {
	return &fakeUserTokenRepo{tokens: map[string]*types.UserToken{}}
}

func (f *fakeUserTokenRepo) Create(ctx context.Context, tx *gorm.DB, tokens []*types.UserToken) ([]*types.UserToken, error) {
	for _, tok := range tokens {
		f.tokens[tok.RefreshToken] = tok
	}
	return tokens, nil
}

func (f *fakeUserTokenRepo) GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.UserToken, error) {
	tok, ok := f.tokens[refreshToken]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return tok, nil
}

func (f *fakeUserTokenRepo) DeleteByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) error {
	delete(f.tokens, refreshToken)
	return nil
}

func (f *fakeUserTokenRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	for key, tok := range f.tokens {
		if tok.UserID == userID {
			delete(f.tokens, key)
		}
	}
	return nil
}

func (f *fakeUserTokenRepo) DeleteExpired(ctx context.Context, tx *gorm.DB, before time.Time) error {
	for key, tok := range f.tokens {
		if tok.ExpiresAt.Before(before) {
			delete(f.tokens, key)
		}
	}
	return nil
}

type fakeAssignmentRepo struct {
	assignments map[uuid.UUID]*types.Assignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: map[uuid.UUID]*types.Assignment{}}
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, tx *gorm.DB, assignments []*types.Assignment) ([]*types.Assignment, error) {
	for _, a := range assignments {
		for _, existing := range f.assignments {
			if existing.StoryID == a.StoryID && existing.UserID == a.UserID {
				return nil, gorm.ErrDuplicatedKey
			}
		}
		f.assignments[a.ID] = a
	}
	return assignments, nil
}

func (f *fakeAssignmentRepo) GetByStoryAndUser(ctx context.Context, tx *gorm.DB, storyID, userID uuid.UUID) (*types.Assignment, error) {
	for _, a := range f.assignments {
		if a.StoryID == storyID && a.UserID == userID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeFeedbackRepo struct {
	feedbacks []*types.Feedback
}

func (f *fakeFeedbackRepo) Create(ctx context.Context, tx *gorm.DB, feedbacks []*types.Feedback) ([]*types.Feedback, error) {
	f.feedbacks = append(f.feedbacks, feedbacks...)
	return feedbacks, nil
}

func (f *fakeFeedbackRepo) GetLatestByStoryAndUser(ctx context.Context, tx *gorm.DB, storyID, userID uuid.UUID) (*types.Feedback, error) {
	for i := len(f.feedbacks) - 1; i >= 0; i-- {
		fb := f.feedbacks[i]
		if fb.StoryID == storyID && fb.UserID == userID {
			return fb, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeAudioRepo struct {
	audios map[uuid.UUID]*types.Audio
}

func newFakeAudioRepo() *fakeAudioRepo {
	return &fakeAudioRepo{audios: map[uuid.UUID]*types.Audio{}}
}

func (f *fakeAudioRepo) Create(ctx context.Context, tx *gorm.DB, audios []*types.Audio) ([]*types.Audio, error) {
	for _, a := range audios {
		f.audios[a.ID] = a
	}
	return audios, nil
}

func (f *fakeAudioRepo) GetByID(ctx context.Context, tx *gorm.DB, audioID uuid.UUID) (*types.Audio, error) {
	a, ok := f.audios[audioID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (f *fakeAudioRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Audio, error) {
	var out []*types.Audio
	for _, a := range f.audios {
		out = append(out, a)
	}
	return out, nil
}
