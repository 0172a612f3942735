package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storynest-backend/internal/ai"
	"github.com/yungbote/storynest-backend/internal/data/repos"
	types "github.com/yungbote/storynest-backend/internal/domain"
	"github.com/yungbote/storynest-backend/internal/pkg/apperr"
	"github.com/yungbote/storynest-backend/internal/pkg/logger"
)

type AssessmentService interface {
	// GetOrCreateAssignment returns the existing assignment for the
	// (story, user) pair untouched, or generates one on first request.
	// The created flag tells handlers whether to answer 200 or 201.
	GetOrCreateAssignment(ctx context.Context, userID, storyID uuid.UUID) (assignment *types.Assignment, created bool, err error)
	Grade(ctx context.Context, userID, storyID uuid.UUID, answers []string) (*types.Feedback, error)
	GetFeedback(ctx context.Context, userID, storyID uuid.UUID) (*types.Feedback, error)
}

type assessmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	storyRepo      repos.StoryRepo
	assignmentRepo repos.AssignmentRepo
	feedbackRepo   repos.FeedbackRepo
	provider       ai.Provider
}

func NewAssessmentService(
	db *gorm.DB,
	log *logger.Logger,
	storyRepo repos.StoryRepo,
	assignmentRepo repos.AssignmentRepo,
	feedbackRepo repos.FeedbackRepo,
	provider ai.Provider,
) AssessmentService {
	serviceLog := log.With("service", "AssessmentService")
	return &assessmentService{
		db:             db,
		log:            serviceLog,
		storyRepo:      storyRepo,
		assignmentRepo: assignmentRepo,
		feedbackRepo:   feedbackRepo,
		provider:       provider,
	}
}

func (s *assessmentService) ownedStory(ctx context.Context, userID, storyID uuid.UUID) (*types.Story, error) {
	story, err := s.storyRepo.GetByID(ctx, nil, storyID)
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

func (s *assessmentService) GetOrCreateAssignment(ctx context.Context, userID, storyID uuid.UUID) (*types.Assignment, bool, error) {
	story, err := s.ownedStory(ctx, userID, storyID)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.assignmentRepo.GetByStoryAndUser(ctx, nil, storyID, userID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to load assignment: %w", err)
	}

	set, err := s.provider.GenerateQuestions(ctx, story.Title, story.WholeText())
	if err != nil {
		return nil, false, err
	}

	assignment := &types.Assignment{
		ID:      uuid.New(),
		StoryID: storyID,
		UserID:  userID,
	}
	for i, q := range set.Questions {
		assignment.Questions = append(assignment.Questions, types.AssignmentQuestion{
			ID:       uuid.New(),
			Index:    i,
			Question: q.Question,
			Answer:   q.Answer,
		})
	}

	if _, err := s.assignmentRepo.Create(ctx, nil, []*types.Assignment{assignment}); err != nil {
		// A concurrent request may have won the unique index race;
		// the stored assignment is the one both callers see.
		winner, getErr := s.assignmentRepo.GetByStoryAndUser(ctx, nil, storyID, userID)
		if getErr == nil {
			return winner, false, nil
		}
		return nil, false, fmt.Errorf("failed to persist assignment: %w", err)
	}

	s.log.Info("assignment created", "storyID", storyID, "userID", userID, "questions", len(assignment.Questions))
	return assignment, true, nil
}

// Grade zips the submitted answers onto the assignment's questions by
// position. Missing trailing answers grade as empty; extra answers are
// ignored. Every submission appends a fresh Feedback record.
func (s *assessmentService) Grade(ctx context.Context, userID, storyID uuid.UUID, answers []string) (*types.Feedback, error) {
	story, err := s.ownedStory(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.GetByStoryAndUser(ctx, nil, storyID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no assignment for story %s", apperr.ErrNotFound, storyID)
		}
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}

	input := ai.GradingInput{WholeStory: story.WholeText()}
	for i, q := range assignment.Questions {
		item := ai.QuestionItem{Question: q.Question, Answer: q.Answer}
		if i < len(answers) {
			item.UserAnswer = answers[i]
		}
		input.Questions = append(input.Questions, item)
	}

	set, err := s.provider.GenerateFeedback(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := pairResults(assignment.Questions, set.Results); err != nil {
		return nil, err
	}

	feedback := &types.Feedback{
		ID:      uuid.New(),
		StoryID: storyID,
		UserID:  userID,
	}
	for i, r := range set.Results {
		feedback.Results = append(feedback.Results, types.FeedbackResult{
			ID:         uuid.New(),
			Index:      i,
			Question:   r.Question,
			Answer:     r.Answer,
			UserAnswer: r.UserAnswer,
			Rating:     r.Rating,
			Comment:    r.Comment,
		})
	}

	if _, err := s.feedbackRepo.Create(ctx, nil, []*types.Feedback{feedback}); err != nil {
		return nil, fmt.Errorf("failed to persist feedback: %w", err)
	}
	return feedback, nil
}

// pairResults rejects graded output that does not line up one-to-one
// with the assignment's questions. A mismatched result set persists
// nothing.
func pairResults(questions []types.AssignmentQuestion, results []ai.ResultItem) error {
	if len(results) != len(questions) {
		return apperr.NewGenerationError(ai.CapabilityFeedback, apperr.KindShape, "",
			fmt.Errorf("expected %d results, got %d", len(questions), len(results)))
	}
	for i, q := range questions {
		if results[i].Question != q.Question {
			return apperr.NewGenerationError(ai.CapabilityFeedback, apperr.KindShape, "",
				fmt.Errorf("result %d grades %q, assignment asks %q", i, results[i].Question, q.Question))
		}
	}
	return nil
}

func (s *assessmentService) GetFeedback(ctx context.Context, userID, storyID uuid.UUID) (*types.Feedback, error) {
	if _, err := s.ownedStory(ctx, userID, storyID); err != nil {
		return nil, err
	}
	feedback, err := s.feedbackRepo.GetLatestByStoryAndUser(ctx, nil, storyID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no feedback for story %s", apperr.ErrNotFound, storyID)
		}
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}
	return feedback, nil
}
