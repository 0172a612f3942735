package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/storynest-backend/internal/ai"
	types "github.com/yungbote/storynest-backend/internal/domain"
	"github.com/yungbote/storynest-backend/internal/pkg/apperr"
)

func seedFakeStory(repo *fakeStoryRepo, userID uuid.UUID) *types.Story {
	story := &types.Story{
		ID:     uuid.New(),
		UserID: userID,
		Title:  "The Brave Fox",
		Pages: []types.StoryPage{
			{ID: uuid.New(), Index: 0, Text: "Once upon a time. "},
			{ID: uuid.New(), Index: 1, Text: "The end."},
		},
	}
	repo.stories[story.ID] = story
	return story
}

func questionsFixture() *ai.QuestionSet {
	return &ai.QuestionSet{Questions: []ai.QuestionItem{
		{Question: "Who is the hero?", Answer: "The fox"},
		{Question: "What does she learn?", Answer: "To share"},
		{Question: "Where does it happen?", Answer: "The forest"},
	}}
}

func TestGetOrCreateAssignment(t *testing.T) {
	storyRepo := newFakeStoryRepo()
	assignmentRepo := newFakeAssignmentRepo()
	provider := &fakeProvider{
		questionsFn: func(ctx context.Context, storyTitle, wholeStory string) (*ai.QuestionSet, error) {
			return questionsFixture(), nil
		},
	}
	svc := NewAssessmentService(nil, testLogger(t), storyRepo, assignmentRepo, &fakeFeedbackRepo{}, provider)

	userID := uuid.New()
	story := seedFakeStory(storyRepo, userID)

	first, created, err := svc.GetOrCreateAssignment(context.Background(), userID, story.ID)
	if err != nil {
		t.Fatalf("GetOrCreateAssignment: %v", err)
	}
	if !created {
		t.Fatalf("first call should create")
	}
	if len(first.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(first.Questions))
	}
	for _, q := range first.Questions {
		if q.UserAnswer != "" {
			t.Fatalf("persisted question should have empty userAnswer: %+v", q)
		}
	}

	second, created, err := svc.GetOrCreateAssignment(context.Background(), userID, story.ID)
	if err != nil {
		t.Fatalf("GetOrCreateAssignment (second): %v", err)
	}
	if created {
		t.Fatalf("second call should return the existing assignment")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same assignment, got %s and %s", first.ID, second.ID)
	}
	if provider.questionsCalls != 1 {
		t.Fatalf("generation must not re-run; got %d calls", provider.questionsCalls)
	}
}

func TestGetOrCreateAssignmentOwnership(t *testing.T) {
	storyRepo := newFakeStoryRepo()
	svc := NewAssessmentService(nil, testLogger(t), storyRepo, newFakeAssignmentRepo(), &fakeFeedbackRepo{}, &fakeProvider{})

	owner := uuid.New()
	story := seedFakeStory(storyRepo, owner)

	if _, _, err := svc.GetOrCreateAssignment(context.Background(), uuid.New(), story.ID); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("stranger: expected ErrUnauthorized, got %v", err)
	}
	if _, _, err := svc.GetOrCreateAssignment(context.Background(), owner, uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing story: expected ErrNotFound, got %v", err)
	}
}

func TestGradeMergesAnswersPositionally(t *testing.T) {
	storyRepo := newFakeStoryRepo()
	assignmentRepo := newFakeAssignmentRepo()
	feedbackRepo := &fakeFeedbackRepo{}

	var capturedInput ai.GradingInput
	provider := &fakeProvider{
		questionsFn: func(ctx context.Context, storyTitle, wholeStory string) (*ai.QuestionSet, error) {
			return questionsFixture(), nil
		},
		feedbackFn: func(ctx context.Context, input ai.GradingInput) (*ai.ResultSet, error) {
			capturedInput = input
			set := &ai.ResultSet{}
			for _, q := range input.Questions {
				set.Results = append(set.Results, ai.ResultItem{
					Question:   q.Question,
					Answer:     q.Answer,
					UserAnswer: q.UserAnswer,
					Rating:     4,
					Comment:    "Nice try.",
				})
			}
			return set, nil
		},
	}
	svc := NewAssessmentService(nil, testLogger(t), storyRepo, assignmentRepo, feedbackRepo, provider)

	userID := uuid.New()
	story := seedFakeStory(storyRepo, userID)
	if _, _, err := svc.GetOrCreateAssignment(context.Background(), userID, story.ID); err != nil {
		t.Fatalf("GetOrCreateAssignment: %v", err)
	}

	// Two answers for three questions: the trailing question grades empty.
	feedback, err := svc.Grade(context.Background(), userID, story.ID, []string{"A fox", "Sharing"})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}

	if len(capturedInput.Questions) != 3 {
		t.Fatalf("expected 3 merged questions, got %d", len(capturedInput.Questions))
	}
	if capturedInput.Questions[0].UserAnswer != "A fox" || capturedInput.Questions[1].UserAnswer != "Sharing" {
		t.Fatalf("answers not zipped positionally: %+v", capturedInput.Questions)
	}
	if capturedInput.Questions[2].UserAnswer != "" {
		t.Fatalf("missing trailing answer should stay empty, got %q", capturedInput.Questions[2].UserAnswer)
	}
	if capturedInput.WholeStory != story.WholeText() {
		t.Fatalf("grading input missing story text")
	}

	if len(feedback.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(feedback.Results))
	}
	if len(feedbackRepo.feedbacks) != 1 {
		t.Fatalf("expected 1 persisted feedback, got %d", len(feedbackRepo.feedbacks))
	}

	// Regrading appends a second record; nothing is overwritten.
	if _, err := svc.Grade(context.Background(), userID, story.ID, []string{"The fox", "To share", "The forest"}); err != nil {
		t.Fatalf("Grade (second): %v", err)
	}
	if len(feedbackRepo.feedbacks) != 2 {
		t.Fatalf("expected append-only feedback, got %d records", len(feedbackRepo.feedbacks))
	}

	latest, err := svc.GetFeedback(context.Background(), userID, story.ID)
	if err != nil {
		t.Fatalf("GetFeedback: %v", err)
	}
	if latest.ID != feedbackRepo.feedbacks[1].ID {
		t.Fatalf("GetFeedback should return the latest record")
	}
}

func TestGradeRejectsMismatchedResults(t *testing.T) {
	cases := []struct {
		name    string
		results func(input ai.GradingInput) []ai.ResultItem
	}{
		{
			name: "short result set",
			results: func(input ai.GradingInput) []ai.ResultItem {
				q := input.Questions[0]
				return []ai.ResultItem{{Question: q.Question, Answer: q.Answer, Rating: 3, Comment: "ok"}}
			},
		},
		{
			name: "reordered questions",
			results: func(input ai.GradingInput) []ai.ResultItem {
				var out []ai.ResultItem
				for i := len(input.Questions) - 1; i >= 0; i-- {
					q := input.Questions[i]
					out = append(out, ai.ResultItem{Question: q.Question, Answer: q.Answer, Rating: 3, Comment: "ok"})
				}
				return out
			},
		},
		{
			name: "renamed question",
			results: func(input ai.GradingInput) []ai.ResultItem {
				var out []ai.ResultItem
				for _, q := range input.Questions {
					out = append(out, ai.ResultItem{Question: "Did you like it?", Answer: q.Answer, Rating: 3, Comment: "ok"})
				}
				return out
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			storyRepo := newFakeStoryRepo()
			assignmentRepo := newFakeAssignmentRepo()
			feedbackRepo := &fakeFeedbackRepo{}
			provider := &fakeProvider{
				questionsFn: func(ctx context.Context, storyTitle, wholeStory string) (*ai.QuestionSet, error) {
					return questionsFixture(), nil
				},
				feedbackFn: func(ctx context.Context, input ai.GradingInput) (*ai.ResultSet, error) {
					return &ai.ResultSet{Results: tc.results(input)}, nil
				},
			}
			svc := NewAssessmentService(nil, testLogger(t), storyRepo, assignmentRepo, feedbackRepo, provider)

			userID := uuid.New()
			story := seedFakeStory(storyRepo, userID)
			if _, _, err := svc.GetOrCreateAssignment(context.Background(), userID, story.ID); err != nil {
				t.Fatalf("GetOrCreateAssignment: %v", err)
			}

			_, err := svc.Grade(context.Background(), userID, story.ID, []string{"A fox", "Sharing", "The forest"})
			genErr, ok := apperr.AsGeneration(err)
			if !ok {
				t.Fatalf("expected a generation failure, got %v", err)
			}
			if genErr.Kind != apperr.KindShape {
				t.Fatalf("expected shape kind, got %q", genErr.Kind)
			}
			if len(feedbackRepo.feedbacks) != 0 {
				t.Fatalf("mismatched results must persist nothing, got %d records", len(feedbackRepo.feedbacks))
			}
		})
	}
}

func TestGradeWithoutAssignment(t *testing.T) {
	storyRepo := newFakeStoryRepo()
	svc := NewAssessmentService(nil, testLogger(t), storyRepo, newFakeAssignmentRepo(), &fakeFeedbackRepo{}, &fakeProvider{})

	userID := uuid.New()
	story := seedFakeStory(storyRepo, userID)

	if _, err := svc.Grade(context.Background(), userID, story.ID, []string{"x"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound without assignment, got %v", err)
	}
}
