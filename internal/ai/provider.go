// Package ai defines the model-provider gateway: a single Provider
// interface over the interchangeable text/image generation backends.
package ai

import "context"

// Capability names, carried on generation errors so callers can tell
// which upstream call failed.
const (
	CapabilityStory     = "story"
	CapabilityQuestions = "questions"
	CapabilityFeedback  = "feedback"
	CapabilityImage     = "image"
)

// StoryPrompt carries the caller-supplied parameters for a story draft.
type StoryPrompt struct {
	Title       string
	Description string
	MaxPages    int
	ChildAge    int
}

// StoryDraft is the validated output of a story generation call. Pages
// are ordered reading order, first page at index 0.
type StoryDraft struct {
	Title       string
	Description string
	Pages       []string
}

// QuestionItem is one comprehension question with its model-provided
// reference answer. UserAnswer is blank when generated and is filled in
// only when the item is replayed through grading.
type QuestionItem struct {
	Question   string
	Answer     string
	UserAnswer string
}

type QuestionSet struct {
	Questions []QuestionItem
}

// GradingInput is the merged payload for a feedback call: the full story
// text plus the question set with user answers zipped in.
type GradingInput struct {
	WholeStory string
	Questions  []QuestionItem
}

// ResultItem is the graded outcome for one question. Rating is 0 to 5.
type ResultItem struct {
	Question   string
	Rating     int
	Answer     string
	UserAnswer string
	Comment    string
}

type ResultSet struct {
	Results []ResultItem
}

// Illustration is a generated page image, delivered either as inline
// bytes or as a URL the backend hosts for a limited time.
type Illustration struct {
	MIMEType string
	Data     []byte
	URL      string
}

// Provider is the gateway over a concrete model backend. Implementations
// enforce the structured-output contract and return
// *apperr.GenerationError on transport, parse, or shape failures.
// GenerateImage may return (nil, nil): the backend produced no image,
// which callers treat as "skip the illustration", not as an error.
// Providers do not retry; degradation policy belongs to the caller.
type Provider interface {
	GenerateStory(ctx context.Context, prompt StoryPrompt) (*StoryDraft, error)
	GenerateQuestions(ctx context.Context, storyTitle, wholeStory string) (*QuestionSet, error)
	GenerateFeedback(ctx context.Context, input GradingInput) (*ResultSet, error)
	GenerateImage(ctx context.Context, pageText string) (*Illustration, error)
}
