// Package contract enforces the structured-output contract on raw model
// text: normalize the response, extract the first JSON object, decode it
// into the capability's wire shape, and validate that shape.
package contract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yungbote/storynest-backend/internal/ai"
	"github.com/yungbote/storynest-backend/internal/pkg/apperr"
)

// stripCodeFences removes a leading markdown fence (with optional
// language tag) and a trailing fence. Anything else passes through.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		s = s[nl+1:]
	} else {
		return strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// firstJSONObject scans for the first balanced top-level JSON object,
// tracking string literals and escapes so braces inside strings do not
// count. Returns ok=false when no complete object is present.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// extract runs the normalization pipeline and unmarshals into dst.
func extract(capability, raw string, dst any) error {
	cleaned := stripCodeFences(raw)
	obj, ok := firstJSONObject(cleaned)
	if !ok {
		return apperr.NewGenerationError(capability, apperr.KindParse, raw,
			fmt.Errorf("no JSON object in model output"))
	}
	if err := json.Unmarshal([]byte(obj), dst); err != nil {
		return apperr.NewGenerationError(capability, apperr.KindParse, raw, err)
	}
	return nil
}

type storyPageWire struct {
	PageText string `json:"pageText"`
}

type storyWire struct {
	StoryTitle       string          `json:"storyTitle"`
	StoryDescription string          `json:"storyDescription"`
	StoryContent     []storyPageWire `json:"storyContent"`
}

// DecodeStory parses raw model output into a StoryDraft. Pages must be
// present and every pageText non-blank.
func DecodeStory(raw string) (*ai.StoryDraft, error) {
	var wire storyWire
	if err := extract(ai.CapabilityStory, raw, &wire); err != nil {
		return nil, err
	}

	if len(wire.StoryContent) == 0 {
		return nil, apperr.NewGenerationError(ai.CapabilityStory, apperr.KindShape, raw,
			fmt.Errorf("storyContent is empty"))
	}
	draft := &ai.StoryDraft{
		Title:       wire.StoryTitle,
		Description: wire.StoryDescription,
		Pages:       make([]string, 0, len(wire.StoryContent)),
	}
	for i, p := range wire.StoryContent {
		if strings.TrimSpace(p.PageText) == "" {
			return nil, apperr.NewGenerationError(ai.CapabilityStory, apperr.KindShape, raw,
				fmt.Errorf("page %d has empty pageText", i))
		}
		draft.Pages = append(draft.Pages, p.PageText)
	}
	return draft, nil
}

type questionWire struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	UserAnswer string `json:"userAnswer"`
}

type questionsWire struct {
	Questions []questionWire `json:"questions"`
}

// DecodeQuestions parses raw model output into a QuestionSet. Each item
// needs a non-blank question and answer; userAnswer is carried through
// as-is (generation leaves it empty).
func DecodeQuestions(raw string) (*ai.QuestionSet, error) {
	var wire questionsWire
	if err := extract(ai.CapabilityQuestions, raw, &wire); err != nil {
		return nil, err
	}

	if len(wire.Questions) == 0 {
		return nil, apperr.NewGenerationError(ai.CapabilityQuestions, apperr.KindShape, raw,
			fmt.Errorf("questions is empty"))
	}
	set := &ai.QuestionSet{Questions: make([]ai.QuestionItem, 0, len(wire.Questions))}
	for i, q := range wire.Questions {
		if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Answer) == "" {
			return nil, apperr.NewGenerationError(ai.CapabilityQuestions, apperr.KindShape, raw,
				fmt.Errorf("question %d missing question or answer", i))
		}
		set.Questions = append(set.Questions, ai.QuestionItem{
			Question:   q.Question,
			Answer:     q.Answer,
			UserAnswer: q.UserAnswer,
		})
	}
	return set, nil
}

type resultWire struct {
	Question   string `json:"question"`
	Rating     int    `json:"rating"`
	Answer     string `json:"answer"`
	UserAnswer string `json:"userAnswer"`
	Feedback   string `json:"feedback"`
}

type resultsWire struct {
	Results []resultWire `json:"results"`
}

// DecodeFeedback parses raw model output into a ResultSet. Ratings must
// fall in 0 to 5 and every item needs a question and feedback text.
func DecodeFeedback(raw string) (*ai.ResultSet, error) {
	var wire resultsWire
	if err := extract(ai.CapabilityFeedback, raw, &wire); err != nil {
		return nil, err
	}

	if len(wire.Results) == 0 {
		return nil, apperr.NewGenerationError(ai.CapabilityFeedback, apperr.KindShape, raw,
			fmt.Errorf("results is empty"))
	}
	set := &ai.ResultSet{Results: make([]ai.ResultItem, 0, len(wire.Results))}
	for i, r := range wire.Results {
		if strings.TrimSpace(r.Question) == "" || strings.TrimSpace(r.Feedback) == "" {
			return nil, apperr.NewGenerationError(ai.CapabilityFeedback, apperr.KindShape, raw,
				fmt.Errorf("result %d missing question or feedback", i))
		}
		if r.Rating < 0 || r.Rating > 5 {
			return nil, apperr.NewGenerationError(ai.CapabilityFeedback, apperr.KindShape, raw,
				fmt.Errorf("result %d rating %d out of range", i, r.Rating))
		}
		set.Results = append(set.Results, ai.ResultItem{
			Question:   r.Question,
			Rating:     r.Rating,
			Answer:     r.Answer,
			UserAnswer: r.UserAnswer,
			Comment:    r.Feedback,
		})
	}
	return set, nil
}
