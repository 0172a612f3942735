// Package geminigen implements the provider gateway on the Gemini API.
//
// Gemini has no separate system role in this flow, so the system prompt
// is folded into the user content, and every text prompt carries an
// explicit valid-JSON-only instruction since Gemini tends to wrap output
// in markdown fences.
package geminigen

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/yungbote/storynest-backend/internal/ai"
	"github.com/yungbote/storynest-backend/internal/ai/contract"
	"github.com/yungbote/storynest-backend/internal/pkg/apperr"
	"github.com/yungbote/storynest-backend/internal/pkg/logger"
)

const (
	textModel  = "gemini-2.5-flash"
	imageModel = "gemini-2.5-flash-image"

	jsonOnlyInstruction = "IMPORTANT: Return ONLY valid JSON, no markdown code blocks, no additional text."
	imageAspectRatio    = "16:9"
)

type Client struct {
	api *genai.Client
	log *logger.Logger
}

func New(ctx context.Context, apiKey string, baseLog *logger.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing Gemini API key")
	}
	api, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{
		api: api,
		log: baseLog.With("client", "GeminiProvider"),
	}, nil
}

var _ ai.Provider = (*Client)(nil)

func (c *Client) generateText(ctx context.Context, capability, systemPrompt, userPrompt string) (string, error) {
	fullPrompt := systemPrompt + "\n\n" + userPrompt + "\n" + jsonOnlyInstruction

	resp, err := c.api.Models.GenerateContent(ctx, textModel, genai.Text(fullPrompt), nil)
	if err != nil {
		return "", apperr.NewGenerationError(capability, apperr.KindTransport, "", err)
	}
	text := resp.Text()
	if text == "" {
		return "", apperr.NewGenerationError(capability, apperr.KindTransport, "",
			fmt.Errorf("empty text in generation response"))
	}
	return text, nil
}

func (c *Client) GenerateStory(ctx context.Context, prompt ai.StoryPrompt) (*ai.StoryDraft, error) {
	raw, err := c.generateText(ctx, ai.CapabilityStory, storySystemPrompt, storyUserPrompt(prompt))
	if err != nil {
		return nil, err
	}
	return contract.DecodeStory(raw)
}

func (c *Client) GenerateQuestions(ctx context.Context, storyTitle, wholeStory string) (*ai.QuestionSet, error) {
	raw, err := c.generateText(ctx, ai.CapabilityQuestions,
		questionsSystemPrompt, questionsUserPrompt(storyTitle, wholeStory))
	if err != nil {
		return nil, err
	}
	return contract.DecodeQuestions(raw)
}

func (c *Client) GenerateFeedback(ctx context.Context, input ai.GradingInput) (*ai.ResultSet, error) {
	raw, err := c.generateText(ctx, ai.CapabilityFeedback,
		feedbackSystemPrompt, feedbackUserPrompt(input))
	if err != nil {
		return nil, err
	}
	return contract.DecodeFeedback(raw)
}

// GenerateImage asks the image model to illustrate the passage directly.
// A response with no inline image part is a valid "no illustration"
// outcome.
func (c *Client) GenerateImage(ctx context.Context, pageText string) (*ai.Illustration, error) {
	prompt := fmt.Sprintf("Create a vivid, child-friendly illustration for this story passage. Make it colorful, imaginative, and age-appropriate:\n\n%s", pageText)

	resp, err := c.api.Models.GenerateContent(ctx, imageModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: imageAspectRatio},
	})
	if err != nil {
		return nil, apperr.NewGenerationError(ai.CapabilityImage, apperr.KindTransport, "", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mimeType := part.InlineData.MIMEType
				if mimeType == "" {
					mimeType = "image/png"
				}
				return &ai.Illustration{MIMEType: mimeType, Data: part.InlineData.Data}, nil
			}
		}
	}
	c.log.Warn("image generation returned no inline image")
	return nil, nil
}
