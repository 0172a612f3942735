// Package openaigen implements the provider gateway on the OpenAI API.
package openaigen

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/yungbote/storynest-backend/internal/ai"
	"github.com/yungbote/storynest-backend/internal/ai/contract"
	"github.com/yungbote/storynest-backend/internal/pkg/apperr"
	"github.com/yungbote/storynest-backend/internal/pkg/logger"
)

const (
	storyModel     = openai.GPT3Dot5Turbo
	questionsModel = "gpt-4o-mini"
	feedbackModel  = "gpt-4o-mini"
	imageModel     = openai.CreateImageModelDallE3
)

type Client struct {
	api *openai.Client
	log *logger.Logger
}

func New(apiKey string, baseLog *logger.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing OpenAI API key")
	}
	return &Client{
		api: openai.NewClient(apiKey),
		log: baseLog.With("client", "OpenAIProvider"),
	}, nil
}

var _ ai.Provider = (*Client)(nil)

func (c *Client) chat(ctx context.Context, capability, model, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", apperr.NewGenerationError(capability, apperr.KindTransport, "", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperr.NewGenerationError(capability, apperr.KindTransport, "",
			fmt.Errorf("empty choices in completion response"))
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) GenerateStory(ctx context.Context, prompt ai.StoryPrompt) (*ai.StoryDraft, error) {
	raw, err := c.chat(ctx, ai.CapabilityStory, storyModel, storySystemPrompt, storyUserPrompt(prompt))
	if err != nil {
		return nil, err
	}
	return contract.DecodeStory(raw)
}

func (c *Client) GenerateQuestions(ctx context.Context, storyTitle, wholeStory string) (*ai.QuestionSet, error) {
	raw, err := c.chat(ctx, ai.CapabilityQuestions, questionsModel,
		questionsSystemPrompt, questionsUserPrompt(storyTitle, wholeStory))
	if err != nil {
		return nil, err
	}
	return contract.DecodeQuestions(raw)
}

func (c *Client) GenerateFeedback(ctx context.Context, input ai.GradingInput) (*ai.ResultSet, error) {
	raw, err := c.chat(ctx, ai.CapabilityFeedback, feedbackModel,
		feedbackSystemPrompt, feedbackUserPrompt(input))
	if err != nil {
		return nil, err
	}
	return contract.DecodeFeedback(raw)
}

// GenerateImage runs two upstream calls: a completion that condenses the
// page text into a short visual prompt, then the image generation itself.
// A response with no image URL is a valid "no illustration" outcome.
func (c *Client) GenerateImage(ctx context.Context, pageText string) (*ai.Illustration, error) {
	visualPrompt, err := c.chat(ctx, ai.CapabilityImage, questionsModel,
		imageSystemPrompt, imageUserPrompt(pageText))
	if err != nil {
		return nil, err
	}
	visualPrompt = strings.ReplaceAll(visualPrompt, "\n", " ")

	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Prompt:         visualPrompt,
		Model:          imageModel,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatURL,
		Style:          openai.CreateImageStyleVivid,
		Quality:        openai.CreateImageQualityStandard,
		Size:           openai.CreateImageSize1024x1024,
	})
	if err != nil {
		return nil, apperr.NewGenerationError(ai.CapabilityImage, apperr.KindTransport, "", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		c.log.Warn("image generation returned no URL")
		return nil, nil
	}
	return &ai.Illustration{MIMEType: "image/png", URL: resp.Data[0].URL}, nil
}
