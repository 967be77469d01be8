package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/schema"
)

const keyPointsPromptTemplate = `Extract up to %d concise bullet points (in Indonesian) from the following restaurant/food review. Focus on food quality, portion, price, service, ambience, and other concrete observations.

Review:
%s

Respond only with bullet points starting with '- '.`

// GeminiExtractor 通过Gemini提取评论关键点
type GeminiExtractor struct {
	llm llms.Model
}

func NewGeminiExtractor(apiKey, model string) (*GeminiExtractor, error) {
	llm, err := googleai.New(
		context.Background(),
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiExtractor{
		llm: llm,
	}, nil
}

func (g *GeminiExtractor) ExtractKeyPoints(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(keyPointsPromptTemplate, maxKeyPoints, text)
	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	response, err := g.llm.GenerateContent(ctx, messages, llms.WithTemperature(0.3))
	if err != nil {
		return "", fmt.Errorf("key point extraction failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("key point extraction returned no content")
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
