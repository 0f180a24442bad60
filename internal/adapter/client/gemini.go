package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"snowday/internal/domain/entity"

	"google.golang.org/genai"
)

// NewGenAIClient uses the Gemini API when an API key is set and Vertex AI otherwise.
func NewGenAIClient(ctx context.Context, apiKey, projectID, location string) (*genai.Client, error) {
	if apiKey != "" {
		return genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
}

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClientFromClient(c *genai.Client, model string) *GeminiClient {
	return &GeminiClient{
		client: c,
		model:  model,
	}
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (*entity.AIResponse, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, classifyError(err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return nil, entity.ErrEmptyAIResponse
	}

	resp := &entity.AIResponse{
		Content: text,
		Model:   g.model,
	}
	if result.UsageMetadata != nil {
		resp.TokenCount = int(result.UsageMetadata.TotalTokenCount)
	}
	return resp, nil
}

// classifyError marks rate limiting and server-side API failures as
// entity.ErrTransientAI so callers can retry them. Anything else is returned
// unchanged.
func classifyError(err error) error {
	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		code = apiErrPtr.Code
	}

	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %w", entity.ErrTransientAI, err)
	}
	return err
}
