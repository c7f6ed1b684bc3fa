// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiService implements adapter.CompletionService using Google Gemini.
type GeminiService struct {
	apiKey      string
	modelName   string
	temperature float32
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string, temperature float64) *GeminiService {
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	return &GeminiService{
		apiKey:      apiKey,
		modelName:   modelName,
		temperature: float32(temperature),
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Complete sends the prompt to Gemini and returns the first text part of the reply.
func (s *GeminiService) Complete(ctx context.Context, prompt string) (string, error) {
	if !s.IsAvailable() {
		return "", errors.New("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(s.temperature)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return responseText(resp)
}

// responseText extracts the text content of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if sb.Len() == 0 {
		return "", errors.New("no text content in response")
	}
	return sb.String(), nil
}
