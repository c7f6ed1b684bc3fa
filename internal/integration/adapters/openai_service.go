package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBodyBytes bounds how much of a failed response is copied into the error.
const maxErrorBodyBytes = 512

// OpenAIService implements adapter.CompletionService against any
// OpenAI-compatible chat completions endpoint.
type OpenAIService struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewOpenAIService creates a new OpenAI-compatible completion client.
func NewOpenAIService(baseURL, apiKey, model string, temperature float64, httpClient *http.Client) *OpenAIService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OpenAIService{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		httpClient:  httpClient,
	}
}

// IsAvailable checks if an API key is configured.
func (s *OpenAIService) IsAvailable() bool {
	return s.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete posts the prompt as a single user message and returns the first choice.
// Non-2xx responses become errors carrying the status code and a body excerpt.
func (s *OpenAIService) Complete(ctx context.Context, prompt string) (string, error) {
	if !s.IsAvailable() {
		return "", errors.New("openai service is not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model:       s.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: s.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return "", fmt.Errorf("chat completion failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("chat response has no choices")
	}
	return result.Choices[0].Message.Content, nil
}
