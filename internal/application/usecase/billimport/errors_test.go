package billimport

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode string
		expectRetry  bool
	}{
		{
			name:         "context deadline exceeded",
			err:          context.DeadlineExceeded,
			expectedCode: ErrCodeAITimeout,
			expectRetry:  true,
		},
		{
			name:         "wrapped deadline",
			err:          fmt.Errorf("completion request failed: %w", context.DeadlineExceeded),
			expectedCode: ErrCodeAITimeout,
			expectRetry:  true,
		},
		{
			name:         "context canceled",
			err:          context.Canceled,
			expectedCode: ErrCodeAITimeout,
			expectRetry:  true,
		},
		{
			name:         "429 status",
			err:          errors.New("completion service returned status 429"),
			expectedCode: ErrCodeAIRateLimited,
			expectRetry:  true,
		},
		{
			name:         "quota",
			err:          errors.New("googleapi: quota exceeded"),
			expectedCode: ErrCodeAIRateLimited,
			expectRetry:  true,
		},
		{
			name:         "401 status",
			err:          errors.New("completion service returned status 401"),
			expectedCode: ErrCodeAIAuthError,
			expectRetry:  false,
		},
		{
			name:         "invalid api key",
			err:          errors.New("Invalid API Key provided"),
			expectedCode: ErrCodeAIAuthError,
			expectRetry:  false,
		},
		{
			name:         "404 status",
			err:          errors.New("completion service returned status 404"),
			expectedCode: ErrCodeAIEndpointNotFound,
			expectRetry:  false,
		},
		{
			name:         "connection refused",
			err:          errors.New("dial tcp 127.0.0.1:1: connect: connection refused"),
			expectedCode: ErrCodeAIServiceUnavailable,
			expectRetry:  true,
		},
		{
			name:         "503 status",
			err:          errors.New("completion service returned status 503"),
			expectedCode: ErrCodeAIServiceUnavailable,
			expectRetry:  true,
		},
		{
			name:         "decode failure",
			err:          errors.New("failed to decode completion reply"),
			expectedCode: ErrCodeAIParseError,
			expectRetry:  true,
		},
		{
			name:         "unknown",
			err:          errors.New("something odd"),
			expectedCode: ErrCodeAIUnknownError,
			expectRetry:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			if got.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, got.Code)
			}
			if got.Retryable != tt.expectRetry {
				t.Errorf("expected retryable %v, got %v", tt.expectRetry, got.Retryable)
			}
			if got.Message == "" {
				t.Error("expected a message")
			}
		})
	}
}
