package billimport

import (
	"context"
	"errors"
	"strings"
)

// Classification codes for completion service failures.
const (
	ErrCodeAIServiceUnavailable = "AI_SERVICE_UNAVAILABLE"
	ErrCodeAIRateLimited        = "AI_RATE_LIMITED"
	ErrCodeAIAuthError          = "AI_AUTH_ERROR"
	ErrCodeAIEndpointNotFound   = "AI_ENDPOINT_NOT_FOUND"
	ErrCodeAITimeout            = "AI_TIMEOUT"
	ErrCodeAIParseError         = "AI_PARSE_ERROR"
	ErrCodeAIUnknownError       = "AI_UNKNOWN_ERROR"
)

var failureMessages = map[string]string{
	ErrCodeAIServiceUnavailable: "Cannot reach the completion service. Try again later.",
	ErrCodeAIRateLimited:        "The completion service is rate limiting requests. Wait a moment and retry.",
	ErrCodeAIAuthError:          "The completion service rejected the API key. Check AI_API_KEY.",
	ErrCodeAIEndpointNotFound:   "The completion endpoint does not exist. Check AI_BASE_URL and AI_MODEL.",
	ErrCodeAITimeout:            "The completion service did not answer in time. Try again with fewer rows.",
	ErrCodeAIParseError:         "The completion reply could not be parsed.",
	ErrCodeAIUnknownError:       "The completion request failed unexpectedly.",
}

// EnrichmentFailure is a classified completion service failure.
type EnrichmentFailure struct {
	Code      string
	Message   string
	Retryable bool
}

func newEnrichmentFailure(code string, retryable bool) *EnrichmentFailure {
	return &EnrichmentFailure{
		Code:      code,
		Message:   failureMessages[code],
		Retryable: retryable,
	}
}

// classifyError maps a provider error to a failure code using the error text,
// since the providers do not share a typed error.
func classifyError(err error) *EnrichmentFailure {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return newEnrichmentFailure(ErrCodeAITimeout, true)
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case containsAny(errStr, "rate limit", "quota", "429", "resource exhausted", "too many requests"):
		return newEnrichmentFailure(ErrCodeAIRateLimited, true)
	case containsAny(errStr, "401", "403", "invalid api key", "unauthorized", "authentication", "permission denied"):
		return newEnrichmentFailure(ErrCodeAIAuthError, false)
	case containsAny(errStr, "404", "not found"):
		return newEnrichmentFailure(ErrCodeAIEndpointNotFound, false)
	case containsAny(errStr, "connection", "network", "dial", "timeout", "unavailable", "503", "502", "econnrefused", "no such host"):
		return newEnrichmentFailure(ErrCodeAIServiceUnavailable, true)
	case containsAny(errStr, "parse", "json", "unmarshal", "decode"):
		return newEnrichmentFailure(ErrCodeAIParseError, true)
	default:
		return newEnrichmentFailure(ErrCodeAIUnknownError, true)
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
