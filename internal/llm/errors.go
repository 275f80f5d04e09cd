package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrMissingCredential indicates the selected provider has no API key
// configured. It is returned before any request is issued.
type ErrMissingCredential struct {
	Provider string
	EnvVar   string
}

func (e *ErrMissingCredential) Error() string {
	if e.EnvVar != "" {
		return fmt.Sprintf("%s is required for the %s provider", e.EnvVar, e.Provider)
	}
	return fmt.Sprintf("no API key configured for the %s provider", e.Provider)
}

// ErrEmptyResponse indicates the provider answered without any text.
type ErrEmptyResponse struct {
	Model string
}

func (e *ErrEmptyResponse) Error() string {
	return fmt.Sprintf("empty response from %s", e.Model)
}

// ServiceMessage returns the message a provider attached to a rate-limit
// or availability failure, or "" when err is neither.
func ServiceMessage(err error) string {
	var inner error
	var rl *ErrRateLimit
	var unavail *ErrProviderUnavailable
	switch {
	case errors.As(err, &rl):
		inner = rl.Err
	case errors.As(err, &unavail):
		inner = unavail.Err
	default:
		return ""
	}
	if inner == nil {
		return ""
	}

	var gErr genai.APIError
	if errors.As(inner, &gErr) && gErr.Message != "" {
		return gErr.Message
	}
	var oErr *openai.APIError
	if errors.As(inner, &oErr) && oErr.Message != "" {
		return oErr.Message
	}
	return inner.Error()
}
