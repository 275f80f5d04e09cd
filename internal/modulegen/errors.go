package modulegen

import (
	"errors"
	"strings"

	"github.com/abhisek/edugenius/internal/llm"
)

// User-facing failure messages.
const (
	MsgMissingCredential = "API key is missing. Please check your configuration."
	MsgGenericFailure    = "Failed to generate content. Please try again."
)

// FailureKind classifies a generation error.
type FailureKind int

const (
	FailureUnknown   FailureKind = iota
	FailureConfig                // credential missing, nothing was sent
	FailureTransport             // the call was rejected or never answered
	FailureContract              // the answer was empty or did not match the schema
)

func (k FailureKind) String() string {
	switch k {
	case FailureConfig:
		return "config"
	case FailureTransport:
		return "transport"
	case FailureContract:
		return "contract"
	}
	return "unknown"
}

// Classify maps an error returned by Generate to its FailureKind.
func Classify(err error) FailureKind {
	var (
		missing  *llm.ErrMissingCredential
		rl       *llm.ErrRateLimit
		unavail  *llm.ErrProviderUnavailable
		empty    *llm.ErrEmptyResponse
		invalid  *llm.ErrInvalidResponse
		truncate *llm.ErrMaxTokensExceeded
		verr     *ValidationError
	)
	switch {
	case err == nil:
		return FailureUnknown
	case errors.As(err, &missing):
		return FailureConfig
	case errors.As(err, &rl), errors.As(err, &unavail):
		return FailureTransport
	case errors.As(err, &empty), errors.As(err, &invalid), errors.As(err, &truncate), errors.As(err, &verr):
		return FailureContract
	}
	return FailureUnknown
}

// UserMessage returns the single message shown to the user for a failed
// generation. Service errors are passed through verbatim; everything else
// collapses to a fixed text.
func UserMessage(err error) string {
	switch Classify(err) {
	case FailureConfig:
		return MsgMissingCredential
	case FailureTransport:
		if msg := strings.TrimSpace(llm.ServiceMessage(err)); msg != "" {
			return msg
		}
	}
	return MsgGenericFailure
}
