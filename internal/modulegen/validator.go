package modulegen

import (
	"fmt"

	"github.com/abhisek/edugenius/internal/content"
)

// Validator checks a generated module for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, used in error
	// messages and logs.
	Name() string

	// Validate checks the module and returns nil if it passes. The form
	// input is passed for context (e.g. the level's option labels).
	Validate(c *content.GeneratedContent, in content.FormInput) *ValidationError
}

// ValidationError describes why a generated module failed validation.
type ValidationError struct {
	Validator  string // Name of the validator that failed
	QuestionID int    // Offending question, 0 when not question-specific
	Message    string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	if e.QuestionID != 0 {
		return fmt.Sprintf("validator %q: question %d: %s", e.Validator, e.QuestionID, e.Message)
	}
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
