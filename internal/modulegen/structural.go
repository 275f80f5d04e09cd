package modulegen

import (
	"fmt"
	"strings"

	"github.com/abhisek/edugenius/internal/content"
)

// StructuralValidator checks that the module has questions and that every
// question carries a stimulus, a stem, option texts and an explanation.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c *content.GeneratedContent, _ content.FormInput) *ValidationError {
	if c == nil || len(c.Questions) == 0 {
		return &ValidationError{Validator: v.Name(), Message: "no questions"}
	}
	for _, q := range c.Questions {
		fail := func(msg string) *ValidationError {
			return &ValidationError{Validator: v.Name(), QuestionID: q.ID, Message: msg}
		}
		switch {
		case strings.TrimSpace(q.Stimulus) == "":
			return fail("stimulus is empty")
		case strings.TrimSpace(q.QuestionText) == "":
			return fail("questionText is empty")
		case strings.TrimSpace(q.Explanation) == "":
			return fail("explanation is empty")
		}
		for _, o := range q.Options {
			if strings.TrimSpace(o.Text) == "" {
				return fail(fmt.Sprintf("option %s has no text", o.Key))
			}
		}
	}
	return nil
}

// OptionSetValidator checks that each question offers each of the level's
// option labels exactly once and that the correct answer is one of them.
type OptionSetValidator struct{}

func (v *OptionSetValidator) Name() string { return "option-set" }

func (v *OptionSetValidator) Validate(c *content.GeneratedContent, in content.FormInput) *ValidationError {
	labels := in.Level.OptionLabels()
	for _, q := range c.Questions {
		if len(q.Options) != len(labels) {
			return &ValidationError{
				Validator:  v.Name(),
				QuestionID: q.ID,
				Message:    fmt.Sprintf("expected %d options, got %d", len(labels), len(q.Options)),
			}
		}
		want := make(map[string]bool, len(labels))
		for _, l := range labels {
			want[l] = true
		}
		for _, o := range q.Options {
			if !want[o.Key] {
				return &ValidationError{
					Validator:  v.Name(),
					QuestionID: q.ID,
					Message:    fmt.Sprintf("unexpected or repeated option key %q", o.Key),
				}
			}
			delete(want, o.Key)
		}
		if !q.HasKey(q.CorrectAnswer) {
			return &ValidationError{
				Validator:  v.Name(),
				QuestionID: q.ID,
				Message:    fmt.Sprintf("correctAnswer %q is not an option key", q.CorrectAnswer),
			}
		}
	}
	return nil
}

// UniqueIDValidator checks that question ids do not repeat. Quiz state is
// keyed by id.
type UniqueIDValidator struct{}

func (v *UniqueIDValidator) Name() string { return "unique-id" }

func (v *UniqueIDValidator) Validate(c *content.GeneratedContent, _ content.FormInput) *ValidationError {
	seen := make(map[int]bool, len(c.Questions))
	for _, q := range c.Questions {
		if seen[q.ID] {
			return &ValidationError{Validator: v.Name(), QuestionID: q.ID, Message: "duplicate question id"}
		}
		seen[q.ID] = true
	}
	return nil
}
