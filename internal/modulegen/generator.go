package modulegen

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/edugenius/internal/content"
	"github.com/abhisek/edugenius/internal/llm"
)

// Generator produces a study module and quiz from form input.
type Generator interface {
	Generate(ctx context.Context, in content.FormInput) (*content.GeneratedContent, error)
}

// LLMGenerator implements Generator using the LLM provider. It issues
// exactly one request per call.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// moduleOutput is the raw LLM response before validation.
type moduleOutput struct {
	Summary   *string          `json:"summary"`
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	ID            int              `json:"id"`
	Stimulus      string           `json:"stimulus"`
	QuestionText  string           `json:"questionText"`
	Options       []content.Option `json:"options"`
	CorrectAnswer string           `json:"correctAnswer"`
	Explanation   string           `json:"explanation"`
}

// Generate builds the request, calls the model once and returns the
// validated module. Any failure yields an error and no partial result.
func (g *LLMGenerator) Generate(ctx context.Context, in content.FormInput) (*content.GeneratedContent, error) {
	ctx = llm.WithPurpose(ctx, "module-gen")

	req, err := BuildRequest(in, g.config)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	if len(strings.TrimSpace(string(resp.Content))) == 0 {
		return nil, &llm.ErrEmptyResponse{Model: resp.Model}
	}

	var raw moduleOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("failed to parse LLM response: %w", err),
		}
	}

	out := &content.GeneratedContent{
		Questions: make([]content.Question, 0, len(raw.Questions)),
	}
	if in.IncludeSummary && raw.Summary != nil {
		out.Summary = strings.TrimSpace(*raw.Summary)
	}
	for _, q := range raw.Questions {
		out.Questions = append(out.Questions, content.Question{
			ID:            q.ID,
			Stimulus:      strings.TrimSpace(q.Stimulus),
			QuestionText:  strings.TrimSpace(q.QuestionText),
			Options:       normalizeOptions(q.Options),
			CorrectAnswer: strings.ToUpper(strings.TrimSpace(q.CorrectAnswer)),
			Explanation:   strings.TrimSpace(q.Explanation),
		})
	}

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(out, in); verr != nil {
			return nil, verr
		}
	}

	return out, nil
}

// normalizeOptions trims option fields and orders them by key.
func normalizeOptions(opts []content.Option) []content.Option {
	out := make([]content.Option, len(opts))
	for i, o := range opts {
		out[i] = content.Option{
			Key:  strings.ToUpper(strings.TrimSpace(o.Key)),
			Text: strings.TrimSpace(o.Text),
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
