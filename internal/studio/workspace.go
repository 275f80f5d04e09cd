// Package studio owns the form, loading, error and result state of one
// user's workspace and runs the generation pipeline for it.
package studio

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/edugenius/internal/content"
	"github.com/abhisek/edugenius/internal/intake"
	"github.com/abhisek/edugenius/internal/logger"
	"github.com/abhisek/edugenius/internal/modulegen"
	"github.com/abhisek/edugenius/internal/quiz"
)

// NoticeMissingFields is shown when subject or topic is blank.
const NoticeMissingFields = "Please fill in Subject and Topic."

var (
	// ErrInvalidInput is returned by Submit when subject or topic is blank.
	ErrInvalidInput = errors.New("subject and topic are required")

	// ErrBusy is returned by Submit while another generation is running.
	ErrBusy = errors.New("a generation is already in progress")
)

// Result is a completed generation together with its quiz state.
type Result struct {
	Meta    content.Meta
	Content *content.GeneratedContent
	Quiz    quiz.Quiz
}

// Snapshot is a consistent copy of a workspace's state for rendering.
type Snapshot struct {
	Form    content.FormInput
	Notice  string
	Loading bool
	Error   string
	Result  *Result
}

// Fields are the text and toggle inputs of the form.
type Fields struct {
	Level          content.EducationLevel
	Subject        string
	Topic          string
	FreeText       string
	IncludeSummary bool
}

// Workspace is the state container of one form. All methods are safe for
// concurrent use. A Result, once published, is never mutated; quiz events
// publish a new one.
type Workspace struct {
	gen modulegen.Generator
	log *logger.Logger

	mu      sync.Mutex
	form    content.FormInput
	notice  string
	loading bool
	errMsg  string
	result  *Result
	touched time.Time
}

// New returns a workspace with the default form values.
func New(gen modulegen.Generator, log *logger.Logger) *Workspace {
	if log == nil {
		log = logger.Nop()
	}
	return &Workspace{
		gen:     gen,
		log:     log,
		form:    content.NewFormInput(),
		touched: time.Now(),
	}
}

// Snapshot returns a copy of the current state.
func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	form := w.form
	form.Attachments = append([]content.Attachment(nil), w.form.Attachments...)
	return Snapshot{
		Form:    form,
		Notice:  w.notice,
		Loading: w.loading,
		Error:   w.errMsg,
		Result:  w.result,
	}
}

// SetFields replaces the form's text and toggle inputs. Attachments are
// kept. An invalid level falls back to the default.
func (w *Workspace) SetFields(f Fields) {
	if !f.Level.Valid() {
		f.Level = content.DefaultLevel
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.form.Level = f.Level
	w.form.Subject = f.Subject
	w.form.Topic = f.Topic
	w.form.FreeText = f.FreeText
	w.form.IncludeSummary = f.IncludeSummary
}

// Offer appends the accepted attachments of an intake result and shows
// its rejection notice, if any.
func (w *Workspace) Offer(res intake.Result) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.form.Attachments = append(w.form.Attachments, res.Accepted...)
	w.notice = res.Notice()
	for _, r := range res.Rejected {
		w.log.Info("attachment rejected", "file", r.Name, "reason", r.Notice)
	}
}

// RemoveAttachment drops the attachment at index i. It reports whether
// the index existed.
func (w *Workspace) RemoveAttachment(i int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if i < 0 || i >= len(w.form.Attachments) {
		return false
	}
	atts := make([]content.Attachment, 0, len(w.form.Attachments)-1)
	atts = append(atts, w.form.Attachments[:i]...)
	atts = append(atts, w.form.Attachments[i+1:]...)
	w.form.Attachments = atts
	return true
}

// DismissNotice clears the current notice.
func (w *Workspace) DismissNotice() {
	w.mu.Lock()
	w.notice = ""
	w.mu.Unlock()
}

// Submit validates the form and runs one generation. The previous result
// and error are cleared before the call; afterwards exactly one of them is
// set. Loading is always cleared on return. A notice from intake in the
// same request is kept; callers clear stale notices with DismissNotice.
func (w *Workspace) Submit(ctx context.Context) (*Result, error) {
	w.mu.Lock()
	form := w.form
	form.Attachments = append([]content.Attachment(nil), w.form.Attachments...)

	if strings.TrimSpace(form.Subject) == "" || strings.TrimSpace(form.Topic) == "" {
		w.notice = NoticeMissingFields
		w.mu.Unlock()
		return nil, ErrInvalidInput
	}
	if w.loading {
		w.mu.Unlock()
		return nil, ErrBusy
	}
	w.loading = true
	w.errMsg = ""
	w.result = nil
	w.mu.Unlock()

	meta := form.Meta()
	log := w.log.With("subject", meta.Subject, "topic", meta.Topic, "level", string(meta.Level))
	log.Info("generation started", "attachments", len(form.Attachments), "summary", form.IncludeSummary)

	start := time.Now()
	generated, err := w.gen.Generate(ctx, form)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.loading = false

	if err != nil {
		w.errMsg = modulegen.UserMessage(err)
		log.Warn("generation failed",
			"kind", modulegen.Classify(err).String(),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err.Error(),
		)
		return nil, err
	}

	w.result = &Result{Meta: meta, Content: generated, Quiz: quiz.New(generated)}
	log.Info("generation finished",
		"questions", len(generated.Questions),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return w.result, nil
}

// Dispatch applies a quiz event to the current result. It reports false
// when there is no result.
func (w *Workspace) Dispatch(ev quiz.Event) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.result == nil {
		return false
	}
	next := *w.result
	next.Quiz = next.Quiz.Apply(ev)
	w.result = &next
	return true
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.touched = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince(now time.Time) (time.Duration, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return now.Sub(w.touched), w.loading
}
