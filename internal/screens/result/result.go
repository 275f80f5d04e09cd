// Package result shows a generated module: the summary, the interactive
// quiz and the export actions.
package result

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edugenius/internal/export"
	"github.com/abhisek/edugenius/internal/modulegen"
	"github.com/abhisek/edugenius/internal/quiz"
	"github.com/abhisek/edugenius/internal/router"
	"github.com/abhisek/edugenius/internal/screen"
	"github.com/abhisek/edugenius/internal/studio"
	"github.com/abhisek/edugenius/internal/ui/components"
	"github.com/abhisek/edugenius/internal/ui/layout"
)

// exportDoneMsg is sent when an export file was written.
type exportDoneMsg struct {
	Path string
	Err  error
}

// regenerateDoneMsg carries a fresh result for the same form.
type regenerateDoneMsg struct {
	Result *studio.Result
	Err    error
}

// Options configures a ResultScreen.
type Options struct {
	Workspace *studio.Workspace
	Result    *studio.Result
	OutDir    string
	Context   context.Context
}

// ResultScreen implements screen.Screen for one generation result.
type ResultScreen struct {
	ws     *studio.Workspace
	res    *studio.Result
	outDir string
	ctx    context.Context

	current     int
	cursor      int
	showSummary bool
	summary     viewport.Model
	status       string
	exporting    bool
	regenerating bool
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)
var _ screen.Busy = (*ResultScreen)(nil)

// New creates a ResultScreen. Quiz events go through the workspace so the
// web and terminal front ends share one state model.
func New(opts Options) *ResultScreen {
	outDir := opts.OutDir
	if outDir == "" {
		outDir = "."
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	s := &ResultScreen{
		ws:      opts.Workspace,
		res:     opts.Result,
		outDir:  outDir,
		ctx:     ctx,
		summary: viewport.New(viewport.WithWidth(80), viewport.WithHeight(12)),
	}
	if s.res != nil && s.res.Content.HasSummary() {
		s.summary.SetContent(s.res.Content.Summary)
	}
	return s
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	if s.res == nil {
		return "Result"
	}
	return s.res.Meta.Subject + " · " + s.res.Meta.Topic
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	if s.showSummary {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "S", Description: "Quiz"},
			{Key: "Esc", Description: "Back"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Question"},
	}
	if q, ok := s.question(); ok && q.Answered {
		hints = append(hints, layout.KeyHint{Key: "E", Description: "Explanation"})
	} else {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Option"},
			layout.KeyHint{Key: "Enter", Description: "Answer"},
		)
	}
	if s.hasSummary() {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Summary"})
	}
	return append(hints,
		layout.KeyHint{Key: "W/P", Description: "Save Word/PDF"},
		layout.KeyHint{Key: "G", Description: "New set"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.summary.SetWidth(msg.Width - 8)
		s.summary.SetHeight(msg.Height - layout.HeaderHeight - layout.FooterHeight - 4)
		return s, nil

	case regenerateDoneMsg:
		s.regenerating = false
		if msg.Err != nil || msg.Result == nil {
			if s.ws.Snapshot().Result == nil {
				// The failed attempt cleared the result; the form shows
				// the error.
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
			s.status = modulegen.UserMessage(msg.Err)
			return s, nil
		}
		next := New(Options{Workspace: s.ws, Result: msg.Result, OutDir: s.outDir, Context: s.ctx})
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case exportDoneMsg:
		s.exporting = false
		switch {
		case msg.Err != nil:
			s.status = "Export failed: " + msg.Err.Error()
		case msg.Path == "":
			s.status = "Nothing to export."
		default:
			s.status = "Saved " + msg.Path
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.showSummary {
		var cmd tea.Cmd
		s.summary, cmd = s.summary.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ResultScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "w":
		return s, s.save(export.FormatWord)
	case "p":
		return s, s.save(export.FormatPDF)
	case "g":
		return s, s.regenerate()
	case "s":
		if s.hasSummary() {
			s.showSummary = !s.showSummary
		}
		return s, nil
	}

	if s.showSummary {
		var cmd tea.Cmd
		s.summary, cmd = s.summary.Update(msg)
		return s, cmd
	}

	// Option letters answer directly.
	if q, ok := s.question(); ok && !q.Answered && msg.Text != "" {
		for i, o := range q.Options {
			if o.Key == strings.ToUpper(msg.Text) {
				s.cursor = i
				s.answer()
				return s, nil
			}
		}
	}

	n := s.res.Quiz.Len()
	switch msg.String() {
	case "left", "h":
		if s.current > 0 {
			s.current--
			s.cursor = 0
		}
	case "right", "l":
		if s.current < n-1 {
			s.current++
			s.cursor = 0
		}
	case "up", "k":
		s.moveCursor(-1)
	case "down", "j":
		s.moveCursor(1)
	case "enter", "space":
		s.answer()
	case "e":
		if q, ok := s.question(); ok && q.Answered {
			s.dispatch(quiz.ToggleExplanation{QuestionID: q.ID})
		}
	}
	return s, nil
}

func (s *ResultScreen) moveCursor(delta int) {
	q, ok := s.question()
	if !ok || q.Answered {
		return
	}
	list := components.OptionList{Options: q.Options, Cursor: s.cursor}
	list.Move(delta)
	s.cursor = list.Cursor
}

func (s *ResultScreen) answer() {
	q, ok := s.question()
	if !ok || q.Answered || s.cursor >= len(q.Options) {
		return
	}
	s.dispatch(quiz.SelectOption{QuestionID: q.ID, Key: q.Options[s.cursor].Key})
}

// live reports whether the workspace still holds this screen's result.
func (s *ResultScreen) live() bool {
	snap := s.ws.Snapshot()
	return s.res != nil && snap.Result != nil && snap.Result.Content == s.res.Content
}

// dispatch applies ev through the workspace and picks up the newly
// published result. The local copy is advanced too when the workspace has
// moved on to another result.
func (s *ResultScreen) dispatch(ev quiz.Event) {
	if s.live() {
		s.ws.Dispatch(ev)
		s.res = s.ws.Snapshot().Result
		return
	}
	next := *s.res
	next.Quiz = next.Quiz.Apply(ev)
	s.res = &next
}

func (s *ResultScreen) question() (quiz.QuestionView, bool) {
	if s.res == nil || s.res.Content == nil {
		return quiz.QuestionView{}, false
	}
	qs := s.res.Content.Questions
	if s.current < 0 || s.current >= len(qs) {
		return quiz.QuestionView{}, false
	}
	return s.res.Quiz.ViewQuestion(s.current+1, qs[s.current]), true
}

func (s *ResultScreen) hasSummary() bool {
	return s.res != nil && s.res.Content.HasSummary()
}

// Busy reports an export or a regeneration in flight.
func (s *ResultScreen) Busy() bool { return s.exporting || s.regenerating }

// regenerate asks for a new question set from the form values that
// produced the workspace's current result.
func (s *ResultScreen) regenerate() tea.Cmd {
	if s.Busy() {
		return nil
	}
	s.regenerating = true
	s.status = "Generating a new set..."
	ws, ctx := s.ws, s.ctx
	return func() tea.Msg {
		res, err := ws.Submit(ctx)
		return regenerateDoneMsg{Result: res, Err: err}
	}
}

func (s *ResultScreen) save(f export.Format) tea.Cmd {
	if s.Busy() {
		return nil
	}
	if !s.live() {
		s.status = "Nothing to export."
		return nil
	}
	res, dir := s.res, s.outDir
	s.exporting = true
	s.status = fmt.Sprintf("Exporting %s...", f.Ext())
	return func() tea.Msg {
		file, err := export.Export(res.Content, &res.Meta, f)
		if err != nil {
			return exportDoneMsg{Err: err}
		}
		if file == nil {
			return exportDoneMsg{}
		}
		path := filepath.Join(dir, file.Name)
		if err := os.WriteFile(path, file.Data, 0o644); err != nil {
			return exportDoneMsg{Err: err}
		}
		return exportDoneMsg{Path: path}
	}
}
