// Package form is the terminal form that collects the generation inputs.
package form

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edugenius/internal/content"
	"github.com/abhisek/edugenius/internal/intake"
	"github.com/abhisek/edugenius/internal/router"
	"github.com/abhisek/edugenius/internal/screen"
	"github.com/abhisek/edugenius/internal/screens/result"
	"github.com/abhisek/edugenius/internal/studio"
	"github.com/abhisek/edugenius/internal/ui/components"
	"github.com/abhisek/edugenius/internal/ui/layout"
)

type focus int

const (
	focusLevel focus = iota
	focusSubject
	focusTopic
	focusMaterial
	focusAttachPath
	focusAttachments
	focusSummary
	focusGenerate
	focusCount
)

// Options configures a FormScreen.
type Options struct {
	Workspace *studio.Workspace
	Intake    *intake.Intake

	// OutDir is where the result screen writes exports.
	OutDir string

	// Context bounds generation calls. Defaults to context.Background().
	Context context.Context
}

// FormScreen implements screen.Screen for the input form.
type FormScreen struct {
	ws     *studio.Workspace
	intake *intake.Intake
	outDir string
	ctx    context.Context

	level          content.EducationLevel
	subject        components.Field
	topic          components.Field
	material       textarea.Model
	attachPath     components.Field
	attachCursor   int
	includeSummary bool

	focus   focus
	spinner spinner.Model
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)
var _ screen.Busy = (*FormScreen)(nil)

// New creates a FormScreen seeded from the workspace's current form.
func New(opts Options) *FormScreen {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Intake == nil {
		opts.Intake = intake.New(intake.DefaultMaxBytes)
	}

	snap := opts.Workspace.Snapshot()

	ta := textarea.New()
	ta.Placeholder = "Paste source material here (optional)"
	ta.ShowLineNumbers = false
	ta.SetHeight(4)
	ta.SetValue(snap.Form.FreeText)

	s := &FormScreen{
		ws:             opts.Workspace,
		intake:         opts.Intake,
		outDir:         opts.OutDir,
		ctx:            opts.Context,
		level:          snap.Form.Level,
		subject:        components.NewField("Subject", "e.g. IPA", 120),
		topic:          components.NewField("Topic", "e.g. Ekosistem", 200),
		material:       ta,
		attachPath:     components.NewField("Add images", "path/to/image.png, another.jpg", 0),
		includeSummary: snap.Form.IncludeSummary,
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	s.subject.SetValue(snap.Form.Subject)
	s.topic.SetValue(snap.Form.Topic)
	return s
}

func (s *FormScreen) Init() tea.Cmd {
	return s.setFocus(focusSubject)
}

func (s *FormScreen) Title() string {
	return "New Module"
}

// Busy reports a generation in flight.
func (s *FormScreen) Busy() bool { return s.ws.Snapshot().Loading }

func (s *FormScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next"},
		{Key: "Ctrl+S", Description: "Generate"},
	}
	switch s.focus {
	case focusLevel:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Level"})
	case focusAttachPath:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Attach"})
	case focusAttachments:
		hints = append(hints, layout.KeyHint{Key: "x", Description: "Remove"})
	case focusSummary:
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generateDoneMsg:
		return s.handleGenerateDone(msg)

	case attachDoneMsg:
		s.attachPath.SetValue("")
		return s, nil

	case tea.WindowSizeMsg:
		s.resize(msg.Width)
		return s, nil

	case spinner.TickMsg:
		if !s.ws.Snapshot().Loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s.forward(msg)
}

func (s *FormScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return s, s.setFocus(s.step(1))
	case "shift+tab":
		return s, s.setFocus(s.step(-1))
	case "ctrl+s":
		return s, s.submit()
	}

	switch s.focus {
	case focusLevel:
		switch msg.String() {
		case "left", "h":
			s.cycleLevel(-1)
		case "right", "l", "space":
			s.cycleLevel(1)
		case "enter":
			return s, s.setFocus(s.step(1))
		}
		return s, nil

	case focusSubject, focusTopic:
		if msg.String() == "enter" {
			return s, s.setFocus(s.step(1))
		}

	case focusAttachPath:
		if msg.String() == "enter" {
			return s, s.attach()
		}

	case focusAttachments:
		n := len(s.ws.Snapshot().Form.Attachments)
		switch msg.String() {
		case "up", "k":
			if s.attachCursor > 0 {
				s.attachCursor--
			}
		case "down", "j":
			if s.attachCursor < n-1 {
				s.attachCursor++
			}
		case "x", "delete", "backspace":
			s.ws.RemoveAttachment(s.attachCursor)
			if s.attachCursor >= n-1 && s.attachCursor > 0 {
				s.attachCursor--
			}
			if n <= 1 {
				return s, s.setFocus(focusSummary)
			}
		}
		return s, nil

	case focusSummary:
		switch msg.String() {
		case "space", "enter":
			s.includeSummary = !s.includeSummary
			s.sync()
		}
		return s, nil

	case focusGenerate:
		if msg.String() == "enter" {
			return s, s.submit()
		}
		return s, nil
	}

	return s.forward(msg)
}

// forward passes a message to the focused text widget and mirrors its
// value into the workspace.
func (s *FormScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.focus {
	case focusSubject:
		s.subject, cmd = s.subject.Update(msg)
	case focusTopic:
		s.topic, cmd = s.topic.Update(msg)
	case focusMaterial:
		s.material, cmd = s.material.Update(msg)
	case focusAttachPath:
		s.attachPath, cmd = s.attachPath.Update(msg)
	default:
		return s, nil
	}
	s.sync()
	return s, cmd
}

func (s *FormScreen) sync() {
	s.ws.SetFields(studio.Fields{
		Level:          s.level,
		Subject:        s.subject.Value(),
		Topic:          s.topic.Value(),
		FreeText:       s.material.Value(),
		IncludeSummary: s.includeSummary,
	})
}

func (s *FormScreen) resize(width int) {
	w := width - 8
	if w > 96 {
		w = 96
	}
	s.subject.SetWidth(w)
	s.topic.SetWidth(w)
	s.attachPath.SetWidth(w)
	s.material.SetWidth(w)
}

func (s *FormScreen) cycleLevel(delta int) {
	levels := content.AllLevels()
	idx := 0
	for i, l := range levels {
		if l == s.level {
			idx = i
		}
	}
	idx = (idx + delta + len(levels)) % len(levels)
	s.level = levels[idx]
	s.sync()
}

// step returns the focus delta positions away, skipping the attachment
// list when it is empty.
func (s *FormScreen) step(delta int) focus {
	hasAttachments := len(s.ws.Snapshot().Form.Attachments) > 0
	f := s.focus
	for {
		f = (f + focus(delta) + focusCount) % focusCount
		if f != focusAttachments || hasAttachments {
			return f
		}
	}
}

func (s *FormScreen) setFocus(f focus) tea.Cmd {
	s.subject.Blur()
	s.topic.Blur()
	s.material.Blur()
	s.attachPath.Blur()
	s.focus = f

	switch f {
	case focusSubject:
		return s.subject.Focus()
	case focusTopic:
		return s.topic.Focus()
	case focusMaterial:
		return s.material.Focus()
	case focusAttachPath:
		return s.attachPath.Focus()
	case focusAttachments:
		s.attachCursor = 0
	}
	return nil
}

// attach reads the comma-separated paths typed into the attach field.
func (s *FormScreen) attach() tea.Cmd {
	raw := strings.TrimSpace(s.attachPath.Value())
	if raw == "" {
		return nil
	}
	ws, in := s.ws, s.intake
	return func() tea.Msg {
		res, err := in.ReadPaths(strings.Split(raw, ","))
		if err != nil {
			ws.Offer(intake.Result{Rejected: []intake.Rejection{{Name: raw, Notice: err.Error()}}})
			return attachDoneMsg{Err: err}
		}
		ws.Offer(res)
		return attachDoneMsg{}
	}
}

func (s *FormScreen) submit() tea.Cmd {
	s.sync()
	snap := s.ws.Snapshot()
	if snap.Loading {
		return nil
	}
	s.ws.DismissNotice()
	if strings.TrimSpace(snap.Form.Subject) == "" || strings.TrimSpace(snap.Form.Topic) == "" {
		// Records the missing-fields notice; the model is not called.
		_, _ = s.ws.Submit(s.ctx)
		return nil
	}

	ws, ctx := s.ws, s.ctx
	return tea.Batch(
		func() tea.Msg {
			res, err := ws.Submit(ctx)
			return generateDoneMsg{Result: res, Err: err}
		},
		s.spinner.Tick,
	)
}

func (s *FormScreen) handleGenerateDone(msg generateDoneMsg) (screen.Screen, tea.Cmd) {
	// Failures are rendered from the workspace snapshot.
	if msg.Err != nil || msg.Result == nil {
		return s, nil
	}
	next := result.New(result.Options{Workspace: s.ws, Result: msg.Result, OutDir: s.outDir, Context: s.ctx})
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}
