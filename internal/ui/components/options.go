package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edugenius/internal/quiz"
	"github.com/abhisek/edugenius/internal/ui/theme"
)

// OptionList renders the answer options of one question. The cursor is
// only drawn while the question is unanswered.
type OptionList struct {
	Options  []quiz.OptionView
	Cursor   int
	Answered bool
	Width    int
}

// Move shifts the cursor by delta, clamped to the list.
func (l *OptionList) Move(delta int) {
	l.Cursor += delta
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor > len(l.Options)-1 {
		l.Cursor = len(l.Options) - 1
	}
}

// Key returns the option key under the cursor.
func (l OptionList) Key() string {
	if l.Cursor < 0 || l.Cursor >= len(l.Options) {
		return ""
	}
	return l.Options[l.Cursor].Key
}

func markStyle(m quiz.Mark) lipgloss.Style {
	switch m {
	case quiz.MarkCorrect:
		return theme.Correct
	case quiz.MarkIncorrect:
		return theme.Incorrect
	case quiz.MarkDimmed:
		return theme.Dimmed
	}
	return theme.Unselected
}

func markSymbol(m quiz.Mark) string {
	switch m {
	case quiz.MarkCorrect:
		return "✓"
	case quiz.MarkIncorrect:
		return "✗"
	}
	return " "
}

// View renders the list.
func (l OptionList) View() string {
	var b strings.Builder
	for i, o := range l.Options {
		prefix := "  "
		style := markStyle(o.Mark)
		if !l.Answered && i == l.Cursor {
			prefix = "▸ "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s %s. %s", prefix, markSymbol(o.Mark), o.Key, o.Text)
		if l.Width > 0 {
			style = style.Width(l.Width)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
