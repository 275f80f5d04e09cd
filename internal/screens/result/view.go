package result

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edugenius/internal/quiz"
	"github.com/abhisek/edugenius/internal/ui/components"
	"github.com/abhisek/edugenius/internal/ui/theme"
)

func (s *ResultScreen) View(width, height int) string {
	if s.res == nil || s.res.Content == nil {
		return theme.Hint.Render("\n  Nothing generated yet.")
	}

	inner := width - 6
	if inner < 20 {
		inner = 20
	}

	var b strings.Builder
	b.WriteString(theme.Label.Render(fmt.Sprintf("%s · %s · %s",
		s.res.Meta.Subject, s.res.Meta.Topic, s.res.Meta.Level.DisplayName())))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("Answered", s.res.Quiz.AnsweredCount(), s.res.Quiz.Len(), inner).View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", inner)))
	b.WriteString("\n\n")

	if s.showSummary {
		b.WriteString(theme.Title.Render("Material Summary"))
		b.WriteString("\n\n")
		b.WriteString(s.summary.View())
	} else if q, ok := s.question(); ok {
		b.WriteString(s.renderQuestion(q, inner))
	}

	if s.status != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Notice.Render(s.status))
	}

	return lipgloss.NewStyle().
		Width(width).
		MaxHeight(height).
		Padding(1, 3).
		Render(b.String())
}

func (s *ResultScreen) renderQuestion(q quiz.QuestionView, width int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(fmt.Sprintf("Question %d of %d", q.Number, s.res.Quiz.Len())))
	b.WriteString("\n\n")
	if strings.TrimSpace(q.Stimulus) != "" {
		b.WriteString(theme.Stimulus.Width(width).Render(q.Stimulus))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Stem.Width(width).Render(q.QuestionText))
	b.WriteString("\n\n")

	list := components.OptionList{
		Options:  q.Options,
		Cursor:   s.cursor,
		Answered: q.Answered,
		Width:    width,
	}
	b.WriteString(list.View())

	if !q.Answered {
		return b.String()
	}

	b.WriteString("\n")
	if q.IsCorrect {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Incorrect. The correct answer is %s.", q.CorrectAnswer)))
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("[e] " + q.ToggleLabel()))
	if q.ExplanationVisible {
		b.WriteString("\n")
		b.WriteString(theme.Explanation.Width(width).Render(q.Explanation))
	}
	return b.String()
}
