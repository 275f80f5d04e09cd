package form

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edugenius/internal/studio"
	"github.com/abhisek/edugenius/internal/ui/components"
	"github.com/abhisek/edugenius/internal/ui/theme"
)

func (s *FormScreen) View(width, height int) string {
	snap := s.ws.Snapshot()

	var b strings.Builder
	b.WriteString(s.renderLevel())
	b.WriteString("\n\n")
	b.WriteString(s.subject.View())
	b.WriteString("\n\n")
	b.WriteString(s.topic.View())
	b.WriteString("\n\n")
	b.WriteString(s.label("Context / material", focusMaterial))
	b.WriteString("\n")
	b.WriteString(s.material.View())
	b.WriteString("\n\n")
	b.WriteString(s.attachPath.View())
	b.WriteString("\n")
	b.WriteString(s.renderAttachments(snap))
	b.WriteString("\n")
	b.WriteString(s.renderSummaryToggle())
	b.WriteString("\n\n")
	b.WriteString(s.renderButton(snap.Loading))

	if snap.Notice != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Notice.Render(snap.Notice))
	}
	if snap.Error != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render("Generation Failed"))
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(snap.Error))
	}

	return lipgloss.NewStyle().
		Width(width).
		MaxHeight(height).
		Padding(1, 3).
		Render(b.String())
}

func (s *FormScreen) label(text string, f focus) string {
	if s.focus == f {
		return theme.Selected.Render("▸ " + text)
	}
	return theme.Label.Render(text)
}

func (s *FormScreen) renderLevel() string {
	value := theme.Body.Render("◂ " + s.level.DisplayName() + " ▸")
	if s.focus == focusLevel {
		value = theme.Selected.Render("◂ " + s.level.DisplayName() + " ▸")
	}
	return s.label("Education level", focusLevel) + "\n" + value
}

func (s *FormScreen) renderAttachments(snap studio.Snapshot) string {
	atts := snap.Form.Attachments
	if len(atts) == 0 {
		return theme.Hint.Render(fmt.Sprintf("No images attached. Max %d MB each.", s.intake.Limit()>>20)) + "\n"
	}
	var b strings.Builder
	for i, a := range atts {
		line := fmt.Sprintf("  %s (%s)", a.Name, a.MIMEType)
		if s.focus == focusAttachments && i == s.attachCursor {
			b.WriteString(theme.Selected.Render("▸" + line[1:] + "  [x] remove"))
		} else {
			b.WriteString(theme.Dimmed.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s *FormScreen) renderSummaryToggle() string {
	box := "[ ]"
	if s.includeSummary {
		box = "[x]"
	}
	text := box + " Include material summary"
	if s.focus == focusSummary {
		return theme.Selected.Render("▸ " + text)
	}
	return theme.Body.Render("  " + text)
}

func (s *FormScreen) renderButton(loading bool) string {
	btn := components.NewButton("Generate Module & Quiz")
	btn.Active = s.focus == focusGenerate
	if loading {
		btn.Label = s.spinner.View() + " Generating..."
		btn.Disabled = true
	}
	return btn.View()
}
