package components

import (
	"github.com/abhisek/edugenius/internal/ui/theme"
)

// Button is a styled button. Screens decide what pressing it does.
type Button struct {
	Label    string
	Active   bool
	Disabled bool
}

// NewButton creates a new button.
func NewButton(label string) Button {
	return Button{Label: label}
}

// View renders the button.
func (b Button) View() string {
	label := "  " + b.Label + " "
	switch {
	case b.Disabled:
		return theme.ButtonInactive.Foreground(theme.TextDim).Render(label)
	case b.Active:
		return theme.ButtonActive.Render("▸ " + b.Label + " ")
	}
	return theme.ButtonInactive.Render(label)
}
