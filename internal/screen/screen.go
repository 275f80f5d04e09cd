// Package screen defines what the router stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edugenius/internal/ui/layout"
)

// Screen is one page of the terminal app: the generation form or a result.
type Screen interface {
	// Init returns the first command to run when the screen is pushed.
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between header and footer.
	View(width, height int) string

	// Title is shown centred in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Busy is implemented by screens with work in flight. Esc does not leave a
// busy screen.
type Busy interface {
	Busy() bool
}
