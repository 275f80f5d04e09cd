package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edugenius/internal/ui/theme"
)

// Field is a labeled single-line text input.
type Field struct {
	Label string
	Model textinput.Model
}

// NewField creates a blurred field.
func NewField(label, placeholder string, charLimit int) Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return Field{Label: label, Model: ti}
}

// Focus focuses the input.
func (f *Field) Focus() tea.Cmd { return f.Model.Focus() }

// Blur removes focus.
func (f *Field) Blur() { f.Model.Blur() }

// Focused reports whether the input has focus.
func (f Field) Focused() bool { return f.Model.Focused() }

// SetWidth sets the visible width of the input.
func (f *Field) SetWidth(w int) { f.Model.SetWidth(w) }

// Update forwards messages to the input.
func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the label above the input.
func (f Field) View() string {
	label := theme.Label.Render(f.Label)
	if f.Focused() {
		label = theme.Selected.Render("▸ " + f.Label)
	}
	return label + "\n" + f.Model.View()
}

// Value returns the current input value.
func (f Field) Value() string {
	return f.Model.Value()
}

// SetValue replaces the input value.
func (f *Field) SetValue(s string) {
	f.Model.SetValue(s)
}
