package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yetria/yetria/internal/ui/theme"
)

// Field is a labelled text input with an inline validation message.
type Field struct {
	Label string
	Input textinput.Model
	Err   string
}

// NewField creates a field. Secret fields mask their value.
func NewField(label string, secret bool, limit int) Field {
	ti := textinput.New()
	ti.Prompt = "› "
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	if limit > 0 {
		ti.CharLimit = limit
	}
	return Field{Label: label, Input: ti}
}

// Focus focuses the input.
func (f *Field) Focus() tea.Cmd { return f.Input.Focus() }

// Blur removes focus.
func (f *Field) Blur() { f.Input.Blur() }

// Value returns the current input value.
func (f Field) Value() string { return f.Input.Value() }

// Update forwards msg to the input and clears a shown error once the
// user edits the value.
func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	before := f.Input.Value()
	var cmd tea.Cmd
	f.Input, cmd = f.Input.Update(msg)
	if f.Input.Value() != before {
		f.Err = ""
	}
	return f, cmd
}

// View renders the label, input and error.
func (f Field) View(width int) string {
	label := theme.Subtitle
	if f.Input.Focused() {
		label = theme.Selected
	}
	out := label.Render(f.Label) + "\n" +
		lipgloss.NewStyle().Width(width).Render(f.Input.View())
	if f.Err != "" {
		out += "\n" + theme.ErrorText.Render(f.Err)
	}
	return out
}
