package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yetria/yetria/internal/ui/theme"
)

// Option is one lettered answer.
type Option struct {
	Letter string
	Text   string
}

// OptionList is a single-choice selector over lettered options. The cursor
// moves with the arrows; Enter or a letter key chooses.
type OptionList struct {
	Options []Option
	Cursor  int
	Chosen  string
}

// NewOptionList creates a list with the cursor on the chosen option, or
// the first one.
func NewOptionList(options []Option, chosen string) OptionList {
	l := OptionList{Options: options, Chosen: chosen}
	for i, o := range options {
		if o.Letter == chosen {
			l.Cursor = i
		}
	}
	return l
}

// Update handles navigation. It reports the letter chosen by this key,
// or "" when the key chose nothing.
func (l OptionList) Update(msg tea.Msg) (OptionList, string) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(l.Options) == 0 {
		return l, ""
	}
	key := kmsg.String()
	switch key {
	case "up", "k":
		if l.Cursor > 0 {
			l.Cursor--
		}
		return l, ""
	case "down", "j":
		if l.Cursor < len(l.Options)-1 {
			l.Cursor++
		}
		return l, ""
	case "space":
		l.Chosen = l.Options[l.Cursor].Letter
		return l, l.Chosen
	}
	for i, o := range l.Options {
		if strings.EqualFold(key, o.Letter) {
			l.Cursor = i
			l.Chosen = o.Letter
			return l, l.Chosen
		}
	}
	return l, ""
}

// View renders the options wrapped to width.
func (l OptionList) View(width int) string {
	var b strings.Builder
	for i, o := range l.Options {
		marker := "( )"
		if o.Letter == l.Chosen {
			marker = "(•)"
		}
		prefix := "  "
		if i == l.Cursor {
			prefix = "▸ "
		}
		style := lipgloss.NewStyle().Foreground(theme.Text).Width(width)
		switch {
		case o.Letter == l.Chosen:
			style = style.Foreground(theme.Success).Bold(true)
		case i == l.Cursor:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s %s)  %s", prefix, marker, o.Letter, o.Text)))
		b.WriteString("\n")
	}
	return b.String()
}
