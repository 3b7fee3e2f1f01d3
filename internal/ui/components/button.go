package components

import (
	"charm.land/lipgloss/v2"

	"github.com/yetria/yetria/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 30

// Button is a styled, non-interactive button; the owning screen decides
// which one is focused.
type Button struct {
	Label    string
	Active   bool
	Disabled bool
}

// View renders the button inline.
func (b Button) View() string {
	switch {
	case b.Disabled:
		return theme.ButtonInactive.Render(b.Label)
	case b.Active:
		return theme.ButtonActive.Render("▸ " + b.Label)
	default:
		return theme.ButtonInactive.Foreground(theme.Text).Render(b.Label)
	}
}

// Block renders the button at the fixed menu width.
func (b Button) Block() string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	switch {
	case b.Disabled:
		return base.Foreground(theme.TextDim).BorderForeground(theme.Border).Render(b.Label)
	case b.Active:
		return base.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Highlight).
			BorderForeground(theme.Highlight).
			Render("▸ " + b.Label)
	default:
		return base.Foreground(theme.Text).BorderForeground(theme.Border).Render(b.Label)
	}
}
