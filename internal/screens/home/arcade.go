package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/yetria/yetria/internal/ui/components"
	"github.com/yetria/yetria/internal/ui/theme"
)

const titleFull = `██╗   ██╗███████╗████████╗██████╗ ██╗ █████╗
╚██╗ ██╔╝██╔════╝╚══██╔══╝██╔══██╗██║██╔══██╗
 ╚████╔╝ █████╗     ██║   ██████╔╝██║███████║
  ╚██╔╝  ██╔══╝     ██║   ██╔══██╗██║██╔══██║
   ██║   ███████╗   ██║   ██║  ██║██║██║  ██║
   ╚═╝   ╚══════╝   ╚═╝   ╚═╝  ╚═╝╚═╝╚═╝  ╚═╝`

const titleCompact = "Y · E · T · R · I · A"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) and inner padding (4).
	return min(max(frameWidth-6, 20), 60)
}

func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(art))
}

// renderStatusBar renders the greeting and journey progress in a bordered
// box matching content width.
func renderStatusBar(lines []string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func menuButtons(items []string, selected int, disabled map[int]bool) []components.Button {
	buttons := make([]components.Button, len(items))
	for i, label := range items {
		buttons[i] = components.Button{Label: label, Active: i == selected, Disabled: disabled[i]}
	}
	return buttons
}

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	blocks := make([]string, len(items))
	for i, b := range menuButtons(items, selected, disabled) {
		blocks[i] = b.Block()
	}
	return components.Centered(strings.Join(blocks, "\n"), cw)
}

// renderMenuCompact renders menu items as plain lines for terminals where
// bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	lines := make([]string, len(items))
	for i, b := range menuButtons(items, selected, disabled) {
		lines[i] = b.View()
	}
	return components.Centered(strings.Join(lines, "\n"), cw)
}

func renderMascotBox(v MascotVariant, cw int) string {
	return components.Centered(RenderMascot(v), cw)
}

// renderNote renders a one-line dim note, such as the offline warning.
func renderNote(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}
