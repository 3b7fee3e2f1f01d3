package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/yetria/yetria/internal/ui/theme"
)

// ProgressBar displays a horizontal bar with a fixed-width label on the
// left and a value on the right.
type ProgressBar struct {
	Label      string
	LabelWidth int
	Percent    float64 // 0..1
	Value      string
	Width      int
	Fill       lipgloss.Style
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, value string, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Value:   value,
		Width:   width,
		Fill:    lipgloss.NewStyle().Background(theme.Secondary),
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if p.LabelWidth > 0 {
			style = style.Width(p.LabelWidth).MaxWidth(p.LabelWidth)
		}
		result += style.Render(p.Label) + "  "
	}

	valueWidth := 0
	if p.Value != "" {
		valueWidth = lipgloss.Width(p.Value) + 2
	}

	barWidth := max(p.Width-lipgloss.Width(result)-valueWidth, 4)
	filled := min(max(int(float64(barWidth)*p.Percent+0.5), 0), barWidth)

	result += p.Fill.Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	if p.Value != "" {
		result += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Value)
	}
	return result
}
