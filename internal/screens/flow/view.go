package flow

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/yetria/yetria/internal/assessment"
	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/results"
	"github.com/yetria/yetria/internal/ui/components"
	"github.com/yetria/yetria/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	tr := s.env.Tr
	var body string
	switch s.flow.Phase() {
	case assessment.PhaseLoading:
		body = components.Message(tr.T(i18n.KeyLoading), width)
	case assessment.PhaseLoadFailed:
		body = components.ErrorMessage(s.errMsg, tr.T(i18n.KeyFlowBackHint), width)
	case assessment.PhaseEmpty:
		body = components.Message(tr.T(i18n.KeyFlowEmpty)+"\n\n"+tr.T(i18n.KeyFlowBackHint), width)
	case assessment.PhaseCountdown:
		body = s.renderCountdown(width)
	case assessment.PhaseAnswering:
		body = s.renderScenario(width)
	case assessment.PhaseSubmitting, assessment.PhaseComplete:
		body = components.Message(tr.T(i18n.KeyFlowSubmitting), width)
	case assessment.PhaseFailed:
		body = components.ErrorMessage(s.errMsg, tr.T(i18n.KeyFlowRetryHint), width)
	}
	if s.toast.Visible() {
		body += "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, s.toast.View())
	}
	return body
}

func (s *Screen) renderCountdown(width int) string {
	tr := s.env.Tr
	title := theme.Title.Render(tr.Tf(i18n.KeyFlowTitle, s.flow.Stage()))
	count := lipgloss.NewStyle().
		Foreground(theme.Highlight).
		Bold(true).
		Render(tr.Tf(i18n.KeyFlowCountdown, s.flow.Countdown()))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, "", "", title, "", count))
}

// renderScenario renders the info line, the scenario text and the options.
func (s *Screen) renderScenario(width int) string {
	tr := s.env.Tr
	sc, ok := s.flow.Scenario()
	if !ok {
		return ""
	}
	cw := components.ContentWidth(width)

	var b strings.Builder

	competency := sc.CompetencyName
	if c := results.ParseCompetency(competency); c != results.CompetencyUnknown {
		competency = c.Icon() + " " + c.Name(tr)
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(tr.Tf(i18n.KeyFlowCompetency, competency))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(tr.Tf(i18n.KeyFlowScenarioOf, s.flow.Index()+1, s.flow.Total()))

	infoLine := infoLeft
	if pad := cw - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight); pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	progress := float64(s.flow.Index()) / float64(max(s.flow.Total(), 1))
	b.WriteString(components.NewProgressBar("", progress, fmt.Sprintf("%d/%d", s.flow.AnswerCount(), s.flow.Total()), cw).View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(sc.Text))
	b.WriteString("\n\n")
	b.WriteString(s.options.View(cw))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}
