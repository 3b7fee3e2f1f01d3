package advisor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/results"
)

// Draft builds an insight from the report alone, without a provider. The
// mock provider serves it so the insight flow can run offline.
func Draft(r *results.Report, tr *i18n.Translator) Insight {
	in := Insight{Fit: FitExploratory}
	switch {
	case r.WinnerPercent() >= 75:
		in.Fit = FitStrong
	case r.WinnerPercent() >= 50:
		in.Fit = FitModerate
	}
	if r.Winner != "" {
		in.Summary = tr.Tf(i18n.KeyInsightDraftSummary, r.Winner, r.WinnerPercent())
		in.NextSteps = []string{tr.Tf(i18n.KeyInsightDraftNextStep, r.Winner)}
	}
	for _, s := range r.Strengths() {
		in.Strengths = append(in.Strengths, tr.Tf(i18n.KeyInsightDraftStrength, s.Name(tr)))
	}
	for _, s := range r.GrowthAreas() {
		in.GrowthTips = append(in.GrowthTips, tr.Tf(i18n.KeyInsightDraftGrowth, s.Name(tr)))
	}
	in.normalize()
	return in
}

// FitLabel returns the translated fit level.
func (in Insight) FitLabel(tr *i18n.Translator) string {
	switch in.Fit {
	case FitStrong:
		return tr.T(i18n.KeyInsightFitStrong)
	case FitModerate:
		return tr.T(i18n.KeyInsightFitModerate)
	case FitExploratory:
		return tr.T(i18n.KeyInsightFitExploratory)
	}
	return in.Fit
}

// Markdown renders the insight as a markdown document.
func (in Insight) Markdown(tr *i18n.Translator) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", tr.T(i18n.KeyResultsInsight))
	if in.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", in.Summary)
	}
	if in.Fit != "" {
		fmt.Fprintf(&b, "**%s**\n\n", tr.Tf(i18n.KeyInsightFit, in.FitLabel(tr)))
	}
	section := func(title i18n.Key, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "## %s\n\n", tr.T(title))
		for _, item := range items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
		b.WriteString("\n")
	}
	section(i18n.KeyResultsStrengths, in.Strengths)
	section(i18n.KeyResultsGrowth, in.GrowthTips)
	section(i18n.KeyInsightNextSteps, in.NextSteps)
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Lines renders the insight as plain text lines for the terminal UI.
func (in Insight) Lines(tr *i18n.Translator) []string {
	var lines []string
	if in.Summary != "" {
		lines = append(lines, in.Summary)
	}
	if in.Fit != "" {
		lines = append(lines, tr.Tf(i18n.KeyInsightFit, in.FitLabel(tr)))
	}
	section := func(title i18n.Key, items []string) {
		if len(items) == 0 {
			return
		}
		lines = append(lines, "", tr.T(title))
		for _, item := range items {
			lines = append(lines, "  • "+item)
		}
	}
	section(i18n.KeyResultsStrengths, in.Strengths)
	section(i18n.KeyResultsGrowth, in.GrowthTips)
	section(i18n.KeyInsightNextSteps, in.NextSteps)
	return lines
}

// Render formats markdown for the terminal. An empty style picks one from
// the terminal background; "notty" produces plain text.
func Render(markdown, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
