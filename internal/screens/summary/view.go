package summary

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/results"
	"github.com/yetria/yetria/internal/ui/components"
	"github.com/yetria/yetria/internal/ui/theme"
)

// maxMatches is how many occupations the overview lists.
const maxMatches = 5

func (s *Screen) View(width, height int) string {
	tr := s.env.Tr
	cw := components.ContentWidth(width)

	if s.report == nil {
		if s.errMsg != "" {
			return components.ErrorMessage(s.errMsg, tr.T(i18n.KeyFlowRetryHint), width)
		}
		return components.Message(tr.T(i18n.KeyLoading), width)
	}

	var body string
	switch s.tab {
	case tabOverview:
		body = s.viewOverview(cw)
	case tabMentors:
		body = s.viewMentors(cw)
	case tabCourses:
		body = s.viewCourses(cw)
	case tabInsight:
		body = s.viewInsight(cw)
	}

	sections := []string{s.viewTabs(), "", body}
	if s.toast.Visible() {
		sections = append(sections, "", s.toast.View())
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n")))
}

func (s *Screen) viewTabs() string {
	tr := s.env.Tr
	labels := [tabCount]string{
		tr.T(i18n.KeyResultsOverview),
		tr.T(i18n.KeyResultsMentors),
		tr.T(i18n.KeyResultsCourses),
		tr.T(i18n.KeyResultsInsight),
	}
	parts := make([]string, 0, tabCount)
	for i, label := range labels {
		label = fmt.Sprintf(" %d %s ", i+1, label)
		if tab(i) == s.tab {
			parts = append(parts, theme.ButtonActive.Render(label))
		} else {
			parts = append(parts, theme.ButtonInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (s *Screen) viewOverview(cw int) string {
	tr := s.env.Tr
	r := s.report
	var b strings.Builder

	if r.Winner != "" {
		b.WriteString(theme.Title.Render(tr.Tf(i18n.KeyResultsWinner, r.Winner, r.WinnerPercent())))
		b.WriteString("\n\n")
	}

	if len(r.Matches) > 0 {
		b.WriteString(theme.Subtitle.Render(tr.T(i18n.KeyResultsCompatibility)))
		b.WriteString("\n")
		for i, m := range r.Matches {
			if i == maxMatches {
				break
			}
			bar := components.NewProgressBar(m.Occupation, m.Score/100, fmt.Sprintf("%3.0f%%", m.Score), cw)
			bar.LabelWidth = 22
			if m.Occupation == r.Winner {
				bar.Fill = lipgloss.NewStyle().Background(theme.Success)
			}
			b.WriteString(bar.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(r.Scores) > 0 {
		b.WriteString(theme.Subtitle.Render(tr.T(i18n.KeyResultsCompetencies)))
		b.WriteString("\n")
		for _, sc := range r.Scores {
			b.WriteString(scoreBar(sc, tr, cw).View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(competencyList(tr.T(i18n.KeyResultsStrengths), r.Strengths(), tr))
	b.WriteString("\n")
	b.WriteString(competencyList(tr.T(i18n.KeyResultsGrowth), r.GrowthAreas(), tr))
	return b.String()
}

// scoreBar shows a 1-5 score, with the group average next to it when known.
func scoreBar(sc results.Score, tr *i18n.Translator, cw int) components.ProgressBar {
	value := fmt.Sprintf("%.2f", sc.User)
	if sc.HasGroup {
		value = fmt.Sprintf("%.2f / %.2f", sc.User, sc.GroupAverage)
	}
	bar := components.NewProgressBar(sc.Competency.Icon()+" "+sc.Name(tr), sc.User/5, value, cw)
	bar.LabelWidth = 32
	switch {
	case sc.User >= results.StrongThreshold:
		bar.Fill = lipgloss.NewStyle().Background(theme.Success)
	case sc.User < results.GrowthThreshold:
		bar.Fill = lipgloss.NewStyle().Background(theme.Accent)
	}
	return bar
}

func competencyList(title string, scores []results.Score, tr *i18n.Translator) string {
	names := make([]string, 0, len(scores))
	for _, sc := range scores {
		names = append(names, sc.Name(tr))
	}
	list := tr.T(i18n.KeyResultsNone)
	if len(names) > 0 {
		list = strings.Join(names, ", ")
	}
	return theme.Subtitle.Render(title+": ") + theme.Body.Render(list)
}

func (s *Screen) viewMentors(cw int) string {
	tr := s.env.Tr
	switch {
	case !s.mentorsLoaded:
		return theme.Hint.Render(tr.T(i18n.KeyLoading))
	case s.mentorsErr != "":
		return theme.ErrorText.Render(s.mentorsErr)
	case len(s.mentors) == 0:
		return theme.Hint.Render(tr.T(i18n.KeyMentorNone))
	}

	cards := make([]string, 0, len(s.mentors))
	for i, m := range s.mentors {
		var lines []string
		name := m.DisplayName()
		if i == s.mentorCursor {
			lines = append(lines, theme.Selected.Render("▸ "+name))
		} else {
			lines = append(lines, theme.Unselected.Render("  "+name))
		}
		if sub := joinNonEmpty(" · ", m.Title, m.Company); sub != "" {
			lines = append(lines, theme.Hint.Render("  "+sub))
		}
		if m.SupportTopics != "" {
			lines = append(lines, theme.Body.Render("  "+m.SupportTopics))
		}
		if m.Quote != "" && i == s.mentorCursor {
			lines = append(lines, theme.Hint.Italic(true).Render(fmt.Sprintf("  “%s”", m.Quote)))
		}
		cards = append(cards, components.Card(strings.Join(lines, "\n"), cw))
	}
	return strings.Join(cards, "\n")
}

func (s *Screen) viewCourses(cw int) string {
	tr := s.env.Tr
	switch {
	case !s.coursesLoaded:
		return theme.Hint.Render(tr.T(i18n.KeyLoading))
	case s.coursesErr != "":
		return theme.ErrorText.Render(s.coursesErr)
	case len(s.courses) == 0:
		return theme.Hint.Render(tr.T(i18n.KeyCoursesNone))
	}

	cards := make([]string, 0, len(s.courses))
	for _, c := range s.courses {
		lines := []string{theme.Body.Bold(true).Render(c.Title)}
		if sub := joinNonEmpty(" · ", c.Provider, c.DurationText); sub != "" {
			lines = append(lines, theme.Hint.Render(sub))
		}
		if c.CourseURL != "" {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Underline(true).Render(c.CourseURL))
		}
		cards = append(cards, components.Card(strings.Join(lines, "\n"), cw))
	}
	return strings.Join(cards, "\n")
}

func (s *Screen) viewInsight(cw int) string {
	tr := s.env.Tr
	if !s.env.Advisor.Available() {
		return theme.Hint.Render(tr.T(i18n.KeyResultsInsightUnavailable))
	}
	var parts []string
	switch {
	case s.insightBusy:
		parts = append(parts, theme.Hint.Render(tr.T(i18n.KeyInsightGenerating)))
	case s.insight != nil:
		body := lipgloss.NewStyle().Width(cw).Foreground(theme.Text)
		parts = append(parts, body.Render(strings.Join(s.insight.Insight.Lines(tr), "\n")))
	default:
		parts = append(parts, theme.Hint.Render(tr.T(i18n.KeyInsightGenerateHint)))
	}
	if s.insightErr != "" {
		parts = append(parts, "", theme.ErrorText.Render(s.insightErr))
	}
	return strings.Join(parts, "\n")
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
