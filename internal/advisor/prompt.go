package advisor

import (
	"fmt"
	"strings"

	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/results"
)

const systemPrompt = `You are a warm, practical career counsellor for university students and recent graduates. You explain competency assessment results in plain language and suggest realistic next steps. Never invent scores or occupations that are not in the data.`

const maxPromptMatches = 5

var languageNames = map[i18n.Locale]string{
	i18n.English: "English",
	i18n.Turkish: "Turkish",
}

func buildUserMessage(r *results.Report, locale i18n.Locale) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Best matching occupation: %s", r.Winner)
	if r.HasWinnerScore {
		fmt.Fprintf(&b, " (%d%% compatibility)", r.WinnerPercent())
	}
	b.WriteString("\n")

	if len(r.Matches) > 0 {
		b.WriteString("\nOccupation compatibility:\n")
		for i, m := range r.Matches {
			if i == maxPromptMatches {
				break
			}
			fmt.Fprintf(&b, "- %s: %.0f%%\n", m.Occupation, m.Score)
		}
	}

	b.WriteString("\nCompetency scores (1-5 scale):\n")
	if len(r.Scores) == 0 {
		b.WriteString("None\n")
	}
	for _, s := range r.Scores {
		fmt.Fprintf(&b, "- %s: %.2f", scoreName(s), s.User)
		if s.HasGroup {
			fmt.Fprintf(&b, " (group average %.2f)", s.GroupAverage)
		}
		b.WriteString("\n")
	}

	writeNames(&b, "Strengths", r.Strengths())
	writeNames(&b, "Areas to develop", r.GrowthAreas())

	lang, ok := languageNames[locale]
	if !ok {
		lang = languageNames[i18n.DefaultLocale]
	}
	fmt.Fprintf(&b, `
Instructions:
1. Write every field in %s.
2. The summary explains why the best matching occupation fits, referring to specific competencies.
3. Give one strength item per strong competency and one growth tip per area to develop. Use empty lists when there are none.
4. Next steps must be doable within a month: a course, a conversation with a mentor, a small project.
5. Plain text only. No markdown.`, lang)

	return b.String()
}

func writeNames(b *strings.Builder, title string, scores []results.Score) {
	fmt.Fprintf(b, "\n%s: ", title)
	if len(scores) == 0 {
		b.WriteString("none\n")
		return
	}
	names := make([]string, len(scores))
	for i, s := range scores {
		names[i] = scoreName(s)
	}
	b.WriteString(strings.Join(names, ", "))
	b.WriteString("\n")
}

// scoreName is the English competency name, or the server label for
// competencies the client does not know.
func scoreName(s results.Score) string {
	if s.Competency == results.CompetencyUnknown {
		return s.Label
	}
	return s.Competency.String()
}
