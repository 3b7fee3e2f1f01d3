// Package results turns the server's prediction read models into the
// report shown by the results screen and the CLI: ranked occupations,
// competency scores against the group average, strengths, growth areas and
// the keywords used to ask for course recommendations.
package results

import (
	"strings"

	"github.com/yetria/yetria/internal/i18n"
)

// Competency is one of the eight assessed competencies.
type Competency int

const (
	CompetencyUnknown Competency = iota
	Analytical
	Numerical
	StressManagement
	Empathy
	Teamwork
	DecisionMaking
	Resilience
	TechnologyAdaptation

	competencyCount
)

type competencyInfo struct {
	key  i18n.Key
	icon string
	// keyword is the code the course recommendation endpoint understands;
	// empty when the backend has no course mapping for the competency.
	keyword string
	labels  []string
}

var competencies = [competencyCount]competencyInfo{
	CompetencyUnknown: {key: i18n.KeyCompUnknown, icon: "•"},
	Analytical: {
		key: i18n.KeyCompAnalytical, icon: "🧠", keyword: "analytical",
		labels: []string{"analitik düşünme", "analytical thinking"},
	},
	Numerical: {
		key: i18n.KeyCompNumerical, icon: "🔢", keyword: "numerical",
		labels: []string{"sayısal zeka", "numerical intelligence"},
	},
	StressManagement: {
		key: i18n.KeyCompStress, icon: "🧘", keyword: "stress_management",
		labels: []string{"stres yönetimi", "stress management"},
	},
	Empathy: {
		key: i18n.KeyCompEmpathy, icon: "💗", keyword: "empathy",
		labels: []string{"empati", "empathy"},
	},
	Teamwork: {
		key: i18n.KeyCompTeamwork, icon: "🤝", keyword: "teamwork",
		labels: []string{"takım çalışması", "teamwork"},
	},
	DecisionMaking: {
		key: i18n.KeyCompDecision, icon: "⚡", keyword: "decision_making",
		labels: []string{"hızlı ve soğukkanlı karar alma", "quick and calm decision making", "decision making"},
	},
	Resilience: {
		key: i18n.KeyCompResilience, icon: "🛡", keyword: "resilience",
		labels: []string{"duygusal dayanıklılık", "emotional resilience"},
	},
	TechnologyAdaptation: {
		key: i18n.KeyCompTechnology, icon: "💻",
		labels: []string{"teknoloji adaptasyonu", "technology adaptation"},
	},
}

// decisionPrefix matches the truncated spellings of the decision-making
// label found in older datasets.
const decisionPrefix = "hızlı ve soğukkanlı karar al"

// Competencies returns the known competencies in display order.
func Competencies() []Competency {
	out := make([]Competency, 0, competencyCount-1)
	for c := Analytical; c < competencyCount; c++ {
		out = append(out, c)
	}
	return out
}

// ParseCompetency maps a label as sent by the server, in Turkish or English
// and in any case, to a Competency. Unrecognized labels map to
// CompetencyUnknown.
func ParseCompetency(label string) Competency {
	norm := fold(label)
	if norm == "" {
		return CompetencyUnknown
	}
	for c := Analytical; c < competencyCount; c++ {
		info := competencies[c]
		if info.keyword != "" && norm == info.keyword {
			return c
		}
		for _, l := range info.labels {
			if norm == fold(l) {
				return c
			}
		}
	}
	if strings.HasPrefix(norm, fold(decisionPrefix)) {
		return DecisionMaking
	}
	return CompetencyUnknown
}

// fold lowercases s, collapses whitespace and treats the dotted and dotless
// Turkish i as the same letter, so "SAYISAL ZEKA" matches "Sayısal Zeka".
func fold(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, "İ", "i")
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "ı", "i")
}

func (c Competency) info() competencyInfo {
	if c <= CompetencyUnknown || c >= competencyCount {
		return competencies[CompetencyUnknown]
	}
	return competencies[c]
}

// Key returns the translation key of the competency's display name.
func (c Competency) Key() i18n.Key { return c.info().key }

// Icon returns the symbol shown next to the competency.
func (c Competency) Icon() string { return c.info().icon }

// Keyword returns the course recommendation code, or "".
func (c Competency) Keyword() string { return c.info().keyword }

// Name returns the localized display name.
func (c Competency) Name(tr *i18n.Translator) string { return tr.T(c.Key()) }

func (c Competency) String() string {
	if l := c.info().labels; len(l) > 1 {
		return l[1]
	}
	return "unknown"
}
