package results

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/i18n"
)

// Backend thresholds on the 0-5 competency scale.
const (
	StrongThreshold = 4.0
	GrowthThreshold = 3.0
)

// fallbackKeywords is how many of the lowest competencies are used for course
// recommendations when no competency is below GrowthThreshold.
const fallbackKeywords = 3

// Match is one occupation's compatibility, in percent.
type Match struct {
	Occupation string
	Score      float64
}

// Score is one competency's score, with the group average when the server
// sent one.
type Score struct {
	Competency   Competency
	Label        string // as sent by the server
	User         float64
	GroupAverage float64
	Difference   float64
	HasGroup     bool
}

// Name returns the localized competency name, falling back to the server
// label for competencies the client does not know.
func (s Score) Name(tr *i18n.Translator) string {
	if s.Competency == CompetencyUnknown && s.Label != "" {
		return s.Label
	}
	return s.Competency.Name(tr)
}

// Report is the client-side view of a prediction.
type Report struct {
	Winner         string
	WinnerScore    float64
	HasWinnerScore bool
	Matches        []Match // best first
	Scores         []Score // competency display order
	CompletedAt    string
}

// NewReport builds a report from a stage submission result.
func NewReport(res api.PredictionResult) *Report {
	r := &Report{Winner: strings.TrimSpace(res.WinningOccupation)}
	r.setMatches(res.Compatibility)
	for _, c := range res.Comparisons {
		r.Scores = append(r.Scores, Score{
			Competency:   ParseCompetency(c.Competency),
			Label:        strings.TrimSpace(c.Competency),
			User:         c.UserScore,
			GroupAverage: c.GroupAverage,
			Difference:   c.Difference,
			HasGroup:     true,
		})
	}
	r.sortScores()
	r.findWinnerScore()
	return r
}

// ReportFromAssessment builds a report from the stored final result.
func ReportFromAssessment(res api.AssessmentResult) *Report {
	r := &Report{
		Winner:      strings.TrimSpace(res.RecommendedOccupation),
		CompletedAt: res.CompletedAt,
	}
	r.setMatches(res.OccupationCompatibilityScores)
	for label, v := range res.CompetencyScores {
		r.Scores = append(r.Scores, Score{
			Competency: ParseCompetency(label),
			Label:      strings.TrimSpace(label),
			User:       v,
		})
	}
	r.sortScores()
	if res.OccupationCompatibilityScore != nil {
		r.WinnerScore = *res.OccupationCompatibilityScore
		r.HasWinnerScore = true
	} else {
		r.findWinnerScore()
	}
	return r
}

func (r *Report) setMatches(in []api.CompatibilityScore) {
	r.Matches = make([]Match, 0, len(in))
	for _, m := range in {
		r.Matches = append(r.Matches, Match{Occupation: strings.TrimSpace(m.Occupation), Score: m.Score})
	}
	slices.SortStableFunc(r.Matches, func(a, b Match) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return strings.Compare(a.Occupation, b.Occupation)
	})
	if r.Winner == "" && len(r.Matches) > 0 {
		r.Winner = r.Matches[0].Occupation
	}
}

func (r *Report) sortScores() {
	slices.SortStableFunc(r.Scores, func(a, b Score) int {
		// Unknown competencies sort last.
		ra, rb := int(a.Competency), int(b.Competency)
		if a.Competency == CompetencyUnknown {
			ra = int(competencyCount)
		}
		if b.Competency == CompetencyUnknown {
			rb = int(competencyCount)
		}
		if c := cmp.Compare(ra, rb); c != 0 {
			return c
		}
		return strings.Compare(a.Label, b.Label)
	})
}

func (r *Report) findWinnerScore() {
	for _, m := range r.Matches {
		if m.Occupation == r.Winner {
			r.WinnerScore = m.Score
			r.HasWinnerScore = true
			return
		}
	}
}

// Empty reports whether the report carries no result at all.
func (r *Report) Empty() bool {
	return r.Winner == "" && len(r.Matches) == 0 && len(r.Scores) == 0
}

// WinnerPercent returns the winner's score rounded to a whole percent.
func (r *Report) WinnerPercent() int {
	return int(math.Round(r.WinnerScore))
}

// Strengths returns competencies scored at or above StrongThreshold.
func (r *Report) Strengths() []Score {
	var out []Score
	for _, s := range r.Scores {
		if s.User >= StrongThreshold {
			out = append(out, s)
		}
	}
	return out
}

// GrowthAreas returns competencies scored below GrowthThreshold.
func (r *Report) GrowthAreas() []Score {
	var out []Score
	for _, s := range r.Scores {
		if s.User < GrowthThreshold {
			out = append(out, s)
		}
	}
	return out
}

// CourseKeywords returns the competency codes to ask course recommendations
// for: the growth areas, or the lowest scored competencies when there are
// none. Competencies without a code are skipped.
func (r *Report) CourseKeywords() []string {
	base := r.GrowthAreas()
	if len(base) == 0 {
		base = slices.Clone(r.Scores)
		slices.SortStableFunc(base, func(a, b Score) int { return cmp.Compare(a.User, b.User) })
		if len(base) > fallbackKeywords {
			base = base[:fallbackKeywords]
		}
	}
	var out []string
	for _, s := range base {
		kw := s.Competency.Keyword()
		if kw != "" && !slices.Contains(out, kw) {
			out = append(out, kw)
		}
	}
	return out
}

// Fingerprint identifies the report's content. Reports with the same winner,
// matches and scores share a fingerprint regardless of where they came from.
func (r *Report) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "winner=%s\n", r.Winner)
	for _, m := range r.Matches {
		fmt.Fprintf(h, "match=%s:%.2f\n", m.Occupation, m.Score)
	}
	for _, s := range r.Scores {
		fmt.Fprintf(h, "score=%s:%.2f\n", s.Label, s.User)
	}
	return hex.EncodeToString(h.Sum(nil))[:32]
}
