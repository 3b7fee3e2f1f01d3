package results

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/i18n"
)

func TestParseCompetency(t *testing.T) {
	tests := []struct {
		label string
		want  Competency
	}{
		{"Analitik Düşünme", Analytical},
		{"  analitik   düşünme ", Analytical},
		{"SAYISAL ZEKA", Numerical},
		{"Sayısal Zeka", Numerical},
		{"Numerical Intelligence", Numerical},
		{"Stres Yönetimi", StressManagement},
		{"Empati", Empathy},
		{"Takım Çalışması", Teamwork},
		{"Hızlı ve Soğukkanlı Karar Alma", DecisionMaking},
		{"Hızlı ve Soğukkanlı Karar Alabilme", DecisionMaking},
		{"Duygusal Dayanıklılık", Resilience},
		{"EMOTIONAL RESILIENCE", Resilience},
		{"Teknoloji Adaptasyonu", TechnologyAdaptation},
		{"stress_management", StressManagement},
		{"Liderlik", CompetencyUnknown},
		{"", CompetencyUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCompetency(tt.label))
		})
	}
}

func TestEveryCompetencyHasDisplayData(t *testing.T) {
	en := i18n.MustNew(i18n.English)
	tr := i18n.MustNew(i18n.Turkish)
	require.Len(t, Competencies(), 8)
	for _, c := range Competencies() {
		assert.NotEqual(t, i18n.KeyCompUnknown, c.Key(), "%v", c)
		assert.NotEmpty(t, c.Icon(), "%v", c)
		assert.NotEmpty(t, c.info().labels, "%v", c)
		// The Turkish catalog name must round-trip through the parser.
		assert.Equal(t, c, ParseCompetency(c.Name(tr)), "%v", c)
		assert.Equal(t, c, ParseCompetency(c.Name(en)), "%v", c)
	}
}

func prediction() api.PredictionResult {
	return api.PredictionResult{
		WinningOccupation: "Veri Bilimci",
		Compatibility: []api.CompatibilityScore{
			{Occupation: "Öğretmen", Score: 41.2},
			{Occupation: "Veri Bilimci", Score: 87.6},
			{Occupation: "Hemşire", Score: 55},
		},
		Comparisons: []api.CompetencyComparison{
			{Competency: "Empati", UserScore: 2.5, GroupAverage: 3.4, Difference: -0.9},
			{Competency: "Analitik Düşünme", UserScore: 4.5, GroupAverage: 3.9, Difference: 0.6},
			{Competency: "Liderlik", UserScore: 3.5, GroupAverage: 3.5},
			{Competency: "Sayısal Zeka", UserScore: 4.0, GroupAverage: 3.1, Difference: 0.9},
			{Competency: "Teknoloji Adaptasyonu", UserScore: 1.5, GroupAverage: 3.0, Difference: -1.5},
		},
	}
}

func TestNewReport(t *testing.T) {
	r := NewReport(prediction())

	wantMatches := []Match{
		{Occupation: "Veri Bilimci", Score: 87.6},
		{Occupation: "Hemşire", Score: 55},
		{Occupation: "Öğretmen", Score: 41.2},
	}
	if diff := cmp.Diff(wantMatches, r.Matches); diff != "" {
		t.Errorf("matches (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Veri Bilimci", r.Winner)
	assert.True(t, r.HasWinnerScore)
	assert.Equal(t, 88, r.WinnerPercent())

	var order []Competency
	for _, s := range r.Scores {
		order = append(order, s.Competency)
	}
	assert.Equal(t, []Competency{Analytical, Numerical, Empathy, TechnologyAdaptation, CompetencyUnknown}, order)
	assert.Equal(t, "Liderlik", r.Scores[4].Name(i18n.MustNew(i18n.English)))
}

func TestStrengthsAndGrowthAreas(t *testing.T) {
	r := NewReport(prediction())

	var strong, growth []Competency
	for _, s := range r.Strengths() {
		strong = append(strong, s.Competency)
	}
	for _, s := range r.GrowthAreas() {
		growth = append(growth, s.Competency)
	}
	assert.Equal(t, []Competency{Analytical, Numerical}, strong, "4.0 counts as strong")
	assert.Equal(t, []Competency{Empathy, TechnologyAdaptation}, growth)
}

func TestCourseKeywordsFromGrowthAreas(t *testing.T) {
	r := NewReport(prediction())
	// Technology adaptation has no course code.
	assert.Equal(t, []string{"empathy"}, r.CourseKeywords())
}

func TestCourseKeywordsFallBackToLowest(t *testing.T) {
	r := NewReport(api.PredictionResult{
		Comparisons: []api.CompetencyComparison{
			{Competency: "Analitik Düşünme", UserScore: 4.8},
			{Competency: "Empati", UserScore: 3.1},
			{Competency: "Takım Çalışması", UserScore: 3.6},
			{Competency: "Stres Yönetimi", UserScore: 3.3},
			{Competency: "Sayısal Zeka", UserScore: 4.1},
		},
	})
	assert.Empty(t, r.GrowthAreas())
	assert.Equal(t, []string{"empathy", "stress_management", "teamwork"}, r.CourseKeywords())
}

func TestReportFromAssessment(t *testing.T) {
	score := 72.4
	r := ReportFromAssessment(api.AssessmentResult{
		RecommendedOccupation:        "Hemşire",
		OccupationCompatibilityScore: &score,
		CompetencyScores: map[string]float64{
			"Empati":         4.6,
			"Stres Yönetimi": 2.2,
		},
		OccupationCompatibilityScores: []api.CompatibilityScore{
			{Occupation: "Hemşire", Score: 70},
			{Occupation: "Öğretmen", Score: 60},
		},
		CompletedAt: "2026-05-01T10:00:00",
	})

	assert.Equal(t, "Hemşire", r.Winner)
	assert.InDelta(t, 72.4, r.WinnerScore, 0.001, "explicit score wins over the list")
	require.Len(t, r.Scores, 2)
	assert.Equal(t, StressManagement, r.Scores[0].Competency)
	assert.False(t, r.Scores[0].HasGroup)
	assert.Equal(t, []string{"stress_management"}, r.CourseKeywords())
}

func TestWinnerDefaultsToBestMatch(t *testing.T) {
	r := NewReport(api.PredictionResult{
		Compatibility: []api.CompatibilityScore{{Occupation: "A", Score: 10}, {Occupation: "B", Score: 20}},
	})
	assert.Equal(t, "B", r.Winner)
	assert.Equal(t, 20, r.WinnerPercent())
	assert.False(t, r.Empty())
	assert.True(t, NewReport(api.PredictionResult{}).Empty())
}

func TestFingerprint(t *testing.T) {
	a := NewReport(prediction())
	b := NewReport(prediction())
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 32)

	p := prediction()
	p.Comparisons[0].UserScore = 2.6
	assert.NotEqual(t, a.Fingerprint(), NewReport(p).Fingerprint())
}

type fakeSource struct {
	saved    *api.AssessmentResult
	savedErr error
	computed api.PredictionResult
	calls    []string
}

func (f *fakeSource) AssessmentResult(context.Context) (api.AssessmentResult, error) {
	f.calls = append(f.calls, "saved")
	if f.saved == nil {
		return api.AssessmentResult{}, f.savedErr
	}
	return *f.saved, nil
}

func (f *fakeSource) ComputeResult(context.Context) (api.PredictionResult, error) {
	f.calls = append(f.calls, "compute")
	return f.computed, nil
}

func TestLoadPrefersSavedResult(t *testing.T) {
	src := &fakeSource{saved: &api.AssessmentResult{RecommendedOccupation: "Psikolog"}}
	r, err := Load(context.Background(), src, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Psikolog", r.Winner)
	assert.Equal(t, []string{"saved"}, src.calls)
}

func TestLoadComputesWhenNothingSaved(t *testing.T) {
	src := &fakeSource{
		savedErr: &api.Error{Kind: api.KindClient, Status: 404},
		computed: api.PredictionResult{WinningOccupation: "Veri Bilimci"},
	}
	r, err := Load(context.Background(), src, nil)
	require.NoError(t, err)
	assert.Equal(t, "Veri Bilimci", r.Winner)
	assert.Equal(t, []string{"saved", "compute"}, src.calls)
}

func TestLoadStopsOnRejectedCredential(t *testing.T) {
	src := &fakeSource{savedErr: &api.Error{Kind: api.KindUnauthenticated, Status: 401}}
	_, err := Load(context.Background(), src, nil)
	assert.True(t, api.IsUnauthenticated(err))
	assert.Equal(t, []string{"saved"}, src.calls)
}
