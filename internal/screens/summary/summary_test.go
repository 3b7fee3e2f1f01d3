package summary

import (
	"encoding/json"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/yetria/yetria/internal/advisor"
	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/llm"
	"github.com/yetria/yetria/internal/screens/env"
	"github.com/yetria/yetria/internal/screens/screentest"
)

func open(t *testing.T, h *screentest.Harness, report bool) *Screen {
	t.Helper()
	var s *Screen
	if report {
		s = FromPrediction(h.Env, h.Backend.Prediction)
	} else {
		s = New(h.Env, nil)
	}
	next, _ := screentest.Settle(s, s.Init(), screentest.Outbound)
	return next.(*Screen)
}

func press(s *Screen, msg tea.KeyPressMsg) (*Screen, []tea.Msg) {
	next, cmd := s.Update(msg)
	next, out := screentest.Settle(next, cmd, screentest.Outbound)
	return next.(*Screen), out
}

func TestOverviewFromPrediction(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	s := open(t, h, true)

	view := s.View(100, 40)
	for _, want := range []string{
		"Best match: Veri Bilimci (88%)",
		"Career compatibility",
		"Psikolog",
		"Analytical Thinking",
		"4.50 / 4.10",
		"Strengths: ",
		"Areas to develop: ",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("overview missing %q:\n%s", want, view)
		}
	}
	assert.Zero(t, h.Backend.Called("AssessmentResult"), "a handed-in report must not be reloaded")
}

func TestRecommendationsUseWinnerAndGrowthAreas(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	s := open(t, h, true)

	assert.Equal(t, 1, h.Backend.Called("RecommendMentors"))
	require.Len(t, h.Backend.Keywords, 1)
	assert.Equal(t, s.Report().CourseKeywords(), h.Backend.Keywords[0])
	assert.Len(t, s.mentors, 2)
	assert.Len(t, s.courses, 1)

	s, _ = press(s, screentest.Rune('3'))
	assert.Contains(t, s.View(100, 40), "İstatistiğe Giriş")
}

func TestLoadsSavedResult(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	score := 91.0
	h.Backend.Saved = &api.AssessmentResult{
		RecommendedOccupation:        "Psikolog",
		OccupationCompatibilityScore: &score,
		CompetencyScores:             map[string]float64{"Empati": 4.6},
		OccupationCompatibilityScores: []api.CompatibilityScore{
			{Occupation: "Psikolog", Score: 91},
		},
	}

	s := open(t, h, false)
	require.NotNil(t, s.Report())
	assert.Equal(t, "Psikolog", s.Report().Winner)
	assert.Zero(t, h.Backend.Called("ComputeResult"))
	assert.Contains(t, s.View(100, 40), "Best match: Psikolog (91%)")
}

func TestFallsBackToComputedResult(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)

	s := open(t, h, false)
	require.NotNil(t, s.Report())
	assert.Equal(t, "Veri Bilimci", s.Report().Winner)
	assert.Equal(t, 1, h.Backend.Called("ComputeResult"))
}

func TestLoadFailureOffersRetry(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	h.Backend.SetFail("ComputeResult", screentest.ServerError())

	s := open(t, h, false)
	assert.Nil(t, s.Report())
	assert.NotEmpty(t, s.errMsg)

	h.Backend.SetFail("ComputeResult", nil)
	s, _ = press(s, screentest.Rune('r'))
	require.NotNil(t, s.Report())
	assert.Empty(t, s.errMsg)
}

func TestExpiredSessionRoutesToSignIn(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	h.Backend.SetFail("AssessmentResult", screentest.Unauthenticated())

	s := New(h.Env, nil)
	_, out := screentest.Settle(s, s.Init(), screentest.Outbound)

	_, ok := screentest.Find[env.SessionExpiredMsg](out)
	assert.True(t, ok)
	assert.False(t, h.Identity.IsAuthenticated())
	assert.Zero(t, h.Backend.Called("ComputeResult"))
}

func TestRequestMentorship(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	s := open(t, h, true)

	s, _ = press(s, screentest.Key(tea.KeyTab))
	s, _ = press(s, screentest.Key(tea.KeyDown))
	s, _ = press(s, screentest.Key(tea.KeyEnter))

	require.Len(t, h.Backend.Requests, 1)
	assert.Equal(t, 12, h.Backend.Requests[0].MentorProfileID)
	assert.Equal(t, "Mentorship request sent to Ece Demir.", s.toast.Text)
	assert.False(t, s.toast.IsError)
	assert.False(t, s.requesting)
}

func TestRequestMentorshipFailureShowsErrorToast(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	s := open(t, h, true)
	h.Backend.SetFail("CreateMentorshipRequest", screentest.ServerError())

	s, _ = press(s, screentest.Rune('2'))
	s, _ = press(s, screentest.Key(tea.KeyEnter))

	assert.True(t, s.toast.IsError)
	assert.NotEmpty(t, s.toast.Text)
}

func TestInsightUnavailableWithoutProvider(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	s := open(t, h, true)

	s, _ = press(s, screentest.Rune('4'))
	s, _ = press(s, screentest.Rune('g'))
	assert.Nil(t, s.insight)
	assert.Contains(t, s.View(100, 40), "Career insight is not configured.")
}

func TestInsightGenerateAndRegenerate(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	draft := advisor.Draft(FromPrediction(h.Env, h.Backend.Prediction).Report(), h.Tr)
	content, err := json.Marshal(draft)
	require.NoError(t, err)
	mock := llm.NewMockProvider(llm.MockResponse{Content: content}, llm.MockResponse{Content: content})
	h.Advisor = advisor.New(mock, h.Store.InsightRepo(), advisor.Options{ProviderName: "mock"}, zaptest.NewLogger(t))

	s := open(t, h, true)
	s, _ = press(s, screentest.Rune('4'))
	assert.Contains(t, s.View(100, 40), "Press G to generate")

	s, _ = press(s, screentest.Rune('g'))
	require.NotNil(t, s.insight)
	assert.Equal(t, draft, s.insight.Insight)
	assert.Contains(t, s.View(100, 40), "Fit: strong")

	s, _ = press(s, screentest.Rune('r'))
	assert.Equal(t, 2, mock.CallCount())
	assert.False(t, s.insight.Cached)
}

func TestStaleMessagesIgnored(t *testing.T) {
	h := screentest.NewEnv(t)
	s := FromPrediction(h.Env, h.Backend.Prediction)
	other := FromPrediction(h.Env, h.Backend.Prediction)

	s.Update(mentorsMsg{owner: other, mentors: []api.Mentor{{ID: 1}}})
	assert.False(t, s.mentorsLoaded)
	assert.Empty(t, s.mentors)
}

func TestTabsWrap(t *testing.T) {
	h := screentest.NewEnv(t)
	s := FromPrediction(h.Env, h.Backend.Prediction)

	s, _ = press(s, screentest.Key(tea.KeyLeft))
	assert.Equal(t, tabInsight, s.tab)
	s, _ = press(s, screentest.Key(tea.KeyRight))
	assert.Equal(t, tabOverview, s.tab)
}
