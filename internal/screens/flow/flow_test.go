package flow

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/assessment"
	"github.com/yetria/yetria/internal/router"
	"github.com/yetria/yetria/internal/screens/env"
	"github.com/yetria/yetria/internal/screens/screentest"
	"github.com/yetria/yetria/internal/screens/summary"
	"github.com/yetria/yetria/internal/store"
)

type completion struct {
	stage  int
	result api.PredictionResult
}

// doneMsg is what the test OnComplete emits.
type doneMsg struct{}

func start(t *testing.T, stage int, onComplete OnComplete) (*screentest.Harness, *Screen) {
	t.Helper()
	h := screentest.NewEnv(t)
	h.SignIn(t)
	s := New(h.Env, stage, onComplete)
	next, _ := screentest.Settle(s, s.Init(), screentest.Outbound)
	return h, next.(*Screen)
}

func keep(msg tea.Msg) bool {
	if _, ok := msg.(doneMsg); ok {
		return true
	}
	return screentest.Outbound(msg)
}

func press(s *Screen, msg tea.KeyPressMsg) (*Screen, []tea.Msg) {
	next, cmd := s.Update(msg)
	next, out := screentest.Settle(next, cmd, keep)
	return next.(*Screen), out
}

func TestCountdownTicksIntoFirstScenario(t *testing.T) {
	_, s := start(t, 1, nil)
	require.Equal(t, assessment.PhaseCountdown, s.Flow().Phase())
	assert.Contains(t, s.View(100, 40), "Starting in 3...")

	for i := 0; i < assessment.CountdownSeconds; i++ {
		s.Update(countdownMsg{owner: s})
	}
	assert.Equal(t, assessment.PhaseAnswering, s.Flow().Phase())
	assert.Contains(t, s.View(100, 40), "Stage 1 situation 11")
	assert.Contains(t, s.View(100, 40), "Scenario 1 of 2")
}

func TestTickAfterSkippedCountdownKeepsCursor(t *testing.T) {
	_, s := start(t, 1, nil)
	s, _ = press(s, screentest.Key(tea.KeyEnter))
	require.Equal(t, assessment.PhaseAnswering, s.Flow().Phase())
	s, _ = press(s, screentest.Key(tea.KeyDown))
	require.Equal(t, 1, s.options.Cursor)

	s.Update(countdownMsg{owner: s})

	assert.Equal(t, assessment.PhaseAnswering, s.Flow().Phase())
	assert.Equal(t, 1, s.options.Cursor)
	assert.Equal(t, 0, s.Flow().Index())
}

func TestCompleteStageCallsOnComplete(t *testing.T) {
	var got []completion
	onComplete := func(stage int, res api.PredictionResult) tea.Cmd {
		got = append(got, completion{stage, res})
		return func() tea.Msg { return doneMsg{} }
	}
	h, s := start(t, 2, onComplete)

	s, _ = press(s, screentest.Key(tea.KeyEnter))
	s, _ = press(s, screentest.Rune('a'))
	s, _ = press(s, screentest.Key(tea.KeyEnter))
	s, _ = press(s, screentest.Rune('B'))
	s, out := press(s, screentest.Key(tea.KeyEnter))

	_, ok := screentest.Find[doneMsg](out)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].stage)
	assert.Equal(t, "Veri Bilimci", got[0].result.WinningOccupation)
	assert.Equal(t, assessment.PhaseComplete, s.Flow().Phase())

	require.Len(t, h.Backend.Submitted, 1)
	assert.Equal(t, []api.Response{
		{ScenarioID: 21, OptionLetter: "A"},
		{ScenarioID: 22, OptionLetter: "B"},
	}, h.Backend.Submitted[0])
}

func TestWithoutOnCompleteShowsResults(t *testing.T) {
	_, s := start(t, 4, nil)

	s, _ = press(s, screentest.Key(tea.KeyEnter))
	s, _ = press(s, screentest.Rune('a'))
	s, _ = press(s, screentest.Key(tea.KeyEnter))
	s, _ = press(s, screentest.Rune('a'))
	_, out := press(s, screentest.Key(tea.KeyEnter))

	replace, ok := screentest.Find[router.ReplaceScreenMsg](out)
	require.True(t, ok)
	res, ok := replace.Screen.(*summary.Screen)
	require.True(t, ok)
	assert.Equal(t, "Veri Bilimci", res.Report().Winner)
}

func TestNextWithoutSelectionWarns(t *testing.T) {
	_, s := start(t, 1, nil)
	s, _ = press(s, screentest.Key(tea.KeyEnter))

	s, _ = press(s, screentest.Key(tea.KeyEnter))
	assert.Equal(t, 0, s.Flow().Index())
	assert.True(t, s.toast.IsError)
	assert.Equal(t, "Choose an option first.", s.toast.Text)
}

func TestPreviousRestoresSelection(t *testing.T) {
	_, s := start(t, 1, nil)
	s, _ = press(s, screentest.Key(tea.KeyEnter))
	s, _ = press(s, screentest.Rune('b'))
	s, _ = press(s, screentest.Key(tea.KeyRight))
	require.Equal(t, 1, s.Flow().Index())

	s, _ = press(s, screentest.Key(tea.KeyLeft))
	assert.Equal(t, 0, s.Flow().Index())
	assert.Equal(t, "B", s.Flow().Selected())
	assert.Equal(t, "B", s.options.Chosen)
	assert.Zero(t, s.Flow().AnswerCount())

	s, _ = press(s, screentest.Key(tea.KeyLeft))
	assert.Equal(t, 0, s.Flow().Index(), "previous on the first scenario is a no-op")
}

func TestArrowsAndSpaceChoose(t *testing.T) {
	_, s := start(t, 1, nil)
	s, _ = press(s, screentest.Key(tea.KeyEnter))

	s, _ = press(s, screentest.Key(tea.KeyDown))
	s, _ = press(s, screentest.Key(tea.KeySpace))
	assert.Equal(t, "B", s.Flow().Selected())
}

func TestLoadFailure(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	h.Backend.SetFail("Scenarios", screentest.ServerError())

	s := New(h.Env, 1, nil)
	next, _ := screentest.Settle(s, s.Init(), screentest.Outbound)
	s = next.(*Screen)

	assert.Equal(t, assessment.PhaseLoadFailed, s.Flow().Phase())
	assert.Contains(t, s.errMsg, "Scenarios could not be loaded.")
	assert.Contains(t, s.View(100, 40), "Press Esc to go back.")
}

func TestEmptyStage(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	h.Backend.Stages[3] = nil

	s := New(h.Env, 3, nil)
	next, _ := screentest.Settle(s, s.Init(), screentest.Outbound)
	s = next.(*Screen)

	assert.Equal(t, assessment.PhaseEmpty, s.Flow().Phase())
	assert.Contains(t, s.View(100, 40), "There are no scenarios for this stage yet.")
}

func TestSubmitFailureAndRetry(t *testing.T) {
	h, s := start(t, 1, nil)
	h.Backend.SetFail("SubmitResponses", screentest.ServerError())

	s, _ = press(s, screentest.Key(tea.KeyEnter))
	s, _ = press(s, screentest.Rune('a'))
	s, _ = press(s, screentest.Key(tea.KeyEnter))
	s, _ = press(s, screentest.Rune('a'))
	s, _ = press(s, screentest.Key(tea.KeyEnter))

	require.Equal(t, assessment.PhaseFailed, s.Flow().Phase())
	assert.Contains(t, s.errMsg, "Your answers could not be submitted.")

	h.Backend.SetFail("SubmitResponses", nil)
	_, out := press(s, screentest.Rune('r'))
	_, ok := screentest.Find[router.ReplaceScreenMsg](out)
	assert.True(t, ok)

	events, err := h.Events.Submissions(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].Success, "newest first")
	assert.False(t, events[1].Success)
	assert.Equal(t, "server", events[1].ErrorKind)
}

func TestExpiredSessionOnLoad(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	h.Backend.SetFail("Scenarios", screentest.Unauthenticated())

	s := New(h.Env, 1, nil)
	_, out := screentest.Settle(s, s.Init(), screentest.Outbound)

	_, ok := screentest.Find[env.SessionExpiredMsg](out)
	assert.True(t, ok)
	assert.False(t, h.Identity.IsAuthenticated())
}

func TestDisposedScreenDropsLateResults(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	s := New(h.Env, 1, nil)
	s.Dispose()

	assert.Error(t, s.ctx.Err())
	other := New(h.Env, 1, nil)
	s.Update(scenariosMsg{owner: other, scenarios: h.Backend.Stages[1]})
	assert.Equal(t, assessment.PhaseLoading, s.Flow().Phase())
}
