package stages

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/assessment"
	"github.com/yetria/yetria/internal/router"
	"github.com/yetria/yetria/internal/screens/flow"
	"github.com/yetria/yetria/internal/screens/screentest"
	"github.com/yetria/yetria/internal/screens/summary"
)

func journeyAt(t *testing.T, completed ...int) *assessment.Journey {
	t.Helper()
	j := assessment.NewJourney()
	current := 1
	if len(completed) > 0 {
		current = completed[len(completed)-1] + 1
	}
	j.Reconcile(api.Progress{CompletedStages: completed, CurrentStage: min(current, assessment.StageCount)})
	return j
}

func press(s *Screen, msg tea.KeyPressMsg) (*Screen, []tea.Msg) {
	next, cmd := s.Update(msg)
	next, out := screentest.Settle(next, cmd, screentest.Outbound)
	return next.(*Screen), out
}

func TestCursorStartsOnActiveStage(t *testing.T) {
	h := screentest.NewEnv(t)
	s := New(h.Env, journeyAt(t, 1, 2), false)
	assert.Equal(t, 2, s.Cursor())

	view := s.View(100, 30)
	assert.Contains(t, view, "Stage 1")
	assert.Contains(t, view, "completed")
	assert.Contains(t, view, "ready")
	assert.Contains(t, view, "locked")
	assert.Contains(t, view, "2/4")
}

func TestEnterOnActiveStagePushesFlow(t *testing.T) {
	h := screentest.NewEnv(t)
	s := New(h.Env, journeyAt(t), false)

	_, out := press(s, screentest.Key(tea.KeyEnter))
	push, ok := screentest.Find[router.PushScreenMsg](out)
	require.True(t, ok)
	f, ok := push.Screen.(*flow.Screen)
	require.True(t, ok)
	assert.Equal(t, 1, f.Flow().Stage())
}

func TestLockedAndCompletedStagesDoNotOpen(t *testing.T) {
	h := screentest.NewEnv(t)
	s := New(h.Env, journeyAt(t, 1), false)

	s, out := press(s, screentest.Key(tea.KeyDown))
	s, out = press(s, screentest.Key(tea.KeyEnter))
	assert.Empty(t, out)
	assert.Equal(t, "Complete the earlier stages first.", s.toast.Text)

	s, _ = press(s, screentest.Rune('1'))
	_, out = press(s, screentest.Key(tea.KeyEnter))
	assert.Empty(t, out)
	assert.Equal(t, "completed", s.toast.Text)
}

func TestCursorStaysInRange(t *testing.T) {
	h := screentest.NewEnv(t)
	s := New(h.Env, journeyAt(t), false)

	s, _ = press(s, screentest.Key(tea.KeyUp))
	assert.Equal(t, 0, s.Cursor())
	for i := 0; i < 6; i++ {
		s, _ = press(s, screentest.Key(tea.KeyDown))
	}
	assert.Equal(t, assessment.StageCount-1, s.Cursor())
}

func TestCompletionPopsBackWithToast(t *testing.T) {
	h := screentest.NewEnv(t)
	j := journeyAt(t)
	s := New(h.Env, j, false)

	out := screentest.Run(s.completed(1, h.Backend.Prediction))
	_, ok := screentest.Find[router.PopScreenMsg](out)
	assert.True(t, ok)
	assert.Equal(t, []int{1}, j.Completed())
	assert.Equal(t, 1, s.Cursor(), "cursor follows the newly active stage")
	assert.Equal(t, "Stage 1 completed!", s.toast.Text)
}

func TestLastCompletionUnwindsToResults(t *testing.T) {
	h := screentest.NewEnv(t)
	j := journeyAt(t, 1, 2, 3)
	s := New(h.Env, j, false)

	out := screentest.Run(s.completed(4, h.Backend.Prediction))
	replace, ok := screentest.Find[router.ReplaceScreenMsg](out)
	require.True(t, ok)
	assert.Equal(t, 2, replace.Levels)
	res, ok := replace.Screen.(*summary.Screen)
	require.True(t, ok)
	assert.Equal(t, "Veri Bilimci", res.Report().Winner)
	assert.True(t, j.AllComplete())
}

func TestCompletedJourneyShowsDone(t *testing.T) {
	h := screentest.NewEnv(t)
	s := New(h.Env, journeyAt(t, 1, 2, 3, 4), true)
	view := s.View(100, 30)
	assert.Contains(t, view, "All stages are complete.")
	assert.Contains(t, view, "Progress could not be loaded.")
}
