package assessment

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yetria/yetria/internal/api"
)

func scenario(id int) api.Scenario {
	return api.Scenario{
		ID:             id,
		Text:           "Scenario text",
		CompetencyName: "Analitik Düşünme",
		Options: []api.Option{
			{Letter: "A", Text: "first"},
			{Letter: "B", Text: "second"},
			{Letter: "C", Text: "third"},
		},
	}
}

func scenarios(ids ...int) []api.Scenario {
	out := make([]api.Scenario, len(ids))
	for i, id := range ids {
		out[i] = scenario(id)
	}
	return out
}

// answering returns a flow past the countdown on its first scenario.
func answering(t *testing.T, ids ...int) *Flow {
	t.Helper()
	f := NewFlow(1)
	require.NoError(t, f.Loaded(scenarios(ids...)))
	f.SkipCountdown()
	require.Equal(t, PhaseAnswering, f.Phase())
	return f
}

func answer(t *testing.T, f *Flow, letter string) {
	t.Helper()
	require.NoError(t, f.Select(letter))
	require.NoError(t, f.Next())
}

func TestFlowCountdown(t *testing.T) {
	f := NewFlow(2)
	assert.Equal(t, PhaseLoading, f.Phase())
	require.NoError(t, f.Loaded(scenarios(1, 2)))
	assert.Equal(t, PhaseCountdown, f.Phase())
	assert.Equal(t, CountdownSeconds, f.Countdown())

	for i := CountdownSeconds - 1; i > 0; i-- {
		assert.True(t, f.Tick())
		assert.Equal(t, i, f.Countdown())
	}
	assert.False(t, f.Tick())
	assert.Equal(t, PhaseAnswering, f.Phase())
	assert.Equal(t, 0, f.Index())
	assert.False(t, f.Tick(), "tick outside countdown is a no-op")
}

func TestFlowEmptyStage(t *testing.T) {
	f := NewFlow(3)
	require.NoError(t, f.Loaded(nil))
	assert.Equal(t, PhaseEmpty, f.Phase())
	_, ok := f.Scenario()
	assert.False(t, ok)
}

func TestFlowLoadFailed(t *testing.T) {
	f := NewFlow(1)
	boom := errors.New("boom")
	f.LoadFailed(boom)
	assert.Equal(t, PhaseLoadFailed, f.Phase())
	assert.ErrorIs(t, f.Err(), boom)

	var perr *PhaseError
	assert.ErrorAs(t, f.Loaded(scenarios(1)), &perr)
}

func TestFlowSelectValidatesOption(t *testing.T) {
	f := answering(t, 10)
	assert.ErrorIs(t, f.Select("Z"), ErrUnknownOption)
	assert.Empty(t, f.Selected())
	require.NoError(t, f.Select("B"))
	assert.Equal(t, "B", f.Selected())
	assert.Zero(t, f.AnswerCount(), "selection does not touch the buffer")
}

func TestFlowNextRequiresSelection(t *testing.T) {
	f := answering(t, 10, 11)
	assert.ErrorIs(t, f.Next(), ErrNoSelection)
	assert.Equal(t, 0, f.Index())
}

func TestFlowBufferHoldsAnswersBeforeIndex(t *testing.T) {
	f := answering(t, 10, 11, 12, 13)
	answer(t, f, "A")
	answer(t, f, "B")
	answer(t, f, "C")
	assert.Equal(t, 3, f.Index())
	assert.Equal(t, f.Index(), f.AnswerCount())
	assert.True(t, f.IsLast())

	assert.True(t, f.Previous())
	assert.Equal(t, 2, f.Index())
	assert.Equal(t, 2, f.AnswerCount())
	assert.Equal(t, "C", f.Selected(), "previous answer is restored as selection")

	assert.True(t, f.Previous())
	assert.True(t, f.Previous())
	assert.Equal(t, 0, f.Index())
	assert.Zero(t, f.AnswerCount())
	assert.False(t, f.Previous(), "no-op on the first scenario")
	assert.Equal(t, "A", f.Selected())
}

func TestFlowChangedAnswerReplacesOld(t *testing.T) {
	f := answering(t, 10, 11)
	answer(t, f, "A")
	require.True(t, f.Previous())
	answer(t, f, "C")
	answer(t, f, "B")

	assert.Equal(t, PhaseSubmitting, f.Phase())
	want := []api.Response{
		{ScenarioID: 10, OptionLetter: "C"},
		{ScenarioID: 11, OptionLetter: "B"},
	}
	if diff := cmp.Diff(want, f.Responses()); diff != "" {
		t.Errorf("responses mismatch (-want +got):\n%s", diff)
	}
}

func TestFlowResponsesFollowScenarioOrder(t *testing.T) {
	f := answering(t, 30, 5, 17)
	answer(t, f, "B")
	answer(t, f, "A")
	answer(t, f, "C")

	got := f.Responses()
	require.Len(t, got, 3)
	assert.Equal(t, []int{30, 5, 17}, []int{got[0].ScenarioID, got[1].ScenarioID, got[2].ScenarioID})
}

func TestFlowSubmitFailureAndRetry(t *testing.T) {
	f := answering(t, 1)
	assert.False(t, f.Retry())
	answer(t, f, "A")

	f.SubmitFailed(errors.New("offline"))
	assert.Equal(t, PhaseFailed, f.Phase())
	assert.Error(t, f.Err())
	assert.Len(t, f.Responses(), 1, "answers survive a failed submit")

	assert.True(t, f.Retry())
	assert.Equal(t, PhaseSubmitting, f.Phase())
	assert.NoError(t, f.Err())

	res := api.PredictionResult{WinningOccupation: "Yazılım Geliştirici"}
	require.NoError(t, f.Submitted(res))
	assert.Equal(t, PhaseComplete, f.Phase())
	got, ok := f.Result()
	require.True(t, ok)
	assert.Equal(t, "Yazılım Geliştirici", got.WinningOccupation)
}

func TestFlowActionsRejectedOutsideAnswering(t *testing.T) {
	f := NewFlow(1)
	var perr *PhaseError
	assert.ErrorAs(t, f.Select("A"), &perr)
	assert.Equal(t, "select", perr.Action)
	assert.ErrorAs(t, f.Next(), &perr)
	assert.False(t, f.Previous())
	assert.ErrorAs(t, f.Submitted(api.PredictionResult{}), &perr)
	assert.Contains(t, perr.Error(), "loading")
}
