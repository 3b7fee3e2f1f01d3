// Package assessment holds the two controllers of the four-stage
// assessment: Flow walks one stage's scenarios, Journey tracks which stages
// are locked, active or completed.
package assessment

import (
	"errors"
	"fmt"

	"github.com/yetria/yetria/internal/api"
)

// CountdownSeconds is the pause before the first scenario of a stage.
const CountdownSeconds = 3

// Phase is the current phase of a stage attempt.
type Phase int

const (
	PhaseLoading    Phase = iota // Fetching the stage's scenarios
	PhaseLoadFailed              // Fetch failed; the user can only go back
	PhaseEmpty                   // The stage has no scenarios
	PhaseCountdown               // Counting down before the first scenario
	PhaseAnswering               // Showing scenario Index()
	PhaseSubmitting              // Responses sent, waiting for the result
	PhaseFailed                  // Submission failed; Retry is allowed
	PhaseComplete                // Result received
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoadFailed:
		return "load-failed"
	case PhaseEmpty:
		return "empty"
	case PhaseCountdown:
		return "countdown"
	case PhaseAnswering:
		return "answering"
	case PhaseSubmitting:
		return "submitting"
	case PhaseFailed:
		return "failed"
	case PhaseComplete:
		return "complete"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	ErrNoSelection   = errors.New("assessment: no option selected")
	ErrUnknownOption = errors.New("assessment: option not offered by this scenario")
)

// PhaseError is returned when an action is not valid in the current phase.
type PhaseError struct {
	Action string
	Phase  Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("assessment: cannot %s while %s", e.Action, e.Phase)
}

// Flow is the state machine of one stage attempt. It is not safe for
// concurrent use; the owning screen drives it from a single goroutine.
//
// While answering scenario i, the answer buffer holds exactly the answers of
// scenarios [0, i).
type Flow struct {
	stage     int
	phase     Phase
	scenarios []api.Scenario
	index     int
	selected  string
	answers   map[int]string // scenario id -> option letter
	countdown int
	result    *api.PredictionResult
	err       error
}

// NewFlow starts an attempt at stage in the loading phase.
func NewFlow(stage int) *Flow {
	return &Flow{stage: stage, phase: PhaseLoading, answers: make(map[int]string)}
}

func (f *Flow) Stage() int       { return f.stage }
func (f *Flow) Phase() Phase     { return f.phase }
func (f *Flow) Index() int       { return f.index }
func (f *Flow) Total() int       { return len(f.scenarios) }
func (f *Flow) Selected() string { return f.selected }
func (f *Flow) Countdown() int   { return f.countdown }
func (f *Flow) Err() error       { return f.err }
func (f *Flow) AnswerCount() int { return len(f.answers) }
func (f *Flow) IsLast() bool     { return f.index == len(f.scenarios)-1 }

// Scenario returns the scenario being answered.
func (f *Flow) Scenario() (api.Scenario, bool) {
	if f.index < 0 || f.index >= len(f.scenarios) {
		return api.Scenario{}, false
	}
	return f.scenarios[f.index], true
}

// Result returns the prediction once the flow is complete.
func (f *Flow) Result() (api.PredictionResult, bool) {
	if f.result == nil {
		return api.PredictionResult{}, false
	}
	return *f.result, true
}

// Loaded installs the fetched scenarios. An empty stage ends in PhaseEmpty.
func (f *Flow) Loaded(scenarios []api.Scenario) error {
	if f.phase != PhaseLoading {
		return &PhaseError{Action: "load", Phase: f.phase}
	}
	if len(scenarios) == 0 {
		f.phase = PhaseEmpty
		return nil
	}
	f.scenarios = append([]api.Scenario(nil), scenarios...)
	f.countdown = CountdownSeconds
	f.phase = PhaseCountdown
	return nil
}

// LoadFailed records a failed fetch.
func (f *Flow) LoadFailed(err error) {
	if f.phase != PhaseLoading {
		return
	}
	f.err = err
	f.phase = PhaseLoadFailed
}

// Tick advances the countdown by one second and reports whether the
// countdown is still running afterwards.
func (f *Flow) Tick() bool {
	if f.phase != PhaseCountdown {
		return false
	}
	f.countdown--
	if f.countdown <= 0 {
		f.countdown = 0
		f.phase = PhaseAnswering
		f.index = 0
		return false
	}
	return true
}

// SkipCountdown jumps straight to the first scenario.
func (f *Flow) SkipCountdown() {
	if f.phase != PhaseCountdown {
		return
	}
	f.countdown = 0
	f.phase = PhaseAnswering
	f.index = 0
}

// Select sets the local selection for the current scenario. It does not
// touch the answer buffer.
func (f *Flow) Select(letter string) error {
	if f.phase != PhaseAnswering {
		return &PhaseError{Action: "select", Phase: f.phase}
	}
	if !f.scenarios[f.index].HasOption(letter) {
		return ErrUnknownOption
	}
	f.selected = letter
	return nil
}

// Next records the selection and moves to the next scenario. After the
// last scenario the flow enters PhaseSubmitting.
func (f *Flow) Next() error {
	if f.phase != PhaseAnswering {
		return &PhaseError{Action: "advance", Phase: f.phase}
	}
	if f.selected == "" {
		return ErrNoSelection
	}
	f.answers[f.scenarios[f.index].ID] = f.selected
	f.selected = ""
	if f.index == len(f.scenarios)-1 {
		f.phase = PhaseSubmitting
		return nil
	}
	f.index++
	return nil
}

// Previous moves back one scenario, taking its answer out of the buffer and
// restoring it as the current selection. At the first scenario it does
// nothing and returns false.
func (f *Flow) Previous() bool {
	if f.phase != PhaseAnswering || f.index == 0 {
		return false
	}
	f.index--
	id := f.scenarios[f.index].ID
	f.selected = f.answers[id]
	delete(f.answers, id)
	return true
}

// Responses returns the buffered answers in scenario order.
func (f *Flow) Responses() []api.Response {
	out := make([]api.Response, 0, len(f.answers))
	seen := make(map[int]bool, len(f.answers))
	for _, sc := range f.scenarios {
		letter, ok := f.answers[sc.ID]
		if !ok || seen[sc.ID] {
			continue
		}
		seen[sc.ID] = true
		out = append(out, api.Response{ScenarioID: sc.ID, OptionLetter: letter})
	}
	return out
}

// Submitted records a successful submission.
func (f *Flow) Submitted(res api.PredictionResult) error {
	if f.phase != PhaseSubmitting {
		return &PhaseError{Action: "complete", Phase: f.phase}
	}
	f.result = &res
	f.err = nil
	f.phase = PhaseComplete
	return nil
}

// SubmitFailed records a failed submission. The answers are kept for Retry.
func (f *Flow) SubmitFailed(err error) {
	if f.phase != PhaseSubmitting {
		return
	}
	f.err = err
	f.phase = PhaseFailed
}

// Retry re-enters PhaseSubmitting after a failure.
func (f *Flow) Retry() bool {
	if f.phase != PhaseFailed {
		return false
	}
	f.err = nil
	f.phase = PhaseSubmitting
	return true
}
