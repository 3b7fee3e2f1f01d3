package assessment

import (
	"sort"

	"github.com/yetria/yetria/internal/api"
)

// StageCount is the number of stages in the assessment.
const StageCount = 4

// StageState is the display state of one stage.
type StageState int

const (
	StageLocked StageState = iota
	StageActive
	StageCompleted
)

func (s StageState) String() string {
	switch s {
	case StageActive:
		return "active"
	case StageCompleted:
		return "completed"
	default:
		return "locked"
	}
}

// Transition is the navigation a journey change asks for.
type Transition int

const (
	TransitionNone Transition = iota
	ToStageSelect
	ToResults
)

func (t Transition) String() string {
	switch t {
	case ToStageSelect:
		return "stage-select"
	case ToResults:
		return "results"
	default:
		return "none"
	}
}

// Journey tracks progress through the stages. Completed stages only grow.
// The move to results is emitted at most once per Journey, whichever path
// (a stage completion or a reconcile) reaches four completed stages first.
type Journey struct {
	completed    map[int]bool
	current      int
	resultsFired bool
}

// NewJourney returns a journey with nothing completed and stage 1 active.
func NewJourney() *Journey {
	return &Journey{completed: make(map[int]bool), current: 1}
}

// StageState reports the state of stage id. Completed wins over active.
func (j *Journey) StageState(id int) StageState {
	switch {
	case j.completed[id]:
		return StageCompleted
	case id == j.current:
		return StageActive
	default:
		return StageLocked
	}
}

// States returns the state of every stage, index 0 being stage 1.
func (j *Journey) States() [StageCount]StageState {
	var out [StageCount]StageState
	for i := range out {
		out[i] = j.StageState(i + 1)
	}
	return out
}

// SelectStage maps a zero-based list index to a stage number. Only the
// active stage can be selected.
func (j *Journey) SelectStage(index int) (int, bool) {
	stage := index + 1
	if stage < 1 || stage > StageCount || j.StageState(stage) != StageActive {
		return 0, false
	}
	return stage, true
}

// Current returns the active stage number.
func (j *Journey) Current() int { return j.current }

// Completed returns the completed stages in ascending order.
func (j *Journey) Completed() []int {
	out := make([]int, 0, len(j.completed))
	for id := range j.completed {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// AllComplete reports whether every stage is completed.
func (j *Journey) AllComplete() bool {
	return len(j.completed) == StageCount
}

// Complete marks stage as done and returns where to go next: back to stage
// selection, or to results once all stages are complete.
func (j *Journey) Complete(stage int) Transition {
	if stage < 1 || stage > StageCount {
		return TransitionNone
	}
	j.completed[stage] = true
	j.advance()
	if t := j.resultsOnce(); t != TransitionNone {
		return t
	}
	if j.AllComplete() {
		return TransitionNone
	}
	return ToStageSelect
}

// Reconcile merges the server's progress into the journey. It returns
// ToResults the first time the merged state has every stage complete.
func (j *Journey) Reconcile(p api.Progress) Transition {
	for _, id := range p.CompletedStages {
		if id >= 1 && id <= StageCount {
			j.completed[id] = true
		}
	}
	if p.CurrentStage >= 1 && p.CurrentStage <= StageCount {
		j.current = p.CurrentStage
	}
	j.advance()
	return j.resultsOnce()
}

// Fallback is used when progress could not be fetched: nothing completed,
// stage 1 active. It never emits a transition.
func (j *Journey) Fallback() {
	j.completed = make(map[int]bool)
	j.current = 1
}

// advance moves current off a completed stage to the first open one. When
// everything is complete, current stays on the last stage.
func (j *Journey) advance() {
	if !j.completed[j.current] {
		return
	}
	for id := 1; id <= StageCount; id++ {
		if !j.completed[id] {
			j.current = id
			return
		}
	}
	j.current = StageCount
}

func (j *Journey) resultsOnce() Transition {
	if !j.AllComplete() || j.resultsFired {
		return TransitionNone
	}
	j.resultsFired = true
	return ToResults
}
