package flow

import "github.com/yetria/yetria/internal/api"

// scenariosMsg carries the fetched scenarios of the stage.
type scenariosMsg struct {
	owner     *Screen
	scenarios []api.Scenario
	err       error
}

// countdownMsg is sent every second while the countdown runs.
type countdownMsg struct {
	owner *Screen
}

// submittedMsg carries the outcome of a submission.
type submittedMsg struct {
	owner  *Screen
	result api.PredictionResult
	err    error
}
