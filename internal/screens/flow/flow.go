// Package flow is the screen that walks the user through one stage's
// scenarios and submits the answers.
package flow

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/assessment"
	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/router"
	"github.com/yetria/yetria/internal/screen"
	"github.com/yetria/yetria/internal/screens/env"
	"github.com/yetria/yetria/internal/screens/summary"
	"github.com/yetria/yetria/internal/ui/components"
	"github.com/yetria/yetria/internal/ui/layout"
)

// OnComplete is called on the event loop once a stage has been submitted.
// The returned command decides where to go next.
type OnComplete func(stage int, res api.PredictionResult) tea.Cmd

// Screen drives an assessment.Flow. All Flow mutations happen in Update;
// network calls run in commands and report back with messages.
type Screen struct {
	env        *env.Env
	flow       *assessment.Flow
	options    components.OptionList
	onComplete OnComplete
	errMsg     string
	toast      components.Toast

	ctx    context.Context
	cancel context.CancelFunc
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.Disposer        = (*Screen)(nil)
)

// New creates the screen for stage. Without onComplete a finished stage
// replaces this screen with the results.
func New(e *env.Env, stage int, onComplete OnComplete) *Screen {
	ctx, cancel := context.WithCancel(context.Background())
	return &Screen{
		env:        e,
		flow:       assessment.NewFlow(stage),
		onComplete: onComplete,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (s *Screen) Init() tea.Cmd {
	ctx, svc, stage := s.ctx, s.env.Assessment, s.flow.Stage()
	return func() tea.Msg {
		scenarios, err := svc.FetchStage(ctx, stage)
		return scenariosMsg{owner: s, scenarios: scenarios, err: err}
	}
}

func (s *Screen) Title() string {
	return s.env.Tr.Tf(i18n.KeyFlowTitle, s.flow.Stage())
}

func (s *Screen) KeyHints() []layout.KeyHint {
	tr := s.env.Tr
	back := layout.KeyHint{Key: "Esc", Description: tr.T(i18n.KeyBack)}
	switch s.flow.Phase() {
	case assessment.PhaseCountdown:
		return []layout.KeyHint{{Key: "Enter", Description: tr.T(i18n.KeyFlowSkip)}, back}
	case assessment.PhaseAnswering:
		next := tr.T(i18n.KeyFlowNext)
		if s.flow.IsLast() {
			next = tr.T(i18n.KeyFlowFinish)
		}
		return []layout.KeyHint{
			{Key: "↑↓", Description: tr.T(i18n.KeyNavigate)},
			{Key: "A-D", Description: tr.T(i18n.KeySelect)},
			{Key: "Enter", Description: next},
			{Key: "←", Description: tr.T(i18n.KeyFlowPrevious)},
			back,
		}
	case assessment.PhaseFailed:
		return []layout.KeyHint{{Key: "R", Description: tr.T(i18n.KeyRetry)}, back}
	}
	return []layout.KeyHint{back}
}

// Dispose drops the attempt: outstanding requests are cancelled and their
// results ignored.
func (s *Screen) Dispose() { s.cancel() }

// Flow exposes the underlying state machine.
func (s *Screen) Flow() *assessment.Flow { return s.flow }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scenariosMsg:
		if msg.owner != s {
			return s, nil
		}
		return s.handleScenarios(msg)

	case countdownMsg:
		if msg.owner != s {
			return s, nil
		}
		counting := s.flow.Phase() == assessment.PhaseCountdown
		if s.flow.Tick() {
			return s, s.tick()
		}
		if counting {
			s.syncOptions()
		}
		return s, nil

	case submittedMsg:
		if msg.owner != s {
			return s, nil
		}
		return s.handleSubmitted(msg)

	case components.ToastExpiredMsg:
		s.toast.Update(msg)
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleScenarios(msg scenariosMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		s.flow.LoadFailed(msg.err)
		text, cmd := s.env.Failure(msg.err)
		s.errMsg = s.env.Tr.T(i18n.KeyErrLoadScenarios) + " " + text
		return s, cmd
	}
	if err := s.flow.Loaded(msg.scenarios); err != nil {
		s.env.Logger().Debug("ignoring scenarios", zap.Error(err))
		return s, nil
	}
	if s.flow.Phase() == assessment.PhaseCountdown {
		return s, s.tick()
	}
	return s, nil
}

func (s *Screen) handleSubmitted(msg submittedMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		s.flow.SubmitFailed(msg.err)
		text, cmd := s.env.Failure(msg.err)
		s.errMsg = s.env.Tr.T(i18n.KeyErrSubmit) + " " + text
		return s, cmd
	}
	if err := s.flow.Submitted(msg.result); err != nil {
		s.env.Logger().Debug("ignoring submission result", zap.Error(err))
		return s, nil
	}
	s.errMsg = ""
	if s.onComplete != nil {
		return s, s.onComplete(s.flow.Stage(), msg.result)
	}
	return s, router.Replace(summary.FromPrediction(s.env, msg.result))
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch s.flow.Phase() {
	case assessment.PhaseCountdown:
		if key == "enter" || key == "space" {
			s.flow.SkipCountdown()
			s.syncOptions()
		}
		return s, nil

	case assessment.PhaseAnswering:
		switch key {
		case "enter", "right":
			return s, s.next()
		case "left":
			if s.flow.Previous() {
				s.syncOptions()
			}
			return s, nil
		}
		var letter string
		s.options, letter = s.options.Update(msg)
		if letter != "" {
			if err := s.flow.Select(letter); err != nil {
				s.env.Logger().Debug("select", zap.String("letter", letter), zap.Error(err))
			}
		}
		return s, nil

	case assessment.PhaseFailed:
		if key == "r" && s.flow.Retry() {
			s.errMsg = ""
			return s, s.submit()
		}
	}
	return s, nil
}

func (s *Screen) next() tea.Cmd {
	err := s.flow.Next()
	if errors.Is(err, assessment.ErrNoSelection) {
		return s.toast.Show(s.env.Tr.T(i18n.KeyFlowSelectFirst), true)
	}
	if err != nil {
		s.env.Logger().Debug("next", zap.Error(err))
		return nil
	}
	if s.flow.Phase() == assessment.PhaseSubmitting {
		return s.submit()
	}
	s.syncOptions()
	return nil
}

func (s *Screen) submit() tea.Cmd {
	ctx, svc := s.ctx, s.env.Assessment
	stage, responses := s.flow.Stage(), s.flow.Responses()
	return func() tea.Msg {
		res, err := svc.SubmitStage(ctx, stage, responses)
		return submittedMsg{owner: s, result: res, err: err}
	}
}

func (s *Screen) tick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return countdownMsg{owner: s} })
}

// syncOptions rebuilds the option list for the current scenario.
func (s *Screen) syncOptions() {
	sc, ok := s.flow.Scenario()
	if !ok {
		s.options = components.OptionList{}
		return
	}
	opts := make([]components.Option, 0, len(sc.Options))
	for _, o := range sc.Options {
		opts = append(opts, components.Option{Letter: o.Letter, Text: o.Text})
	}
	s.options = components.NewOptionList(opts, s.flow.Selected())
}
