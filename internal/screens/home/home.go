// Package home is the main menu shown after sign-in.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/assessment"
	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/router"
	"github.com/yetria/yetria/internal/screen"
	"github.com/yetria/yetria/internal/screens/env"
	"github.com/yetria/yetria/internal/screens/history"
	"github.com/yetria/yetria/internal/screens/requests"
	"github.com/yetria/yetria/internal/screens/stages"
	"github.com/yetria/yetria/internal/screens/summary"
	"github.com/yetria/yetria/internal/store"
	"github.com/yetria/yetria/internal/ui/components"
	"github.com/yetria/yetria/internal/ui/layout"
)

// Menu positions.
const (
	itemAssessment = iota
	itemResults
	itemRequests
	itemHistory
	itemLanguage
	itemSignOut
	itemExit
)

type bootMsg struct {
	owner *Screen
	boot  *assessment.Boot
	err   error
}

// Screen loads the user's journey on start and offers the main actions.
type Screen struct {
	env  *env.Env
	menu components.Menu

	journey *assessment.Journey
	status  *api.AssessmentStatus
	offline bool
	booted  bool
	booting bool
	errMsg  string

	ctx    context.Context
	cancel context.CancelFunc
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.Disposer        = (*Screen)(nil)
)

func New(e *env.Env) *Screen {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Screen{env: e, ctx: ctx, cancel: cancel}
	s.menu = components.NewMenu(s.items())
	return s
}

// Init bootstraps the journey from the server.
func (s *Screen) Init() tea.Cmd { return s.bootstrap() }

func (s *Screen) Title() string { return s.env.Tr.T(i18n.KeyAppName) }

func (s *Screen) KeyHints() []layout.KeyHint {
	tr := s.env.Tr
	return []layout.KeyHint{
		{Key: "↑↓", Description: tr.T(i18n.KeyNavigate)},
		{Key: "Enter", Description: tr.T(i18n.KeySelect)},
		{Key: "R", Description: tr.T(i18n.KeyRefresh)},
		{Key: "L", Description: tr.T(i18n.KeyLanguage)},
		{Key: "Q", Description: tr.T(i18n.KeyQuit)},
	}
}

func (s *Screen) Dispose() { s.cancel() }

// Journey returns the loaded journey, or nil before the first boot.
func (s *Screen) Journey() *assessment.Journey { return s.journey }

func (s *Screen) bootstrap() tea.Cmd {
	s.booting = true
	ctx, svc := s.ctx, s.env.Assessment
	return func() tea.Msg {
		boot, err := svc.Bootstrap(ctx)
		return bootMsg{owner: s, boot: boot, err: err}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bootMsg:
		if msg.owner != s {
			return s, nil
		}
		return s.handleBoot(msg)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "r":
			if !s.booting {
				s.errMsg = ""
				return s, s.bootstrap()
			}
			return s, nil
		case "l":
			return s, s.toggleLanguage()
		case "q":
			return s, tea.Quit
		}
	}

	s.menu.SetItems(s.items())
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) handleBoot(msg bootMsg) (screen.Screen, tea.Cmd) {
	s.booting = false
	if msg.err != nil {
		text, cmd := s.env.Failure(msg.err)
		s.errMsg = text
		return s, cmd
	}
	first := !s.booted
	s.booted = true
	s.errMsg = ""
	transition := msg.boot.Transition
	switch {
	case first || s.journey == nil:
		s.journey = msg.boot.Journey
	case msg.boot.Progress != nil:
		// Refresh: merge into the journey the stage screen shares.
		transition = s.journey.Reconcile(*msg.boot.Progress)
	default:
		// The silent fallback is for the first load only; a failed
		// refresh keeps what is already known.
		transition = assessment.TransitionNone
	}
	if msg.boot.Status != nil || first {
		s.status = msg.boot.Status
	}
	s.offline = msg.boot.Offline
	s.menu.SetItems(s.items())
	if first {
		s.menu.Selected = itemAssessment
	}

	s.env.Logger().Info("journey loaded",
		zap.Ints("completed", s.journey.Completed()),
		zap.Int("current", s.journey.Current()),
		zap.Bool("offline", s.offline),
		zap.Stringer("transition", transition),
	)
	if transition == assessment.ToResults {
		return s, router.Push(summary.New(s.env, nil))
	}
	return s, nil
}

// resultsAvailable reports whether the results entry is enabled.
func (s *Screen) resultsAvailable() bool {
	if s.status != nil && s.status.CanViewResults {
		return true
	}
	return s.journey != nil && s.journey.AllComplete()
}

func (s *Screen) items() []components.MenuItem {
	tr := s.env.Tr
	start := tr.T(i18n.KeyMenuStartAssessment)
	if s.journey != nil && len(s.journey.Completed()) > 0 {
		start = tr.T(i18n.KeyMenuContinueAssessment)
	}
	return []components.MenuItem{
		itemAssessment: {Label: start, Disabled: s.journey == nil, Action: func() tea.Cmd {
			return router.Push(stages.New(s.env, s.journey, s.offline))
		}},
		itemResults: {Label: tr.T(i18n.KeyMenuResults), Disabled: !s.resultsAvailable(), Action: func() tea.Cmd {
			return router.Push(summary.New(s.env, nil))
		}},
		itemRequests: {Label: tr.T(i18n.KeyMenuRequests), Action: func() tea.Cmd {
			return router.Push(requests.New(s.env))
		}},
		itemHistory: {Label: tr.T(i18n.KeyMenuHistory), Action: func() tea.Cmd {
			return router.Push(history.New(s.env))
		}},
		itemLanguage: {Label: tr.T(i18n.KeyMenuLanguage), Action: s.toggleLanguage},
		itemSignOut:  {Label: tr.T(i18n.KeyMenuSignOut), Action: s.signOut},
		itemExit: {Label: tr.T(i18n.KeyMenuExit), Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

// toggleLanguage switches the display language and persists the choice.
func (s *Screen) toggleLanguage() tea.Cmd {
	loc := s.env.Tr.Toggle()
	s.menu.SetItems(s.items())
	s.env.Logger().Info("language changed", zap.String("locale", string(loc)))
	local, log := s.env.Local, s.env.Logger()
	if local == nil {
		return nil
	}
	return func() tea.Msg {
		if err := local.Set(context.Background(), store.KeyLocale, string(loc)); err != nil {
			log.Warn("persist locale", zap.Error(err))
		}
		return nil
	}
}

func (s *Screen) signOut() tea.Cmd {
	s.env.Identity.SignOut()
	return func() tea.Msg { return env.SignedOutMsg{} }
}

func (s *Screen) mascot() MascotVariant {
	switch {
	case s.offline:
		return MascotAlert
	case s.journey != nil && s.journey.AllComplete():
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

func (s *Screen) View(width, height int) string {
	tr := s.env.Tr
	// height is the content area; add back the header and footer.
	compact := height+8 < 30 || width < 100
	cw := contentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, renderMascotBox(s.mascot(), cw))
	}

	var status []string
	if u, ok := s.env.Identity.User(); ok {
		status = append(status, tr.Tf(i18n.KeyHomeGreeting, u.Name))
	}
	switch {
	case s.journey != nil:
		status = append(status, tr.Tf(i18n.KeyHomeProgress, len(s.journey.Completed()), assessment.StageCount))
	case s.errMsg == "":
		status = append(status, tr.T(i18n.KeyLoading))
	}
	if s.status != nil && s.status.RecommendedOccupation != "" {
		status = append(status, "★ "+s.status.RecommendedOccupation)
	}
	sections = append(sections, renderStatusBar(status, cw))

	if s.errMsg != "" {
		sections = append(sections, renderNote(s.errMsg+" "+tr.T(i18n.KeyFlowRetryHint), cw))
	} else if s.offline {
		sections = append(sections, renderNote(tr.T(i18n.KeyJourneyOffline), cw))
	}

	items := s.items()
	labels := make([]string, len(items))
	disabled := make(map[int]bool)
	for i, it := range items {
		labels[i] = it.Label
		disabled[i] = it.Disabled
	}
	if compact {
		sections = append(sections, renderMenuCompact(labels, s.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderMenu(labels, s.menu.Selected, cw, disabled))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}
