// Package app is the root Bubble Tea model: it owns the screen router,
// draws the frame and routes session changes back to sign-in.
package app

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/router"
	"github.com/yetria/yetria/internal/screen"
	"github.com/yetria/yetria/internal/screens/auth"
	"github.com/yetria/yetria/internal/screens/env"
	"github.com/yetria/yetria/internal/screens/home"
	"github.com/yetria/yetria/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env    *env.Env
	router *router.Router
	width  int
	height int
}

// New creates the model. A signed-in user starts on the home screen,
// everyone else on sign-in.
func New(e *env.Env) AppModel {
	e.Home = func() screen.Screen { return home.New(e) }
	var initial screen.Screen
	if e.Identity.IsAuthenticated() {
		initial = e.Home()
	} else {
		initial = auth.New(e, "")
	}
	return AppModel{env: e, router: router.New(initial)}
}

// Active returns the screen on top of the stack.
func (m AppModel) Active() screen.Screen { return m.router.Active() }

// Depth returns the number of stacked screens.
func (m AppModel) Depth() int { return m.router.Depth() }

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	tr := m.env.Tr
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case env.SessionExpiredMsg:
		m.env.Logger().Info("session expired; returning to sign-in")
		return m, m.router.Reset(auth.New(m.env, tr.T(i18n.KeyAuthSessionExpired)))

	case env.SignedOutMsg:
		m.env.Logger().Info("signed out")
		return m, m.router.Reset(auth.New(m.env, tr.T(i18n.KeyAuthSignedOut)))

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the frame around the active screen.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	tr := m.env.Tr

	if layout.IsTooSmall(m.width, m.height) {
		text := tr.Tf(i18n.KeyTooSmall, layout.MinWidth, layout.MinHeight)
		return layout.RenderMinSizeMessage(text, m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}
	header := layout.RenderHeader(tr.T(i18n.KeyAppName), title, m.status(), m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// status is the signed-in user and the display language.
func (m AppModel) status() string {
	loc := strings.ToUpper(string(m.env.Tr.Locale()))
	if u, ok := m.env.Identity.User(); ok {
		return fmt.Sprintf("%s · %s  ", u.Name, loc)
	}
	return loc + "  "
}

func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	tr := m.env.Tr
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{{Key: "Esc", Description: tr.T(i18n.KeyBack)}}
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: tr.T(i18n.KeyQuit)})
}

// Run starts the program and blocks until it exits or ctx is cancelled.
// Screens still on the stack are disposed on the way out.
func Run(ctx context.Context, e *env.Env) error {
	m := New(e)
	defer m.router.Close()

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		e.Logger().Error("program exited", zap.Error(err))
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}
