// Package auth is the sign-in and sign-up screen.
package auth

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/identity"
	"github.com/yetria/yetria/internal/router"
	"github.com/yetria/yetria/internal/screen"
	"github.com/yetria/yetria/internal/screens/env"
	"github.com/yetria/yetria/internal/ui/components"
	"github.com/yetria/yetria/internal/ui/layout"
	"github.com/yetria/yetria/internal/ui/theme"
)

// Mode selects between the two forms.
type Mode int

const (
	ModeSignIn Mode = iota
	ModeSignUp
)

const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldCount
)

const formWidth = 40

type authDoneMsg struct {
	owner *Screen
	err   error
}

// Screen collects credentials and hands them to the identity store.
type Screen struct {
	env    *env.Env
	mode   Mode
	fields [fieldCount]components.Field
	focus  int
	busy   bool
	notice string
	errMsg string

	ctx    context.Context
	cancel context.CancelFunc
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.Disposer        = (*Screen)(nil)
)

// New creates the screen in sign-in mode. notice, if set, is shown above
// the form (for example after the session expired).
func New(e *env.Env, notice string) *Screen {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Screen{env: e, notice: notice, ctx: ctx, cancel: cancel}
	s.fields[fieldName] = components.NewField(e.Tr.T(i18n.KeyFieldName), false, 100)
	s.fields[fieldEmail] = components.NewField(e.Tr.T(i18n.KeyFieldEmail), false, 254)
	s.fields[fieldPassword] = components.NewField(e.Tr.T(i18n.KeyFieldPassword), true, 128)
	s.focus = fieldEmail
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.fields[s.focus].Focus()
}

func (s *Screen) Title() string {
	if s.mode == ModeSignUp {
		return s.env.Tr.T(i18n.KeyAuthTitleSignUp)
	}
	return s.env.Tr.T(i18n.KeyAuthTitleSignIn)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	tr := s.env.Tr
	submit := tr.T(i18n.KeyAuthSubmitSignIn)
	if s.mode == ModeSignUp {
		submit = tr.T(i18n.KeyAuthSubmitSignUp)
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: tr.T(i18n.KeyNavigate)},
		{Key: "Enter", Description: submit},
		{Key: "Ctrl+R", Description: tr.T(i18n.KeyAuthSwitchMode)},
		{Key: "Ctrl+C", Description: tr.T(i18n.KeyQuit)},
	}
}

// Dispose cancels an in-flight sign-in.
func (s *Screen) Dispose() { s.cancel() }

// Mode returns the current form.
func (s *Screen) Mode() Mode { return s.mode }

// visible lists the fields of the current form in order.
func (s *Screen) visible() []int {
	if s.mode == ModeSignUp {
		return []int{fieldName, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		if msg.owner != s {
			return s, nil
		}
		return s.handleDone(msg.err)

	case tea.KeyPressMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.move(1)
		case "shift+tab", "up":
			return s, s.move(-1)
		case "ctrl+r":
			return s, s.toggleMode()
		case "enter":
			vis := s.visible()
			if s.focus != vis[len(vis)-1] {
				return s, s.move(1)
			}
			return s, s.submit()
		}
	}

	if s.busy {
		return s, nil
	}
	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd
}

func (s *Screen) move(delta int) tea.Cmd {
	vis := s.visible()
	pos := 0
	for i, f := range vis {
		if f == s.focus {
			pos = i
		}
	}
	pos = (pos + delta + len(vis)) % len(vis)
	return s.focusField(vis[pos])
}

func (s *Screen) focusField(f int) tea.Cmd {
	s.fields[s.focus].Blur()
	s.focus = f
	return s.fields[f].Focus()
}

func (s *Screen) toggleMode() tea.Cmd {
	if s.mode == ModeSignIn {
		s.mode = ModeSignUp
	} else {
		s.mode = ModeSignIn
	}
	s.errMsg = ""
	for i := range s.fields {
		s.fields[i].Err = ""
	}
	s.env.Identity.ClearError()
	return s.focusField(s.visible()[0])
}

func (s *Screen) submit() tea.Cmd {
	s.busy = true
	s.errMsg = ""
	s.notice = ""
	for i := range s.fields {
		s.fields[i].Err = ""
	}

	ctx, ids := s.ctx, s.env.Identity
	mode := s.mode
	name := s.fields[fieldName].Value()
	email := s.fields[fieldEmail].Value()
	password := s.fields[fieldPassword].Value()
	return func() tea.Msg {
		var err error
		if mode == ModeSignUp {
			err = ids.SignUp(ctx, identity.SignUpInput{Name: name, Email: email, Password: password})
		} else {
			err = ids.SignIn(ctx, email, password)
		}
		return authDoneMsg{owner: s, err: err}
	}
}

func (s *Screen) handleDone(err error) (screen.Screen, tea.Cmd) {
	s.busy = false
	if err == nil {
		s.env.Logger().Info("signed in", zap.String("mode", s.modeName()))
		return s, router.Reset(s.env.Home())
	}

	var verr *identity.ValidationError
	if errors.As(err, &verr) {
		tr := s.env.Tr
		s.fields[fieldName].Err = verr.Message(tr, identity.FieldName)
		s.fields[fieldEmail].Err = verr.Message(tr, identity.FieldEmail)
		s.fields[fieldPassword].Err = verr.Message(tr, identity.FieldPassword)
		for _, f := range s.visible() {
			if s.fields[f].Err != "" {
				return s, s.focusField(f)
			}
		}
		return s, nil
	}

	s.errMsg = s.env.Identity.ErrorMessage()
	if s.errMsg == "" {
		s.errMsg, _ = s.env.Failure(err)
	}
	return s, nil
}

func (s *Screen) modeName() string {
	if s.mode == ModeSignUp {
		return "sign-up"
	}
	return "sign-in"
}

func (s *Screen) View(width, height int) string {
	tr := s.env.Tr
	var sections []string

	sections = append(sections, RenderBanner(width, height))
	sections = append(sections, theme.Title.Render(s.Title()))
	if s.notice != "" {
		sections = append(sections, theme.Hint.Render(s.notice))
	}

	var form []string
	for _, f := range s.visible() {
		form = append(form, s.fields[f].View(formWidth))
	}
	sections = append(sections, lipgloss.NewStyle().Width(formWidth).Render(strings.Join(form, "\n\n")))

	switch {
	case s.busy:
		sections = append(sections, theme.Hint.Render(tr.T(i18n.KeyAuthSubmitting)))
	case s.errMsg != "":
		sections = append(sections, theme.ErrorText.Render(s.errMsg))
	}

	switchKey := i18n.KeyAuthSwitchToSignUp
	if s.mode == ModeSignUp {
		switchKey = i18n.KeyAuthSwitchToSignIn
	}
	sections = append(sections, theme.Hint.Render(tr.T(switchKey)))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, interleave(sections)...))
}

// interleave puts a blank line between sections.
func interleave(sections []string) []string {
	out := make([]string, 0, 2*len(sections))
	for i, sec := range sections {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, sec)
	}
	return out
}
