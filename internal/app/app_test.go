package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yetria/yetria/internal/router"
	"github.com/yetria/yetria/internal/screens/auth"
	"github.com/yetria/yetria/internal/screens/env"
	"github.com/yetria/yetria/internal/screens/home"
	"github.com/yetria/yetria/internal/screens/screentest"
)

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func TestStartsOnSignInWhenSignedOut(t *testing.T) {
	h := screentest.NewEnv(t)
	m := New(h.Env)
	_, ok := m.Active().(*auth.Screen)
	assert.True(t, ok)
	assert.Equal(t, 1, m.Depth())
}

func TestStartsOnHomeWhenSignedIn(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	m := New(h.Env)
	_, ok := m.Active().(*home.Screen)
	assert.True(t, ok)
}

func TestSessionExpiryReturnsToSignIn(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	m := New(h.Env)
	m, _ = update(t, m, router.PushScreenMsg{Screen: &screentest.Stub{Name: "results"}})
	require.Equal(t, 2, m.Depth())

	m, _ = update(t, m, env.SessionExpiredMsg{})
	assert.Equal(t, 1, m.Depth())
	_, ok := m.Active().(*auth.Screen)
	require.True(t, ok)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Contains(t, m.render(), "Your session has expired. Please sign in again.")
}

func TestSignedOutReturnsToSignIn(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	m := New(h.Env)

	m, _ = update(t, m, env.SignedOutMsg{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	_, ok := m.Active().(*auth.Screen)
	require.True(t, ok)
	assert.Contains(t, m.render(), "You have been signed out.")
}

func TestEscPopsAboveRoot(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	m := New(h.Env)

	_, cmd := update(t, m, screentest.Key(tea.KeyEscape))
	assert.Nil(t, cmd, "esc on the root screen does nothing")

	m, _ = update(t, m, router.PushScreenMsg{Screen: &screentest.Stub{Name: "requests"}})
	m, cmd = update(t, m, screentest.Key(tea.KeyEscape))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, 1, m.Depth())
}

func TestCtrlCQuits(t *testing.T) {
	h := screentest.NewEnv(t)
	m := New(h.Env)
	_, cmd := update(t, m, screentest.Ctrl('c'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestRenderShowsUserAndLocale(t *testing.T) {
	h := screentest.NewEnv(t)
	h.SignIn(t)
	m := New(h.Env)
	m, _ = update(t, m, router.PushScreenMsg{Screen: &screentest.Stub{Name: "requests"}})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	out := m.render()
	assert.Contains(t, out, "Ayşe Yılmaz · EN")
	assert.Contains(t, out, "requests")
	assert.Contains(t, out, "Esc")
	assert.Contains(t, out, "Ctrl+C")
}

func TestRenderTooSmall(t *testing.T) {
	h := screentest.NewEnv(t)
	m := New(h.Env)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	out := m.render()
	assert.Contains(t, out, "Terminal too small")
	assert.Contains(t, out, "40 x 10")
}
