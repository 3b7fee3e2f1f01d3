package auth

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yetria/yetria/internal/router"
	"github.com/yetria/yetria/internal/screen"
	"github.com/yetria/yetria/internal/screens/screentest"
)

func start(t *testing.T) (*screentest.Harness, *Screen) {
	t.Helper()
	h := screentest.NewEnv(t)
	s := New(h.Env, "")
	s.Init()
	return h, s
}

// fill types values into the visible fields, top to bottom.
func fill(s screen.Screen, values ...string) screen.Screen {
	for i, v := range values {
		if i > 0 {
			s, _ = s.Update(screentest.Key(tea.KeyTab))
		}
		s = screentest.Type(s, v)
	}
	return s
}

func submit(s screen.Screen) (screen.Screen, []tea.Msg) {
	s, cmd := s.Update(screentest.Key(tea.KeyEnter))
	return screentest.Settle(s, cmd, screentest.Outbound)
}

func TestSignInSuccessResetsToHome(t *testing.T) {
	h, s := start(t)

	next, out := submit(fill(s, screentest.Email, screentest.Password))

	reset, ok := screentest.Find[router.ResetScreenMsg](out)
	require.True(t, ok, "expected a reset to home, got %v", out)
	assert.Equal(t, "home", reset.Screen.Title())
	assert.True(t, h.Identity.IsAuthenticated())
	assert.False(t, next.(*Screen).busy)
}

func TestEnterOnFirstFieldMovesFocus(t *testing.T) {
	h, s := start(t)

	next, _ := s.Update(screentest.Key(tea.KeyEnter))
	assert.Equal(t, fieldPassword, next.(*Screen).focus)
	assert.Zero(t, h.Backend.Called("Login"))
}

func TestWrongPasswordShowsError(t *testing.T) {
	h, s := start(t)

	next, out := submit(fill(s, screentest.Email, "wrong-password"))

	_, reset := screentest.Find[router.ResetScreenMsg](out)
	assert.False(t, reset)
	a := next.(*Screen)
	assert.NotEmpty(t, a.errMsg)
	assert.Contains(t, a.View(100, 40), a.errMsg)
	assert.False(t, h.Identity.IsAuthenticated())
}

func TestValidationMarksFieldsAndFocusesFirst(t *testing.T) {
	h, s := start(t)

	next, _ := submit(fill(s, "not-an-email", "abc"))

	a := next.(*Screen)
	assert.NotEmpty(t, a.fields[fieldEmail].Err)
	assert.NotEmpty(t, a.fields[fieldPassword].Err)
	assert.Equal(t, fieldEmail, a.focus)
	assert.Zero(t, h.Backend.Called("Login"), "invalid forms must not reach the backend")
}

func TestSignUpMode(t *testing.T) {
	h, s := start(t)

	next, _ := s.Update(screentest.Ctrl('r'))
	a := next.(*Screen)
	require.Equal(t, ModeSignUp, a.Mode())
	assert.Equal(t, fieldName, a.focus)
	assert.Equal(t, "Create an account", a.Title())

	next, out := submit(fill(a, "Mehmet Demir", "mehmet@example.com", "hunter22"))
	_, ok := screentest.Find[router.ResetScreenMsg](out)
	require.True(t, ok)
	u, _ := h.Identity.User()
	assert.Equal(t, "Mehmet Demir", u.Name)
	assert.Equal(t, ModeSignUp, next.(*Screen).Mode())
}

func TestSwitchingModeClearsErrors(t *testing.T) {
	_, s := start(t)
	next, _ := submit(fill(s, "x", "y"))
	a := next.(*Screen)
	require.NotEmpty(t, a.fields[fieldEmail].Err)

	next, _ = a.Update(screentest.Ctrl('r'))
	a = next.(*Screen)
	assert.Empty(t, a.fields[fieldEmail].Err)
	assert.Empty(t, a.errMsg)
}

func TestStaleResultIgnored(t *testing.T) {
	h, s := start(t)
	other := New(h.Env, "")

	next, cmd := s.Update(authDoneMsg{owner: other})
	assert.Nil(t, cmd)
	assert.Same(t, s, next)
}

func TestNoticeShown(t *testing.T) {
	h := screentest.NewEnv(t)
	s := New(h.Env, "Your session expired.")
	view := s.View(100, 40)
	if !strings.Contains(view, "Your session expired.") {
		t.Errorf("expected notice in view, got:\n%s", view)
	}
}

func TestDisposeCancels(t *testing.T) {
	_, s := start(t)
	s.Dispose()
	assert.Error(t, s.ctx.Err())
}
