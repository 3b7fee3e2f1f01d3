package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pickedMsg struct{ label string }

func items(disabled ...int) []MenuItem {
	labels := []string{"Start", "Results", "Requests", "Exit"}
	out := make([]MenuItem, len(labels))
	for i, l := range labels {
		out[i] = MenuItem{Label: l, Action: func() tea.Cmd {
			return func() tea.Msg { return pickedMsg{l} }
		}}
	}
	for _, i := range disabled {
		out[i].Disabled = true
	}
	return out
}

func TestMenuSkipsDisabledItems(t *testing.T) {
	m := NewMenu(items(0, 1))
	assert.Equal(t, 2, m.Selected, "starts on the first enabled item")

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 2, m.Selected, "no enabled item above")

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected, "stays on the last item")
}

func TestMenuEnterRunsAction(t *testing.T) {
	m := NewMenu(items())
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, pickedMsg{"Results"}, cmd())
}

func TestMenuSetItemsMovesOffDisabled(t *testing.T) {
	m := NewMenu(items())
	m.Selected = 1
	m.SetItems(items(1))
	assert.Equal(t, 0, m.Selected)

	m.Selected = 3
	m.SetItems(items()[:2])
	assert.Equal(t, 0, m.Selected)
}

func TestToastExpiresOnlyItsOwnTimer(t *testing.T) {
	var toast Toast
	toast.Show("Saved", false)
	first := toast.id
	toast.Show("Failed", true)

	toast.Update(ToastExpiredMsg{ID: first})
	assert.True(t, toast.Visible(), "older timer does not hide a newer toast")
	assert.Contains(t, toast.View(), "Failed")

	toast.Update(ToastExpiredMsg{ID: toast.id})
	assert.False(t, toast.Visible())
	assert.Empty(t, toast.View())
}

func TestButtonStates(t *testing.T) {
	assert.Contains(t, Button{Label: "Go", Active: true}.View(), "▸ Go")
	assert.NotContains(t, Button{Label: "Go", Active: true, Disabled: true}.View(), "▸")
	assert.Contains(t, Button{Label: "Go"}.Block(), "Go")
}
