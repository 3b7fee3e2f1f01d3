package components

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/yetria/yetria/internal/ui/theme"
)

// ToastDuration is how long a toast stays visible.
const ToastDuration = 4 * time.Second

// ToastExpiredMsg hides the toast with the matching id.
type ToastExpiredMsg struct{ ID int64 }

// toastSeq numbers toasts across screens so an expiry only hides its own.
var toastSeq atomic.Int64

// Toast is a transient one-line status message.
type Toast struct {
	Text    string
	IsError bool
	id      int64
}

// Show displays text and returns the command that hides it later. A newer
// toast is not hidden by an older one's timer.
func (t *Toast) Show(text string, isError bool) tea.Cmd {
	t.id = toastSeq.Add(1)
	t.Text, t.IsError = text, isError
	id := t.id
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg { return ToastExpiredMsg{ID: id} })
}

// Update hides the toast when its timer fires.
func (t *Toast) Update(msg tea.Msg) {
	if m, ok := msg.(ToastExpiredMsg); ok && m.ID == t.id {
		t.Text = ""
	}
}

// Visible reports whether a toast is showing.
func (t Toast) Visible() bool { return t.Text != "" }

// View renders the toast, or "" when hidden.
func (t Toast) View() string {
	if t.Text == "" {
		return ""
	}
	if t.IsError {
		return theme.ToastError.Render(t.Text)
	}
	return theme.ToastInfo.Render(t.Text)
}
