// Package requests lists the user's mentorship requests.
package requests

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/screen"
	"github.com/yetria/yetria/internal/screens/env"
	"github.com/yetria/yetria/internal/ui/components"
	"github.com/yetria/yetria/internal/ui/layout"
	"github.com/yetria/yetria/internal/ui/theme"
)

// Match status ids used by the backend.
const (
	statusSent     = 1
	statusAccepted = 2
	statusRejected = 3
)

type loadedMsg struct {
	owner    *Screen
	requests []api.MentorshipRequestDetail
	err      error
}

// Screen shows the requests, filterable by status.
type Screen struct {
	env          *env.Env
	all          []api.MentorshipRequestDetail
	statuses     []string // distinct status labels in first-seen order
	filter       int      // 0 is all, otherwise statuses[filter-1]
	scrollOffset int
	loaded       bool
	errMsg       string

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
	return &Screen{env: e, ctx: ctx, cancel: cancel}
}

func (s *Screen) Init() tea.Cmd { return s.load() }

func (s *Screen) Title() string { return s.env.Tr.T(i18n.KeyMentorRequestsTitle) }

func (s *Screen) KeyHints() []layout.KeyHint {
	tr := s.env.Tr
	return []layout.KeyHint{
		{Key: "Tab", Description: tr.T(i18n.KeyResultsTabHint)},
		{Key: "↑↓", Description: tr.T(i18n.KeyNavigate)},
		{Key: "R", Description: tr.T(i18n.KeyRefresh)},
		{Key: "Esc", Description: tr.T(i18n.KeyBack)},
	}
}

func (s *Screen) Dispose() { s.cancel() }

func (s *Screen) load() tea.Cmd {
	ctx, gw := s.ctx, s.env.Gateway
	return func() tea.Msg {
		reqs, err := gw.MentorshipRequests(ctx)
		return loadedMsg{owner: s, requests: reqs, err: err}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.owner != s {
			return s, nil
		}
		s.loaded = true
		if msg.err != nil {
			text, cmd := s.env.Failure(msg.err)
			s.errMsg = text
			return s, cmd
		}
		s.errMsg = ""
		s.setRequests(msg.requests)
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "right":
			s.filter = (s.filter + 1) % (len(s.statuses) + 1)
			s.scrollOffset = 0
		case "shift+tab", "left":
			n := len(s.statuses) + 1
			s.filter = (s.filter - 1 + n) % n
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
		case "r":
			s.loaded = false
			return s, s.load()
		}
	}
	return s, nil
}

func (s *Screen) setRequests(reqs []api.MentorshipRequestDetail) {
	s.all = reqs
	s.statuses = s.statuses[:0]
	seen := map[string]bool{}
	for _, r := range reqs {
		label := s.statusLabel(r)
		if !seen[label] {
			seen[label] = true
			s.statuses = append(s.statuses, label)
		}
	}
	if s.filter > len(s.statuses) {
		s.filter = 0
	}
	s.scrollOffset = 0
}

func (s *Screen) filtered() []api.MentorshipRequestDetail {
	if s.filter == 0 {
		return s.all
	}
	want := s.statuses[s.filter-1]
	var out []api.MentorshipRequestDetail
	for _, r := range s.all {
		if s.statusLabel(r) == want {
			out = append(out, r)
		}
	}
	return out
}

// statusLabel prefers the server's status name and falls back to the
// known status ids.
func (s *Screen) statusLabel(r api.MentorshipRequestDetail) string {
	if r.StatusName != "" {
		return r.StatusName
	}
	switch r.StatusID {
	case statusAccepted:
		return s.env.Tr.T(i18n.KeyRequestAccepted)
	case statusRejected:
		return s.env.Tr.T(i18n.KeyRequestRejected)
	default:
		return s.env.Tr.T(i18n.KeyRequestSent)
	}
}

func (s *Screen) View(width, height int) string {
	tr := s.env.Tr
	if s.errMsg != "" {
		return components.ErrorMessage(s.errMsg, tr.T(i18n.KeyFlowRetryHint), width)
	}
	if !s.loaded {
		return components.Message(tr.T(i18n.KeyLoading), width)
	}
	if len(s.all) == 0 {
		return components.Message(tr.T(i18n.KeyRequestsNone), width)
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	tabs := []string{fmt.Sprintf("%s (%d)", tr.T(i18n.KeyRequestsAll), len(s.all))}
	for _, st := range s.statuses {
		tabs = append(tabs, fmt.Sprintf("%s (%d)", st, s.count(st)))
	}
	for i, label := range tabs {
		if i == s.filter {
			tabs[i] = theme.Selected.Render(label)
		} else {
			tabs[i] = theme.Locked.Render(label)
		}
	}
	b.WriteString(strings.Join(tabs, "     "))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	filtered := s.filtered()
	maxVisible := max((height-6)/4, 1)
	start := min(s.scrollOffset, max(len(filtered)-1, 0))
	end := min(start+maxVisible, len(filtered))
	for _, r := range filtered[start:end] {
		b.WriteString(s.renderRequest(r, cw))
		b.WriteString("\n")
	}
	if end < len(filtered) {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("... %d more", len(filtered)-end)))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func (s *Screen) renderRequest(r api.MentorshipRequestDetail, cw int) string {
	name := r.MentorName
	if name == "" {
		name = fmt.Sprintf("#%d", r.MentorProfileID)
	}
	lines := []string{theme.Body.Bold(true).Render(name)}
	var sub []string
	for _, p := range []string{r.MentorTitle, r.MentorCompany} {
		if p != "" {
			sub = append(sub, p)
		}
	}
	if len(sub) > 0 {
		lines = append(lines, theme.Hint.Render(strings.Join(sub, " · ")))
	}
	status := lipgloss.NewStyle().Foreground(statusColor(r.StatusID)).
		Render(s.env.Tr.Tf(i18n.KeyMentorStatus, s.statusLabel(r)))
	if r.CreatedAt != "" {
		status += theme.Subtitle.Render("  " + r.CreatedAt)
	}
	lines = append(lines, status)
	return components.Card(strings.Join(lines, "\n"), cw)
}

func (s *Screen) count(label string) int {
	n := 0
	for _, r := range s.all {
		if s.statusLabel(r) == label {
			n++
		}
	}
	return n
}

func statusColor(id int) color.Color {
	switch id {
	case statusAccepted:
		return theme.Success
	case statusRejected:
		return theme.Error
	default:
		return theme.Accent
	}
}
