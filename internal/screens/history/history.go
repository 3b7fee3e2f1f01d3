// Package history shows the stage submissions recorded on this machine.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/screen"
	"github.com/yetria/yetria/internal/screens/env"
	"github.com/yetria/yetria/internal/store"
	"github.com/yetria/yetria/internal/ui/components"
	"github.com/yetria/yetria/internal/ui/layout"
	"github.com/yetria/yetria/internal/ui/theme"
)

// maxEvents is how many recent submissions are loaded.
const maxEvents = 50

type historyLoadedMsg struct {
	owner  *Screen
	events []store.SubmissionEvent
	err    error
}

// Screen lists submissions newest first. Enter expands an entry.
type Screen struct {
	env      *env.Env
	events   []store.SubmissionEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

func New(e *env.Env) *Screen {
	return &Screen{env: e, expanded: make(map[int]bool)}
}

func (s *Screen) Init() tea.Cmd {
	repo := s.env.Events
	userID := 0
	if u, ok := s.env.Identity.User(); ok {
		userID = u.ID
	}
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{owner: s}
		}
		events, err := repo.Submissions(context.Background(), store.QueryOpts{Limit: maxEvents})
		if err != nil {
			return historyLoadedMsg{owner: s, err: err}
		}
		mine := events[:0]
		for _, ev := range events {
			if userID == 0 || ev.UserID == userID {
				mine = append(mine, ev)
			}
		}
		return historyLoadedMsg{owner: s, events: mine}
	}
}

func (s *Screen) Title() string { return s.env.Tr.T(i18n.KeyHistoryTitle) }

func (s *Screen) KeyHints() []layout.KeyHint {
	tr := s.env.Tr
	return []layout.KeyHint{
		{Key: "Enter", Description: tr.T(i18n.KeyHistoryDetails)},
		{Key: "↑↓", Description: tr.T(i18n.KeyNavigate)},
		{Key: "Esc", Description: tr.T(i18n.KeyBack)},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.owner != s {
			return s, nil
		}
		if msg.err != nil {
			s.env.Logger().Warn("load submission history", zap.Error(msg.err))
			s.errMsg = msg.err.Error()
		} else {
			s.events = msg.events
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	tr := s.env.Tr
	if s.errMsg != "" {
		return components.ErrorMessage(s.errMsg, tr.T(i18n.KeyFlowBackHint), width)
	}
	if !s.loaded {
		return components.Message(tr.T(i18n.KeyLoading), width)
	}
	if len(s.events) == 0 {
		return components.Message(tr.T(i18n.KeyHistoryEmpty), width)
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	for i, ev := range s.events {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		outcome := tr.T(i18n.KeyHistorySucceeded)
		if !ev.Success {
			outcome = tr.Tf(i18n.KeyHistoryFailed, ev.ErrorKind)
		}
		line := fmt.Sprintf("%s%s  %s  %s",
			prefix,
			ev.Timestamp.Local().Format("02 Jan 2006 15:04"),
			tr.Tf(i18n.KeyStageLabel, ev.Stage),
			outcome,
		)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case !ev.Success:
			style = style.Foreground(theme.Error)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, d := range details(ev) {
				b.WriteString(theme.Hint.Render("    " + d))
				b.WriteString("\n")
			}
		}
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func details(ev store.SubmissionEvent) []string {
	out := []string{
		fmt.Sprintf("%d responses, %d ms", ev.ResponseCount, ev.LatencyMs),
	}
	if ev.WinningOccupation != "" {
		out = append(out, "→ "+ev.WinningOccupation)
	}
	if ev.ErrorMessage != "" {
		out = append(out, ev.ErrorMessage)
	}
	out = append(out, ev.AttemptID)
	return out
}
