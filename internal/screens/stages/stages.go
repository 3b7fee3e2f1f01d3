// Package stages is the stage selection screen of the assessment journey.
package stages

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/assessment"
	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/router"
	"github.com/yetria/yetria/internal/screen"
	"github.com/yetria/yetria/internal/screens/env"
	"github.com/yetria/yetria/internal/screens/flow"
	"github.com/yetria/yetria/internal/screens/summary"
	"github.com/yetria/yetria/internal/ui/components"
	"github.com/yetria/yetria/internal/ui/layout"
	"github.com/yetria/yetria/internal/ui/theme"
)

// Screen lists the four stages. The journey is shared with the caller so
// completions made here are visible once this screen is popped.
type Screen struct {
	env     *env.Env
	journey *assessment.Journey
	offline bool
	cursor  int
	toast   components.Toast
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

// New creates the screen with the cursor on the active stage. offline marks
// a journey that fell back to stage 1 because progress could not be loaded.
func New(e *env.Env, j *assessment.Journey, offline bool) *Screen {
	return &Screen{env: e, journey: j, offline: offline, cursor: j.Current() - 1}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return s.env.Tr.T(i18n.KeyJourneyTitle) }

func (s *Screen) KeyHints() []layout.KeyHint {
	tr := s.env.Tr
	return []layout.KeyHint{
		{Key: "↑↓", Description: tr.T(i18n.KeyNavigate)},
		{Key: "Enter", Description: tr.T(i18n.KeySelect)},
		{Key: "Esc", Description: tr.T(i18n.KeyBack)},
	}
}

// Cursor returns the zero-based index of the highlighted stage.
func (s *Screen) Cursor() int { return s.cursor }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.ToastExpiredMsg:
		s.toast.Update(msg)
	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < assessment.StageCount-1 {
				s.cursor++
			}
		case "1", "2", "3", "4":
			s.cursor = int(msg.String()[0] - '1')
		case "enter":
			return s, s.open()
		}
	}
	return s, nil
}

// open starts the highlighted stage when it is the active one.
func (s *Screen) open() tea.Cmd {
	stage, ok := s.journey.SelectStage(s.cursor)
	if !ok {
		key := i18n.KeyJourneyLocked
		if s.journey.StageState(s.cursor+1) == assessment.StageCompleted {
			key = i18n.KeyStageCompleted
		}
		return s.toast.Show(s.env.Tr.T(key), false)
	}
	s.env.Logger().Debug("open stage", zap.Int("stage", stage))
	return router.Push(flow.New(s.env, stage, s.completed))
}

// completed runs on the event loop when the flow screen on top of this one
// has submitted stage. The last stage replaces both screens with results.
func (s *Screen) completed(stage int, res api.PredictionResult) tea.Cmd {
	t := s.journey.Complete(stage)
	s.env.Logger().Info("stage completed",
		zap.Int("stage", stage),
		zap.Stringer("transition", t),
		zap.Ints("completed", s.journey.Completed()),
	)
	if t == assessment.ToResults {
		return router.Unwind(2, summary.FromPrediction(s.env, res))
	}
	s.cursor = s.journey.Current() - 1
	return tea.Batch(
		router.Pop(),
		s.toast.Show(s.env.Tr.Tf(i18n.KeyFlowSubmitted, stage), false),
	)
}

func (s *Screen) View(width, height int) string {
	tr := s.env.Tr
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Hint.Width(cw).Render(tr.T(i18n.KeyJourneyHint)))
	b.WriteString("\n")
	if s.offline {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(tr.T(i18n.KeyJourneyOffline)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	done := len(s.journey.Completed())
	bar := components.NewProgressBar("", float64(done)/assessment.StageCount,
		fmt.Sprintf("%d/%d", done, assessment.StageCount), cw)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	for i, state := range s.journey.States() {
		b.WriteString(s.renderRow(i, state, cw))
		b.WriteString("\n")
	}
	if s.journey.AllComplete() {
		b.WriteString("\n")
		b.WriteString(theme.Completed.Render(tr.T(i18n.KeyJourneyDone)))
		b.WriteString("\n")
	}
	if s.toast.Visible() {
		b.WriteString("\n")
		b.WriteString(s.toast.View())
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}

// renderRow renders one stage as cursor, icon, name and state label.
func (s *Screen) renderRow(i int, state assessment.StageState, cw int) string {
	tr := s.env.Tr
	name := tr.Tf(i18n.KeyStageLabel, i+1)
	label := stateLabel(state, tr)

	var nameStyle, labelStyle lipgloss.Style
	switch state {
	case assessment.StageCompleted:
		nameStyle, labelStyle = theme.Completed, theme.Completed
	case assessment.StageActive:
		nameStyle = theme.Body.Bold(true)
		labelStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
	default:
		nameStyle, labelStyle = theme.Locked, theme.Locked
	}
	cursor := "  "
	if i == s.cursor {
		cursor = "▸ "
		nameStyle = theme.Selected
	}

	left := fmt.Sprintf("%s%s  %s", cursor, stateIcon(state), nameStyle.Render(name))
	right := labelStyle.Render(label)
	pad := cw - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 2 {
		pad = 2
	}
	return left + strings.Repeat(" ", pad) + right
}

func stateIcon(state assessment.StageState) string {
	switch state {
	case assessment.StageCompleted:
		return "✅"
	case assessment.StageActive:
		return "🔓"
	default:
		return "🔒"
	}
}

func stateLabel(state assessment.StageState, tr *i18n.Translator) string {
	switch state {
	case assessment.StageCompleted:
		return tr.T(i18n.KeyStageCompleted)
	case assessment.StageActive:
		return tr.T(i18n.KeyStageActive)
	default:
		return tr.T(i18n.KeyStageLocked)
	}
}
