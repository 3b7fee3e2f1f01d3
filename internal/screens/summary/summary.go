// Package summary is the results screen: the career match and competency
// scores, recommended mentors and courses, and the optional career insight.
package summary

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/yetria/yetria/internal/advisor"
	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/results"
	"github.com/yetria/yetria/internal/screen"
	"github.com/yetria/yetria/internal/screens/env"
	"github.com/yetria/yetria/internal/ui/components"
	"github.com/yetria/yetria/internal/ui/layout"
)

type tab int

const (
	tabOverview tab = iota
	tabMentors
	tabCourses
	tabInsight
	tabCount
)

type reportMsg struct {
	owner  *Screen
	report *results.Report
	err    error
}

type mentorsMsg struct {
	owner   *Screen
	mentors []api.Mentor
	err     error
}

type coursesMsg struct {
	owner   *Screen
	courses []api.Course
	err     error
}

type requestMsg struct {
	owner  *Screen
	mentor api.Mentor
	err    error
}

type insightMsg struct {
	owner *Screen
	res   *advisor.Result
	err   error
}

// Screen shows a report. It is either handed one (after stage 4) or loads
// the saved result from the server.
type Screen struct {
	env    *env.Env
	report *results.Report
	errMsg string
	tab    tab
	toast  components.Toast

	mentors       []api.Mentor
	mentorsLoaded bool
	mentorsErr    string
	mentorCursor  int
	requesting    bool

	courses       []api.Course
	coursesLoaded bool
	coursesErr    string

	insight     *advisor.Result
	insightBusy bool
	insightErr  string

	ctx    context.Context
	cancel context.CancelFunc
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.Disposer        = (*Screen)(nil)
)

// New creates the screen. A nil report is loaded from the server.
func New(e *env.Env, report *results.Report) *Screen {
	ctx, cancel := context.WithCancel(context.Background())
	return &Screen{env: e, report: report, ctx: ctx, cancel: cancel}
}

// FromPrediction creates the screen for a result returned by a submission.
func FromPrediction(e *env.Env, res api.PredictionResult) *Screen {
	return New(e, results.NewReport(res))
}

func (s *Screen) Init() tea.Cmd {
	if s.report == nil {
		return s.loadReport()
	}
	return s.loadRecommendations()
}

func (s *Screen) Title() string {
	return s.env.Tr.T(i18n.KeyResultsTitle)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	tr := s.env.Tr
	hints := []layout.KeyHint{{Key: "Tab", Description: tr.T(i18n.KeyResultsTabHint)}}
	switch {
	case s.report == nil && s.errMsg != "":
		hints = append(hints, layout.KeyHint{Key: "R", Description: tr.T(i18n.KeyRetry)})
	case s.tab == tabMentors && len(s.mentors) > 0:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: tr.T(i18n.KeyNavigate)},
			layout.KeyHint{Key: "Enter", Description: tr.T(i18n.KeyMentorRequestAction)},
		)
	case s.tab == tabInsight && s.env.Advisor.Available():
		if s.insight == nil {
			hints = append(hints, layout.KeyHint{Key: "G", Description: tr.T(i18n.KeyResultsInsight)})
		} else {
			hints = append(hints, layout.KeyHint{Key: "R", Description: tr.T(i18n.KeyInsightRegenerate)})
		}
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: tr.T(i18n.KeyBack)})
}

// Dispose cancels outstanding requests.
func (s *Screen) Dispose() { s.cancel() }

// Report returns the report shown, or nil while it loads.
func (s *Screen) Report() *results.Report { return s.report }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportMsg:
		if msg.owner != s {
			return s, nil
		}
		return s.handleReport(msg)

	case mentorsMsg:
		if msg.owner != s {
			return s, nil
		}
		s.mentorsLoaded = true
		if msg.err != nil {
			var cmd tea.Cmd
			s.mentorsErr, cmd = s.env.Failure(msg.err)
			return s, cmd
		}
		s.mentors = msg.mentors
		return s, nil

	case coursesMsg:
		if msg.owner != s {
			return s, nil
		}
		s.coursesLoaded = true
		if msg.err != nil {
			var cmd tea.Cmd
			s.coursesErr, cmd = s.env.Failure(msg.err)
			return s, cmd
		}
		s.courses = msg.courses
		return s, nil

	case requestMsg:
		if msg.owner != s {
			return s, nil
		}
		s.requesting = false
		if msg.err != nil {
			text, cmd := s.env.Failure(msg.err)
			return s, tea.Batch(s.toast.Show(text, true), cmd)
		}
		s.env.Logger().Info("mentorship requested", zap.Int("mentor_id", msg.mentor.ID))
		return s, s.toast.Show(s.env.Tr.Tf(i18n.KeyMentorRequestSent, msg.mentor.DisplayName()), false)

	case insightMsg:
		if msg.owner != s {
			return s, nil
		}
		s.insightBusy = false
		if msg.err != nil {
			var cmd tea.Cmd
			s.insightErr, cmd = s.insightFailure(msg.err)
			return s, cmd
		}
		s.insight, s.insightErr = msg.res, ""
		return s, nil

	case components.ToastExpiredMsg:
		s.toast.Update(msg)
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch key {
	case "tab", "right", "l":
		s.tab = (s.tab + 1) % tabCount
		return s, nil
	case "shift+tab", "left", "h":
		s.tab = (s.tab + tabCount - 1) % tabCount
		return s, nil
	case "1", "2", "3", "4":
		s.tab = tab(key[0] - '1')
		return s, nil
	}

	if s.report == nil {
		if key == "r" && s.errMsg != "" {
			s.errMsg = ""
			return s, s.loadReport()
		}
		return s, nil
	}

	switch s.tab {
	case tabMentors:
		switch key {
		case "up", "k":
			if s.mentorCursor > 0 {
				s.mentorCursor--
			}
		case "down", "j":
			if s.mentorCursor < len(s.mentors)-1 {
				s.mentorCursor++
			}
		case "enter":
			return s, s.requestMentor()
		}
	case tabInsight:
		switch key {
		case "g":
			if s.insight == nil {
				return s, s.generateInsight(false)
			}
		case "r":
			if s.insight != nil {
				return s, s.generateInsight(true)
			}
		}
	}
	return s, nil
}

func (s *Screen) handleReport(msg reportMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		var cmd tea.Cmd
		s.errMsg, cmd = s.env.Failure(msg.err)
		return s, cmd
	}
	if msg.report == nil || msg.report.Empty() {
		s.errMsg = s.env.Tr.T(i18n.KeyResultsNoResult)
		return s, nil
	}
	s.report = msg.report
	return s, s.loadRecommendations()
}

func (s *Screen) loadReport() tea.Cmd {
	ctx, gw, log := s.ctx, s.env.Gateway, s.env.Logger()
	return func() tea.Msg {
		report, err := results.Load(ctx, gw, log)
		return reportMsg{owner: s, report: report, err: err}
	}
}

func (s *Screen) loadRecommendations() tea.Cmd {
	ctx, gw := s.ctx, s.env.Gateway
	occupation := s.report.Winner
	keywords := s.report.CourseKeywords()
	limit := s.env.CourseLimit

	mentors := func() tea.Msg {
		if occupation == "" {
			return mentorsMsg{owner: s}
		}
		m, err := gw.RecommendMentors(ctx, occupation)
		return mentorsMsg{owner: s, mentors: m, err: err}
	}
	courses := func() tea.Msg {
		if len(keywords) == 0 {
			return coursesMsg{owner: s}
		}
		c, err := gw.RecommendCourses(ctx, keywords, limit)
		return coursesMsg{owner: s, courses: c, err: err}
	}
	return tea.Batch(mentors, courses)
}

func (s *Screen) requestMentor() tea.Cmd {
	if s.requesting || s.mentorCursor >= len(s.mentors) {
		return nil
	}
	s.requesting = true
	ctx, gw := s.ctx, s.env.Gateway
	mentor := s.mentors[s.mentorCursor]
	return func() tea.Msg {
		_, err := gw.CreateMentorshipRequest(ctx, mentor.ID)
		return requestMsg{owner: s, mentor: mentor, err: err}
	}
}

func (s *Screen) generateInsight(fresh bool) tea.Cmd {
	if s.insightBusy || !s.env.Advisor.Available() {
		return nil
	}
	s.insightBusy = true
	s.insightErr = ""
	ctx, adv, report := s.ctx, s.env.Advisor, s.report
	locale := s.env.Tr.Locale()
	return func() tea.Msg {
		var (
			res *advisor.Result
			err error
		)
		if fresh {
			res, err = adv.Regenerate(ctx, report, locale)
		} else {
			res, err = adv.Generate(ctx, report, locale)
		}
		return insightMsg{owner: s, res: res, err: err}
	}
}

func (s *Screen) insightFailure(err error) (string, tea.Cmd) {
	if errors.Is(err, advisor.ErrNotConfigured) {
		return s.env.Tr.T(i18n.KeyResultsInsightUnavailable), nil
	}
	s.env.Logger().Warn("career insight failed", zap.Error(err))
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return s.env.Failure(err)
	}
	return s.env.Tr.T(i18n.KeyErrClientGeneric), nil
}
