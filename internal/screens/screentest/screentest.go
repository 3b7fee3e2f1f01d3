// Package screentest provides a fake backend and helpers for screen tests.
package screentest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/yetria/yetria/internal/advisor"
	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/assessment"
	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/identity"
	"github.com/yetria/yetria/internal/router"
	"github.com/yetria/yetria/internal/screen"
	"github.com/yetria/yetria/internal/screens/env"
	"github.com/yetria/yetria/internal/store"
)

// Email and Password sign in to the account the Backend starts with.
const (
	Email    = "ayse@example.com"
	Password = "secret1"
)

// Backend is an in-memory stand-in for the API client. Set a method name
// in Fail to make that call return the error.
type Backend struct {
	mu sync.Mutex

	User       api.User
	Token      string
	Stages     map[int][]api.Scenario
	Journey    api.Progress
	Status     api.AssessmentStatus
	Prediction api.PredictionResult
	Saved      *api.AssessmentResult
	Mentors    []api.Mentor
	Requests   []api.MentorshipRequestDetail
	Courses    []api.Course
	Fail       map[string]error

	credential string
	Submitted  [][]api.Response
	Keywords   [][]string
	Calls      []string
}

// NewBackend returns a backend with one user, two scenarios per stage,
// nothing completed and a ready prediction.
func NewBackend() *Backend {
	b := &Backend{
		User:    api.User{ID: 7, Name: "Ayşe Yılmaz", Email: Email},
		Token:   "tok-ayse",
		Stages:  map[int][]api.Scenario{},
		Journey: api.Progress{CurrentStage: 1},
		Prediction: api.PredictionResult{
			WinningOccupation: "Veri Bilimci",
			Compatibility: []api.CompatibilityScore{
				{Occupation: "Veri Bilimci", Score: 88},
				{Occupation: "Psikolog", Score: 61},
			},
			Comparisons: []api.CompetencyComparison{
				{Competency: "Analitik Düşünme", UserScore: 4.5, GroupAverage: 4.1},
				{Competency: "Empati", UserScore: 2.5, GroupAverage: 3.4},
			},
		},
		Mentors: []api.Mentor{
			{ID: 11, Username: "Deniz Kaya", Company: "Veri A.Ş.", Title: "Kıdemli Veri Bilimci"},
			{ID: 12, Username: "Ece Demir", Company: "Analitik Ltd.", Title: "Veri Mühendisi"},
		},
		Courses: []api.Course{
			{ID: 3, Title: "İstatistiğe Giriş", Provider: "Açık Akademi", CourseURL: "https://example.com/stat"},
		},
		Fail: map[string]error{},
	}
	for stage := 1; stage <= assessment.StageCount; stage++ {
		b.Stages[stage] = []api.Scenario{
			scenario(stage*10+1, stage),
			scenario(stage*10+2, stage),
		}
	}
	return b
}

func scenario(id, stage int) api.Scenario {
	return api.Scenario{
		ID:             id,
		Text:           fmt.Sprintf("Stage %d situation %d", stage, id),
		CompetencyName: "Empati",
		Options: []api.Option{
			{Letter: "A", Text: "Listen first"},
			{Letter: "B", Text: "Act at once"},
		},
	}
}

// Unauthenticated is the error the backend returns for a rejected credential.
func Unauthenticated() error {
	return &api.Error{Kind: api.KindUnauthenticated, Status: http.StatusUnauthorized, Method: http.MethodGet, Path: "/test"}
}

// ServerError is a 500 response.
func ServerError() error {
	return &api.Error{Kind: api.KindServer, Status: http.StatusInternalServerError, Method: http.MethodGet, Path: "/test"}
}

// call records name and returns its injected failure.
func (b *Backend) call(name string) error {
	b.Calls = append(b.Calls, name)
	return b.Fail[name]
}

// Called reports how often name was called.
func (b *Backend) Called(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.Calls {
		if c == name {
			n++
		}
	}
	return n
}

// SetFail injects err for name; nil clears it.
func (b *Backend) SetFail(name string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.Fail, name)
		return
	}
	b.Fail[name] = err
}

func (b *Backend) Register(_ context.Context, in api.RegisterRequest) (api.Token, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("Register"); err != nil {
		return api.Token{}, err
	}
	b.User = api.User{ID: 8, Name: in.Name, Email: in.Email}
	return api.Token{AccessToken: b.Token, TokenType: "bearer"}, nil
}

func (b *Backend) Login(_ context.Context, email, password string) (api.Token, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("Login"); err != nil {
		return api.Token{}, err
	}
	if email != b.User.Email || password != Password {
		return api.Token{}, &api.Error{Kind: api.KindUnauthenticated, Status: http.StatusUnauthorized, Detail: "Email adresi veya şifre hatalı"}
	}
	return api.Token{AccessToken: b.Token, TokenType: "bearer"}, nil
}

func (b *Backend) Logout(context.Context, string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.call("Logout")
}

func (b *Backend) Me(context.Context) (api.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("Me"); err != nil {
		return api.User{}, err
	}
	return b.User, nil
}

func (b *Backend) SetCredential(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.credential = token
}

// Credential returns the credential last set by the identity store.
func (b *Backend) Credential() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.credential
}

func (b *Backend) Scenarios(_ context.Context, stage int) ([]api.Scenario, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("Scenarios"); err != nil {
		return nil, err
	}
	return b.Stages[stage], nil
}

func (b *Backend) SubmitResponses(_ context.Context, responses []api.Response) (api.PredictionResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("SubmitResponses"); err != nil {
		return api.PredictionResult{}, err
	}
	b.Submitted = append(b.Submitted, responses)
	return b.Prediction, nil
}

func (b *Backend) Progress(context.Context) (api.Progress, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("Progress"); err != nil {
		return api.Progress{}, err
	}
	return b.Journey, nil
}

func (b *Backend) AssessmentStatus(context.Context) (api.AssessmentStatus, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("AssessmentStatus"); err != nil {
		return api.AssessmentStatus{}, err
	}
	return b.Status, nil
}

func (b *Backend) AssessmentResult(context.Context) (api.AssessmentResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("AssessmentResult"); err != nil {
		return api.AssessmentResult{}, err
	}
	if b.Saved == nil {
		return api.AssessmentResult{}, &api.Error{Kind: api.KindClient, Status: http.StatusNotFound}
	}
	return *b.Saved, nil
}

func (b *Backend) ComputeResult(context.Context) (api.PredictionResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("ComputeResult"); err != nil {
		return api.PredictionResult{}, err
	}
	return b.Prediction, nil
}

func (b *Backend) RecommendMentors(_ context.Context, occupation string) ([]api.Mentor, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("RecommendMentors"); err != nil {
		return nil, err
	}
	return b.Mentors, nil
}

func (b *Backend) CreateMentorshipRequest(_ context.Context, mentorID int) (api.MentorshipRequest, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("CreateMentorshipRequest"); err != nil {
		return api.MentorshipRequest{}, err
	}
	req := api.MentorshipRequest{ID: len(b.Requests) + 1, MentorProfileID: mentorID, StatusID: 1}
	detail := api.MentorshipRequestDetail{MentorshipRequest: req, UserID: b.User.ID, StatusName: "Beklemede"}
	for _, m := range b.Mentors {
		if m.ID == mentorID {
			detail.MentorName, detail.MentorCompany, detail.MentorTitle = m.Username, m.Company, m.Title
		}
	}
	b.Requests = append(b.Requests, detail)
	return req, nil
}

func (b *Backend) MentorshipRequests(context.Context) ([]api.MentorshipRequestDetail, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("MentorshipRequests"); err != nil {
		return nil, err
	}
	return append([]api.MentorshipRequestDetail(nil), b.Requests...), nil
}

func (b *Backend) RecommendCourses(_ context.Context, keywords []string, limit int) ([]api.Course, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("RecommendCourses"); err != nil {
		return nil, err
	}
	b.Keywords = append(b.Keywords, keywords)
	if limit > 0 && len(b.Courses) > limit {
		return b.Courses[:limit], nil
	}
	return b.Courses, nil
}

var (
	_ identity.Gateway   = (*Backend)(nil)
	_ assessment.Gateway = (*Backend)(nil)
	_ env.Gateway        = (*Backend)(nil)
)

// Harness is an Env wired to a Backend and an in-memory store.
type Harness struct {
	*env.Env
	Backend *Backend
	Store   *store.Store
}

// NewEnv builds a signed-out environment. Home defaults to a stub screen.
func NewEnv(t *testing.T) *Harness {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	log := zaptest.NewLogger(t)
	tr := i18n.MustNew(i18n.English)
	b := NewBackend()
	ids := identity.New(b, st.LocalStorage(), tr, log)
	t.Cleanup(ids.Close)

	userID := func() int {
		if u, ok := ids.User(); ok {
			return u.ID
		}
		return 0
	}
	e := &env.Env{
		Tr:          tr,
		Identity:    ids,
		Gateway:     b,
		Assessment:  assessment.NewService(b, st.EventRepo(), userID, log),
		Advisor:     advisor.New(nil, nil, advisor.Options{}, log),
		Events:      st.EventRepo(),
		Local:       st.LocalStorage(),
		Log:         log,
		CourseLimit: 5,
	}
	e.Home = func() screen.Screen { return &Stub{Name: "home"} }
	return &Harness{Env: e, Backend: b, Store: st}
}

// SignIn signs the harness user in.
func (h *Harness) SignIn(t *testing.T) {
	t.Helper()
	require.NoError(t, h.Identity.SignIn(context.Background(), Email, Password))
}

// Stub is a screen that does nothing.
type Stub struct{ Name string }

func (s *Stub) Init() tea.Cmd                           { return nil }
func (s *Stub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *Stub) View(int, int) string                    { return s.Name }
func (s *Stub) Title() string                           { return s.Name }

// Key returns the press of a named key such as tea.KeyEnter.
func Key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Rune returns the press of a printable key.
func Rune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Ctrl returns r pressed with control.
func Ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// Type sends each rune of text to s.
func Type(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(Rune(r))
	}
	return s
}

// cmdWait bounds how long Run waits for one command. Timers such as
// countdown ticks and toast expiry take longer and are dropped.
const cmdWait = 300 * time.Millisecond

// Run executes cmd, expanding batches, and returns the messages produced
// within cmdWait.
func Run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdWait):
		return nil
	}
	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, Run(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// Find returns the first message of type T.
func Find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Settle runs cmd and feeds every resulting message back into s until no
// more arrive, returning the final screen and the messages s did not
// produce for itself (router and app messages are collected, not fed).
func Settle(s screen.Screen, cmd tea.Cmd, keep func(tea.Msg) bool) (screen.Screen, []tea.Msg) {
	var kept []tea.Msg
	queue := Run(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if keep != nil && keep(msg) {
			kept = append(kept, msg)
			continue
		}
		var next tea.Cmd
		s, next = s.Update(msg)
		queue = append(queue, Run(next)...)
	}
	return s, kept
}

// Outbound reports whether msg is meant for the router or the app rather
// than the screen that produced it.
func Outbound(msg tea.Msg) bool {
	switch msg.(type) {
	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg, router.ResetScreenMsg,
		env.SessionExpiredMsg, env.SignedOutMsg, tea.QuitMsg:
		return true
	}
	return false
}
