// Package env carries the services every screen needs and the messages
// screens use to talk to the application model.
package env

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/yetria/yetria/internal/advisor"
	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/assessment"
	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/identity"
	"github.com/yetria/yetria/internal/screen"
	"github.com/yetria/yetria/internal/store"
)

// Gateway is the part of the API client screens call directly.
type Gateway interface {
	AssessmentResult(ctx context.Context) (api.AssessmentResult, error)
	ComputeResult(ctx context.Context) (api.PredictionResult, error)
	RecommendMentors(ctx context.Context, occupation string) ([]api.Mentor, error)
	CreateMentorshipRequest(ctx context.Context, mentorID int) (api.MentorshipRequest, error)
	MentorshipRequests(ctx context.Context) ([]api.MentorshipRequestDetail, error)
	RecommendCourses(ctx context.Context, keywords []string, limit int) ([]api.Course, error)
}

// Env is shared by all screens. Fields other than Tr, Identity, Gateway
// and Assessment may be nil.
type Env struct {
	Tr         *i18n.Translator
	Identity   *identity.Store
	Gateway    Gateway
	Assessment *assessment.Service
	Advisor    *advisor.Advisor
	Events     store.EventRepo
	Local      store.LocalStorage
	Log        *zap.Logger

	// CourseLimit is the number of course recommendations requested.
	CourseLimit int

	// Home builds the screen shown after sign-in. Set by the app.
	Home func() screen.Screen
}

// SessionExpiredMsg tells the app the credential was rejected and the
// local session has been cleared.
type SessionExpiredMsg struct{}

// SignedOutMsg tells the app the user signed out.
type SignedOutMsg struct{}

// Logger returns the logger, or a no-op one.
func (e *Env) Logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

// Failure turns a request error into the text to show. When the error
// means the session expired the identity store signs out and the returned
// command routes back to sign-in.
func (e *Env) Failure(err error) (string, tea.Cmd) {
	if e.Identity != nil && e.Identity.HandleError(err) {
		return e.Tr.T(i18n.KeyAuthSessionExpired), func() tea.Msg { return SessionExpiredMsg{} }
	}
	return api.UserMessage(err, e.Tr), nil
}
