// Package identity owns the signed-in user: the credential, the cached user
// record and the authentication status. It is the only writer of the
// persisted session.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/store"
)

// DefaultUserTypeID is sent on registration when none is given.
const DefaultUserTypeID = 1

// logoutTimeout bounds the best-effort remote logout.
const logoutTimeout = 5 * time.Second

// Status is the authentication state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusAuthenticated
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// ErrSessionExpired is returned by Restore when the stored credential was
// rejected and the local session has been wiped.
var ErrSessionExpired = errors.New("identity: session expired")

// ErrSuperseded is returned when a sign-in finished after SignOut (or a newer
// attempt) started; its result is discarded.
var ErrSuperseded = errors.New("identity: attempt superseded")

// Gateway is the subset of the API client the store needs.
type Gateway interface {
	Register(ctx context.Context, in api.RegisterRequest) (api.Token, error)
	Login(ctx context.Context, email, password string) (api.Token, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context) (api.User, error)
	SetCredential(token string)
}

// SignUpInput is the registration form.
type SignUpInput struct {
	Name             string
	Email            string
	Password         string
	Age              *int
	UserTypeID       int
	EducationLevelID *int
}

// Snapshot is a consistent read of the store's state.
type Snapshot struct {
	Status Status
	User   *api.User
	Error  string
}

// Store is the session/identity store. It is safe for concurrent use.
type Store struct {
	gw      Gateway
	storage store.LocalStorage
	tr      *i18n.Translator
	log     *zap.Logger

	mu     sync.RWMutex
	status Status
	user   *api.User
	token  string
	errMsg string
	gen    uint64 // bumped by SignOut and every new attempt

	pending sync.WaitGroup
}

// New creates a Store. Call Restore to pick up a persisted session.
func New(gw Gateway, storage store.LocalStorage, tr *i18n.Translator, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{gw: gw, storage: storage, tr: tr, log: log.Named("identity")}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Status: s.status, Error: s.errMsg}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Status returns the authentication status.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// User returns the signed-in user.
func (s *Store) User() (api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return api.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a user is signed in.
func (s *Store) IsAuthenticated() bool {
	return s.Status() == StatusAuthenticated
}

// ErrorMessage returns the retained error message, if any.
func (s *Store) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// ClearError drops a retained error and returns to idle when not signed in.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
	if s.status == StatusError {
		s.status = StatusIdle
	}
}

// SignIn authenticates with email and password.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	gen := s.begin()
	if err := ValidateSignIn(email, password); err != nil {
		return s.fail(gen, err)
	}
	tok, err := s.gw.Login(ctx, email, password)
	if err != nil {
		return s.fail(gen, err)
	}
	return s.complete(ctx, gen, tok.AccessToken)
}

// SignUp registers a new account and signs it in.
func (s *Store) SignUp(ctx context.Context, in SignUpInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	gen := s.begin()
	if err := ValidateSignUp(in); err != nil {
		return s.fail(gen, err)
	}
	typeID := in.UserTypeID
	if typeID == 0 {
		typeID = DefaultUserTypeID
	}
	tok, err := s.gw.Register(ctx, api.RegisterRequest{
		Name:             in.Name,
		Email:            in.Email,
		Password:         in.Password,
		Age:              in.Age,
		UserTypeID:       typeID,
		EducationLevelID: in.EducationLevelID,
	})
	if err != nil {
		return s.fail(gen, err)
	}
	return s.complete(ctx, gen, tok.AccessToken)
}

// begin starts a new attempt: status loading, previous error cleared.
func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.status = StatusLoading
	s.errMsg = ""
	return s.gen
}

// complete verifies the new credential, persists the session and marks the
// store authenticated. The gateway credential is only set once the attempt
// is known to still be current, in the same critical section that persists
// it, so a concurrent SignOut always wins.
func (s *Store) complete(ctx context.Context, gen uint64, token string) error {
	if token == "" {
		return s.fail(gen, errors.New("identity: server returned an empty token"))
	}
	user, err := s.gw.Me(api.WithCredential(ctx, token))
	if err != nil {
		return s.fail(gen, err)
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return s.fail(gen, fmt.Errorf("encode user: %w", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return ErrSuperseded
	}
	if err := s.storage.SaveSession(ctx, token, raw); err != nil {
		s.status = StatusError
		s.errMsg = s.tr.T(i18n.KeyErrClientGeneric)
		return fmt.Errorf("persist session: %w", err)
	}
	s.gw.SetCredential(token)
	s.token = token
	s.user = &user
	s.status = StatusAuthenticated
	s.log.Info("signed in", zap.Int("user_id", user.ID))
	return nil
}

// fail records err as the retained error of attempt gen and returns it.
func (s *Store) fail(gen uint64, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return ErrSuperseded
	}
	s.status = StatusError
	var verr *ValidationError
	if errors.As(err, &verr) {
		s.errMsg = verr.First(s.tr)
	} else {
		s.errMsg = api.UserMessage(err, s.tr)
	}
	s.log.Info("authentication failed", zap.Error(err))
	return err
}

// SignOut clears the credential, the persisted session and the status. It
// does not wait for the network: the backend is notified in the background.
func (s *Store) SignOut() {
	token := s.reset()
	if token == "" {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), logoutTimeout)
		defer cancel()
		if err := s.gw.Logout(ctx, token); err != nil {
			s.log.Debug("remote logout failed", zap.Error(err))
		}
	}()
}

// reset wipes all local session state and returns the dropped token.
func (s *Store) reset() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	token := s.token
	s.token = ""
	s.user = nil
	s.status = StatusIdle
	s.errMsg = ""
	s.gw.SetCredential("")
	if err := s.storage.ClearSession(context.Background()); err != nil {
		s.log.Warn("clear persisted session", zap.Error(err))
	}
	return token
}

// Restore loads a persisted session and verifies it with one /users/me
// call. A rejected credential wipes the session and returns
// ErrSessionExpired; any other failure keeps the cached identity so the
// app can start offline.
func (s *Store) Restore(ctx context.Context) error {
	sess, err := s.storage.LoadSession(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil
	}
	var cached api.User
	if err := json.Unmarshal(sess.User, &cached); err != nil {
		s.log.Warn("discarding unreadable stored user", zap.Error(err))
		s.reset()
		return nil
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.token = sess.Token
	s.user = &cached
	s.status = StatusAuthenticated
	s.gw.SetCredential(sess.Token)
	s.mu.Unlock()

	user, err := s.gw.Me(ctx)
	switch {
	case err == nil:
	case api.IsUnauthenticated(err):
		s.log.Info("stored credential rejected")
		s.reset()
		s.mu.Lock()
		s.errMsg = s.tr.T(i18n.KeyAuthSessionExpired)
		s.mu.Unlock()
		return ErrSessionExpired
	default:
		s.log.Warn("could not verify stored session; using cached identity", zap.Error(err))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return ErrSuperseded
	}
	if raw, err := json.Marshal(user); err == nil && !bytes.Equal(raw, sess.User) {
		if err := s.storage.SaveSession(ctx, sess.Token, raw); err != nil {
			s.log.Warn("refresh stored user", zap.Error(err))
		}
	}
	s.user = &user
	return nil
}

// HandleError signs out when err means the credential is no longer valid.
// It reports whether it did.
func (s *Store) HandleError(err error) bool {
	if !api.IsUnauthenticated(err) {
		return false
	}
	s.reset()
	s.mu.Lock()
	s.errMsg = s.tr.T(i18n.KeyAuthSessionExpired)
	s.mu.Unlock()
	return true
}

// Close waits for background logout notifications to finish.
func (s *Store) Close() {
	s.pending.Wait()
}
