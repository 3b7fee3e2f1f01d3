package assessment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/store"
)

// Gateway is the subset of the API client the assessment needs.
type Gateway interface {
	Scenarios(ctx context.Context, stage int) ([]api.Scenario, error)
	SubmitResponses(ctx context.Context, responses []api.Response) (api.PredictionResult, error)
	Progress(ctx context.Context) (api.Progress, error)
	AssessmentStatus(ctx context.Context) (api.AssessmentStatus, error)
}

// Service runs the network side of the assessment and records every
// submission attempt in the local event log.
type Service struct {
	gw     Gateway
	events store.EventRepo
	log    *zap.Logger
	userID func() int
}

// NewService creates a Service. events may be nil; userID, if set, tags
// recorded submissions with the signed-in user.
func NewService(gw Gateway, events store.EventRepo, userID func() int, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{gw: gw, events: events, userID: userID, log: log.Named("assessment")}
}

// FetchStage returns the scenarios of stage. The owner of the Flow applies
// the result with Flow.Loaded or Flow.LoadFailed on its own goroutine.
func (s *Service) FetchStage(ctx context.Context, stage int) ([]api.Scenario, error) {
	scenarios, err := s.gw.Scenarios(ctx, stage)
	if err != nil {
		s.log.Warn("load stage", zap.Int("stage", stage), zap.Error(err))
		return nil, err
	}
	s.log.Debug("stage loaded", zap.Int("stage", stage), zap.Int("scenarios", len(scenarios)))
	return scenarios, nil
}

// SubmitStage sends one stage's responses and records the attempt. The
// owner of the Flow applies the result with Flow.Submitted or
// Flow.SubmitFailed.
func (s *Service) SubmitStage(ctx context.Context, stage int, responses []api.Response) (api.PredictionResult, error) {
	start := time.Now()
	res, err := s.gw.SubmitResponses(ctx, responses)
	ev := store.SubmissionEventData{
		AttemptID:     uuid.NewString(),
		Stage:         stage,
		ResponseCount: len(responses),
		Success:       err == nil,
		LatencyMs:     time.Since(start).Milliseconds(),
	}
	if s.userID != nil {
		ev.UserID = s.userID()
	}
	if err != nil {
		ev.ErrorKind = api.KindOf(err).String()
		ev.ErrorMessage = err.Error()
		s.log.Warn("submit stage",
			zap.Int("stage", stage),
			zap.Int("responses", len(responses)),
			zap.Error(err),
		)
	} else {
		ev.WinningOccupation = res.WinningOccupation
		s.log.Info("stage submitted",
			zap.Int("stage", stage),
			zap.String("winner", res.WinningOccupation),
			zap.Int64("latency_ms", ev.LatencyMs),
		)
	}
	s.record(ev)
	return res, err
}

func (s *Service) record(ev store.SubmissionEventData) {
	if s.events == nil {
		return
	}
	// The submission already happened; a write failure must not surface.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.events.AppendSubmission(ctx, ev); err != nil {
		s.log.Warn("record submission event", zap.Error(err))
	}
}

// Boot is the state the stage selection screen starts from.
type Boot struct {
	Journey    *Journey
	Progress   *api.Progress         // nil when the progress call failed
	Status     *api.AssessmentStatus // nil when the status call failed
	Transition Transition            // ToResults when the server says all stages are done
	Offline    bool                  // progress could not be fetched
}

// Bootstrap fetches progress and assessment status concurrently and builds
// the initial journey. A progress failure falls back to stage 1. Only an
// expired credential or cancellation is returned as an error.
func (s *Service) Bootstrap(ctx context.Context) (*Boot, error) {
	var (
		progress    api.Progress
		progressErr error
		status      api.AssessmentStatus
		statusErr   error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		progress, progressErr = s.gw.Progress(gctx)
		return fatal(progressErr)
	})
	g.Go(func() error {
		status, statusErr = s.gw.AssessmentStatus(gctx)
		return fatal(statusErr)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	boot := &Boot{Journey: NewJourney()}
	if progressErr != nil {
		s.log.Warn("fetch progress; starting from stage 1", zap.Error(progressErr))
		boot.Journey.Fallback()
		boot.Offline = true
	} else {
		boot.Progress = &progress
		boot.Transition = boot.Journey.Reconcile(progress)
	}
	if statusErr != nil {
		s.log.Debug("fetch assessment status", zap.Error(statusErr))
	} else {
		boot.Status = &status
	}
	return boot, nil
}

// fatal keeps the errors that should abort a bootstrap.
func fatal(err error) error {
	if err == nil {
		return nil
	}
	if api.IsUnauthenticated(err) || errors.Is(err, context.Canceled) || api.KindOf(err) == api.KindCanceled {
		return err
	}
	return nil
}
