package results

import (
	"context"

	"go.uber.org/zap"

	"github.com/yetria/yetria/internal/api"
)

// Source fetches the saved final result or computes one on the server.
type Source interface {
	AssessmentResult(ctx context.Context) (api.AssessmentResult, error)
	ComputeResult(ctx context.Context) (api.PredictionResult, error)
}

// Load prefers the saved final result and falls back to computing one from
// the stored responses. A rejected credential or a cancelled request is
// returned as is without trying the fallback.
func Load(ctx context.Context, src Source, log *zap.Logger) (*Report, error) {
	saved, err := src.AssessmentResult(ctx)
	if err == nil {
		return ReportFromAssessment(saved), nil
	}
	if api.IsUnauthenticated(err) || api.KindOf(err) == api.KindCanceled {
		return nil, err
	}
	if log != nil {
		log.Debug("no saved result; computing", zap.Error(err))
	}
	computed, err := src.ComputeResult(ctx)
	if err != nil {
		return nil, err
	}
	return NewReport(computed), nil
}
