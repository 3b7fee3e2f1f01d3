package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// execQuerier is satisfied by both *sql.DB and *sql.Tx.
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var submissionColumns = []string{
	"sequence", "timestamp", "attempt_id", "user_id", "stage", "response_count",
	"success", "error_kind", "error_message", "winning_occupation", "latency_ms",
}

func (r *eventRepo) AppendSubmission(ctx context.Context, data SubmissionEventData) error {
	if data.AttemptID == "" {
		return fmt.Errorf("submission event: attempt id is required")
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert("submission_events").
		Columns(submissionColumns...).
		Values(seqNum, time.Now().UnixMilli(), data.AttemptID, data.UserID, data.Stage, data.ResponseCount,
			data.Success, data.ErrorKind, data.ErrorMessage, data.WinningOccupation, data.LatencyMs).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save submission event: %w", err)
	}
	return nil
}

func (r *eventRepo) Submissions(ctx context.Context, opts QueryOpts) ([]SubmissionEvent, error) {
	sel := builder().Select(submissionColumns...).
		From(entsql.Table("submission_events")).
		OrderBy(entsql.Desc("sequence"))
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submission events: %w", err)
	}
	defer rows.Close()

	var out []SubmissionEvent
	for rows.Next() {
		var (
			ev SubmissionEvent
			ts int64
		)
		if err := rows.Scan(&ev.Sequence, &ts, &ev.AttemptID, &ev.UserID, &ev.Stage, &ev.ResponseCount,
			&ev.Success, &ev.ErrorKind, &ev.ErrorMessage, &ev.WinningOccupation, &ev.LatencyMs); err != nil {
			return nil, fmt.Errorf("scan submission event: %w", err)
		}
		ev.Timestamp = time.UnixMilli(ts)
		out = append(out, ev)
	}
	return out, rows.Err()
}
