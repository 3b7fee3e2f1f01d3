package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type insightRepo struct {
	db *sql.DB
}

func (r *insightRepo) Get(ctx context.Context, fingerprint string) (*Insight, error) {
	query, args := builder().Select("fingerprint", "provider", "model", "content", "created_at").
		From(entsql.Table("insights")).
		Where(entsql.EQ("fingerprint", fingerprint)).
		Query()

	var (
		in      Insight
		content string
		created int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&in.Fingerprint, &in.Provider, &in.Model, &content, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query insight: %w", err)
	}
	in.Content = []byte(content)
	in.CreatedAt = time.UnixMilli(created)
	return &in, nil
}

func (r *insightRepo) Save(ctx context.Context, in *Insight) error {
	if in.Fingerprint == "" {
		return errors.New("save insight: empty fingerprint")
	}
	created := in.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	query, args := builder().Insert("insights").
		Columns("fingerprint", "provider", "model", "content", "created_at").
		Values(in.Fingerprint, in.Provider, in.Model, string(in.Content), created.UnixMilli()).
		OnConflict(entsql.ConflictColumns("fingerprint"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save insight: %w", err)
	}
	return nil
}
