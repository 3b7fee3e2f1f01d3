package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Reserved session keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// KeyLocale holds the display language chosen in the app.
const KeyLocale = "locale"

type localStorage struct {
	db *sql.DB
}

func (l *localStorage) SaveSession(ctx context.Context, token string, user json.RawMessage) error {
	if token == "" {
		return errors.New("save session: empty token")
	}
	if !json.Valid(user) {
		return errors.New("save session: user is not valid JSON")
	}
	now := time.Now().UnixMilli()
	query, args := builder().Insert("local_storage").
		Columns("key", "value", "updated_at").
		Values(KeyToken, token, now).
		Values(KeyUser, string(user), now).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	return l.inTx(ctx, "save session", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
}

func (l *localStorage) LoadSession(ctx context.Context) (*Session, error) {
	query, args := builder().Select("key", "value", "updated_at").
		From(entsql.Table("local_storage")).
		Where(entsql.In("key", KeyToken, KeyUser)).
		Query()
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	defer rows.Close()

	var (
		sess      Session
		found     int
		updatedAt int64
	)
	for rows.Next() {
		var key, value string
		var ts int64
		if err := rows.Scan(&key, &value, &ts); err != nil {
			return nil, fmt.Errorf("load session: %w", err)
		}
		switch key {
		case KeyToken:
			sess.Token = value
		case KeyUser:
			sess.User = json.RawMessage(value)
		}
		found++
		updatedAt = max(updatedAt, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if found < 2 || sess.Token == "" {
		return nil, nil
	}
	sess.SavedAt = time.UnixMilli(updatedAt)
	return &sess, nil
}

func (l *localStorage) ClearSession(ctx context.Context) error {
	query, args := builder().Delete("local_storage").
		Where(entsql.In("key", KeyToken, KeyUser)).
		Query()
	return l.inTx(ctx, "clear session", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
}

func (l *localStorage) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := builder().Select("value").
		From(entsql.Table("local_storage")).
		Where(entsql.EQ("key", key)).
		Query()
	var value string
	err := l.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (l *localStorage) Set(ctx context.Context, key, value string) error {
	if key == KeyToken || key == KeyUser {
		return fmt.Errorf("set %q: reserved session key", key)
	}
	query, args := builder().Insert("local_storage").
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UnixMilli()).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (l *localStorage) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	return nil
}
