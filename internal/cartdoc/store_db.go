package cartdoc

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// PostgresStore keeps one JSONB document per user, upserted wholesale.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) Get(ctx context.Context, userID string) (Document, bool, error) {
	var raw []byte
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT doc
			FROM carts
			WHERE user_id = $1
		`, userID).Scan(&raw)
	})
	if err == sql.ErrNoRows {
		return Document{}, false, nil
	}
	if err != nil {
		return Document{}, false, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, false, err
	}
	return doc, true, nil
}

func (s *PostgresStore) Put(ctx context.Context, userID string, doc Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO carts (user_id, doc, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (user_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
		`, userID, raw)
		return err
	})
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
