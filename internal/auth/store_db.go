package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
	pgUniqueCode = "23505"
)

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

func (s *PostgresStore) Create(ctx context.Context, u User, password string) error {
	email := strings.ToLower(strings.TrimSpace(u.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(password)), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO users (id, email, pass_hash, first_name, last_name, phone_number)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, u.ID, email, hash, u.FirstName, u.LastName, u.PhoneNumber)

		if err == nil {
			return nil
		}
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return err
	})
}

func (s *PostgresStore) Verify(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u User
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT id, email, pass_hash, first_name, last_name, phone_number
			FROM users
			WHERE email = $1
		`, email).Scan(&u.ID, &u.Email, &u.Hash, &u.FirstName, &u.LastName, &u.PhoneNumber)
	})
	if err == sql.ErrNoRows {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(u.Hash, []byte(strings.TrimSpace(password))); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (User, bool, error) {
	var u User
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT id, email, pass_hash, first_name, last_name, phone_number
			FROM users
			WHERE id = $1
		`, id).Scan(&u.ID, &u.Email, &u.Hash, &u.FirstName, &u.LastName, &u.PhoneNumber)
	})
	if err == sql.ErrNoRows {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueCode
}
