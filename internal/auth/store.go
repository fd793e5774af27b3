package auth

import (
	"context"
	"errors"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is an account plus the profile captured at registration. The profile
// is what the storefront pre-fills at checkout.
type User struct {
	ID          string
	Email       string
	Hash        []byte
	FirstName   string
	LastName    string
	PhoneNumber string
}

type UserStore interface {
	Create(ctx context.Context, u User, password string) error
	Verify(ctx context.Context, email, password string) (User, error)
	Get(ctx context.Context, id string) (User, bool, error)
	Ping(ctx context.Context) error
}
