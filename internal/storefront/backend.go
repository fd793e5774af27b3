// Package storefront is the client core of the yoga store: it binds the
// identity session and the in-memory cart to a remote backend, keeping the
// per-user cart document consistent across sign-in, sign-out and account
// switches, and drives checkout.
package storefront

import (
	"context"
	"errors"
	"time"

	"YogaStore/internal/cart"
)

var (
	// ErrNotFound marks a missing remote record (cart document, profile).
	ErrNotFound = errors.New("not found")
	// ErrValidation marks user input rejected before any network call.
	ErrValidation = errors.New("invalid input")
	// ErrNotSignedIn is returned by operations that need an identity.
	ErrNotSignedIn = errors.New("not signed in")
	// ErrEmptyCart rejects order placement with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// Registration carries the sign-up form.
type Registration struct {
	FirstName       string
	LastName        string
	Email           string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
}

// Profile is the stored user record behind an identity.
type Profile struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type Course struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DayOfWeek   string  `json:"day_of_week"`
	Time        string  `json:"time"`
	Price       float64 `json:"price"`
}

// Class is one bookable instance of a course. Classes carry no price of
// their own; the course price is copied onto the cart line at add time.
type Class struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Teacher  string `json:"teacher"`
	Comments string `json:"comments"`
}

// Customer is the contact block recorded on an order.
type Customer struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

type Order struct {
	ID         string      `json:"id"`
	Customer   Customer    `json:"customer"`
	Items      []cart.Line `json:"items"`
	TotalPrice float64     `json:"total_price"`
	OrderDate  time.Time   `json:"order_date"`
}

// Backend is the capability the storefront depends on: hosted auth plus a
// per-user document store. FetchCart reports a missing document with
// ErrNotFound; every other error is a transport or backend failure.
type Backend interface {
	SignIn(ctx context.Context, email, password string) (identity string, err error)
	SignUp(ctx context.Context, reg Registration) (identity string, err error)
	FetchProfile(ctx context.Context, identity string) (Profile, error)

	ListCourses(ctx context.Context) ([]Course, error)
	ListClasses(ctx context.Context, courseID string) ([]Class, error)

	FetchCart(ctx context.Context, identity string) ([]cart.Line, error)
	SaveCart(ctx context.Context, identity string, lines []cart.Line) error

	CreateOrder(ctx context.Context, identity string, customer Customer, lines []cart.Line, total float64) (orderID string, err error)
	ListOrders(ctx context.Context, identity string) ([]Order, error)
}
