package order

import (
	"context"
	"time"
)

// Item is one ordered cart line, frozen at checkout time.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Teacher  string   `json:"teacher,omitempty"`
	Date     string   `json:"date,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Quantity int      `json:"quantity"`
}

// Customer is the contact block the shopper confirmed at checkout.
type Customer struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

// Order is immutable once created.
type Order struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Customer   Customer  `json:"customer"`
	Items      []Item    `json:"items"`
	TotalPrice float64   `json:"total_price"`
	OrderDate  time.Time `json:"order_date"`
}

type Store interface {
	Create(ctx context.Context, o Order) error
	Get(ctx context.Context, id string) (Order, bool, error)
	// ListByUser returns the user's orders newest first.
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	Ping(ctx context.Context) error
}
