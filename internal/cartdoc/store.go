// Package cartdoc serves the per-user cart document: one whole snapshot per
// user, replaced wholesale on every write. There is no per-item API; the
// storefront always round-trips the full line collection.
package cartdoc

import "context"

// Item is one cart line as persisted. Price is a pointer so an item stored
// without a price stays absent rather than becoming 0.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Teacher  string   `json:"teacher,omitempty"`
	Date     string   `json:"date,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Quantity int      `json:"quantity"`
}

// Document is a user's full cart snapshot.
type Document struct {
	CartItems []Item `json:"cart_items"`
}

type Store interface {
	Get(ctx context.Context, userID string) (Document, bool, error)
	Put(ctx context.Context, userID string, doc Document) error
	Ping(ctx context.Context) error
}
