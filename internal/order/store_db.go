package order

import (
	"context"
	"database/sql"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 5 * time.Second
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Create(ctx context.Context, o Order) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, customer_name, customer_phone, customer_email, total_price, order_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, o.ID, o.UserID, o.Customer.Name, o.Customer.PhoneNumber, o.Customer.Email, o.TotalPrice, o.OrderDate)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO order_items (order_id, item_id, name, teacher, class_date, price, quantity, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, it := range o.Items {
		if _, err := stmt.ExecContext(ctx, o.ID, it.ID, it.Name, it.Teacher, it.Date, it.Price, it.Quantity, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Order, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var o Order
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, customer_name, customer_phone, customer_email, total_price, order_date
		FROM orders
		WHERE id = $1
	`, id).Scan(&o.ID, &o.UserID, &o.Customer.Name, &o.Customer.PhoneNumber, &o.Customer.Email, &o.TotalPrice, &o.OrderDate)

	if err == sql.ErrNoRows {
		return Order{}, false, nil
	}
	if err != nil {
		return Order{}, false, err
	}

	items, err := s.itemsFor(ctx, id)
	if err != nil {
		return Order{}, false, err
	}
	o.Items = items

	return o, true, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, customer_name, customer_phone, customer_email, total_price, order_date
		FROM orders
		WHERE user_id = $1
		ORDER BY order_date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0, 8)
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Customer.Name, &o.Customer.PhoneNumber, &o.Customer.Email, &o.TotalPrice, &o.OrderDate); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := s.itemsFor(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}

	return out, nil
}

func (s *PostgresStore) itemsFor(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT item_id, name, teacher, class_date, price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY position ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0, 8)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Teacher, &it.Date, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
