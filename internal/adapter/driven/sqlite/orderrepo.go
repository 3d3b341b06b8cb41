package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chayanin/showcase/internal/domain/model"
	"github.com/chayanin/showcase/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.OrderStore = (*OrderRepo)(nil)

// OrderRepo is the SQLite implementation of the OrderStore port interface.
type OrderRepo struct {
	db *DB
}

// NewOrderRepo creates a new OrderRepo backed by the given DB.
func NewOrderRepo(db *DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create decrements the item's stock and inserts the order row in one
// transaction on the single-connection writer.
//
// The decrement is a conditional UPDATE that re-checks marketplace
// eligibility and stock in the same statement, so a concurrent order or an
// admin edit between the caller's availability check and this write cannot
// oversell: the losing request sees zero rows affected and is rejected with
// ErrOutOfStock (or ErrItemNotAvailable when the item is gone or disabled).
func (r *OrderRepo) Create(ctx context.Context, o model.Order) (err error) {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	const decrement = `UPDATE items SET stock = stock - ? WHERE id = ? AND market_enabled = 1 AND stock >= ?`

	result, err := tx.ExecContext(ctx, decrement, o.Qty, o.ItemID, o.Qty)
	if err != nil {
		return fmt.Errorf("decrement stock for item %s: %w", o.ItemID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		var enabled bool
		err := tx.QueryRowContext(ctx, `SELECT market_enabled FROM items WHERE id = ?`, o.ItemID).Scan(&enabled)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return driven.ErrItemNotAvailable
		case err != nil:
			return fmt.Errorf("inspect item %s: %w", o.ItemID, err)
		case !enabled:
			return driven.ErrItemNotAvailable
		default:
			return driven.ErrOutOfStock
		}
	}

	const insert = `INSERT INTO orders (id, item_id, qty, created_at) VALUES (?, ?, ?, ?)`

	if _, err := tx.ExecContext(ctx, insert, o.ID, o.ItemID, o.Qty, o.CreatedAt); err != nil {
		return fmt.Errorf("insert order %s: %w", o.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order tx: %w", err)
	}

	return nil
}

// ListAll returns all orders, newest first.
func (r *OrderRepo) ListAll(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT id, item_id, qty, created_at FROM orders ORDER BY created_at DESC, id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.ItemID, &o.Qty, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}
