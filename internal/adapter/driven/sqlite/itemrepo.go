package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/chayanin/showcase/internal/domain/model"
	"github.com/chayanin/showcase/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ItemStore = (*ItemRepo)(nil)

// ItemRepo is the SQLite implementation of the ItemStore port interface.
type ItemRepo struct {
	db *DB
}

// NewItemRepo creates a new ItemRepo backed by the given DB.
func NewItemRepo(db *DB) *ItemRepo {
	return &ItemRepo{db: db}
}

const itemColumns = `id, title, description, image_url, date_iso, price, stock, market_enabled`

// Create inserts a new item. Returns ErrItemExists if an item with the same
// id already exists.
func (r *ItemRepo) Create(ctx context.Context, it model.Item) error {
	const query = `INSERT INTO items (` + itemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Writer.ExecContext(ctx, query,
		it.ID, it.Title, it.Description, it.ImageURL, it.DateISO, nullPrice(it.Price), it.Stock, it.MarketEnabled)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("create item %s: %w", it.ID, driven.ErrItemExists)
		}
		return fmt.Errorf("create item %s: %w", it.ID, err)
	}

	return nil
}

// Update rewrites all fields of an existing item, including stock. Returns
// ErrItemNotFound if the id is unknown.
func (r *ItemRepo) Update(ctx context.Context, it model.Item) error {
	const query = `UPDATE items
		SET title = ?, description = ?, image_url = ?, date_iso = ?, price = ?, stock = ?, market_enabled = ?
		WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query,
		it.Title, it.Description, it.ImageURL, it.DateISO, nullPrice(it.Price), it.Stock, it.MarketEnabled, it.ID)
	if err != nil {
		return fmt.Errorf("update item %s: %w", it.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update item %s: %w", it.ID, driven.ErrItemNotFound)
	}

	return nil
}

// Delete removes an item by id. Returns ErrItemNotFound if the item does not
// exist. Order rows referencing the item are kept as an audit trail.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM items WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete item %s: %w", id, driven.ErrItemNotFound)
	}

	return nil
}

// GetByID retrieves an item by id. Returns nil, nil if it does not exist.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*model.Item, error) {
	const query = `SELECT ` + itemColumns + ` FROM items WHERE id = ?`

	it, err := scanItem(r.db.Reader.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}

	return it, nil
}

// ListAll returns all items, newest display date first.
func (r *ItemRepo) ListAll(ctx context.Context) ([]model.Item, error) {
	const query = `SELECT ` + itemColumns + ` FROM items ORDER BY date_iso DESC`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return items, nil
}

// SetMarketEnabled flips the marketplace flag and returns the updated item.
// Returns ErrItemNotFound if the id is unknown.
func (r *ItemRepo) SetMarketEnabled(ctx context.Context, id string, enabled bool) (*model.Item, error) {
	const query = `UPDATE items SET market_enabled = ? WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, enabled, id)
	if err != nil {
		return nil, fmt.Errorf("toggle item %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("toggle item %s: %w", id, driven.ErrItemNotFound)
	}

	it, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("toggle item %s: %w", id, driven.ErrItemNotFound)
	}

	return it, nil
}

func scanItem(row rowScanner) (*model.Item, error) {
	var (
		it    model.Item
		price sql.NullFloat64
	)

	if err := row.Scan(&it.ID, &it.Title, &it.Description, &it.ImageURL, &it.DateISO, &price, &it.Stock, &it.MarketEnabled); err != nil {
		return nil, err
	}

	if price.Valid {
		it.Price = &price.Float64
	}

	return &it, nil
}

func nullPrice(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
