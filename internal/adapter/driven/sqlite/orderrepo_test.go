package sqlite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/chayanin/showcase/internal/domain/model"
	"github.com/chayanin/showcase/internal/domain/port/driven"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeOrder(id, itemID string, qty int) model.Order {
	return model.Order{
		ID:        id,
		ItemID:    itemID,
		Qty:       qty,
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func itemStock(t *testing.T, db *DB, id string) int {
	t.Helper()
	var stock int
	err := db.Reader.QueryRowContext(context.Background(), `SELECT stock FROM items WHERE id = ?`, id).Scan(&stock)
	require.NoError(t, err)
	return stock
}

func TestOrderRepo_Create(t *testing.T) {
	db := setupTestDB(t)
	items := NewItemRepo(db)
	orders := NewOrderRepo(db)
	ctx := context.Background()

	require.NoError(t, items.Create(ctx, makeItem("i1", "Leather Wallet", 49.99, 5)))

	require.NoError(t, orders.Create(ctx, makeOrder("o1", "i1", 2)))

	assert.Equal(t, 3, itemStock(t, db, "i1"))

	all, err := orders.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "o1", all[0].ID)
	assert.Equal(t, "i1", all[0].ItemID)
	assert.Equal(t, 2, all[0].Qty)
}

func TestOrderRepo_Create_ItemMissing(t *testing.T) {
	db := setupTestDB(t)
	orders := NewOrderRepo(db)
	ctx := context.Background()

	err := orders.Create(ctx, makeOrder("o1", "ghost", 1))
	assert.ErrorIs(t, err, driven.ErrItemNotAvailable)
}

func TestOrderRepo_Create_ItemDisabled(t *testing.T) {
	db := setupTestDB(t)
	items := NewItemRepo(db)
	orders := NewOrderRepo(db)
	ctx := context.Background()

	it := makeItem("i1", "Leather Wallet", 49.99, 5)
	it.MarketEnabled = false
	require.NoError(t, items.Create(ctx, it))

	err := orders.Create(ctx, makeOrder("o1", "i1", 1))
	assert.ErrorIs(t, err, driven.ErrItemNotAvailable)

	// Nothing was written: stock untouched, no order row.
	assert.Equal(t, 5, itemStock(t, db, "i1"))
	all, err := orders.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOrderRepo_Create_OutOfStock(t *testing.T) {
	db := setupTestDB(t)
	items := NewItemRepo(db)
	orders := NewOrderRepo(db)
	ctx := context.Background()

	require.NoError(t, items.Create(ctx, makeItem("i1", "Leather Wallet", 49.99, 1)))

	err := orders.Create(ctx, makeOrder("o1", "i1", 2))
	assert.ErrorIs(t, err, driven.ErrOutOfStock)
	assert.Equal(t, 1, itemStock(t, db, "i1"))
}

// Two sequential orders of 2 against stock 5 leave 1; a third order of 2 is
// rejected out-of-stock and changes nothing.
func TestOrderRepo_Create_SequentialDrain(t *testing.T) {
	db := setupTestDB(t)
	items := NewItemRepo(db)
	orders := NewOrderRepo(db)
	ctx := context.Background()

	require.NoError(t, items.Create(ctx, makeItem("i1", "Leather Wallet", 49.99, 5)))

	require.NoError(t, orders.Create(ctx, makeOrder("o1", "i1", 2)))
	require.NoError(t, orders.Create(ctx, makeOrder("o2", "i1", 2)))
	assert.Equal(t, 1, itemStock(t, db, "i1"))

	err := orders.Create(ctx, makeOrder("o3", "i1", 2))
	assert.ErrorIs(t, err, driven.ErrOutOfStock)
	assert.Equal(t, 1, itemStock(t, db, "i1"))

	all, err := orders.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// Two concurrent orders for the last unit: exactly one succeeds, final stock
// is 0, and exactly one order row exists. The single-connection writer plus
// the conditional decrement make the race impossible to win twice.
func TestOrderRepo_Create_ConcurrentLastUnit(t *testing.T) {
	db := setupTestDB(t)
	items := NewItemRepo(db)
	orders := NewOrderRepo(db)
	ctx := context.Background()

	require.NoError(t, items.Create(ctx, makeItem("i1", "Leather Wallet", 49.99, 1)))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs[n] = orders.Create(ctx, makeOrder("o"+string(rune('1'+n)), "i1", 1))
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, driven.ErrOutOfStock)
	}
	assert.Equal(t, 1, succeeded)

	assert.Equal(t, 0, itemStock(t, db, "i1"))

	all, err := orders.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
