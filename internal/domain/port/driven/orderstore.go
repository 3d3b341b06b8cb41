package driven

import (
	"context"
	"errors"

	"github.com/chayanin/showcase/internal/domain/model"
)

// Sentinel errors returned by OrderStore implementations.
var (
	// ErrItemNotAvailable indicates the ordered item does not exist or is
	// not enabled for the marketplace.
	ErrItemNotAvailable = errors.New("item not available")

	// ErrOutOfStock indicates the item has less stock than the ordered
	// quantity. Callers decide whether to retry; the store never does.
	ErrOutOfStock = errors.New("out of stock")
)

// OrderStore defines the driven port for order persistence.
//
// Create must apply the stock decrement and the order insert as one atomic
// unit: either both are visible afterwards or neither is. Two concurrent
// orders for the last unit of an item must not both succeed; the loser
// receives ErrOutOfStock.
type OrderStore interface {
	Create(ctx context.Context, o model.Order) error
	ListAll(ctx context.Context) ([]model.Order, error)
}
