package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/chayanin/showcase/internal/domain/model"
	"github.com/chayanin/showcase/internal/domain/port/driven"
)

// ErrInvalidOrder indicates a malformed order request: missing item id or an
// explicit non-positive quantity. The store is never touched in this case.
var ErrInvalidOrder = errors.New("invalid payload")

// PlacedOrder is the result of a successful order placement. Amount is
// informational only: payment happens out-of-band, nothing is captured here.
type PlacedOrder struct {
	Order  model.Order
	Amount float64
}

// OrderService implements order placement over the item and order stores.
type OrderService struct {
	items  driven.ItemStore
	orders driven.OrderStore
}

// NewOrderService creates an OrderService.
func NewOrderService(items driven.ItemStore, orders driven.OrderStore) *OrderService {
	return &OrderService{items: items, orders: orders}
}

// PlaceOrder validates the request, then atomically decrements stock and
// records the order. qty nil means "omitted" and defaults to 1; an explicit
// zero or negative quantity is rejected as invalid.
//
// Precondition checks short-circuit in order: invalid payload, then item
// missing or not marketplace-enabled (ErrItemNotAvailable), then
// insufficient stock (ErrOutOfStock). The stock check here is advisory; the
// store re-checks it under the write so concurrent orders cannot oversell.
func (s *OrderService) PlaceOrder(ctx context.Context, itemID string, qty *int) (*PlacedOrder, error) {
	if itemID == "" || (qty != nil && *qty <= 0) {
		return nil, ErrInvalidOrder
	}
	q := 1
	if qty != nil {
		q = *qty
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("look up item %s: %w", itemID, err)
	}
	if item == nil || !item.MarketEnabled {
		return nil, driven.ErrItemNotAvailable
	}
	if item.Stock < q {
		return nil, driven.ErrOutOfStock
	}

	order := model.Order{
		ID:        uuid.New().String(),
		ItemID:    itemID,
		Qty:       q,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	unit := 0.0
	if item.Price != nil {
		unit = *item.Price
	}

	return &PlacedOrder{
		Order:  order,
		Amount: round2(unit * float64(q)),
	}, nil
}

// round2 keeps the reported amount stable at two decimal places; unit prices
// are two-decimal quantities and float64 products drift (49.99*3).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
