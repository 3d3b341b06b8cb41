package driven

import (
	"context"
	"errors"

	"github.com/chayanin/showcase/internal/domain/model"
)

// Sentinel errors returned by ItemStore implementations.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemExists indicates an item with the same id already exists.
	ErrItemExists = errors.New("item already exists")
)

// ItemStore defines the driven port for marketplace item persistence.
// Create returns ErrItemExists on a duplicate id; Update, Delete and
// SetMarketEnabled return ErrItemNotFound when the id is unknown.
// GetByID returns nil, nil when the item does not exist.
type ItemStore interface {
	Create(ctx context.Context, it model.Item) error
	Update(ctx context.Context, it model.Item) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Item, error)
	ListAll(ctx context.Context) ([]model.Item, error)
	SetMarketEnabled(ctx context.Context, id string, enabled bool) (*model.Item, error)
}
