// Package driven defines the driven ports (store interfaces) of the
// application, plus the sentinel errors their implementations return.
package driven

import (
	"context"
	"errors"

	"github.com/chayanin/showcase/internal/domain/model"
)

// Sentinel errors returned by ProjectStore implementations.
var (
	// ErrProjectNotFound indicates the requested project does not exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrProjectExists indicates a project with the same id already exists.
	ErrProjectExists = errors.New("project already exists")
)

// ProjectStore defines the driven port for project persistence.
// Create returns ErrProjectExists on a duplicate id; Update, Delete and
// SetMarketEnabled return ErrProjectNotFound when the id is unknown.
type ProjectStore interface {
	Create(ctx context.Context, p model.Project) error
	Update(ctx context.Context, p model.Project) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Project, error)
	ListAll(ctx context.Context) ([]model.Project, error)
	SetMarketEnabled(ctx context.Context, id string, enabled bool) (*model.Project, error)
}
