package ports

import (
	"context"
	"time"

	"github.com/terranova/density/pkg/domain"
)

// GridStore persists evaluated preview grids.
// Keys are derived from the program and the domain, so a stored grid is valid
// for as long as the document it was computed from does not change.
type GridStore interface {
	// Save stores grid under key. A positive ttl expires the entry.
	Save(ctx context.Context, key string, grid *domain.Grid, ttl time.Duration) error

	// Load retrieves the grid stored under key.
	// Returns domain.ErrNotFound if there is none.
	Load(ctx context.Context, key string) (*domain.Grid, error)

	// Delete removes the grid stored under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every stored key.
	List(ctx context.Context) ([]string, error)
}
