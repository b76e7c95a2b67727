package storage

import (
	"context"

	"github.com/slok/todoq/internal/model"
)

// FilterRepository persists the last used task filter between sessions.
type FilterRepository interface {
	// GetFilter returns the persisted filter, model.ErrNotFound when nothing
	// has been persisted yet.
	GetFilter(ctx context.Context) (*model.Filter, error)
	SaveFilter(ctx context.Context, f model.Filter) error
}

//go:generate mockery --case underscore --output storagemock --outpkg storagemock --name FilterRepository
