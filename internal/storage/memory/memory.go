package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/slok/todoq/internal/log"
	"github.com/slok/todoq/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.FilterRepository,
// used by tests and ephemeral runs.
type Repository struct {
	filter *model.Filter
	mu     sync.RWMutex
	logger log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{logger: cfg.Logger}, nil
}

// GetFilter retrieves the stored filter.
func (r *Repository) GetFilter(ctx context.Context) (*model.Filter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.filter == nil {
		return nil, fmt.Errorf("filter: %w", model.ErrNotFound)
	}

	// Return a copy.
	filterCopy := *r.filter
	return &filterCopy, nil
}

// SaveFilter stores the filter, replacing any previous one.
func (r *Repository) SaveFilter(ctx context.Context, f model.Filter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.filter = &f
	r.logger.Debugf("Saved filter in repository")

	return nil
}
