package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slok/todoq/internal/log"
	"github.com/slok/todoq/internal/model"
	"github.com/slok/todoq/internal/storage/sqlite/migrations"
)

// filterStateKey is the single fixed key the serialized filter lives under.
const filterStateKey = "last_filter"

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.FilterRepository. It is
// the durable client-side state between sessions.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// GetFilter retrieves the persisted filter.
func (r *Repository) GetFilter(ctx context.Context) (*model.Filter, error) {
	var value string
	query := `SELECT value FROM client_state WHERE key = ?`
	err := r.db.QueryRowContext(ctx, query, filterStateKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("filter: %w", model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not query filter: %w", err)
	}

	filter := model.Filter{}
	if err := json.Unmarshal([]byte(value), &filter); err != nil {
		return nil, fmt.Errorf("could not parse stored filter: %w", err)
	}

	return &filter, nil
}

// SaveFilter stores the filter as JSON under the fixed key.
func (r *Repository) SaveFilter(ctx context.Context, f model.Filter) error {
	value, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("could not serialize filter: %w", err)
	}

	query := `
		INSERT INTO client_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query, filterStateKey, string(value), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("could not store filter: %w", err)
	}

	r.logger.Debugf("Saved filter in repository")

	return nil
}
