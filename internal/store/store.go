// Package store holds the canonical in-memory task list and orchestrates
// every mutation as an optimistic-apply, remote-call, reconcile cycle.
//
// The invariant for every mutating operation: the list reflects the user's
// intent immediately, and on remote failure it is restored to the
// pre-operation state with the error recorded.
package store

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/todoq/internal/client"
	"github.com/slok/todoq/internal/log"
	"github.com/slok/todoq/internal/model"
	"github.com/slok/todoq/internal/storage"
)

// networkErrorMessage is the generic presentation of any connectivity
// failure. The real cause is kept on the returned error for diagnostics.
const networkErrorMessage = "unable to reach server"

// resource identifies an independently loaded remote collection. Each one
// carries its own request generation counter.
type resource int

const (
	resourceTodos resource = iota
	resourceTags
	resourceArchive
)

// Config is the configuration for the task store.
type Config struct {
	Gateway client.Gateway
	Filters storage.FilterRepository
	Logger  log.Logger
}

func (c *Config) defaults() error {
	if c.Gateway == nil {
		return fmt.Errorf("gateway is required")
	}

	if c.Filters == nil {
		return fmt.Errorf("filter repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "store.Store"})

	return nil
}

// Store owns the canonical task list. It is the only writer of that list,
// every other component reads it or requests mutations through its
// operations.
type Store struct {
	gateway client.Gateway
	filters storage.FilterRepository
	logger  log.Logger

	mu         sync.Mutex
	tasks      []model.Task
	filter     model.Filter
	tags       []string
	archive    []model.ArchiveGroup
	loading    bool
	loadedOnce bool
	lastError  string
	gens       map[resource]uint64
	subs       map[int]chan Snapshot
	nextSubID  int
}

// NewStore creates a new task store. It restores the persisted filter, any
// restore failure silently falls back to the default filter (recorded in the
// debug log only, the user never sees it).
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Store{
		gateway: cfg.Gateway,
		filters: cfg.Filters,
		logger:  cfg.Logger,
		filter:  model.DefaultFilter(),
		gens:    map[resource]uint64{},
		subs:    map[int]chan Snapshot{},
	}

	restored, err := cfg.Filters.GetFilter(ctx)
	if err != nil {
		s.logger.Debugf("could not restore persisted filter, using default: %v", err)
	} else {
		s.filter = *restored
	}

	return s, nil
}

// Snapshot is an immutable view of the store state delivered to subscribers.
type Snapshot struct {
	Tasks     []model.Task
	Filter    model.Filter
	Tags      []string
	Archive   []model.ArchiveGroup
	Loading   bool
	LastError string
}

// Subscribe registers an observer channel that receives a state snapshot on
// every change. Slow receivers only miss intermediate states, the channel
// always ends up holding the latest one. The returned func unsubscribes.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		// Coalesce: drop the stale pending snapshot and push the new one.
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func (s *Store) snapshotLocked() Snapshot {
	tasks := make([]model.Task, len(s.tasks))
	copy(tasks, s.tasks)
	tags := make([]string, len(s.tags))
	copy(tags, s.tags)
	archive := make([]model.ArchiveGroup, len(s.archive))
	copy(archive, s.archive)

	return Snapshot{
		Tasks:     tasks,
		Filter:    s.filter,
		Tags:      tags,
		Archive:   archive,
		Loading:   s.loading,
		LastError: s.lastError,
	}
}

// Tasks returns a copy of the current task list, in server order.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := make([]model.Task, len(s.tasks))
	copy(tasks, s.tasks)
	return tasks
}

// Filter returns the active filter.
func (s *Store) Filter() model.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Tags returns the known tag set, as last reported by the server.
func (s *Store) Tags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	tags := make([]string, len(s.tags))
	copy(tags, s.tags)
	return tags
}

// Archive returns the archive groups, as last reported by the server.
func (s *Store) Archive() []model.ArchiveGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	archive := make([]model.ArchiveGroup, len(s.archive))
	copy(archive, s.archive)
	return archive
}

// Loading returns whether the first load of the session is still in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the last recorded operation error message, empty when
// the last operation succeeded.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *Store) nextGenLocked(r resource) uint64 {
	s.gens[r]++
	return s.gens[r]
}

func (s *Store) isCurrentGenLocked(r resource, gen uint64) bool {
	return s.gens[r] == gen
}

// errorMessage maps an operation error to what the store records: network
// failures collapse into a generic message, application errors surface the
// server's message verbatim.
func errorMessage(err error) string {
	if client.IsNetworkError(err) {
		return networkErrorMessage
	}
	if appErr, ok := client.IsApplicationError(err); ok {
		return appErr.Message
	}
	return err.Error()
}

// Load fetches the task list with the current filter. The loading flag is
// raised only until the first successful fetch of the session, later loads
// resolve into an error/no-error outcome so the list never blanks out.
// Responses that are not the answer to the most recent request are
// discarded.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	filter := s.filter
	if !s.loadedOnce {
		s.loading = true
	}
	gen := s.nextGenLocked(resourceTodos)
	s.notifyLocked()
	s.mu.Unlock()

	tasks, err := s.gateway.List(ctx, filter)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isCurrentGenLocked(resourceTodos, gen) {
		s.logger.Debugf("discarding stale task list response (generation %d)", gen)
		return nil
	}

	s.loading = false
	if err != nil {
		// Keep whatever was loaded before, only record the error.
		s.lastError = errorMessage(err)
		s.notifyLocked()
		return fmt.Errorf("could not load tasks: %w", err)
	}

	s.loadedOnce = true
	s.tasks = tasks
	s.lastError = ""
	s.notifyLocked()

	return nil
}

// LoadTags fetches the known tag set. Independent from task and archive
// loads.
func (s *Store) LoadTags(ctx context.Context) error {
	s.mu.Lock()
	gen := s.nextGenLocked(resourceTags)
	s.mu.Unlock()

	tags, err := s.gateway.ListTags(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isCurrentGenLocked(resourceTags, gen) {
		s.logger.Debugf("discarding stale tags response (generation %d)", gen)
		return nil
	}

	if err != nil {
		s.lastError = errorMessage(err)
		s.notifyLocked()
		return fmt.Errorf("could not load tags: %w", err)
	}

	s.tags = tags
	s.notifyLocked()

	return nil
}

// LoadArchive fetches the archive groups. Independent from task and tag
// loads.
func (s *Store) LoadArchive(ctx context.Context) error {
	s.mu.Lock()
	gen := s.nextGenLocked(resourceArchive)
	s.mu.Unlock()

	archive, err := s.gateway.ListArchive(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isCurrentGenLocked(resourceArchive, gen) {
		s.logger.Debugf("discarding stale archive response (generation %d)", gen)
		return nil
	}

	if err != nil {
		s.lastError = errorMessage(err)
		s.notifyLocked()
		return fmt.Errorf("could not load archive: %w", err)
	}

	s.archive = archive
	s.notifyLocked()

	return nil
}

// LoadAll runs the three loads in parallel. A failure in one does not block
// the others, each can be retried individually afterwards.
func (s *Store) LoadAll(ctx context.Context) error {
	var wg sync.WaitGroup
	errs := make([]error, 3)

	loads := []func(context.Context) error{s.Load, s.LoadTags, s.LoadArchive}
	for i, load := range loads {
		wg.Add(1)
		go func(i int, load func(context.Context) error) {
			defer wg.Done()
			errs[i] = load(ctx)
		}(i, load)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// SetFilter merges the patch over the current filter (fields not mentioned
// are preserved), persists the result and reloads the list. Persistence
// failures don't abort the reload.
func (s *Store) SetFilter(ctx context.Context, patch model.FilterPatch) error {
	s.mu.Lock()
	s.filter = s.filter.Merge(patch)
	filter := s.filter
	s.mu.Unlock()

	if err := s.filters.SaveFilter(ctx, filter); err != nil {
		s.logger.Warningf("could not persist filter: %v", err)
	}

	return s.Load(ctx)
}

// Refresh re-runs the load with the current filter, the manual retry after
// an error.
func (s *Store) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// newTempID builds a locally-unique placeholder id for an optimistic create.
func newTempID() string {
	return "tmp-" + ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
