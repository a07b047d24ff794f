package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/terranova/density/internal/logging"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed replica can hold a key.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates grid cache access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.GridStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	ttl     time.Duration // Expiry of stored grids, 0 keeps them
	logger  *slog.Logger  // Logger for internal events (like deferred errors)
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithTTL sets the expiry of grids saved by LoadOrCompute.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.ttl = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Session Manager over the given grid store.
func NewManager(store ports.GridStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(key) after unlocking.
func (m *Manager) acquire(key string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		entry = &lockEntry{}
		m.locks[key] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, key)
	}
}

// Load retrieves a stored grid.
func (m *Manager) Load(ctx context.Context, key string) (*domain.Grid, error) {
	var grid *domain.Grid
	err := m.WithLock(ctx, key, func(ctx context.Context) error {
		var err error
		grid, err = m.store.Load(ctx, key)
		return err
	})
	return grid, err
}

// LoadOrCompute returns the grid stored under key. If there is none, compute runs
// while the key is held and its result is saved. cached reports a store hit.
func (m *Manager) LoadOrCompute(ctx context.Context, key string, compute func(context.Context) (*domain.Grid, error)) (grid *domain.Grid, cached bool, err error) {
	err = m.WithLock(ctx, key, func(ctx context.Context) error {
		var err error
		grid, err = m.store.Load(ctx, key)
		if err == nil {
			cached = true
			return nil
		}

		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("failed to check grid cache: %w", err)
		}

		grid, err = compute(ctx)
		if err != nil {
			return err
		}

		// Grids with faults depend on inputs that may change; keep only clean ones
		if len(grid.Faults) > 0 {
			return nil
		}
		if err := m.store.Save(ctx, key, grid, m.ttl); err != nil {
			m.logger.Warn("Failed to cache grid", "key", key, "err", err)
		}
		return nil
	})
	return grid, cached, err
}

// Save stores the grid with the manager's TTL.
func (m *Manager) Save(ctx context.Context, key string, grid *domain.Grid) error {
	return m.WithLock(ctx, key, func(ctx context.Context) error {
		return m.store.Save(ctx, key, grid, m.ttl)
	})
}

// Delete removes the grid from the store.
func (m *Manager) Delete(ctx context.Context, key string) error {
	return m.WithLock(ctx, key, func(ctx context.Context) error {
		return m.store.Delete(ctx, key)
	})
}

// Purge removes every stored grid, e.g. after the asset pack changed.
func (m *Manager) Purge(ctx context.Context) (int, error) {
	keys, err := m.store.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, key := range keys {
		if err := m.Delete(ctx, key); err != nil {
			return 0, err
		}
	}
	return len(keys), nil
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying grid store.
func (m *Manager) Store() ports.GridStore {
	return m.store
}

// WithLock executes a function while holding the lock for the key.
func (m *Manager) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	entry := m.acquire(key)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(key)
	}()

	// Distributed Locking
	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, key, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"key", key,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
