package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/terranova/density/pkg/domain"
)

type entry struct {
	grid    *domain.Grid
	expires time.Time
}

// Store implements ports.GridStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]entry
	mu   sync.RWMutex
	now  func() time.Time
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

// Save keeps a copy of the grid in memory.
func (s *Store) Save(ctx context.Context, key string, grid *domain.Grid, ttl time.Duration) error {
	e := entry{grid: copyGrid(grid)}
	if ttl > 0 {
		e.expires = s.now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = e
	return nil
}

// Load retrieves a grid from memory.
func (s *Store) Load(ctx context.Context, key string) (*domain.Grid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || s.expired(e) {
		return nil, domain.ErrNotFound
	}
	// Copy on read so the caller can't mutate the stored grid by pointer.
	return copyGrid(e.grid), nil
}

// Delete removes a grid.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the keys of live grids.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k, e := range s.data {
		if !s.expired(e) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) expired(e entry) bool {
	return !e.expires.IsZero() && !s.now().Before(e.expires)
}

func copyGrid(g *domain.Grid) *domain.Grid {
	out := *g
	out.Values = append(domain.Samples(nil), g.Values...)
	out.Faults = append([]domain.PointFault(nil), g.Faults...)
	return &out
}
