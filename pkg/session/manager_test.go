package session_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terranova/density/pkg/adapters/memory"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/ports"
	"github.com/terranova/density/pkg/session"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	data map[string]*domain.Grid
	mu   sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, key string, grid *domain.Grid, ttl time.Duration) error {
	time.Sleep(10 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]*domain.Grid)
	}
	s.data[key] = grid
	return nil
}

func (s *SlowStore) Load(ctx context.Context, key string) (*domain.Grid, error) {
	time.Sleep(10 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if grid, ok := s.data[key]; ok {
		return grid, nil
	}
	return nil, domain.ErrNotFound
}

func (s *SlowStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func grid(v float64) *domain.Grid {
	return &domain.Grid{
		Domain: domain.Domain{Size: [3]int{1, 1, 1}},
		Values: domain.Samples{v},
	}
}

func TestManager_LoadOrCompute_Once(t *testing.T) {
	manager := session.NewManager(&SlowStore{})
	ctx := context.Background()

	var computed atomic.Int32
	compute := func(context.Context) (*domain.Grid, error) {
		computed.Add(1)
		return grid(1), nil
	}

	var (
		wg   sync.WaitGroup
		hits atomic.Int32
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, cached, err := manager.LoadOrCompute(ctx, "grid:a", compute)
			assert.NoError(t, err)
			assert.Equal(t, 1.0, g.Values[0])
			if cached {
				hits.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), computed.Load(), "concurrent requests for one key must compute once")
	assert.Equal(t, int32(4), hits.Load())
}

func TestManager_LoadOrCompute_SkipsFaultyGrids(t *testing.T) {
	store := memory.NewStore()
	manager := session.NewManager(store)
	ctx := context.Background()

	faulty := grid(0)
	faulty.Faults = []domain.PointFault{{Index: 0, Error: "missing terrain"}}

	g, cached, err := manager.LoadOrCompute(ctx, "grid:f", func(context.Context) (*domain.Grid, error) {
		return faulty, nil
	})
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Same(t, faulty, g)

	_, err = store.Load(ctx, "grid:f")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestManager_LoadOrCompute_Error(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	boom := errors.New("boom")

	_, _, err := manager.LoadOrCompute(context.Background(), "grid:e", func(context.Context) (*domain.Grid, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestManager_Purge(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()

	require.NoError(t, manager.Save(ctx, "grid:a", grid(1)))
	require.NoError(t, manager.Save(ctx, "grid:b", grid(2)))

	n, err := manager.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	keys, err := manager.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

type recordingLocker struct {
	mu    sync.Mutex
	keys  []string
	ttls  []time.Duration
	fails bool
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fails {
		return nil, errors.New("contended")
	}
	l.keys = append(l.keys, key)
	l.ttls = append(l.ttls, ttl)
	return func(context.Context) error { return errors.New("already expired") }, nil
}

func TestManager_DistributedLock(t *testing.T) {
	locker := &recordingLocker{}
	manager := session.NewManager(memory.NewStore(), session.WithLocker(locker), session.WithLockTTL(time.Second))
	ctx := context.Background()

	// A failing unlock is logged, not returned
	require.NoError(t, manager.Save(ctx, "grid:a", grid(1)))
	_, err := manager.Load(ctx, "grid:a")
	require.NoError(t, err)

	assert.Equal(t, []string{"grid:a", "grid:a"}, locker.keys)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, locker.ttls)

	locker.fails = true
	err = manager.Delete(ctx, "grid:a")
	assert.ErrorContains(t, err, "failed to acquire distributed lock")
}
