package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/terranova/density/pkg/domain"
)

const defaultPrefix = "density:grid:"

// Store implements ports.GridStore on Redis.
// Grids are stored as JSON under prefix+key; a sorted set at prefix+"index"
// tracks the keys, scored by expiry (0 for entries that never expire).
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithPrefix sets the key prefix. Defaults to "density:grid:".
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL sets the expiry used when Save is called with a zero ttl.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// New connects to the Redis server at addr.
func New(addr string, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(key string) string { return s.prefix + key }

func (s *Store) index() string { return s.prefix + "index" }

// Save stores grid as JSON. A zero ttl falls back to the store default.
func (s *Store) Save(ctx context.Context, key string, grid *domain.Grid, ttl time.Duration) error {
	data, err := json.Marshal(grid)
	if err != nil {
		return fmt.Errorf("failed to marshal grid: %w", err)
	}
	if ttl <= 0 {
		ttl = s.ttl
	}

	score := 0.0
	if ttl > 0 {
		score = float64(time.Now().Add(ttl).UnixMilli())
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(key), data, ttl)
	pipe.ZAdd(ctx, s.index(), backend.Z{Score: score, Member: key})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save failed: %w", err)
	}
	return nil
}

// Load retrieves a grid.
func (s *Store) Load(ctx context.Context, key string) (*domain.Grid, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis load failed: %w", err)
	}

	var grid domain.Grid
	if err := json.Unmarshal(data, &grid); err != nil {
		return nil, fmt.Errorf("failed to unmarshal grid: %w", err)
	}
	return &grid, nil
}

// Delete removes a grid and its index entry.
func (s *Store) Delete(ctx context.Context, key string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(key))
	pipe.ZRem(ctx, s.index(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// List returns the keys of live grids. Expired index entries are pruned lazily.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	// Scores in (0, now] belong to expired entries.
	if err := s.client.ZRemRangeByScore(ctx, s.index(), "(0", now).Err(); err != nil {
		return nil, fmt.Errorf("redis index cleanup failed: %w", err)
	}

	keys, err := s.client.ZRange(ctx, s.index(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list failed: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}
