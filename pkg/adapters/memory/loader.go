package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/ports"
)

// Source implements ports.AssetSource using in-memory maps.
// Safe for concurrent use.
type Source struct {
	mu     sync.RWMutex
	assets map[ports.AssetKind]map[string][]byte
}

// NewSource creates a new in-memory asset source with the provided raw data (JSON strings).
func NewSource(data map[ports.AssetKind]map[string]string) *Source {
	s := &Source{assets: make(map[ports.AssetKind]map[string][]byte)}
	for kind, assets := range data {
		for id, v := range assets {
			s.Add(kind, id, []byte(v))
		}
	}
	return s
}

// NewFromNodes creates a source holding one density document per node.
// This handles serialization automatically, improving DX for tests.
func NewFromNodes(nodes map[string]ast.Node) (*Source, error) {
	s := &Source{assets: make(map[ports.AssetKind]map[string][]byte)}
	for id, n := range nodes {
		if id == "" {
			return nil, fmt.Errorf("document missing ID")
		}
		data, err := ast.Marshal(n)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal document %s: %w", id, err)
		}
		s.Add(ports.AssetDensity, id, data)
	}
	return s, nil
}

// Add stores or replaces one asset.
func (s *Source) Add(kind ports.AssetKind, id string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assets[kind] == nil {
		s.assets[kind] = make(map[string][]byte)
	}
	s.assets[kind][id] = append([]byte(nil), data...)
}

// Load retrieves the raw definition of an asset.
func (s *Source) Load(ctx context.Context, kind ports.AssetKind, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.assets[kind][id]
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return content, nil
}

// List returns the IDs of every asset of a kind.
func (s *Source) List(ctx context.Context, kind ports.AssetKind) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.assets[kind]))
	for k := range s.assets[kind] {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
