package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/ports"
)

// AssetSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.AssetSource.
// setupData maps each kind to the asset IDs and contents the source was seeded with.
func AssetSourceContractTest(t *testing.T, source ports.AssetSource, setupData map[ports.AssetKind]map[string][]byte) {
	t.Helper()
	ctx := context.Background()

	// 1. Test Load (Success)
	t.Run("Load_Success", func(t *testing.T) {
		for kind, assets := range setupData {
			for id, expectedContent := range assets {
				content, err := source.Load(ctx, kind, id)
				if err != nil {
					t.Fatalf("unexpected error loading %s %s: %v", kind, id, err)
				}
				if string(content) != string(expectedContent) {
					t.Errorf("content mismatch for %s %s. got %q, want %q", kind, id, content, expectedContent)
				}
			}
		}
	})

	// 2. Test Load (NotFound)
	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := source.Load(ctx, ports.AssetDensity, "non-existent-asset")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound for non-existent asset, got %v", err)
		}
	})

	// 3. Test List
	t.Run("List", func(t *testing.T) {
		for _, kind := range ports.AssetKinds {
			ids, err := source.List(ctx, kind)
			if err != nil {
				t.Fatalf("unexpected error listing %s: %v", kind, err)
			}

			expected := setupData[kind]
			if len(ids) != len(expected) {
				t.Errorf("expected %d %s assets, got %d (%v)", len(expected), kind, len(ids), ids)
			}

			lookup := make(map[string]bool)
			for i, id := range ids {
				lookup[id] = true
				if i > 0 && ids[i-1] > id {
					t.Errorf("%s ids not sorted: %q before %q", kind, ids[i-1], id)
				}
			}
			for id := range expected {
				if !lookup[id] {
					t.Errorf("%s %s missing from list", kind, id)
				}
			}
		}
	})
}
