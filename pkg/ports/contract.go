package ports

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terranova/density/pkg/domain"
)

func contractGrid() *domain.Grid {
	return &domain.Grid{
		Domain: domain.Domain{
			Origin: domain.Vec3{X: -4, Y: 64, Z: 2},
			Step:   domain.Vec3{X: 1, Y: 1, Z: 1},
			Size:   [3]int{2, 1, 2},
		},
		Values: domain.Samples{0.25, -1, math.NaN(), 3.5},
		Faults: []domain.PointFault{{Index: 2, Error: "eval MissingContextInput in Terrain#0"}},
	}
}

// RunGridStoreContract runs a suite of tests to verify that a GridStore implementation
// adheres to the defined interface contract.
func RunGridStoreContract(t *testing.T, store GridStore) {
	ctx := context.Background()
	key := "contract-grid-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		grid := contractGrid()

		err := store.Save(ctx, key, grid, 0)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, grid.Domain, loaded.Domain)
		require.Len(t, loaded.Values, len(grid.Values))
		assert.Equal(t, 0.25, loaded.Values[0])
		assert.Equal(t, 3.5, loaded.Values[3])
		// Faulted samples travel as NaN.
		assert.True(t, math.IsNaN(loaded.Values[2]))
		assert.Equal(t, grid.Faults, loaded.Faults)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, key, contractGrid(), 0)
		require.NoError(t, err)

		err = store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrNotFound, "Load after Delete should return ErrNotFound")

		assert.NoError(t, store.Delete(ctx, key), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		k1 := key + "-1"
		k2 := key + "-2"
		_ = store.Save(ctx, k1, contractGrid(), 0)
		_ = store.Save(ctx, k2, contractGrid(), time.Minute)

		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})
}
