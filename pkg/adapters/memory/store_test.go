package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terranova/density/pkg/adapters/memory"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunGridStoreContract(t, store)
}

func TestMemoryStore_CopiesGrids(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	grid := &domain.Grid{Domain: domain.Domain{Size: [3]int{2, 1, 1}}, Values: domain.Samples{1, 2}}

	require.NoError(t, store.Save(ctx, "k", grid, time.Hour))
	grid.Values[0] = 99

	loaded, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 1.0, loaded.Values[0])

	loaded.Values[1] = -5
	again, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 2.0, again.Values[1])
}
