package runtime_test

import (
	"context"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terranova/density/internal/runtime"
	"github.com/terranova/density/pkg/domain"
)

func TestEvaluateGrid(t *testing.T) {
	prog := program(t, `{"Type":"Sum","Inputs":[{"Type":"XValue"},{"Type":"YValue"},{"Type":"ZValue"}]}`)
	dom := domain.Domain{
		Origin: domain.Vec3{X: -1, Y: 0, Z: 10},
		Step:   domain.Vec3{X: 1, Y: 2, Z: 0.5},
		Size:   [3]int{3, 4, 2},
	}

	var columns atomic.Int32
	grid, err := runtime.EvaluateGrid(context.Background(), prog, dom, nil,
		runtime.WithWorkers(3),
		runtime.WithColumnStats(func(domain.SessionStats) { columns.Add(1) }),
	)
	require.NoError(t, err)
	require.Len(t, grid.Values, dom.Len())
	assert.Empty(t, grid.Faults)
	assert.Equal(t, int32(6), columns.Load())

	for iy := 0; iy < 4; iy++ {
		for iz := 0; iz < 2; iz++ {
			for ix := 0; ix < 3; ix++ {
				p := dom.Point(ix, iy, iz)
				assert.Equal(t, p.X+p.Y+p.Z, grid.At(ix, iy, iz))
			}
		}
	}
}

func TestEvaluateGrid_FaultsArePerPoint(t *testing.T) {
	// Points at y >= 1 select the terrain input, whose provider is missing.
	doc := `{"Type":"MultiMix","Keys":[0,1],"Inputs":[{"Type":"YValue"},{"Type":"Terrain"},{"Type":"YValue"}]}`
	prog := program(t, doc)
	dom := domain.Domain{Step: domain.Vec3{X: 1, Y: 1, Z: 1}, Size: [3]int{2, 3, 1}}

	grid, err := runtime.EvaluateGrid(context.Background(), prog, dom, nil, runtime.WithWorkers(2))
	require.NoError(t, err)

	assert.Equal(t, 0.0, grid.At(0, 0, 0))
	assert.True(t, math.IsNaN(grid.At(0, 1, 0)))
	assert.True(t, math.IsNaN(grid.At(1, 2, 0)))
	require.Len(t, grid.Faults, 4)
	assert.Equal(t, dom.Index(0, 1, 0), grid.Faults[0].Index)
	assert.Contains(t, grid.Faults[0].Error, "MissingContextInput")
}

func TestEvaluateGrid_Cancelled(t *testing.T) {
	prog := program(t, `{"Type":"XValue"}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runtime.EvaluateGrid(ctx, prog, domain.Domain{Size: [3]int{64, 1, 64}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluateGrid_InvalidDomain(t *testing.T) {
	prog := program(t, `{"Type":"XValue"}`)
	_, err := runtime.EvaluateGrid(context.Background(), prog, domain.Domain{Size: [3]int{4, 0, 4}}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestEvaluateGrid_SessionsAreIndependent(t *testing.T) {
	prog := program(t, `{"Type":"Cache2D","Input":{"Type":"SimplexNoise2D","Seed":"grid","Scale":16}}`)
	dom := domain.Domain{Step: domain.Vec3{X: 1, Y: 1, Z: 1}, Size: [3]int{8, 8, 8}}

	var hits, misses atomic.Uint64
	grid, err := runtime.EvaluateGrid(context.Background(), prog, dom, nil,
		runtime.WithWorkers(4),
		runtime.WithColumnStats(func(s domain.SessionStats) {
			hits.Add(s.Hits)
			misses.Add(s.Misses)
		}),
	)
	require.NoError(t, err)

	// One miss per column, every other height hits.
	assert.Equal(t, uint64(64), misses.Load())
	assert.Equal(t, uint64(64*7), hits.Load())
	assert.Equal(t, grid.At(3, 0, 5), grid.At(3, 7, 5))
}
