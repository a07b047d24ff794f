package density_test

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terranova/density"
	"github.com/terranova/density/pkg/adapters/memory"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/ports"
)

func TestEngine_CompileAndEvaluate(t *testing.T) {
	var (
		compiles []*domain.CompileEvent
		evals    []*domain.EvaluateEvent
		sessions int
	)
	eng := density.New(density.WithLifecycleHooks(domain.LifecycleHooks{
		OnCompile:    func(_ context.Context, e *domain.CompileEvent) { compiles = append(compiles, e) },
		OnEvaluate:   func(_ context.Context, e *domain.EvaluateEvent) { evals = append(evals, e) },
		OnSessionEnd: func(context.Context, *domain.SessionEvent) { sessions++ },
	}))
	ctx := context.Background()

	prog, err := eng.Compile(ctx, []byte(`{"Type":"Sum","Inputs":[{"Type":"YValue"},-64]}`))
	require.NoError(t, err)

	v, err := eng.Evaluate(ctx, prog, domain.Vec3{Y: 70}, nil)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	require.Len(t, compiles, 1)
	assert.Equal(t, domain.EventCompile, compiles[0].Type)
	assert.Equal(t, 2, compiles[0].Nodes)
	assert.Equal(t, prog.ID(), compiles[0].ProgramID)
	assert.NoError(t, compiles[0].Err)

	require.Len(t, evals, 1)
	assert.Equal(t, domain.Vec3{Y: 70}, evals[0].Point)
	assert.Equal(t, 1, sessions)
}

func TestEngine_CompileErrorIsReported(t *testing.T) {
	var failed error
	eng := density.New(density.WithLifecycleHooks(domain.LifecycleHooks{
		OnCompile: func(_ context.Context, e *domain.CompileEvent) { failed = e.Err },
	}))

	_, err := eng.Compile(context.Background(), []byte(`{"Type":"Nope"}`))
	assert.ErrorIs(t, err, domain.ErrUnknownType)
	assert.ErrorIs(t, failed, domain.ErrUnknownType)

	_, err = eng.Compile(context.Background(), []byte(`{"Type":"Imported","Name":"nowhere"}`))
	assert.ErrorIs(t, err, domain.ErrUnresolvedImport)
}

func TestEngine_Validate(t *testing.T) {
	eng := density.New()
	assert.NoError(t, eng.Validate([]byte(`{"Density":{"Type":"Abs","Input":-1}}`)))
	assert.ErrorIs(t, eng.Validate([]byte(`{"Type":"Mix","Inputs":[1,2,3,4]}`)), domain.ErrMalformedNode)
	assert.ErrorIs(t, eng.Validate([]byte(`{"Type":`)), domain.ErrSyntax)
}

func TestEngine_MaxDepth(t *testing.T) {
	doc := []byte(`{"Type":"Abs","Input":{"Type":"Abs","Input":{"Type":"Abs","Input":1}}}`)

	_, err := density.New(density.WithMaxDepth(2)).Compile(context.Background(), doc)
	assert.ErrorIs(t, err, domain.ErrTooDeep)

	_, err = density.New(density.WithMaxDepth(8)).Compile(context.Background(), doc)
	assert.NoError(t, err)
}

func TestEngine_EvaluateGrid(t *testing.T) {
	var (
		mu       sync.Mutex
		grids    []*domain.GridEvent
		sessions atomic.Int32
	)
	eng := density.New(
		density.WithWorkers(3),
		density.WithLifecycleHooks(domain.LifecycleHooks{
			OnGrid: func(_ context.Context, e *domain.GridEvent) {
				mu.Lock()
				defer mu.Unlock()
				grids = append(grids, e)
			},
			OnSessionEnd: func(context.Context, *domain.SessionEvent) { sessions.Add(1) },
		}),
	)
	ctx := context.Background()

	prog, err := eng.Compile(ctx, []byte(`{"Type":"Sum","Inputs":[{"Type":"XValue"},{"Type":"Terrain"}]}`))
	require.NoError(t, err)

	dom := domain.Domain{Step: domain.Vec3{X: 1, Y: 1, Z: 1}, Size: [3]int{2, 3, 4}}
	grid, err := eng.EvaluateGrid(ctx, prog, dom, &domain.ContextInputs{Terrain: domain.ConstantField(10)})
	require.NoError(t, err)
	assert.Equal(t, 11.0, grid.At(1, 2, 3))
	assert.Empty(t, grid.Faults)

	require.Len(t, grids, 1)
	assert.Equal(t, 24, grids[0].Points)
	assert.Equal(t, 0, grids[0].Faults)
	assert.Equal(t, int32(8), sessions.Load(), "one session per column")
}

func TestEngine_EvaluateGridInvalidDomain(t *testing.T) {
	eng := density.New()
	prog, err := eng.Compile(context.Background(), []byte(`{"Type":"Constant","Value":1}`))
	require.NoError(t, err)

	_, err = eng.EvaluateGrid(context.Background(), prog, domain.Domain{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func testPack() *memory.Source {
	return memory.NewSource(map[ports.AssetKind]map[string]string{
		ports.AssetCurve: {
			"Curves/ramp": `[[0,0],[1,2]]`,
			"Curves/bad":  `{"Type":"Smooth"`,
		},
		ports.AssetPositions: {
			"Positions/pair": `[{"X":0},{"X":10}]`,
		},
		ports.AssetDensity: {
			"Biomes/forest": `{"Terrain":{"Density":{"Type":"Exported","Name":"forest.height","Density":{"Type":"Sum","Inputs":[
				{"Type":"Exported","Name":"forest.base","Density":5},
				{"Type":"CurveMapper","Curve":"Curves/ramp","Input":0.5}]}}}}`,
			"Density/walls":    `{"Type":"Exported","Name":"walls","Density":{"Type":"CellWallDistance","Positions":"Positions/pair"}}`,
			"Density/dangling": `{"Type":"Imported","Name":"missing"}`,
			"Settings/walls":   `{"Type":"Exported","Name":"walls","Density":0}`,
		},
	})
}

func TestEngine_LoadPack(t *testing.T) {
	eng := density.New()
	ctx := context.Background()

	report, err := eng.LoadPack(ctx, testPack())
	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.Equal(t, 1, report.Curves)
	assert.Equal(t, 1, report.Positions)
	assert.Equal(t, 4, report.Documents)
	assert.Equal(t, 3, report.Exports)

	require.Len(t, report.Problems, 2)
	assert.Equal(t, "Curves/bad", report.Problems[0].ID)
	assert.ErrorIs(t, report.Problems[0], domain.ErrSyntax)
	assert.Equal(t, "Settings/walls", report.Problems[1].ID)
	assert.ErrorIs(t, report.Problems[1], domain.ErrDuplicateExport)

	assert.Equal(t, []string{"forest.base", "forest.height", "walls"}, eng.Registry().ExportNames())

	prog, err := eng.Compile(ctx, []byte(`{"Type":"Sum","Inputs":[
		{"Type":"Imported","Name":"forest.height"},
		{"Type":"Imported","Name":"walls"}]}`))
	require.NoError(t, err)

	v, err := eng.Evaluate(ctx, prog, domain.Vec3{X: 2}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 5+1+3.0, v, 1e-9)
}

func TestEngine_ValidatePack(t *testing.T) {
	eng := density.New()

	report, err := eng.ValidatePack(context.Background(), testPack())
	require.NoError(t, err)

	var ids []string
	for _, p := range report.Problems {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"Curves/bad", "Settings/walls", "Density/dangling"}, ids)
	assert.ErrorIs(t, report.Problems[2], domain.ErrUnresolvedImport)
	assert.Empty(t, eng.Registry().ExportNames(), "validation must not touch the engine registry")
}

func TestGridKey(t *testing.T) {
	doc := []byte(`{"Type":"XValue"}`)
	a := domain.Domain{Size: [3]int{16, 1, 16}}
	b := domain.Domain{Size: [3]int{16, 2, 16}}

	assert.Equal(t, density.GridKey(doc, a), density.GridKey(doc, a))
	assert.NotEqual(t, density.GridKey(doc, a), density.GridKey(doc, b))
	assert.NotEqual(t, density.GridKey(doc, a), density.GridKey([]byte(`{"Type":"YValue"}`), a))
	assert.Regexp(t, `^grid:[0-9a-f]+$`, density.GridKey(doc, a))

	t.Run("Non-finite Domains Stay Distinct", func(t *testing.T) {
		nan := domain.Domain{Origin: domain.Vec3{X: math.NaN()}, Size: [3]int{16, 1, 16}}
		inf := domain.Domain{Origin: domain.Vec3{X: math.Inf(1)}, Size: [3]int{16, 1, 16}}
		assert.NotEqual(t, density.GridKey(doc, nan), density.GridKey(doc, inf))
		assert.NotEqual(t, density.GridKey(doc, inf), density.GridKey(doc, a))
		assert.NotEqual(t, density.GridKey(doc, nan), density.GridKey(doc, domain.Domain{Origin: domain.Vec3{X: math.NaN()}, Size: [3]int{8, 1, 8}}))
	})
}

func TestEngine_ReloadPack(t *testing.T) {
	eng := density.New()
	ctx := context.Background()

	_, err := eng.LoadPack(ctx, testPack())
	require.NoError(t, err)
	before, err := eng.Compile(ctx, []byte(`{"Type":"Imported","Name":"walls"}`))
	require.NoError(t, err)

	next := memory.NewSource(map[ports.AssetKind]map[string]string{
		ports.AssetDensity: {"Density/floor": `{"Type":"Exported","Name":"floor","Density":-1}`},
	})
	report, err := eng.ReloadPack(ctx, next)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, []string{"floor"}, eng.Registry().ExportNames())

	_, err = eng.Compile(ctx, []byte(`{"Type":"Imported","Name":"walls"}`))
	assert.ErrorIs(t, err, domain.ErrUnresolvedImport)

	// Programs compiled earlier still evaluate against the old pack
	v, err := eng.Evaluate(ctx, before, domain.Vec3{X: 2}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, v, 1e-9)
}
