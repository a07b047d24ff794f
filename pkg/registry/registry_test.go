package registry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/registry"
)

func TestRegistry_Exports(t *testing.T) {
	r := registry.NewRegistry()
	node := &ast.Exported{Name: ast.String("Ground"), Input: ast.Lit(1)}

	require.NoError(t, r.RegisterExport("Ground", node, "a.json"))

	got, ok := r.Export("Ground")
	require.True(t, ok)
	assert.Same(t, node, got.Node)
	assert.Equal(t, "a.json", got.Source)

	err := r.RegisterExport("Ground", node, "b.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateExport))
	assert.Contains(t, err.Error(), "b.json")

	err = r.RegisterExport("", node, "c.json")
	assert.True(t, errors.Is(err, domain.ErrMalformedNode))

	_, ok = r.Export("Missing")
	assert.False(t, ok)
}

func TestRegistry_Assets(t *testing.T) {
	r := registry.NewRegistry()
	r.RegisterCurve("ramp", ast.CurvePoints([2]float64{0, 0}, [2]float64{1, 1}))
	r.RegisterCurve("flat", ast.CurvePoints())
	r.RegisterPositions("villages", &ast.Positions{Points: []ast.Vec{{X: 1}}})

	assert.Equal(t, []string{"flat", "ramp"}, r.CurveNames())
	assert.Equal(t, []string{"villages"}, r.PositionsNames())

	c, ok := r.Curve("ramp")
	require.True(t, ok)
	assert.Len(t, c.Points, 2)

	_, ok = r.Positions("towns")
	assert.False(t, ok)
}

func TestRegistry_ExportNamesSorted(t *testing.T) {
	r := registry.NewRegistry()
	for _, n := range []string{"c", "a", "b"} {
		require.NoError(t, r.RegisterExport(n, &ast.Exported{}, n+".json"))
	}
	assert.Equal(t, []string{"a", "b", "c"}, r.ExportNames())
}
