package curve_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/curve"
	"github.com/terranova/density/pkg/domain"
)

func TestLinear(t *testing.T) {
	c := curve.NewLinear([][2]float64{{10, 1}, {0, 0}, {20, 0}})

	tests := []struct {
		x, want float64
	}{
		{-5, 0},
		{0, 0},
		{5, 0.5},
		{10, 1},
		{15, 0.5},
		{25, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, c.Sample(tt.x), 1e-12, "x=%v", tt.x)
	}
}

func TestSmooth_MonotoneWithoutOvershoot(t *testing.T) {
	c := curve.NewSmooth([][2]float64{{0, 0}, {1, 0.1}, {2, 0.9}, {3, 1}})

	prev := c.Sample(0)
	for x := 0.0; x <= 3; x += 0.01 {
		v := c.Sample(x)
		assert.GreaterOrEqual(t, v, prev-1e-12, "x=%v", x)
		assert.True(t, v >= 0 && v <= 1, "overshoot at x=%v: %v", x, v)
		prev = v
	}
	assert.InDelta(t, 0.9, c.Sample(2), 1e-12)
}

func TestSmooth_FlatSegmentStaysFlat(t *testing.T) {
	c := curve.NewSmooth([][2]float64{{0, 1}, {1, 1}, {2, 0}})
	assert.InDelta(t, 1, c.Sample(0.5), 1e-12)
}

func TestFromAST(t *testing.T) {
	one := 1.5
	assets := map[string]*ast.Curve{
		"ramp":  ast.CurvePoints([2]float64{0, 0}, [2]float64{1, 1}),
		"alias": ast.CurveNamed("ramp"),
		"loop":  ast.CurveNamed("loop"),
	}
	lookup := func(name string) (*ast.Curve, bool) {
		c, ok := assets[name]
		return c, ok
	}

	t.Run("nil is identity", func(t *testing.T) {
		c, err := curve.FromAST(nil, lookup)
		require.NoError(t, err)
		assert.Equal(t, 7.0, c.Sample(7))
	})

	t.Run("constant", func(t *testing.T) {
		c, err := curve.FromAST(&ast.Curve{Constant: &one}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1.5, c.Sample(-100))
	})

	t.Run("named through alias", func(t *testing.T) {
		c, err := curve.FromAST(ast.CurveNamed("alias"), lookup)
		require.NoError(t, err)
		assert.InDelta(t, 0.25, c.Sample(0.25), 1e-12)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := curve.FromAST(ast.CurveNamed("missing"), lookup)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnresolvedAsset))
	})

	t.Run("self reference", func(t *testing.T) {
		_, err := curve.FromAST(ast.CurveNamed("loop"), lookup)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrCyclicImport))
	})

	t.Run("smooth", func(t *testing.T) {
		c, err := curve.FromAST(&ast.Curve{Smooth: true, Points: [][2]float64{{0, 0}, {1, 1}}}, nil)
		require.NoError(t, err)
		assert.IsType(t, &curve.Smooth{}, c)
	})
}
