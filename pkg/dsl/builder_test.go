package dsl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terranova/density/internal/compiler"
	"github.com/terranova/density/internal/resolver"
	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/dsl"
	"github.com/terranova/density/pkg/ports"
)

func eval(t *testing.T, e dsl.Expr, at domain.Vec3) float64 {
	t.Helper()
	prog, err := resolver.Resolve(e.Node())
	require.NoError(t, err)
	v, err := prog.NewSession(nil).Evaluate(at)
	require.NoError(t, err)
	return v
}

func TestExpr_Evaluates(t *testing.T) {
	tests := []struct {
		name string
		expr dsl.Expr
		at   domain.Vec3
		want float64
	}{
		{"constant", dsl.Const(4), domain.Vec3{}, 4},
		{"sum", dsl.Y().Add(dsl.Const(-64)), domain.Vec3{Y: 70}, 6},
		{"product", dsl.X().Mul(dsl.Z()), domain.Vec3{X: 3, Z: -2}, -6},
		{"offset amplify", dsl.X().Offset(1).Amplify(2), domain.Vec3{X: 1}, 4},
		{"abs invert", dsl.X().Abs().Invert(), domain.Vec3{X: -5}, -5},
		{"clamp", dsl.X().Clamp(0, 1), domain.Vec3{X: 7}, 1},
		{"normalize", dsl.X().Normalize(-1, 1, 0, 1), domain.Vec3{X: 0}, 0.5},
		{"min max", dsl.Max(dsl.Min(dsl.X(), dsl.Const(2)), dsl.Const(-1)), domain.Vec3{X: 9}, 2},
		{"lerp", dsl.Lerp(dsl.Const(0), dsl.Const(10), dsl.Const(0.25)), domain.Vec3{}, 2.5},
		{"slide", dsl.X().Slide(5, 0, 0), domain.Vec3{X: 1}, -4},
		{"at y", dsl.Y().AtY(dsl.Const(12)), domain.Vec3{Y: 1}, 12},
		{"steps", dsl.Const(2).Steps(dsl.Slot().Pow(3), dsl.Slot().Offset(1)), domain.Vec3{}, 9},
		{"import", dsl.Sum(dsl.Const(3).Export("three"), dsl.Import("three")), domain.Vec3{}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, eval(t, tt.expr, tt.at), 1e-12)
		})
	}
}

func TestExpr_NodeRoundTrips(t *testing.T) {
	e := dsl.Noise2D("hills", 128, 4).Amplify(24).Add(dsl.Gradient(1, -1, 48, 112)).Cache2D().Shared("hills")

	data, err := ast.Marshal(e.Node())
	require.NoError(t, err)
	parsed, err := compiler.Parse(data)
	require.NoError(t, err)

	again, err := ast.Marshal(parsed)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))

	exp, ok := parsed.(*ast.Exported)
	require.True(t, ok)
	assert.True(t, exp.SingleInstance)
	assert.Equal(t, ast.KindCache2D, exp.Density.Node.Kind())
}

func TestExpr_LiteralNode(t *testing.T) {
	c, ok := dsl.Const(3).Node().(*ast.Constant)
	require.True(t, ok)
	assert.Equal(t, 3.0, *c.Value)
	assert.Nil(t, dsl.Slot().Node())
}

func TestBuilder_Build(t *testing.T) {
	src, err := dsl.New().
		Document("Density/hills", dsl.Y().Curve("Curves/ramp").Export("hills")).
		Document("Density/main", dsl.Import("hills").Offset(1)).
		Curve("Curves/ramp", [2]float64{0, 0}, [2]float64{10, 1}).
		Build()
	require.NoError(t, err)

	ctx := context.Background()
	ids, err := src.List(ctx, ports.AssetDensity)
	require.NoError(t, err)
	assert.Equal(t, []string{"Density/hills", "Density/main"}, ids)

	data, err := src.Load(ctx, ports.AssetCurve, "Curves/ramp")
	require.NoError(t, err)
	assert.JSONEq(t, `[[0,0],[10,1]]`, string(data))

	data, err = src.Load(ctx, ports.AssetDensity, "Density/main")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Type":"OffsetConstant","Offset":1,"Input":{"Type":"Imported","Name":"hills"}}`, string(data))
}

func TestBuilder_EmptyDocument(t *testing.T) {
	_, err := dsl.New().Document("Density/empty", dsl.Slot()).Build()
	assert.ErrorContains(t, err, "Density/empty")
}
