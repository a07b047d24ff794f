package compiler_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terranova/density/internal/compiler"
	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
)

func schemaError(t *testing.T, err error) *domain.SchemaError {
	t.Helper()
	require.Error(t, err)
	var serr *domain.SchemaError
	require.True(t, errors.As(err, &serr), "expected SchemaError, got %T: %v", err, err)
	return serr
}

func roundTrip(t *testing.T, n ast.Node) {
	t.Helper()
	data, err := ast.Marshal(n)
	require.NoError(t, err)
	got, err := compiler.Parse(data)
	require.NoError(t, err, "document: %s", data)
	assert.Equal(t, n, got, "document: %s", data)
}

func TestParse_RoundTripEveryKind(t *testing.T) {
	kinds := ast.Kinds()
	require.Len(t, kinds, 68)

	for _, k := range kinds {
		t.Run(string(k), func(t *testing.T) {
			n, ok := ast.New(k)
			require.True(t, ok)
			roundTrip(t, n)
		})
	}
}

func TestParse_RoundTripNested(t *testing.T) {
	sample := 0.5
	tree := &ast.Sum{Inputs: []ast.Input{
		ast.Lit(1.5),
		ast.Of(&ast.SimplexNoise2D{Scale: ast.Float(100), Octaves: ast.Int(3), Seed: ast.String("s")}),
		ast.Of(&ast.CurveMapper{
			Curve: &ast.Curve{Smooth: true, Points: [][2]float64{{0, 0}, {1, 1}}},
			Input: ast.Of(&ast.Distance{Curve: ast.CurvePoints([2]float64{0, 1}, [2]float64{16, -1})}),
		}),
		ast.Of(&ast.Switch{
			Name: ast.String("biome"),
			SwitchCases: []ast.SwitchCase{
				{CaseState: "desert", Density: ast.Lit(2)},
				{CaseState: "forest", Density: ast.Of(&ast.Terrain{})},
			},
			Input: ast.Of(&ast.Constant{Value: ast.Float(0)}),
		}),
		ast.Of(&ast.Rotator{
			NewYAxis:  &ast.Vector{Provider: ast.VectorDensityGradient, Density: ast.Of(&ast.YValue{}), SampleDistance: &sample},
			SpinAngle: ast.Float(45),
			Input:     ast.Of(&ast.Ellipsoid{Scale: ast.VectorOf(2, 1, 2), Curve: ast.CurveNamed("falloff")}),
		}),
		ast.Of(&ast.VectorWarp{
			WarpVector: &ast.Vector{Provider: ast.VectorConstant, Value: ast.Vec{X: 1}},
			Inputs:     []ast.Input{ast.Of(&ast.XValue{}), ast.Lit(2)},
		}),
		ast.Of(&ast.PositionsPinch{
			Positions:       &ast.Positions{Points: []ast.Vec{{X: 1, Y: 2, Z: 3}, {X: -4}}},
			PinchCurve:      &ast.Curve{Constant: ast.Float(0.5)},
			HorizontalPinch: true,
			Input:           ast.Of(&ast.Cache2D{Input: ast.Of(&ast.CellNoise3D{ReturnType: ast.String("CellValue")})}),
		}),
		ast.Of(&ast.Positions3D{
			Positions: &ast.Positions{Grid: &ast.GridPositions{Spacing: 32, Jitter: 0.5, Seed: "g"}},
			Density:   ast.Of(&ast.Imported{Name: ast.String("Bump")}),
		}),
		ast.Of(&ast.MultiMix{Keys: []float64{0, 1}, Inputs: []ast.Input{ast.Lit(1), ast.Lit(2), ast.Of(&ast.ZValue{})}}),
		ast.Of(&ast.GradientWarp{Is2D: true, Inputs: []ast.Input{ast.Lit(0), ast.Lit(1)}}),
		ast.Of(&ast.Pipeline{
			Input: ast.Lit(2),
			Steps: []ast.Input{ast.Of(&ast.Pow{Exponent: ast.Float(3)}), ast.Of(&ast.OffsetConstant{Offset: ast.Float(1)})},
		}),
		ast.Of(&ast.Exported{Name: ast.String("Bump"), SingleInstance: true, Density: ast.Of(&ast.PositionsCellNoise{Positions: ast.PositionsNamed("villages")})}),
	}}

	roundTrip(t, tree)
}

func TestParse_Literals(t *testing.T) {
	n, err := compiler.Parse([]byte(`{"Type":"Abs","Input":-3}`))
	require.NoError(t, err)
	abs := n.(*ast.Abs)
	assert.True(t, abs.Input.IsLiteral())
	assert.Equal(t, -3.0, abs.Input.Literal)
}

func TestParse_UnknownFieldsIgnored(t *testing.T) {
	n, err := compiler.Parse([]byte(`{"Type":"Constant","Value":4,"Comment":"kept out","$Position":{"x":1}}`))
	require.NoError(t, err)
	assert.Equal(t, &ast.Constant{Value: ast.Float(4)}, n)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind domain.SchemaErrorKind
		path string
	}{
		{"syntax", `{"Type":`, domain.SchemaSyntax, "$"},
		{"unknown type", `{"Type":"Blob"}`, domain.SchemaUnknownType, "$"},
		{"missing type", `{"Value":1}`, domain.SchemaTypeMismatch, "$.Type"},
		{"not an object", `[1,2]`, domain.SchemaTypeMismatch, "$"},
		{"number where sub-tree", `{"Type":"Sum","Inputs":[1,{"Type":"Abs","Input":"x"}]}`, domain.SchemaTypeMismatch, "$.Inputs[1].Input"},
		{"scalar shape", `{"Type":"SimplexNoise2D","Scale":"big"}`, domain.SchemaTypeMismatch, "$.Scale"},
		{"nested missing type", `{"Type":"Abs","Input":{"Value":2}}`, domain.SchemaTypeMismatch, "$.Input.Type"},
		{"bad return type", `{"Type":"CellNoise2D","ReturnType":"Nearest"}`, domain.SchemaInvalidValue, "$.ReturnType"},
		{"bad distance function", `{"Type":"CellNoise3D","DistanceFunction":"Taxicab"}`, domain.SchemaInvalidValue, "$.DistanceFunction"},
		{"bad curve pair", `{"Type":"CurveMapper","Curve":[[0,1,2]]}`, domain.SchemaTypeMismatch, "$.Curve[0]"},
		{"bad grid spacing", `{"Type":"Positions3D","Positions":{"Type":"Grid","Spacing":0}}`, domain.SchemaInvalidValue, "$.Positions.Spacing"},
		{"bad vector provider", `{"Type":"Plane","PlaneNormal":{"Type":"Random"}}`, domain.SchemaInvalidValue, "$.PlaneNormal.Type"},
		{"switch case in list", `{"Type":"Switch","SwitchCases":[{"CaseState":"a","Density":{"Type":"Nope"}}]}`, domain.SchemaUnknownType, "$.SwitchCases[0].Density"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.Parse([]byte(tt.doc))
			serr := schemaError(t, err)
			assert.Equal(t, tt.kind, serr.Kind, "error: %v", err)
			assert.Equal(t, tt.path, serr.Path, "error: %v", err)
		})
	}
}

func TestParse_ErrorSentinels(t *testing.T) {
	_, err := compiler.Parse([]byte(`{"Type":"Blob"}`))
	assert.True(t, errors.Is(err, domain.ErrUnknownType))

	_, err = compiler.Parse([]byte(`{"Type":"Abs","Input":true}`))
	assert.True(t, errors.Is(err, domain.ErrTypeMismatch))
}

func nestedAbs(depth int) string {
	var b strings.Builder
	for i := 0; i < depth; i++ {
		b.WriteString(`{"Type":"Abs","Input":`)
	}
	b.WriteString("1")
	b.WriteString(strings.Repeat("}", depth))
	return b.String()
}

func TestParse_TooDeep(t *testing.T) {
	_, err := compiler.Parse([]byte(nestedAbs(compiler.DefaultMaxDepth)))
	require.NoError(t, err)

	_, err = compiler.Parse([]byte(nestedAbs(compiler.DefaultMaxDepth + 1)))
	serr := schemaError(t, err)
	assert.Equal(t, domain.SchemaTooDeep, serr.Kind)
	assert.True(t, errors.Is(err, domain.ErrTooDeep))

	p := compiler.NewParser(compiler.WithMaxDepth(3))
	_, err = p.Parse([]byte(nestedAbs(3)))
	require.NoError(t, err)
	_, err = p.Parse([]byte(nestedAbs(4)))
	assert.Equal(t, domain.SchemaTooDeep, schemaError(t, err).Kind)

	t.Run("Beyond The JSON Decoder Limit", func(t *testing.T) {
		const depth = 6000
		doc := strings.Repeat(`{"Type":"Sum","Inputs":[`, depth) + "1" + strings.Repeat("]}", depth)
		_, err := compiler.Parse([]byte(doc))
		assert.Equal(t, domain.SchemaTooDeep, schemaError(t, err).Kind, "error: %v", err)

		_, err = compiler.NewParser().ParseDocument([]byte(`{"Density":` + doc + `}`))
		assert.Equal(t, domain.SchemaTooDeep, schemaError(t, err).Kind, "error: %v", err)
	})

	t.Run("Switch Cases Within The Limit", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < compiler.DefaultMaxDepth-1; i++ {
			b.WriteString(`{"Type":"Switch","Name":"b","SwitchCases":[{"CaseState":"x","Density":`)
		}
		b.WriteString(`{"Type":"Constant","Value":1}`)
		b.WriteString(strings.Repeat("}]}", compiler.DefaultMaxDepth-1))
		_, err := compiler.Parse([]byte(b.String()))
		require.NoError(t, err)
	})
}

func TestParseDocument_Envelopes(t *testing.T) {
	p := compiler.NewParser()
	want := &ast.Constant{Value: ast.Float(7)}

	tests := []struct {
		name string
		doc  string
	}{
		{"bare node", `{"Type":"Constant","Value":7}`},
		{"world structure", `{"Name":"Island","Density":{"Type":"Constant","Value":7}}`},
		{"biome", `{"Name":"Plains","Terrain":{"Density":{"Type":"Constant","Value":7}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := p.ParseDocument([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, want, n)
		})
	}

	t.Run("no density", func(t *testing.T) {
		_, err := p.ParseDocument([]byte(`{"Name":"Empty"}`))
		assert.Equal(t, domain.SchemaNoDensity, schemaError(t, err).Kind)
	})

	t.Run("error path inside envelope", func(t *testing.T) {
		_, err := p.ParseDocument([]byte(`{"Terrain":{"Density":{"Type":"Nope"}}}`))
		assert.Equal(t, "$.Terrain.Density", schemaError(t, err).Path)
	})
}

func TestShape(t *testing.T) {
	s, ok := compiler.Shape(ast.KindSimplexNoise2D)
	require.True(t, ok)
	assert.Contains(t, s, "Scale")
	assert.Contains(t, s, "Seed")

	_, ok = compiler.Shape("Blob")
	assert.False(t, ok)
}

func TestParseAssets(t *testing.T) {
	c, err := compiler.ParseCurve([]byte(`{"Type":"Smooth","Points":[[0,0],[1,1]]}`))
	require.NoError(t, err)
	assert.True(t, c.Smooth)
	assert.Len(t, c.Points, 2)

	c, err = compiler.ParseCurve([]byte(`"other"`))
	require.NoError(t, err)
	assert.Equal(t, "other", c.Name)

	p, err := compiler.ParsePositions([]byte(`{"Type":"Grid","Spacing":32,"Jitter":0.5,"Seed":"v"}`))
	require.NoError(t, err)
	require.NotNil(t, p.Grid)
	assert.Equal(t, 32.0, p.Grid.Spacing)

	p, err = compiler.ParsePositions([]byte(`[{"X":1,"Y":2,"Z":3}]`))
	require.NoError(t, err)
	assert.Equal(t, []ast.Vec{{X: 1, Y: 2, Z: 3}}, p.Points)

	_, err = compiler.ParsePositions([]byte(`"named"`))
	assert.ErrorIs(t, err, domain.ErrTypeMismatch)
	_, err = compiler.ParseCurve([]byte(`{`))
	assert.ErrorIs(t, err, domain.ErrSyntax)
}
