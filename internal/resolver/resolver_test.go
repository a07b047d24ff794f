package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terranova/density/internal/compiler"
	"github.com/terranova/density/internal/resolver"
	"github.com/terranova/density/internal/runtime"
	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/registry"
)

func parse(t *testing.T, doc string) ast.Node {
	t.Helper()
	root, err := compiler.Parse([]byte(doc))
	require.NoError(t, err)
	return root
}

func resolveErr(t *testing.T, err error) *domain.ResolveError {
	t.Helper()
	var re *domain.ResolveError
	require.ErrorAs(t, err, &re)
	return re
}

func valueAt(t *testing.T, prog *runtime.Program, at domain.Vec3) float64 {
	t.Helper()
	v, err := prog.NewSession(nil).Evaluate(at)
	require.NoError(t, err)
	return v
}

func TestResolve_LinksImports(t *testing.T) {
	root := parse(t, `{"Type":"Sum","Inputs":[
		{"Type":"Exported","Name":"base","Density":{"Type":"Constant","Value":3}},
		{"Type":"Imported","Name":"base"},
		{"Type":"AmplitudeConstant","Amplitude":2,"Input":{"Type":"Imported","Name":"base"}}]}`)

	prog, err := resolver.Resolve(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"base"}, prog.ExportNames())
	assert.Equal(t, 12.0, valueAt(t, prog, domain.Vec3{}))
}

func TestResolve_CyclicImport(t *testing.T) {
	root := parse(t, `{"Type":"Sum","Inputs":[
		{"Type":"Exported","Name":"A","Density":{"Type":"Imported","Name":"B"}},
		{"Type":"Exported","Name":"B","Density":{"Type":"Abs","Input":{"Type":"Imported","Name":"A"}}}]}`)

	_, err := resolver.Resolve(root)
	assert.ErrorIs(t, err, domain.ErrCyclicImport)
	re := resolveErr(t, err)
	assert.Equal(t, []string{"A", "B", "A"}, re.Names)
	assert.Contains(t, err.Error(), "A -> B -> A")
}

func TestResolve_SelfImport(t *testing.T) {
	root := parse(t, `{"Type":"Exported","Name":"loop","Density":{"Type":"Imported","Name":"loop"}}`)
	_, err := resolver.Resolve(root)
	re := resolveErr(t, err)
	assert.Equal(t, domain.ResolveCyclicImport, re.Kind)
	assert.Equal(t, []string{"loop", "loop"}, re.Names)
}

func TestResolve_DuplicateExport(t *testing.T) {
	root := parse(t, `{"Type":"Sum","Inputs":[
		{"Type":"Exported","Name":"h","Density":1},
		{"Type":"Exported","Name":"h","Density":2}]}`)
	_, err := resolver.Resolve(root)
	assert.ErrorIs(t, err, domain.ErrDuplicateExport)
	assert.Equal(t, []string{"h"}, resolveErr(t, err).Names)
}

func TestResolve_UnresolvedImportsReportedTogether(t *testing.T) {
	root := parse(t, `{"Type":"Sum","Inputs":[
		{"Type":"Imported","Name":"zeta"},
		{"Type":"Imported","Name":"alpha"},
		{"Type":"Imported","Name":"zeta"}]}`)
	_, err := resolver.Resolve(root)
	assert.ErrorIs(t, err, domain.ErrUnresolvedImport)
	assert.Equal(t, []string{"alpha", "zeta"}, resolveErr(t, err).Names)
}

func TestResolve_PullsPackExports(t *testing.T) {
	reg := registry.NewRegistry()
	body := parse(t, `{"Type":"Exported","Name":"hills","Density":{"Type":"Sum","Inputs":[
		{"Type":"Exported","Name":"hills.base","Density":5},
		{"Type":"Imported","Name":"offset"}]}}`).(*ast.Exported)
	require.NoError(t, reg.RegisterExport("hills", body, "pack/hills.json"))
	before, err := ast.Marshal(body)
	require.NoError(t, err)
	require.NoError(t, reg.RegisterExport("offset", &ast.Exported{Name: ast.String("offset"), Density: ast.Lit(1)}, "pack/offset.json"))

	root := parse(t, `{"Type":"Sum","Inputs":[{"Type":"Imported","Name":"hills"},{"Type":"Imported","Name":"hills.base"}]}`)
	prog, err := resolver.Resolve(root, resolver.WithRegistry(reg))
	require.NoError(t, err)

	assert.Equal(t, []string{"hills", "hills.base", "offset"}, prog.ExportNames())
	assert.Equal(t, 11.0, valueAt(t, prog, domain.Vec3{}))

	// The registry entry itself is left untouched.
	after, err := ast.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestResolve_DocumentShadowsPackExport(t *testing.T) {
	reg := registry.NewRegistry()
	require.NoError(t, reg.RegisterExport("h", &ast.Exported{Name: ast.String("h"), Density: ast.Lit(100)}, "pack"))

	root := parse(t, `{"Type":"Sum","Inputs":[{"Type":"Exported","Name":"h","Density":1},{"Type":"Imported","Name":"h"}]}`)
	prog, err := resolver.Resolve(root, resolver.WithRegistry(reg))
	require.NoError(t, err)
	assert.Equal(t, 2.0, valueAt(t, prog, domain.Vec3{}))
}

func TestResolve_PackCurvesAndPositions(t *testing.T) {
	reg := registry.NewRegistry()
	reg.RegisterCurve("ramp", ast.CurvePoints([2]float64{0, 0}, [2]float64{1, 2}))
	reg.RegisterCurve("alias", ast.CurveNamed("ramp"))
	reg.RegisterPositions("pair", &ast.Positions{Points: []ast.Vec{{X: 0}, {X: 10}}})

	root := parse(t, `{"Type":"Sum","Inputs":[
		{"Type":"CurveMapper","Curve":"alias","Input":0.5},
		{"Type":"CellWallDistance","Positions":"pair"}]}`)
	prog, err := resolver.Resolve(root, resolver.WithRegistry(reg))
	require.NoError(t, err)
	assert.InDelta(t, 1+3.0, valueAt(t, prog, domain.Vec3{X: 2}), 1e-9)
}

func TestResolve_UnknownCurve(t *testing.T) {
	root := parse(t, `{"Type":"CurveMapper","Curve":"missing","Input":1}`)
	_, err := resolver.Resolve(root, resolver.WithRegistry(registry.NewRegistry()))
	assert.ErrorIs(t, err, domain.ErrUnresolvedAsset)
	assert.Contains(t, err.Error(), "CurveMapper#0")
}

func TestResolve_Malformed(t *testing.T) {
	tests := map[string]string{
		"mix":                  `{"Type":"Mix","Inputs":[1,2,3,4]}`,
		"vector warp":          `{"Type":"VectorWarp","Inputs":[1,2,3]}`,
		"multimix":             `{"Type":"MultiMix","Keys":[0,1],"Inputs":[1,2]}`,
		"keys order":           `{"Type":"MultiMix","Keys":[1,0],"Inputs":[1,2,0.5]}`,
		"nested gradient warp": `{"Type":"Abs","Input":{"Type":"GradientWarp","Inputs":[1,2,3]}}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := resolver.Resolve(parse(t, doc))
			assert.ErrorIs(t, err, domain.ErrMalformedNode)
		})
	}

	_, err := resolver.Resolve(nil)
	assert.ErrorIs(t, err, domain.ErrMalformedNode)
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	root := parse(t, `{"Type":"Pipeline","Input":1,"Steps":[{"Type":"OffsetConstant","Offset":1},{"Type":"Abs"}]}`)
	before, err := ast.Marshal(root)
	require.NoError(t, err)

	prog, err := resolver.Resolve(root)
	require.NoError(t, err)
	assert.Equal(t, 2.0, valueAt(t, prog, domain.Vec3{}))

	after, err := ast.Marshal(root)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
	assert.Equal(t, ast.KindPipeline, prog.Root().Kind())
}

func TestResolve_ThreadsPipelineSteps(t *testing.T) {
	root := parse(t, `{"Type":"Pipeline","Input":1,"Steps":[
		{"Type":"Abs"},{"Type":"Sum","Inputs":[2]},{"Type":"Abs","Input":5},3]}`)
	prog, err := resolver.Resolve(root)
	require.NoError(t, err)

	p, ok := prog.Root().(*ast.Pipeline)
	require.True(t, ok)
	require.Len(t, p.Steps, 4)

	abs := p.Steps[0].Node.(*ast.Abs)
	assert.Equal(t, &ast.Carried{Step: 0}, abs.Input.Node)
	sum := p.Steps[1].Node.(*ast.Sum)
	require.Len(t, sum.Inputs, 2)
	assert.Equal(t, &ast.Carried{Step: 1}, sum.Inputs[0].Node)
	assert.Equal(t, 5.0, p.Steps[2].Node.(*ast.Abs).Input.Literal, "a filled Input slot is kept")

	c, ok := prog.Compiled(abs.Input.Node)
	require.True(t, ok)
	assert.Same(t, p, c.Pipeline)
	assert.Equal(t, 3.0, valueAt(t, prog, domain.Vec3{}))
}

func TestResolve_MarksCachesOverSharedExports(t *testing.T) {
	root := parse(t, `{"Type":"Sum","Inputs":[
		{"Type":"Exported","Name":"h","SingleInstance":true,"Density":{"Type":"XValue"}},
		{"Type":"Exported","Name":"plain","Density":{"Type":"YValue"}},
		{"Type":"Cache","Input":{"Type":"Abs","Input":{"Type":"Imported","Name":"h"}}},
		{"Type":"Cache2D","Input":{"Type":"Imported","Name":"plain"}}]}`)
	prog, err := resolver.Resolve(root)
	require.NoError(t, err)

	marked := map[ast.Kind]bool{}
	ast.Walk(prog.Root(), func(n ast.Node) bool {
		switch n.(type) {
		case *ast.Cache, *ast.Cache2D:
			c, ok := prog.Compiled(n)
			require.True(t, ok)
			marked[n.Kind()] = c.TopDependent
		}
		return true
	})
	assert.Equal(t, map[ast.Kind]bool{ast.KindCache: true, ast.KindCache2D: false}, marked)
}

func TestResolve_LiteralPipeline(t *testing.T) {
	root := parse(t, `{"Type":"Pipeline","Input":4,"Steps":[7]}`)
	prog, err := resolver.Resolve(root)
	require.NoError(t, err)
	assert.Equal(t, 7.0, valueAt(t, prog, domain.Vec3{}))
}

func TestResolve_ProgramIdentities(t *testing.T) {
	root := parse(t, `{"Type":"Sum","Inputs":[{"Type":"XValue"},{"Type":"Abs","Input":{"Type":"YValue"}}]}`)
	prog, err := resolver.Resolve(root)
	require.NoError(t, err)
	assert.Equal(t, 4, prog.NodeCount())

	c, ok := prog.Compiled(prog.Root())
	require.True(t, ok)
	assert.Equal(t, 0, c.ID)

	other, err := resolver.Resolve(root)
	require.NoError(t, err)
	assert.NotEqual(t, prog.ID(), other.ID())
}
