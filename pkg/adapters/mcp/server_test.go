package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terranova/density"
	"github.com/terranova/density/pkg/adapters/memory"
	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/ports"
)

func TestHandleEvaluate(t *testing.T) {
	s := NewServer(density.New())
	ctx := context.Background()

	t.Run("Value", func(t *testing.T) {
		res, err := s.handleEvaluate(ctx, mcp.CallToolRequest{}, EvaluateArgs{
			Document: `{"Type":"Sum","Inputs":[{"Type":"YValue"},-64]}`,
			Y:        70,
		})
		require.NoError(t, err)
		require.NotNil(t, res.Value)
		assert.Equal(t, 6.0, *res.Value)
	})

	t.Run("Inputs", func(t *testing.T) {
		res, err := s.handleEvaluate(ctx, mcp.CallToolRequest{}, EvaluateArgs{
			Document: `{"Type":"Terrain"}`,
			Inputs:   `{"terrain":2.5}`,
		})
		require.NoError(t, err)
		require.NotNil(t, res.Value)
		assert.Equal(t, 2.5, *res.Value)
	})

	t.Run("Evaluation Error Is Reported", func(t *testing.T) {
		res, err := s.handleEvaluate(ctx, mcp.CallToolRequest{}, EvaluateArgs{Document: `{"Type":"Terrain"}`})
		require.NoError(t, err)
		assert.Nil(t, res.Value)
		assert.Contains(t, res.Error, "MissingContextInput")
	})

	t.Run("Compile Error Fails The Tool", func(t *testing.T) {
		_, err := s.handleEvaluate(ctx, mcp.CallToolRequest{}, EvaluateArgs{Document: `{"Type":"Nope"}`})
		assert.ErrorContains(t, err, "compile failed")
	})

	t.Run("Bad Inputs", func(t *testing.T) {
		_, err := s.handleEvaluate(ctx, mcp.CallToolRequest{}, EvaluateArgs{Document: `{"Type":"XValue"}`, Inputs: `[`})
		assert.ErrorContains(t, err, "invalid inputs")
	})
}

func TestHandlePreview(t *testing.T) {
	s := NewServer(density.New(), WithMaxPoints(8))
	ctx := context.Background()

	res, err := s.handlePreview(ctx, mcp.CallToolRequest{}, PreviewArgs{
		Document: `{"Type":"XValue"}`,
		Domain:   `{"origin":{"x":0,"y":0,"z":0},"step":{"x":1,"y":1,"z":1},"size":[2,1,2]}`,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0, 1}, []float64(res.Grid.Values))
	assert.Equal(t, 0.0, res.Min)
	assert.Equal(t, 1.0, res.Max)
	assert.Equal(t, 2, res.Solid)
	assert.Zero(t, res.Faults)

	_, err = s.handlePreview(ctx, mcp.CallToolRequest{}, PreviewArgs{
		Document: `{"Type":"XValue"}`,
		Domain:   `{"step":{"x":1,"y":1,"z":1},"size":[3,1,3]}`,
	})
	assert.ErrorContains(t, err, "limit is 8")

	res, err = s.handlePreview(ctx, mcp.CallToolRequest{}, PreviewArgs{
		Document: `{"Type":"Terrain"}`,
		Domain:   `{"step":{"x":1,"y":1,"z":1},"size":[2,1,1]}`,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Faults)
	assert.Zero(t, res.Min)
	assert.Zero(t, res.Max)
}

func TestHandleValidate(t *testing.T) {
	s := NewServer(density.New())

	res, err := s.handleValidate(context.Background(), mcp.CallToolRequest{}, DocumentArgs{Document: `{"Type":"XValue"}`})
	require.NoError(t, err)
	assert.True(t, res.Valid)

	res, err = s.handleValidate(context.Background(), mcp.CallToolRequest{}, DocumentArgs{Document: `{"Type":"Nope"}`})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "UnknownType", res.Kind)

	res, err = s.handleValidate(context.Background(), mcp.CallToolRequest{}, DocumentArgs{Document: `{"Type":"Imported","Name":"missing"}`})
	require.NoError(t, err)
	assert.Equal(t, "UnresolvedImport", res.Kind)
}

func TestHandleExports(t *testing.T) {
	eng := density.New()
	_, err := eng.LoadPack(context.Background(), memory.NewSource(map[ports.AssetKind]map[string]string{
		ports.AssetDensity: {
			"Density/floor": `{"Type":"Exported","Name":"floor","Density":{"Type":"YValue"}}`,
		},
	}))
	require.NoError(t, err)

	res, err := NewServer(eng).handleExports(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"floor"}, res.Exports)
	assert.Empty(t, res.Curves)
	assert.NotNil(t, res.Positions)
}

func TestHandleGraph(t *testing.T) {
	s := NewServer(density.New())

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"document": `{"Type":"Abs","Input":{"Type":"XValue"}}`}
	res, err := s.handleGraph(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, `n0 -- "Input" --> n1`)

	req.Params.Arguments = map[string]any{"document": `{"Type":`}
	res, err = s.handleGraph(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestKindCatalog(t *testing.T) {
	cat := KindCatalog()
	total := 0
	for _, kinds := range cat {
		total += len(kinds)
	}
	assert.Equal(t, len(ast.Kinds()), total)
	assert.Contains(t, cat[ast.CategoryNoise], ast.KindSimplexNoise2D)
}
