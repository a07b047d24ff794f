package graph_test

import (
	"strings"
	"testing"

	"github.com/terranova/density/internal/presentation/graph"
	"github.com/terranova/density/pkg/ast"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		root     ast.Node
		overlay  *graph.Overlay
		contains []string
	}{
		{
			name: "Literal Slots",
			root: &ast.Sum{Inputs: []ast.Input{ast.Of(&ast.YValue{}), ast.Lit(-64)}},
			contains: []string{
				`n0["Sum"]`,
				`n1(["YValue"])`,
				`n2("-64")`,
				`n0 -- "Inputs[0]" --> n1`,
				`n0 -- "Inputs[1]" --> n2`,
			},
		},
		{
			name: "Noise And Cache Shapes",
			root: &ast.Cache2D{Input: ast.Of(&ast.SimplexNoise2D{Seed: ast.String("s")})},
			contains: []string{
				`n0[("Cache2D")]`,
				`n1{{"SimplexNoise2D"}}`,
				`n0 -- "Input" --> n1`,
			},
		},
		{
			name: "Import Labels",
			root: &ast.Exported{Name: ast.String(`a"b`), Density: ast.Of(&ast.Imported{Name: ast.String("base")})},
			contains: []string{
				`n0[["Exported <br/> a'b"]]`,
				`n1[["Imported <br/> base"]]`,
				`n0 -- "Density" --> n1`,
			},
		},
		{
			name:    "Fault Overlay",
			root:    &ast.Abs{Input: ast.Of(&ast.Terrain{})},
			overlay: &graph.Overlay{Faulted: []ast.Kind{ast.KindTerrain}},
			contains: []string{
				"classDef faulted",
				"class n1 faulted;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.root, tt.overlay)
			if !strings.HasPrefix(got, "graph TD\n") {
				t.Errorf("GenerateMermaid() missing header:\n%v", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
		})
	}
}

func TestGenerateMermaid_Empty(t *testing.T) {
	if got := graph.GenerateMermaid(nil, nil); got != "graph TD\n" {
		t.Errorf("GenerateMermaid(nil) = %q", got)
	}
}
