package dsl

import (
	"fmt"

	"github.com/terranova/density/pkg/adapters/memory"
	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/ports"
)

// Builder manages the pack construction.
type Builder struct {
	docs   map[string]ast.Node
	curves map[string]*ast.Curve
}

// New creates a new pack builder.
func New() *Builder {
	return &Builder{
		docs:   make(map[string]ast.Node),
		curves: make(map[string]*ast.Curve),
	}
}

// Document adds a density document under id, replacing any previous one.
func (b *Builder) Document(id string, root Expr) *Builder {
	b.docs[id] = root.Node()
	return b
}

// Curve adds a linear curve asset under id.
func (b *Builder) Curve(id string, points ...[2]float64) *Builder {
	b.curves[id] = ast.CurvePoints(points...)
	return b
}

// Build compiles the pack into an in-memory asset source.
func (b *Builder) Build() (*memory.Source, error) {
	for id, n := range b.docs {
		if n == nil {
			return nil, fmt.Errorf("document %s has no density", id)
		}
	}

	src, err := memory.NewFromNodes(b.docs)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory source: %w", err)
	}

	for id, c := range b.curves {
		data, err := c.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to marshal curve %s: %w", id, err)
		}
		src.Add(ports.AssetCurve, id, data)
	}
	return src, nil
}
