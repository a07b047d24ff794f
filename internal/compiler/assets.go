package compiler

import (
	"github.com/terranova/density/pkg/ast"
)

// ParseCurve decodes a curve asset document: a point list, a constant, or a
// typed object. A bare string names another curve asset.
func ParseCurve(data []byte) (*ast.Curve, error) {
	raw, err := decodeJSON(data, DefaultMaxDepth)
	if err != nil {
		return nil, err
	}
	return parseCurve(raw, "$")
}

// ParsePositions decodes a positions asset document: a point list or a grid.
func ParsePositions(data []byte) (*ast.Positions, error) {
	raw, err := decodeJSON(data, DefaultMaxDepth)
	if err != nil {
		return nil, err
	}
	p, err := parsePositions(raw, "$")
	if err != nil {
		return nil, err
	}
	if p.Name != "" {
		return nil, mismatch("$", "a positions asset cannot be a reference")
	}
	return p, nil
}
