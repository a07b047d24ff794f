package runtime

import (
	"fmt"

	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
)

// input evaluates a slot. Absent slots are Constant(0).
func (s *Session) input(in ast.Input) (float64, error) {
	switch {
	case in.Node != nil:
		return s.eval(in.Node)
	case in.IsLiteral():
		return in.Literal, nil
	default:
		return 0, nil
	}
}

// inputAt evaluates a slot with the coordinate replaced by p.
func (s *Session) inputAt(p domain.Vec3, in ast.Input) (float64, error) {
	restore := s.ctx.Move(p)
	defer restore()
	return s.input(in)
}

// nth returns slot i of a list, absent when out of range.
func nth(ins []ast.Input, i int) ast.Input {
	if i < len(ins) {
		return ins[i]
	}
	return ast.Input{}
}

func (s *Session) eval(n ast.Node) (float64, error) {
	c, ok := s.prog.nodes[n]
	if !ok {
		return 0, &domain.EvalError{
			Kind:   domain.EvalContextMismatch,
			Node:   string(n.Kind()),
			Detail: "node does not belong to the session's program",
		}
	}

	s.ctx.depth++
	defer func() { s.ctx.depth-- }()
	if s.ctx.depth > s.ctx.maxDepth {
		return 0, &domain.EvalError{
			Kind:   domain.EvalDepthExceeded,
			Node:   label(n, c),
			Detail: fmt.Sprintf("recursion deeper than %d", s.ctx.maxDepth),
		}
	}
	s.stats.Evaluated++

	switch ast.CategoryOf(n.Kind()) {
	case ast.CategoryNoise:
		return s.evalNoise(n, c)
	case ast.CategoryMath:
		return s.evalMath(n)
	case ast.CategoryClamp:
		return s.evalClamp(n)
	case ast.CategoryMinMax:
		return s.evalMinMax(n)
	case ast.CategoryMapping:
		return s.evalMapping(n, c)
	case ast.CategoryMixing:
		return s.evalMixing(n)
	case ast.CategorySpatialTransform:
		return s.evalSpatial(n, c)
	case ast.CategoryWarp:
		return s.evalWarp(n, c)
	case ast.CategoryShape:
		return s.evalShape(n, c)
	case ast.CategoryCoordinateAccessor:
		return s.evalAccessor(n)
	case ast.CategoryWorldContext:
		return s.evalWorld(n, c)
	case ast.CategoryCache:
		return s.evalCache(n, c)
	case ast.CategorySwitch:
		return s.evalSwitch(n, c)
	case ast.CategoryPositionsBased:
		return s.evalPositions(n, c)
	case ast.CategoryImportExport:
		return s.evalImportExport(n, c)
	case ast.CategoryPipeline:
		return s.pipeline(n.(*ast.Pipeline), -1)
	}
	if cr, ok := n.(*ast.Carried); ok {
		return s.carried(cr, c)
	}
	return 0, unsupported(n, c)
}

func unsupported(n ast.Node, c *Compiled) error {
	return &domain.EvalError{Kind: domain.EvalUnsupportedNode, Node: label(n, c)}
}

func label(n ast.Node, c *Compiled) string {
	if c == nil {
		return string(n.Kind())
	}
	return fmt.Sprintf("%s#%d", n.Kind(), c.ID)
}
