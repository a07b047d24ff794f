package runtime

import (
	"errors"
	"fmt"
	"math"

	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
)

func missing(n ast.Node, c *Compiled, what string) error {
	return &domain.EvalError{
		Kind:   domain.EvalMissingContextInput,
		Node:   label(n, c),
		Detail: what,
	}
}

func (s *Session) evalWorld(n ast.Node, c *Compiled) (float64, error) {
	p := s.ctx.point
	switch n := n.(type) {
	case *ast.Terrain:
		if s.inputs.Terrain == nil {
			return 0, missing(n, c, "terrain provider")
		}
		return s.inputs.Terrain(p), nil

	case *ast.DistanceToBiomeEdge:
		if s.inputs.BiomeEdge == nil {
			return 0, missing(n, c, "biome edge provider")
		}
		return s.inputs.BiomeEdge(p), nil

	case *ast.BaseHeight:
		name := ast.Or(n.BaseHeightName, "")
		h, ok := s.inputs.BaseHeights[name]
		if !ok {
			return 0, missing(n, c, fmt.Sprintf("base height %q", name))
		}
		if n.Distance {
			return p.Y - h, nil
		}
		return h, nil

	case *ast.CellWallDistance:
		set, err := s.points(n, c)
		if err != nil {
			return 0, err
		}
		limit := ast.Or(n.MaxDistance, 0)
		first, second, ok := set.Nearest(p, domain.MetricEuclidean, nil)
		if !ok {
			return bound(math.Inf(1), limit), nil
		}
		return bound((second.Dist-first.Dist)/2, limit), nil

	case *ast.Gradient:
		from, to := ast.Or(n.From, 1), ast.Or(n.To, -1)
		fromY, toY := ast.Or(n.FromY, 0), ast.Or(n.ToY, 256)
		if fromY == toY {
			if p.Y < fromY {
				return from, nil
			}
			return to, nil
		}
		return lerp(from, to, clamp((p.Y-fromY)/(toY-fromY), 0, 1)), nil
	}
	return 0, unsupported(n, c)
}

// bound clips a distance to limit; a non-positive limit is unbounded.
func bound(d, limit float64) float64 {
	if limit > 0 && d > limit {
		return limit
	}
	return d
}

// points returns the positions asset of a node: inline, or named in the inputs.
func (s *Session) points(n ast.Node, c *Compiled) (domain.PointSet, error) {
	if c.Points != nil {
		return c.Points, nil
	}
	set, ok := s.inputs.Positions[c.PointsName]
	if !ok || set == nil {
		return nil, missing(n, c, fmt.Sprintf("positions %q", c.PointsName))
	}
	return set, nil
}

func (s *Session) evalCache(n ast.Node, c *Compiled) (float64, error) {
	p := s.ctx.point
	switch n := n.(type) {
	case *ast.Cache:
		return s.cached(c, ast.Or(n.Capacity, 0), s.memoKey(c, p, true), n.Input)

	case *ast.Cache2D:
		return s.cached(c, 0, s.memoKey(c, p, false), n.Input)

	case *ast.YSampled:
		k := s.memoKey(c, p, false)
		restore := s.ctx.Move(p.With(domain.AxisY, ast.Or(n.Y, 0)))
		defer restore()
		return s.cached(c, 0, k, n.Input)
	}
	return 0, unsupported(n, c)
}

func (s *Session) evalSwitch(n ast.Node, c *Compiled) (float64, error) {
	switch n := n.(type) {
	case *ast.SwitchState:
		restore := s.ctx.SetSwitch(ast.Or(n.Name, ""), ast.Or(n.SwitchState, ""))
		defer restore()
		return s.input(n.Input)

	case *ast.Switch:
		name := ast.Or(n.Name, "")
		state := s.ctx.Switch(name)
		for _, sc := range n.SwitchCases {
			if sc.CaseState == state {
				return s.input(sc.Density)
			}
		}
		if !n.Input.IsZero() {
			return s.input(n.Input)
		}
		return 0, &domain.EvalError{
			Kind:   domain.EvalUnhandledSwitchCase,
			Node:   label(n, c),
			Detail: fmt.Sprintf("channel %q has state %q and no default", name, state),
		}
	}
	return 0, unsupported(n, c)
}

func (s *Session) evalImportExport(n ast.Node, c *Compiled) (float64, error) {
	switch n := n.(type) {
	case *ast.Exported:
		body := n.Density
		if body.IsZero() {
			body = n.Input
		}
		if n.SingleInstance {
			v, err := s.shared(c, body)
			var evalErr *domain.EvalError
			if errors.As(err, &evalErr) && evalErr.Kind == domain.EvalUnhandledSwitchCase {
				evalErr.Detail += fmt.Sprintf("; evaluated inside single-instance export %q, which does not see the switch states of its import site",
					ast.Or(n.Name, ""))
			}
			return v, err
		}
		return s.input(body)

	case *ast.Imported:
		if c.Target == nil {
			return 0, &domain.EvalError{
				Kind:   domain.EvalUnresolvedImport,
				Node:   label(n, c),
				Detail: fmt.Sprintf("import %q is not linked", ast.Or(n.Name, "")),
			}
		}
		return s.eval(c.Target)
	}
	return 0, unsupported(n, c)
}

// pipeline runs the steps of p in order at the current coordinate, the first
// upto of them when upto is not negative. Each step reads the running value
// through its Carried slot, so the step count adds no recursion depth.
func (s *Session) pipeline(p *ast.Pipeline, upto int) (float64, error) {
	steps := p.Steps
	if upto >= 0 && upto < len(steps) {
		steps = steps[:upto]
	}
	v, err := s.input(p.Input)
	if err != nil {
		return 0, err
	}

	base := len(s.carry)
	defer func() { s.carry = s.carry[:base] }()
	for i, step := range steps {
		if step.Node == nil {
			if step.IsLiteral() {
				v = step.Literal
			}
			continue
		}
		s.carry = append(s.carry[:base], carryFrame{
			pipe:  p,
			step:  i,
			value: v,
			at:    s.ctx.point,
			fp:    s.ctx.Fingerprint(),
		})
		if v, err = s.eval(step.Node); err != nil {
			return 0, err
		}
	}
	return v, nil
}

// carried returns the running value handed to a step. When the step moved the
// coordinate or changed the scope before reading it, the earlier steps run
// again under the current context.
func (s *Session) carried(n *ast.Carried, c *Compiled) (float64, error) {
	if c.Pipeline == nil {
		return 0, unsupported(n, c)
	}
	for i := len(s.carry) - 1; i >= 0; i-- {
		f := s.carry[i]
		if f.pipe != c.Pipeline || f.step != n.Step {
			continue
		}
		if f.at == s.ctx.point && f.fp == s.ctx.Fingerprint() {
			return f.value, nil
		}
		break
	}
	return s.pipeline(c.Pipeline, n.Step)
}
