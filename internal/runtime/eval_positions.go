package runtime

import (
	"math"

	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
)

func (s *Session) evalPositions(n ast.Node, c *Compiled) (float64, error) {
	p := s.ctx.point
	set, err := s.points(n, c)
	if err != nil {
		return 0, err
	}

	switch n := n.(type) {
	case *ast.PositionsCellNoise:
		limit := ast.Or(n.MaxDistance, 0)
		first, second, ok := set.Nearest(p, c.Metric, nil)
		if !ok {
			d := bound(math.Inf(1), limit)
			return c.Return.Combine(d, d, 0), nil
		}
		return c.Return.Combine(bound(first.Dist, limit), bound(second.Dist, limit), first.ID), nil

	case *ast.Positions3D:
		first, _, ok := set.Nearest(p, domain.MetricEuclidean, nil)
		if !ok || outside(first.Dist, ast.Or(n.MaxDistance, 0)) {
			return 0, nil
		}
		restore := s.ctx.SetAnchor(first.Point)
		defer restore()
		return s.input(n.Density)

	case *ast.PositionsPinch:
		metric := domain.MetricEuclidean
		if n.HorizontalPinch {
			metric = domain.MetricHorizontal
		}
		first, _, ok := set.Nearest(p, metric, yWindow(n.PositionsMinY, n.PositionsMaxY))
		limit := ast.Or(n.MaxDistance, 0)
		if !ok || outside(first.Dist, limit) {
			return s.input(n.Input)
		}
		k := c.Curve.Sample(distanceParam(first.Dist, limit, n.NormalizeDistance))
		off := p.Sub(first.Point)
		if n.HorizontalPinch {
			off = domain.Vec3{X: off.X * k, Y: off.Y, Z: off.Z * k}
		} else {
			off = off.Scale(k)
		}
		return s.inputAt(first.Point.Add(off), n.Input)

	case *ast.PositionsTwist:
		first, _, ok := set.Nearest(p, domain.MetricEuclidean, nil)
		limit := ast.Or(n.MaxDistance, 0)
		if !ok || outside(first.Dist, limit) {
			return s.input(n.Input)
		}
		axis, err := s.vector(c.Vector, up)
		if err != nil {
			return 0, err
		}
		deg := c.Curve.Sample(distanceParam(first.Dist, limit, n.NormalizeDistance))
		rot := domain.AxisAngle(axis, domain.Radians(deg))
		return s.inputAt(first.Point.Add(rot.Apply(p.Sub(first.Point))), n.Input)
	}
	return 0, unsupported(n, c)
}

func outside(d, limit float64) bool {
	return limit > 0 && d > limit
}

func distanceParam(d, limit float64, normalize bool) float64 {
	if normalize && limit > 0 {
		return d / limit
	}
	return d
}

// yWindow accepts points whose Y lies within the optional bounds.
func yWindow(minY, maxY *float64) func(domain.Vec3) bool {
	if minY == nil && maxY == nil {
		return nil
	}
	return func(q domain.Vec3) bool {
		if minY != nil && q.Y < *minY {
			return false
		}
		if maxY != nil && q.Y > *maxY {
			return false
		}
		return true
	}
}
