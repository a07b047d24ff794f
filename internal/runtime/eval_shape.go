package runtime

import (
	"math"

	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
)

func (s *Session) evalShape(n ast.Node, c *Compiled) (float64, error) {
	q := s.ctx.Local()
	switch n := n.(type) {
	case *ast.Distance:
		return c.Curve.Sample(q.Len()), nil

	case *ast.Cube:
		return c.Curve.Sample(domain.MetricChebyshev.Distance(q)), nil

	case *ast.Ellipsoid:
		k, err := s.vector(c.Vector, domain.Vec3{X: 1, Y: 1, Z: 1})
		if err != nil {
			return 0, err
		}
		local := frame(up, ast.Or(n.Spin, 0)).Transpose().Apply(q).Div(k)
		return c.Curve.Sample(local.Len()), nil

	case *ast.Cuboid:
		k, err := s.vector(c.Vector, domain.Vec3{X: 1, Y: 1, Z: 1})
		if err != nil {
			return 0, err
		}
		axis, err := s.vector(c.AltVector, up)
		if err != nil {
			return 0, err
		}
		local := frame(axis, ast.Or(n.Spin, 0)).Transpose().Apply(q).Div(k)
		return c.Curve.Sample(domain.MetricChebyshev.Distance(local)), nil

	case *ast.Cylinder:
		axis, err := s.vector(c.Vector, up)
		if err != nil {
			return 0, err
		}
		local := frame(axis, ast.Or(n.Spin, 0)).Transpose().Apply(q)
		axial := c.Curve.Sample(math.Abs(local.Y))
		radial := c.AltCurve.Sample(math.Hypot(local.X, local.Z))
		return math.Min(axial, radial), nil

	case *ast.Plane:
		normal, err := s.vector(c.Vector, up)
		if err != nil {
			return 0, err
		}
		return c.Curve.Sample(q.Dot(normal.Normalize())), nil

	case *ast.Axis:
		if !n.IsAnchored {
			q = s.ctx.point
		}
		dir, err := s.vector(c.Vector, up)
		if err != nil {
			return 0, err
		}
		dir = dir.Normalize()
		return c.Curve.Sample(q.Sub(dir.Scale(q.Dot(dir))).Len()), nil

	case *ast.Shell:
		dir, err := s.vector(c.Vector, up)
		if err != nil {
			return 0, err
		}
		angle := angleBetween(q, dir)
		if n.Mirror && angle > 90 {
			angle = 180 - angle
		}
		return c.AltCurve.Sample(angle) * c.Curve.Sample(q.Len()), nil

	case *ast.Angle:
		ref, err := s.vector(c.Vector, up)
		if err != nil {
			return 0, err
		}
		other, err := s.vector(c.AltVector, q)
		if err != nil {
			return 0, err
		}
		return angleBetween(ref, other), nil
	}
	return 0, unsupported(n, c)
}

// angleBetween returns the angle between a and b in degrees, 0 when either is zero.
func angleBetween(a, b domain.Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := clamp(a.Dot(b)/(la*lb), -1, 1)
	return math.Acos(cos) * 180 / math.Pi
}
