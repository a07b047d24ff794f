package runtime

import (
	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/noise"
)

var up = domain.Vec3{Y: 1}

func (s *Session) evalNoise(n ast.Node, c *Compiled) (float64, error) {
	p := s.ctx.point
	switch n := n.(type) {
	case *ast.SimplexNoise2D:
		scale := ast.Or(n.Scale, 1)
		return c.Fractal.Sample2D(p.X/scale, p.Z/scale), nil
	case *ast.SimplexNoise3D:
		xz, y := ast.Or(n.ScaleXZ, 1), ast.Or(n.ScaleY, 1)
		return c.Fractal.Sample3D(p.X/xz, p.Y/y, p.Z/xz), nil
	case *ast.CellNoise2D:
		scale := ast.Or(n.Scale, 1)
		return c.Cell.Sample2D(p.X/scale, p.Z/scale), nil
	case *ast.CellNoise3D:
		scale := ast.Or(n.Scale, 1)
		return c.Cell.Sample3D(p.X/scale, p.Y/scale, p.Z/scale), nil
	}
	return 0, unsupported(n, c)
}

func (s *Session) evalSpatial(n ast.Node, c *Compiled) (float64, error) {
	p := s.ctx.point
	switch n := n.(type) {
	case *ast.Scale:
		k := domain.Vec3{X: ast.Or(n.X, 1), Y: ast.Or(n.Y, 1), Z: ast.Or(n.Z, 1)}
		return s.inputAt(p.Div(k), n.Input)

	case *ast.Slider:
		off := domain.Vec3{X: ast.Or(n.SlideX, 0), Y: ast.Or(n.SlideY, 0), Z: ast.Or(n.SlideZ, 0)}
		return s.inputAt(p.Sub(off), n.Input)

	case *ast.Rotator:
		axis, err := s.vector(c.Vector, up)
		if err != nil {
			return 0, err
		}
		m := frame(axis, ast.Or(n.SpinAngle, 0))
		return s.inputAt(m.Transpose().Apply(p), n.Input)

	case *ast.Anchor:
		var restore func()
		if n.Reverse {
			restore = s.ctx.ClearAnchor()
		} else {
			restore = s.ctx.SetAnchor(p)
		}
		defer restore()
		return s.input(n.Input)

	case *ast.XOverride:
		return s.override(domain.AxisX, n.Override, n.Input)
	case *ast.YOverride:
		return s.override(domain.AxisY, n.Override, n.Input)
	case *ast.ZOverride:
		return s.override(domain.AxisZ, n.Override, n.Input)
	}
	return 0, unsupported(n, c)
}

func (s *Session) override(axis domain.Axis, value, in ast.Input) (float64, error) {
	v, err := s.input(value)
	if err != nil {
		return 0, err
	}
	restore := s.ctx.PushOverride(axis, v)
	defer restore()
	return s.input(in)
}

// frame rotates the Y axis onto axis and then spins about it by deg degrees.
func frame(axis domain.Vec3, deg float64) domain.Mat3 {
	align := domain.AlignY(axis)
	if deg == 0 {
		return align
	}
	return domain.AxisAngle(axis, domain.Radians(deg)).Mul(align)
}

// vector evaluates a vector slot at the current coordinate. Nil slots yield def.
func (s *Session) vector(v *Vector, def domain.Vec3) (domain.Vec3, error) {
	if v == nil {
		return def, nil
	}
	if !v.Dynamic() {
		return v.Fixed, nil
	}
	return s.gradient(v.Gradient, s.ctx.point, v.Step, false)
}

// gradient estimates the gradient of in around p with central differences.
// flat skips the Y component.
func (s *Session) gradient(in ast.Input, p domain.Vec3, h float64, flat bool) (domain.Vec3, error) {
	if h == 0 {
		h = 1
	}
	var g domain.Vec3
	axes := []domain.Axis{domain.AxisX, domain.AxisY, domain.AxisZ}
	for _, axis := range axes {
		if flat && axis == domain.AxisY {
			continue
		}
		hi, err := s.inputAt(p.With(axis, p.Get(axis)+h), in)
		if err != nil {
			return domain.Vec3{}, err
		}
		lo, err := s.inputAt(p.With(axis, p.Get(axis)-h), in)
		if err != nil {
			return domain.Vec3{}, err
		}
		g = g.With(axis, (hi-lo)/(2*h))
	}
	return g, nil
}

// Offsets that decorrelate the three displacement channels of a fast warp.
var (
	warpOffsetY = domain.Vec3{X: 31.416, Y: -47.853, Z: 12.734}
	warpOffsetZ = domain.Vec3{X: -71.142, Y: 19.271, Z: 53.981}
)

func (s *Session) evalWarp(n ast.Node, c *Compiled) (float64, error) {
	p := s.ctx.point
	switch n := n.(type) {
	case *ast.GradientWarp:
		q := p
		if n.Is2D {
			q.Y = ast.Or(n.YFor2D, 0)
		}
		g, err := s.gradient(nth(n.Inputs, 1), q, ast.Or(n.SampleRange, 1), n.Is2D)
		if err != nil {
			return 0, err
		}
		return s.inputAt(p.Add(g.Scale(ast.Or(n.WarpFactor, 1))), nth(n.Inputs, 0))

	case *ast.FastGradientWarp:
		scale := ast.Or(n.WarpScale, 1)
		q := p.Scale(1 / scale)
		var d domain.Vec3
		if n.Is2D {
			d.X = c.Fractal.Sample2D(q.X, q.Z)
			d.Z = c.Fractal.Sample2D(q.X+warpOffsetZ.X, q.Z+warpOffsetZ.Z)
		} else {
			d.X = c.Fractal.Sample3D(q.X, q.Y, q.Z)
			d.Y = sample3(c.Fractal, q.Add(warpOffsetY))
			d.Z = sample3(c.Fractal, q.Add(warpOffsetZ))
		}
		return s.inputAt(p.Add(d.Scale(ast.Or(n.WarpFactor, 1))), n.Input)

	case *ast.VectorWarp:
		dir, err := s.vector(c.Vector, up)
		if err != nil {
			return 0, err
		}
		mag, err := s.input(nth(n.Inputs, 1))
		if err != nil {
			return 0, err
		}
		shift := dir.Normalize().Scale(ast.Or(n.WarpFactor, 1) * mag)
		return s.inputAt(p.Add(shift), nth(n.Inputs, 0))
	}
	return 0, unsupported(n, c)
}

func sample3(f *noise.Fractal, q domain.Vec3) float64 {
	return f.Sample3D(q.X, q.Y, q.Z)
}

func (s *Session) evalAccessor(n ast.Node) (float64, error) {
	p := s.ctx.point
	switch n.(type) {
	case *ast.XValue:
		return p.X, nil
	case *ast.YValue:
		return p.Y, nil
	case *ast.ZValue:
		return p.Z, nil
	}
	return 0, unsupported(n, nil)
}
