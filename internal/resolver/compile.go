package resolver

import (
	"fmt"

	"github.com/terranova/density/internal/runtime"
	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/curve"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/noise"
	"github.com/terranova/density/pkg/positions"
)

var (
	yAxis = domain.Vec3{Y: 1}
	ones  = domain.Vec3{X: 1, Y: 1, Z: 1}
)

// compile assigns preorder identities to every node of the program and
// precomputes generators, curves, point sets and vectors.
func (r *resolver) compile() (map[ast.Node]*runtime.Compiled, error) {
	nodes := make(map[ast.Node]*runtime.Compiled)
	next := 0
	var err error

	for _, tree := range r.trees {
		ast.Walk(tree, func(n ast.Node) bool {
			if err != nil {
				return false
			}
			if _, seen := nodes[n]; seen {
				return false
			}
			c := &runtime.Compiled{ID: next}
			next++
			nodes[n] = c
			err = r.precompile(n, c)
			return err == nil
		})
		if err != nil {
			return nil, err
		}
	}

	for n, c := range nodes {
		switch n.(type) {
		case *ast.Cache, *ast.Cache2D, *ast.YSampled:
			c.TopDependent = r.reachesShared(n)
		}
	}
	return nodes, nil
}

// reachesShared reports whether evaluating n can reach a single-instance
// export, whose value is fixed by the point the walk started from.
func (r *resolver) reachesShared(root ast.Node) bool {
	seen := make(map[ast.Node]bool)
	found := false
	var visit func(ast.Node)
	visit = func(from ast.Node) {
		ast.Walk(from, func(n ast.Node) bool {
			if found || seen[n] {
				return false
			}
			seen[n] = true
			switch n := n.(type) {
			case *ast.Exported:
				if n.SingleInstance {
					found = true
				}
			case *ast.Imported:
				if e := r.links[n]; e != nil {
					visit(e)
				}
			case *ast.Carried:
				if p := r.carries[n]; p != nil {
					visit(p)
				}
			}
			return !found
		})
	}
	visit(root)
	return found
}

func (r *resolver) curve(c *ast.Curve) (curve.Curve, error) {
	var lookup curve.Lookup
	if r.reg != nil {
		lookup = r.reg.Curve
	}
	return curve.FromAST(c, lookup)
}

// points resolves a positions reference. Names known to the registry are
// built now; other names are looked up in the evaluation inputs.
func (r *resolver) points(p *ast.Positions, c *runtime.Compiled) error {
	if p != nil && p.Name != "" && r.reg != nil {
		if asset, ok := r.reg.Positions(p.Name); ok {
			c.PointsName = p.Name
			p = asset
		}
	}
	if p == nil {
		return nil
	}
	if p.Name != "" {
		c.PointsName = p.Name
		return nil
	}
	set, err := positions.FromAST(p)
	if err != nil {
		return err
	}
	c.Points = set
	return nil
}

// vector resolves a vector slot: the explicit vector, else the X/Y/Z scalars
// with missing components taken from fill, else def.
func vector(v *ast.Vector, x, y, z *float64, def domain.Vec3, fill float64) *runtime.Vector {
	switch {
	case v != nil && v.Provider == ast.VectorDensityGradient:
		return &runtime.Vector{Gradient: v.Density, Step: ast.Or(v.SampleDistance, 1)}
	case v != nil:
		return &runtime.Vector{Fixed: domain.Vec3{X: v.Value.X, Y: v.Value.Y, Z: v.Value.Z}}
	case x != nil || y != nil || z != nil:
		return &runtime.Vector{Fixed: domain.Vec3{X: ast.Or(x, fill), Y: ast.Or(y, fill), Z: ast.Or(z, fill)}}
	default:
		return &runtime.Vector{Fixed: def}
	}
}

func cellOptions(ret, metric *string) (noise.ReturnType, domain.Metric) {
	return noise.ReturnType(ast.Or(ret, string(noise.Distance))),
		domain.Metric(ast.Or(metric, string(domain.MetricEuclidean)))
}

func (r *resolver) precompile(n ast.Node, c *runtime.Compiled) error {
	var err error
	c.Curve = curve.Identity{}
	c.AltCurve = curve.Identity{}

	switch n := n.(type) {
	case *ast.SimplexNoise2D:
		c.Fractal = noise.NewFractal(ast.Or(n.Seed, noise.DefaultSeed), ast.Or(n.Octaves, 1),
			ast.Or(n.Lacunarity, 2), ast.Or(n.Persistence, 0.5))
	case *ast.SimplexNoise3D:
		c.Fractal = noise.NewFractal(ast.Or(n.Seed, noise.DefaultSeed), ast.Or(n.Octaves, 1),
			ast.Or(n.Lacunarity, 2), ast.Or(n.Persistence, 0.5))
	case *ast.CellNoise2D:
		c.Return, c.Metric = cellOptions(n.ReturnType, n.DistanceFunction)
		c.Cell = noise.NewCell(ast.Or(n.Seed, noise.DefaultSeed), c.Return, c.Metric)
	case *ast.CellNoise3D:
		c.Return, c.Metric = cellOptions(n.ReturnType, n.DistanceFunction)
		c.Cell = noise.NewCell(ast.Or(n.Seed, noise.DefaultSeed), c.Return, c.Metric)
	case *ast.FastGradientWarp:
		c.Fractal = noise.NewFractal(ast.Or(n.Seed, noise.DefaultSeed), ast.Or(n.WarpOctaves, 1),
			ast.Or(n.WarpLacunarity, 2), ast.Or(n.WarpPersistence, 0.5))

	case *ast.CurveMapper:
		c.Curve, err = r.curve(n.Curve)
	case *ast.Distance:
		c.Curve, err = r.curve(n.Curve)
	case *ast.Cube:
		c.Curve, err = r.curve(n.Curve)
	case *ast.Ellipsoid:
		c.Vector = vector(n.Scale, n.X, n.Y, n.Z, ones, 1)
		c.Curve, err = r.curve(n.Curve)
	case *ast.Cuboid:
		c.Vector = vector(n.Scale, n.X, n.Y, n.Z, ones, 1)
		c.AltVector = vector(n.NewYAxis, nil, nil, nil, yAxis, 0)
		c.Curve, err = r.curve(n.Curve)
	case *ast.Cylinder:
		c.Vector = vector(n.NewYAxis, nil, nil, nil, yAxis, 0)
		if c.Curve, err = r.curve(n.AxialCurve); err == nil {
			c.AltCurve, err = r.curve(n.RadialCurve)
		}
	case *ast.Plane:
		c.Vector = vector(n.PlaneNormal, n.X, n.Y, n.Z, yAxis, 0)
		c.Curve, err = r.curve(n.Curve)
	case *ast.Axis:
		c.Vector = vector(n.Axis, n.X, n.Y, n.Z, yAxis, 0)
		c.Curve, err = r.curve(n.Curve)
	case *ast.Shell:
		c.Vector = vector(n.Axis, n.X, n.Y, n.Z, yAxis, 0)
		if c.Curve, err = r.curve(n.DistanceCurve); err == nil {
			c.AltCurve, err = r.curve(n.AngleCurve)
		}
	case *ast.Angle:
		c.Vector = vector(n.Vector, nil, nil, nil, yAxis, 0)
		if n.VectorProvider != nil {
			c.AltVector = vector(n.VectorProvider, nil, nil, nil, yAxis, 0)
		}

	case *ast.Rotator:
		c.Vector = vector(n.NewYAxis, n.X, n.Y, n.Z, yAxis, 0)
	case *ast.VectorWarp:
		c.Vector = vector(n.WarpVector, n.X, n.Y, n.Z, yAxis, 0)
		if len(n.Inputs) > 2 {
			return malformed(n, c.ID, "VectorWarp takes [Input, Magnitude], got %d inputs", len(n.Inputs))
		}
	case *ast.GradientWarp:
		if len(n.Inputs) > 2 {
			return malformed(n, c.ID, "GradientWarp takes [Input, Source], got %d inputs", len(n.Inputs))
		}
	case *ast.Mix:
		if len(n.Inputs) > 3 {
			return malformed(n, c.ID, "Mix takes [Value, Gauge] or [A, B, Gauge], got %d inputs", len(n.Inputs))
		}
	case *ast.MultiMix:
		return checkMultiMix(n, c.ID)

	case *ast.CellWallDistance:
		err = r.points(n.Positions, c)
	case *ast.PositionsCellNoise:
		c.Return, c.Metric = cellOptions(n.ReturnType, n.DistanceFunction)
		err = r.points(n.Positions, c)
	case *ast.Positions3D:
		err = r.points(n.Positions, c)
	case *ast.PositionsPinch:
		if err = r.points(n.Positions, c); err == nil {
			c.Curve, err = r.curve(n.PinchCurve)
		}
	case *ast.PositionsTwist:
		c.Vector = vector(n.TwistAxis, n.X, n.Y, n.Z, yAxis, 0)
		if err = r.points(n.Positions, c); err == nil {
			c.Curve, err = r.curve(n.TwistCurve)
		}

	case *ast.Imported:
		c.Target = r.links[n]
	case *ast.Carried:
		c.Pipeline = r.carries[n]
	}

	if err != nil {
		return fmt.Errorf("%s#%d: %w", n.Kind(), c.ID, err)
	}
	return nil
}

func checkMultiMix(n *ast.MultiMix, id int) error {
	if len(n.Keys) == 0 && len(n.Inputs) == 0 {
		return nil
	}
	if len(n.Inputs) != len(n.Keys)+1 {
		return malformed(n, id, "MultiMix with %d keys needs %d inputs (values then gauge), got %d",
			len(n.Keys), len(n.Keys)+1, len(n.Inputs))
	}
	for i := 1; i < len(n.Keys); i++ {
		if n.Keys[i] < n.Keys[i-1] {
			return malformed(n, id, "MultiMix keys must be ascending, %v follows %v", n.Keys[i], n.Keys[i-1])
		}
	}
	return nil
}
