package positions

import (
	"fmt"
	"math"

	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/noise"
)

// List is an explicit set of points searched by brute force.
type List struct {
	points []domain.Vec3
	ids    []uint64
}

// NewList builds a list. Point identities depend on their content, not their order.
func NewList(points ...domain.Vec3) *List {
	l := &List{points: points, ids: make([]uint64, len(points))}
	for i, p := range points {
		l.ids[i] = noise.HashCell(0,
			int64(math.Float64bits(p.X)),
			int64(math.Float64bits(p.Y)),
			int64(math.Float64bits(p.Z)))
	}
	return l
}

// Len reports the number of points.
func (l *List) Len() int { return len(l.points) }

func (l *List) Nearest(p domain.Vec3, metric domain.Metric, accept func(domain.Vec3) bool) (first, second domain.Neighbor, ok bool) {
	first.Dist, second.Dist = math.Inf(1), math.Inf(1)
	for i, q := range l.points {
		if accept != nil && !accept(q) {
			continue
		}
		n := domain.Neighbor{Point: q, Dist: metric.Distance(q.Sub(p)), ID: l.ids[i]}
		first, second = keep(n, first, second)
		ok = true
	}
	return first, second, ok
}

// Grid is an unbounded lattice with one seeded, jittered point per cell.
type Grid struct {
	spacing float64
	jitter  float64
	seed    uint64
}

// searchRadius is the number of cells scanned on each side of the query cell.
const searchRadius = 2

// NewGrid builds a lattice. Jitter is clamped to [0, 1] as a fraction of the spacing.
func NewGrid(spacing, jitter float64, seed string) (*Grid, error) {
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return nil, fmt.Errorf("%w: grid spacing must be positive, got %v", domain.ErrInvalidValue, spacing)
	}
	return &Grid{
		spacing: spacing,
		jitter:  math.Max(0, math.Min(1, jitter)),
		seed:    uint64(noise.SeedFromString(seed)),
	}, nil
}

// Point returns the feature point of lattice cell (ix, iy, iz).
func (g *Grid) Point(ix, iy, iz int64) (domain.Vec3, uint64) {
	h := noise.HashCell(g.seed, ix, iy, iz)
	off := func(salt uint64) float64 {
		return (0.5 + (noise.Unit(noise.Remix(h, salt))-0.5)*g.jitter) * g.spacing
	}
	return domain.Vec3{
		X: float64(ix)*g.spacing + off(1),
		Y: float64(iy)*g.spacing + off(2),
		Z: float64(iz)*g.spacing + off(3),
	}, h
}

func (g *Grid) Nearest(p domain.Vec3, metric domain.Metric, accept func(domain.Vec3) bool) (first, second domain.Neighbor, ok bool) {
	first.Dist, second.Dist = math.Inf(1), math.Inf(1)
	cx := int64(math.Floor(p.X / g.spacing))
	cy := int64(math.Floor(p.Y / g.spacing))
	cz := int64(math.Floor(p.Z / g.spacing))

	for dx := int64(-searchRadius); dx <= searchRadius; dx++ {
		for dy := int64(-searchRadius); dy <= searchRadius; dy++ {
			for dz := int64(-searchRadius); dz <= searchRadius; dz++ {
				q, id := g.Point(cx+dx, cy+dy, cz+dz)
				if accept != nil && !accept(q) {
					continue
				}
				n := domain.Neighbor{Point: q, Dist: metric.Distance(q.Sub(p)), ID: id}
				first, second = keep(n, first, second)
				ok = true
			}
		}
	}
	return first, second, ok
}

func keep(n, first, second domain.Neighbor) (domain.Neighbor, domain.Neighbor) {
	switch {
	case n.Dist < first.Dist:
		return n, first
	case n.Dist < second.Dist:
		return first, n
	default:
		return first, second
	}
}

// FromAST builds a point set from an inline positions reference.
// Named references return nil: they are supplied with the evaluation inputs.
func FromAST(p *ast.Positions) (domain.PointSet, error) {
	switch {
	case p == nil || p.Name != "":
		return nil, nil
	case p.Grid != nil:
		g, err := NewGrid(p.Grid.Spacing, p.Grid.Jitter, p.Grid.Seed)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		pts := make([]domain.Vec3, len(p.Points))
		for i, v := range p.Points {
			pts[i] = domain.Vec3{X: v.X, Y: v.Y, Z: v.Z}
		}
		return NewList(pts...), nil
	}
}
