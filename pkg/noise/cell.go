package noise

import (
	"math"

	"github.com/terranova/density/pkg/domain"
)

// ReturnType selects what a cell sampler reports.
type ReturnType string

const (
	CellValue    ReturnType = "CellValue"
	Distance     ReturnType = "Distance"
	Distance2    ReturnType = "Distance2"
	Distance2Add ReturnType = "Distance2Add"
	Distance2Sub ReturnType = "Distance2Sub"
	Distance2Mul ReturnType = "Distance2Mul"
	Distance2Div ReturnType = "Distance2Div"
)

// ReturnTypes lists the accepted ReturnType spellings.
var ReturnTypes = []string{
	string(CellValue),
	string(Distance),
	string(Distance2),
	string(Distance2Add),
	string(Distance2Sub),
	string(Distance2Mul),
	string(Distance2Div),
}

// Combine reduces the two nearest feature distances and the nearest feature
// identity to a single sample. Unknown return types behave as Distance.
func (r ReturnType) Combine(d1, d2 float64, id uint64) float64 {
	switch r {
	case CellValue:
		return Signed(id)
	case Distance2:
		return d2
	case Distance2Add:
		return d1 + d2
	case Distance2Sub:
		return d2 - d1
	case Distance2Mul:
		return d1 * d2
	case Distance2Div:
		if d2 == 0 || math.IsInf(d2, 1) {
			return 0
		}
		return d1 / d2
	default:
		return d1
	}
}

// Cell is seeded Worley noise with one jittered feature point per unit cell.
type Cell struct {
	seed   uint64
	Return ReturnType
	Metric domain.Metric
}

// NewCell builds a cell sampler.
func NewCell(seed string, ret ReturnType, metric domain.Metric) *Cell {
	return &Cell{seed: uint64(SeedFromString(seed)), Return: ret, Metric: metric}
}

// Sample2D samples the (x, y) plane.
func (c *Cell) Sample2D(x, y float64) float64 {
	cx, cy := fastFloor(x), fastFloor(y)
	d1, d2 := math.Inf(1), math.Inf(1)
	var id uint64

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			ix, iy := int64(cx+dx), int64(cy+dy)
			h := HashCell(c.seed, ix, 0, iy)
			px := float64(ix) + Unit(h)
			py := float64(iy) + Unit(Remix(h, 1))
			d := c.Metric.Distance(domain.Vec3{X: px - x, Z: py - y})
			d1, d2, id = insert(d, h, d1, d2, id)
		}
	}
	return c.Return.Combine(d1, d2, id)
}

// Sample3D samples space.
func (c *Cell) Sample3D(x, y, z float64) float64 {
	cx, cy, cz := fastFloor(x), fastFloor(y), fastFloor(z)
	d1, d2 := math.Inf(1), math.Inf(1)
	var id uint64

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				ix, iy, iz := int64(cx+dx), int64(cy+dy), int64(cz+dz)
				h := HashCell(c.seed, ix, iy, iz)
				p := domain.Vec3{
					X: float64(ix) + Unit(h),
					Y: float64(iy) + Unit(Remix(h, 1)),
					Z: float64(iz) + Unit(Remix(h, 2)),
				}
				d := c.Metric.Distance(p.Sub(domain.Vec3{X: x, Y: y, Z: z}))
				d1, d2, id = insert(d, h, d1, d2, id)
			}
		}
	}
	return c.Return.Combine(d1, d2, id)
}

func insert(d float64, h uint64, d1, d2 float64, id uint64) (float64, float64, uint64) {
	switch {
	case d < d1:
		return d, d1, h
	case d < d2:
		return d1, d, id
	default:
		return d1, d2, id
	}
}
