package curve

import (
	"fmt"
	"sort"

	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
)

// Curve maps a scalar to a scalar. Implementations are immutable.
type Curve interface {
	Sample(x float64) float64
}

// Identity returns its argument. It stands in for absent curves.
type Identity struct{}

func (Identity) Sample(x float64) float64 { return x }

// Constant ignores its argument.
type Constant float64

func (c Constant) Sample(float64) float64 { return float64(c) }

// Lookup resolves a named curve asset.
type Lookup func(name string) (*ast.Curve, bool)

// maxIndirection bounds chains of named curves that point at other names.
const maxIndirection = 16

// FromAST builds a sampler for a curve reference. A nil reference is the identity.
// Named references are resolved through lookup, which may be nil when the
// document has no pack.
func FromAST(c *ast.Curve, lookup Lookup) (Curve, error) {
	seen := 0
	for c != nil && c.Name != "" {
		name := c.Name
		if lookup == nil {
			return nil, unresolved(name)
		}
		next, ok := lookup(name)
		if !ok || next == nil {
			return nil, unresolved(name)
		}
		if seen++; seen > maxIndirection {
			return nil, &domain.ResolveError{
				Kind:   domain.ResolveCyclicImport,
				Names:  []string{name},
				Detail: "curve references nest too deeply",
			}
		}
		c = next
	}

	switch {
	case c == nil:
		return Identity{}, nil
	case c.Constant != nil:
		return Constant(*c.Constant), nil
	case len(c.Points) == 0:
		return Identity{}, nil
	case c.Smooth:
		return NewSmooth(c.Points), nil
	default:
		return NewLinear(c.Points), nil
	}
}

func unresolved(name string) error {
	return &domain.ResolveError{
		Kind:   domain.ResolveUnresolvedAsset,
		Names:  []string{name},
		Detail: fmt.Sprintf("curve %q not found", name),
	}
}

// sortedKeys copies points ordered by x. Later duplicates of an x win.
func sortedKeys(points [][2]float64) (xs, ys []float64) {
	sorted := make([][2]float64, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i][0] < sorted[j][0] })

	for _, p := range sorted {
		if n := len(xs); n > 0 && xs[n-1] == p[0] {
			ys[n-1] = p[1]
			continue
		}
		xs = append(xs, p[0])
		ys = append(ys, p[1])
	}
	return xs, ys
}

// segment finds i with xs[i] <= x < xs[i+1]; callers handle the ends.
func segment(xs []float64, x float64) int {
	return sort.SearchFloat64s(xs, x) - 1
}
