package domain

import "math"

// Metric is a distance function used by cell noise and positions queries.
type Metric string

const (
	MetricEuclidean        Metric = "Euclidean"
	MetricEuclideanSquared Metric = "EuclideanSquared"
	MetricManhattan        Metric = "Manhattan"
	MetricChebyshev        Metric = "Chebyshev"

	// MetricHorizontal is euclidean distance in the XZ plane. It is used
	// internally by horizontal pinches and is not a document spelling.
	MetricHorizontal Metric = "Horizontal"
)

// Metrics lists the accepted distance function names.
var Metrics = []string{
	string(MetricEuclidean),
	string(MetricEuclideanSquared),
	string(MetricManhattan),
	string(MetricChebyshev),
}

// Distance measures d under m. Unknown metrics fall back to euclidean.
func (m Metric) Distance(d Vec3) float64 {
	switch m {
	case MetricEuclideanSquared:
		return d.Dot(d)
	case MetricManhattan:
		return math.Abs(d.X) + math.Abs(d.Y) + math.Abs(d.Z)
	case MetricChebyshev:
		return math.Max(math.Abs(d.X), math.Max(math.Abs(d.Y), math.Abs(d.Z)))
	case MetricHorizontal:
		return math.Hypot(d.X, d.Z)
	default:
		return d.Len()
	}
}

// Neighbor is one result of a nearest-point query.
type Neighbor struct {
	Point Vec3
	Dist  float64
	// ID is stable per point and seeds cell values.
	ID uint64
}

// PointSet is a positions asset: a set of anchor points queried by proximity.
type PointSet interface {
	// Nearest returns the two closest points accepted by the filter (nil accepts all).
	// second.Dist is +Inf when only one point qualifies; ok is false when none does.
	Nearest(p Vec3, metric Metric, accept func(Vec3) bool) (first, second Neighbor, ok bool)
}

// ContextInputs carries the values the world host supplies before evaluation starts.
// The evaluator only reads them; a nil provider is reported as a missing input
// by the nodes that need it.
type ContextInputs struct {
	Terrain     func(p Vec3) float64
	BiomeEdge   func(p Vec3) float64
	BaseHeights map[string]float64
	Positions   map[string]PointSet
}

// ConstantField returns a provider that ignores the coordinate.
func ConstantField(v float64) func(Vec3) float64 {
	return func(Vec3) float64 { return v }
}

// Merge returns a copy of c where nil providers and missing names are taken from fallback.
func (c *ContextInputs) Merge(fallback *ContextInputs) *ContextInputs {
	out := &ContextInputs{}
	if c != nil {
		*out = *c
	}
	if fallback == nil {
		return out
	}
	if out.Terrain == nil {
		out.Terrain = fallback.Terrain
	}
	if out.BiomeEdge == nil {
		out.BiomeEdge = fallback.BiomeEdge
	}
	out.BaseHeights = mergeMap(out.BaseHeights, fallback.BaseHeights)
	out.Positions = mergeMap(out.Positions, fallback.Positions)
	return out
}

func mergeMap[V any](primary, fallback map[string]V) map[string]V {
	if len(fallback) == 0 {
		return primary
	}
	out := make(map[string]V, len(primary)+len(fallback))
	for k, v := range fallback {
		out[k] = v
	}
	for k, v := range primary {
		out[k] = v
	}
	return out
}

// InputValues is the wire form of ContextInputs used by the transports.
// Fields are constant over the whole domain.
type InputValues struct {
	Terrain     *float64           `json:"terrain,omitempty"`
	BiomeEdge   *float64           `json:"biomeEdge,omitempty"`
	BaseHeights map[string]float64 `json:"baseHeights,omitempty"`
}

// Context converts v into providers. A nil v yields nil.
func (v *InputValues) Context() *ContextInputs {
	if v == nil {
		return nil
	}
	c := &ContextInputs{BaseHeights: v.BaseHeights}
	if v.Terrain != nil {
		c.Terrain = ConstantField(*v.Terrain)
	}
	if v.BiomeEdge != nil {
		c.BiomeEdge = ConstantField(*v.BiomeEdge)
	}
	return c
}
