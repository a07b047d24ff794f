package curve

// Linear interpolates between keys and holds the end values outside them.
type Linear struct {
	xs, ys []float64
}

// NewLinear builds a piecewise linear curve from (x, y) keys in any order.
func NewLinear(points [][2]float64) *Linear {
	xs, ys := sortedKeys(points)
	return &Linear{xs: xs, ys: ys}
}

func (l *Linear) Sample(x float64) float64 {
	n := len(l.xs)
	switch {
	case n == 0:
		return x
	case x <= l.xs[0]:
		return l.ys[0]
	case x >= l.xs[n-1]:
		return l.ys[n-1]
	}

	i := segment(l.xs, x)
	t := (x - l.xs[i]) / (l.xs[i+1] - l.xs[i])
	return l.ys[i] + (l.ys[i+1]-l.ys[i])*t
}
