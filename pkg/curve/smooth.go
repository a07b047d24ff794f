package curve

import "math"

// Smooth is a monotone cubic Hermite curve (Fritsch-Carlson tangents).
// It never overshoots its keys and holds the end values outside them.
type Smooth struct {
	xs, ys, ms []float64
}

// NewSmooth builds a monotone cubic curve from (x, y) keys in any order.
func NewSmooth(points [][2]float64) *Smooth {
	xs, ys := sortedKeys(points)
	n := len(xs)
	s := &Smooth{xs: xs, ys: ys, ms: make([]float64, n)}
	if n < 2 {
		return s
	}

	delta := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		delta[i] = (ys[i+1] - ys[i]) / (xs[i+1] - xs[i])
	}

	s.ms[0] = delta[0]
	s.ms[n-1] = delta[n-2]
	for i := 1; i < n-1; i++ {
		if delta[i-1]*delta[i] <= 0 {
			s.ms[i] = 0
			continue
		}
		s.ms[i] = (delta[i-1] + delta[i]) / 2
	}

	for i := 0; i < n-1; i++ {
		if delta[i] == 0 {
			s.ms[i] = 0
			s.ms[i+1] = 0
			continue
		}
		a := s.ms[i] / delta[i]
		b := s.ms[i+1] / delta[i]
		if h := math.Hypot(a, b); h > 3 {
			tau := 3 / h
			s.ms[i] = tau * a * delta[i]
			s.ms[i+1] = tau * b * delta[i]
		}
	}
	return s
}

func (s *Smooth) Sample(x float64) float64 {
	n := len(s.xs)
	switch {
	case n == 0:
		return x
	case x <= s.xs[0]:
		return s.ys[0]
	case x >= s.xs[n-1]:
		return s.ys[n-1]
	}

	i := segment(s.xs, x)
	h := s.xs[i+1] - s.xs[i]
	t := (x - s.xs[i]) / h
	t2 := t * t
	t3 := t2 * t

	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	return h00*s.ys[i] + h10*h*s.ms[i] + h01*s.ys[i+1] + h11*h*s.ms[i+1]
}
