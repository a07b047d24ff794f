package runtime

import "math"

// smin is the quadratic polynomial smooth minimum with blend width k.
// It is C1, monotone in both arguments, and equals min(a, b) once |a-b| >= k.
func smin(a, b, k float64) float64 {
	if !(k > 0) {
		return math.Min(a, b)
	}
	h := math.Max(k-math.Abs(a-b), 0) / k
	return math.Min(a, b) - h*h*k/4
}

func smax(a, b, k float64) float64 {
	return -smin(-a, -b, k)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
