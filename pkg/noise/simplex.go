package noise

// Products are wrapped in float64 conversions wherever they meet an addition,
// which forbids the compiler from fusing them into multiply-adds. Output is
// then bit-identical on every architecture.

// grad3 are gradient vectors for simplex noise; 2D uses their x/y components.
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Simplex produces deterministic simplex noise from a seed.
// It is immutable after construction and safe for concurrent use.
type Simplex struct {
	perm [512]int
}

// NewSimplex builds the seeded permutation table.
func NewSimplex(seed int64) *Simplex {
	s := &Simplex{}

	var p [256]int
	for i := range p {
		p[i] = i
	}

	// Fisher-Yates driven by a 64-bit LCG.
	state := uint64(seed)
	for i := 255; i > 0; i-- {
		state = state*6364136223846793005 + 1442695040888963407
		j := int((state >> 33) % uint64(i+1))
		p[i], p[j] = p[j], p[i]
	}

	for i := 0; i < 512; i++ {
		s.perm[i] = p[i&255]
	}
	return s
}

// Noise2D returns 2D simplex noise in [-1, 1].
func (s *Simplex) Noise2D(x, y float64) float64 {
	const (
		f2 = 0.36602540378443864676 // (sqrt(3) - 1) / 2
		g2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	)

	skew := float64((x + y) * f2)
	i := fastFloor(x + skew)
	j := fastFloor(y + skew)

	t := float64(float64(i+j) * g2)
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1 + 2*g2
	y2 := y0 - 1 + 2*g2

	ii := i & 255
	jj := j & 255
	gi0 := s.perm[ii+s.perm[jj]] % 12
	gi1 := s.perm[ii+i1+s.perm[jj+j1]] % 12
	gi2 := s.perm[ii+1+s.perm[jj+1]] % 12

	n := corner2(grad3[gi0], x0, y0) + corner2(grad3[gi1], x1, y1) + corner2(grad3[gi2], x2, y2)
	return clamp(70*n, -1, 1)
}

// Noise3D returns 3D simplex noise in [-1, 1].
func (s *Simplex) Noise3D(x, y, z float64) float64 {
	const (
		f3 = 1.0 / 3.0
		g3 = 1.0 / 6.0
	)

	skew := float64((x + y + z) * f3)
	i := fastFloor(x + skew)
	j := fastFloor(y + skew)
	k := fastFloor(z + skew)

	t := float64(float64(i+j+k) * g3)
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)
	z0 := z - (float64(k) - t)

	var i1, j1, k1, i2, j2, k2 int
	switch {
	case x0 >= y0 && y0 >= z0:
		i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
	case x0 >= y0 && x0 >= z0:
		i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
	case x0 >= y0:
		i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
	case y0 < z0:
		i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
	case x0 < z0:
		i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
	default:
		i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
	}

	x1 := x0 - float64(i1) + g3
	y1 := y0 - float64(j1) + g3
	z1 := z0 - float64(k1) + g3
	x2 := x0 - float64(i2) + 2*g3
	y2 := y0 - float64(j2) + 2*g3
	z2 := z0 - float64(k2) + 2*g3
	x3 := x0 - 1 + 3*g3
	y3 := y0 - 1 + 3*g3
	z3 := z0 - 1 + 3*g3

	ii := i & 255
	jj := j & 255
	kk := k & 255
	gi0 := s.perm[ii+s.perm[jj+s.perm[kk]]] % 12
	gi1 := s.perm[ii+i1+s.perm[jj+j1+s.perm[kk+k1]]] % 12
	gi2 := s.perm[ii+i2+s.perm[jj+j2+s.perm[kk+k2]]] % 12
	gi3 := s.perm[ii+1+s.perm[jj+1+s.perm[kk+1]]] % 12

	n := corner3(grad3[gi0], x0, y0, z0) +
		corner3(grad3[gi1], x1, y1, z1) +
		corner3(grad3[gi2], x2, y2, z2) +
		corner3(grad3[gi3], x3, y3, z3)
	return clamp(32*n, -1, 1)
}

func corner2(g [3]float64, x, y float64) float64 {
	t := 0.5 - float64(x*x) - float64(y*y)
	if t < 0 {
		return 0
	}
	t *= t
	return float64(t * t * (float64(g[0]*x) + float64(g[1]*y)))
}

func corner3(g [3]float64, x, y, z float64) float64 {
	t := 0.6 - float64(x*x) - float64(y*y) - float64(z*z)
	if t < 0 {
		return 0
	}
	t *= t
	return float64(t * t * (float64(g[0]*x) + float64(g[1]*y) + float64(g[2]*z)))
}
