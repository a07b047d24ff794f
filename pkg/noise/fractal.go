package noise

import "math"

// Fractal layers octaves of a Simplex source.
type Fractal struct {
	Source      *Simplex
	Octaves     int
	Lacunarity  float64
	Persistence float64
}

// NewFractal builds a fractal sampler seeded from a document seed string.
// Octaves below one are raised to one.
func NewFractal(seed string, octaves int, lacunarity, persistence float64) *Fractal {
	if octaves < 1 {
		octaves = 1
	}
	return &Fractal{
		Source:      NewSimplex(SeedFromString(seed)),
		Octaves:     octaves,
		Lacunarity:  lacunarity,
		Persistence: persistence,
	}
}

// Sample2D returns the amplitude-normalised octave sum at (x, y), clamped to [-1, 1].
func (f *Fractal) Sample2D(x, y float64) float64 {
	var sum, norm float64
	amp, freq := 1.0, 1.0
	for i := 0; i < f.Octaves; i++ {
		sum += float64(f.Source.Noise2D(float64(x*freq), float64(y*freq)) * amp)
		norm += amp
		amp *= f.Persistence
		freq *= f.Lacunarity
	}
	return normalize(sum, norm)
}

// Sample3D is the 3D counterpart of Sample2D.
func (f *Fractal) Sample3D(x, y, z float64) float64 {
	var sum, norm float64
	amp, freq := 1.0, 1.0
	for i := 0; i < f.Octaves; i++ {
		sum += float64(f.Source.Noise3D(float64(x*freq), float64(y*freq), float64(z*freq)) * amp)
		norm += amp
		amp *= f.Persistence
		freq *= f.Lacunarity
	}
	return normalize(sum, norm)
}

func normalize(sum, norm float64) float64 {
	if norm == 0 || math.IsNaN(norm) {
		return 0
	}
	return clamp(sum/norm, -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
