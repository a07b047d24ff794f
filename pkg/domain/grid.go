package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Domain is a rectangular lattice of sample points.
// A 2D slice at fixed height has Size[1] == 1.
type Domain struct {
	Origin Vec3   `json:"origin"`
	Step   Vec3   `json:"step"`
	Size   [3]int `json:"size"`
}

// Validate rejects empty or non-positive lattices.
func (d Domain) Validate() error {
	for i, n := range d.Size {
		if n <= 0 {
			return fmt.Errorf("%w: size[%d] must be positive, got %d", ErrInvalidValue, i, n)
		}
	}
	return nil
}

// Len is the number of points in the lattice.
func (d Domain) Len() int { return d.Size[0] * d.Size[1] * d.Size[2] }

// Index maps lattice coordinates to the flat value index.
func (d Domain) Index(ix, iy, iz int) int {
	return (iy*d.Size[2]+iz)*d.Size[0] + ix
}

// Point is the world coordinate of a lattice position.
func (d Domain) Point(ix, iy, iz int) Vec3 {
	return Vec3{
		X: d.Origin.X + float64(ix)*d.Step.X,
		Y: d.Origin.Y + float64(iy)*d.Step.Y,
		Z: d.Origin.Z + float64(iz)*d.Step.Z,
	}
}

// PointFault records a sample that failed; its value in the grid is NaN.
type PointFault struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// Grid is the result of evaluating a program over a Domain.
type Grid struct {
	Domain Domain       `json:"domain"`
	Values Samples      `json:"values"`
	Faults []PointFault `json:"faults,omitempty"`
}

// At returns the value at lattice coordinates.
func (g *Grid) At(ix, iy, iz int) float64 {
	return g.Values[g.Domain.Index(ix, iy, iz)]
}

// Samples is a value slice whose JSON form writes non-finite values as null.
type Samples []float64

func (s Samples) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			b.WriteString("null")
			continue
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteByte(']')
	return b.Bytes(), nil
}

func (s *Samples) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Samples, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	*s = out
	return nil
}
