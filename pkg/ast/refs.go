package ast

import (
	"encoding/json"
)

// Vec is a vector literal as written in documents.
type Vec struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
	Z float64 `json:"Z"`
}

// Curve references a curve asset. Exactly one of Name, Constant or Points is set.
type Curve struct {
	Name     string
	Constant *float64
	Points   [][2]float64
	// Smooth selects monotone cubic interpolation instead of linear.
	Smooth bool
}

// CurveNamed returns a reference to a curve asset of the pack.
func CurveNamed(name string) *Curve { return &Curve{Name: name} }

// CurvePoints returns an inline linear curve.
func CurvePoints(points ...[2]float64) *Curve { return &Curve{Points: points} }

func (c *Curve) MarshalJSON() ([]byte, error) {
	switch {
	case c.Name != "":
		return json.Marshal(c.Name)
	case c.Constant != nil:
		return json.Marshal(*c.Constant)
	case c.Smooth:
		return json.Marshal(struct {
			Type   string       `json:"Type"`
			Points [][2]float64 `json:"Points"`
		}{"Smooth", c.Points})
	default:
		if c.Points == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(c.Points)
	}
}

// GridPositions is a procedural lattice of jittered points.
type GridPositions struct {
	Spacing float64 `json:"Spacing"`
	Jitter  float64 `json:"Jitter,omitempty"`
	Seed    string  `json:"Seed,omitempty"`
}

// Positions references a positions asset: a name, an inline list or a grid.
type Positions struct {
	Name   string
	Points []Vec
	Grid   *GridPositions
}

// PositionsNamed returns a reference resolved from the evaluation inputs.
func PositionsNamed(name string) *Positions { return &Positions{Name: name} }

func (p *Positions) MarshalJSON() ([]byte, error) {
	switch {
	case p.Name != "":
		return json.Marshal(p.Name)
	case p.Grid != nil:
		return json.Marshal(struct {
			Type string `json:"Type"`
			*GridPositions
		}{"Grid", p.Grid})
	default:
		points := p.Points
		if points == nil {
			points = []Vec{}
		}
		return json.Marshal(points)
	}
}

// Vector provider kinds.
const (
	VectorLiteral         = ""
	VectorConstant        = "Constant"
	VectorDensityGradient = "DensityGradient"
)

// Vector is a direction given literally or computed per sample.
type Vector struct {
	Provider string
	Value    Vec
	// Density and SampleDistance configure the DensityGradient provider.
	Density        Input
	SampleDistance *float64
}

// VectorOf returns a literal vector.
func VectorOf(x, y, z float64) *Vector { return &Vector{Value: Vec{x, y, z}} }

func (v *Vector) MarshalJSON() ([]byte, error) {
	switch v.Provider {
	case VectorConstant:
		return json.Marshal(struct {
			Type  string `json:"Type"`
			Value Vec    `json:"Value"`
		}{VectorConstant, v.Value})
	case VectorDensityGradient:
		return json.Marshal(struct {
			Type           string   `json:"Type"`
			Density        Input    `json:"Density,omitzero"`
			SampleDistance *float64 `json:"SampleDistance,omitempty"`
		}{VectorDensityGradient, v.Density, v.SampleDistance})
	default:
		return json.Marshal(v.Value)
	}
}

// SwitchCase pairs a switch state with the branch taken for it.
type SwitchCase struct {
	CaseState string `json:"CaseState"`
	Density   Input  `json:"Density,omitzero"`
}
