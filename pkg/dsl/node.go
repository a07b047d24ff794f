package dsl

import "github.com/terranova/density/pkg/ast"

// Expr is a density sub-tree under construction. The zero Expr is absent.
type Expr struct {
	in ast.Input
}

// Slot is the absent input. Inside Steps it receives the previous step's value.
func Slot() Expr { return Expr{} }

// Const returns a literal number.
func Const(v float64) Expr { return Expr{in: ast.Lit(v)} }

// Of wraps an already built node.
func Of(n ast.Node) Expr { return Expr{in: ast.Of(n)} }

func X() Expr { return Of(&ast.XValue{}) }

func Y() Expr { return Of(&ast.YValue{}) }

func Z() Expr { return Of(&ast.ZValue{}) }

// Terrain reads the host's terrain field.
func Terrain() Expr { return Of(&ast.Terrain{}) }

// Import references an export by name.
func Import(name string) Expr { return Of(&ast.Imported{Name: ast.String(name)}) }

// Noise2D is fractal simplex noise over the x/z plane.
func Noise2D(seed string, scale float64, octaves int) Expr {
	return Of(&ast.SimplexNoise2D{Seed: ast.String(seed), Scale: ast.Float(scale), Octaves: ast.Int(octaves)})
}

// Noise3D is fractal simplex noise with separate horizontal and vertical scale.
func Noise3D(seed string, scaleXZ, scaleY float64, octaves int) Expr {
	return Of(&ast.SimplexNoise3D{
		Seed:    ast.String(seed),
		ScaleXZ: ast.Float(scaleXZ),
		ScaleY:  ast.Float(scaleY),
		Octaves: ast.Int(octaves),
	})
}

// Gradient falls linearly from `from` at fromY to `to` at toY.
func Gradient(from, to, fromY, toY float64) Expr {
	return Of(&ast.Gradient{From: ast.Float(from), To: ast.Float(to), FromY: ast.Float(fromY), ToY: ast.Float(toY)})
}

// Sum adds every expression.
func Sum(exprs ...Expr) Expr { return Of(&ast.Sum{Inputs: inputs(exprs)}) }

// Product multiplies every expression.
func Product(exprs ...Expr) Expr { return Of(&ast.Multiplier{Inputs: inputs(exprs)}) }

func Min(exprs ...Expr) Expr { return Of(&ast.Min{Inputs: inputs(exprs)}) }

func Max(exprs ...Expr) Expr { return Of(&ast.Max{Inputs: inputs(exprs)}) }

// Lerp blends a into b by gauge.
func Lerp(a, b, gauge Expr) Expr { return Of(&ast.Mix{Inputs: inputs([]Expr{a, b, gauge})}) }

// Steps threads e through each step in order.
func (e Expr) Steps(steps ...Expr) Expr {
	return Of(&ast.Pipeline{Input: e.in, Steps: inputs(steps)})
}

// Add returns e plus the others.
func (e Expr) Add(others ...Expr) Expr { return Sum(append([]Expr{e}, others...)...) }

// Mul returns e times the others.
func (e Expr) Mul(others ...Expr) Expr { return Product(append([]Expr{e}, others...)...) }

func (e Expr) Offset(v float64) Expr {
	return Of(&ast.OffsetConstant{Offset: ast.Float(v), Input: e.in})
}

func (e Expr) Amplify(v float64) Expr {
	return Of(&ast.AmplitudeConstant{Amplitude: ast.Float(v), Input: e.in})
}

func (e Expr) Abs() Expr { return Of(&ast.Abs{Input: e.in}) }

func (e Expr) Invert() Expr { return Of(&ast.Inverter{Input: e.in}) }

func (e Expr) Pow(exp float64) Expr { return Of(&ast.Pow{Exponent: ast.Float(exp), Input: e.in}) }

func (e Expr) Clamp(lo, hi float64) Expr {
	return Of(&ast.Clamp{WallA: ast.Float(lo), WallB: ast.Float(hi), Input: e.in})
}

func (e Expr) SmoothClamp(lo, hi, width float64) Expr {
	return Of(&ast.SmoothClamp{WallA: ast.Float(lo), WallB: ast.Float(hi), Range: ast.Float(width), Input: e.in})
}

// Normalize maps [fromMin, fromMax] linearly onto [toMin, toMax].
func (e Expr) Normalize(fromMin, fromMax, toMin, toMax float64) Expr {
	return Of(&ast.Normalizer{
		FromMin: ast.Float(fromMin),
		FromMax: ast.Float(fromMax),
		ToMin:   ast.Float(toMin),
		ToMax:   ast.Float(toMax),
		Input:   e.in,
	})
}

// Curve maps e through a named curve asset.
func (e Expr) Curve(name string) Expr {
	return Of(&ast.CurveMapper{Curve: ast.CurveNamed(name), Input: e.in})
}

// Scale stretches the sampled space per axis.
func (e Expr) Scale(x, y, z float64) Expr {
	return Of(&ast.Scale{X: ast.Float(x), Y: ast.Float(y), Z: ast.Float(z), Input: e.in})
}

// Slide translates the sampled space.
func (e Expr) Slide(x, y, z float64) Expr {
	return Of(&ast.Slider{SlideX: ast.Float(x), SlideY: ast.Float(y), SlideZ: ast.Float(z), Input: e.in})
}

// AtY samples e at the height given by y.
func (e Expr) AtY(y Expr) Expr { return Of(&ast.YOverride{Override: y.in, Input: e.in}) }

func (e Expr) Cache() Expr { return Of(&ast.Cache{Input: e.in}) }

func (e Expr) Cache2D() Expr { return Of(&ast.Cache2D{Input: e.in}) }

// Export names e for reuse by Import.
func (e Expr) Export(name string) Expr {
	return Of(&ast.Exported{Name: ast.String(name), Density: e.in})
}

// Shared names e and evaluates it once per sample point.
func (e Expr) Shared(name string) Expr {
	return Of(&ast.Exported{Name: ast.String(name), SingleInstance: true, Density: e.in})
}

// Input returns the built slot.
func (e Expr) Input() ast.Input { return e.in }

// Node returns the built tree. Literals are wrapped in a Constant node.
func (e Expr) Node() ast.Node {
	switch {
	case e.in.Node != nil:
		return e.in.Node
	case e.in.IsLiteral():
		return &ast.Constant{Value: ast.Float(e.in.Literal)}
	default:
		return nil
	}
}

func inputs(exprs []Expr) []ast.Input {
	out := make([]ast.Input, len(exprs))
	for i, e := range exprs {
		out[i] = e.in
	}
	return out
}
