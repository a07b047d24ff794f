package runtime

import (
	"math"

	"github.com/terranova/density/pkg/ast"
)

func (s *Session) evalMath(n ast.Node) (float64, error) {
	switch n := n.(type) {
	case *ast.Constant:
		return ast.Or(n.Value, 0), nil

	case *ast.Sum:
		var sum float64
		for _, in := range n.Inputs {
			v, err := s.input(in)
			if err != nil {
				return 0, err
			}
			sum += v
		}
		return sum, nil

	case *ast.Multiplier:
		if len(n.Inputs) == 0 {
			return 0, nil
		}
		product := 1.0
		for _, in := range n.Inputs {
			v, err := s.input(in)
			if err != nil {
				return 0, err
			}
			if v == 0 {
				return 0, nil
			}
			product *= v
		}
		return product, nil

	case *ast.Abs:
		return s.unary(n.Input, math.Abs)

	case *ast.Inverter:
		return s.unary(n.Input, func(x float64) float64 { return -x })

	case *ast.Sqrt:
		return s.unary(n.Input, func(x float64) float64 {
			if x < 0 {
				return -math.Sqrt(-x)
			}
			return math.Sqrt(x)
		})

	case *ast.Pow:
		e := ast.Or(n.Exponent, 1)
		return s.unary(n.Input, func(x float64) float64 {
			if x < 0 {
				return -math.Pow(-x, e)
			}
			return math.Pow(x, e)
		})

	case *ast.OffsetConstant:
		off := ast.Or(n.Offset, 0)
		return s.unary(n.Input, func(x float64) float64 { return x + off })

	case *ast.AmplitudeConstant:
		amp := ast.Or(n.Amplitude, 1)
		return s.unary(n.Input, func(x float64) float64 { return x * amp })
	}
	return 0, unsupported(n, nil)
}

func (s *Session) unary(in ast.Input, fn func(float64) float64) (float64, error) {
	v, err := s.input(in)
	if err != nil {
		return 0, err
	}
	return fn(v), nil
}

func (s *Session) evalClamp(n ast.Node) (float64, error) {
	switch n := n.(type) {
	case *ast.Clamp:
		lo, hi := walls(n.WallA, n.WallB)
		return s.unary(n.Input, func(x float64) float64 { return clamp(x, lo, hi) })

	case *ast.SmoothClamp:
		lo, hi := walls(n.WallA, n.WallB)
		k := ast.Or(n.Range, 1)
		return s.unary(n.Input, func(x float64) float64 { return smax(lo, smin(x, hi, k), k) })

	case *ast.Floor:
		f := ast.Or(n.Floor, 0)
		return s.unary(n.Input, func(x float64) float64 { return math.Max(x, f) })

	case *ast.SmoothFloor:
		f, k := ast.Or(n.Floor, 0), ast.Or(n.Range, 1)
		return s.unary(n.Input, func(x float64) float64 { return smax(x, f, k) })

	case *ast.Ceiling:
		c := ast.Or(n.Ceiling, 0)
		return s.unary(n.Input, func(x float64) float64 { return math.Min(x, c) })

	case *ast.SmoothCeiling:
		c, k := ast.Or(n.Ceiling, 0), ast.Or(n.Range, 1)
		return s.unary(n.Input, func(x float64) float64 { return smin(x, c, k) })
	}
	return 0, unsupported(n, nil)
}

func walls(a, b *float64) (lo, hi float64) {
	wa, wb := ast.Or(a, -1), ast.Or(b, 1)
	return math.Min(wa, wb), math.Max(wa, wb)
}

func (s *Session) evalMinMax(n ast.Node) (float64, error) {
	switch n := n.(type) {
	case *ast.Min:
		return s.reduce(n.Inputs, math.Min)
	case *ast.Max:
		return s.reduce(n.Inputs, math.Max)
	case *ast.SmoothMin:
		lo, next, err := s.extremes(n.Inputs, func(a, b float64) bool { return a < b })
		if err != nil || math.IsInf(next, 0) {
			return lo, err
		}
		return smin(lo, next, ast.Or(n.Range, 1)), nil
	case *ast.SmoothMax:
		hi, next, err := s.extremes(n.Inputs, func(a, b float64) bool { return a > b })
		if err != nil || math.IsInf(next, 0) {
			return hi, err
		}
		return smax(hi, next, ast.Or(n.Range, 1)), nil
	}
	return 0, unsupported(n, nil)
}

func (s *Session) reduce(ins []ast.Input, fn func(a, b float64) float64) (float64, error) {
	if len(ins) == 0 {
		return 0, nil
	}
	acc, err := s.input(ins[0])
	if err != nil {
		return 0, err
	}
	for _, in := range ins[1:] {
		v, err := s.input(in)
		if err != nil {
			return 0, err
		}
		acc = fn(acc, v)
	}
	return acc, nil
}

// extremes returns the best and second best inputs under better. With fewer
// than two inputs the second is infinite.
func (s *Session) extremes(ins []ast.Input, better func(a, b float64) bool) (first, second float64, err error) {
	if len(ins) == 0 {
		return 0, math.Inf(1), nil
	}
	first, second = math.NaN(), math.Inf(1)
	for i, in := range ins {
		v, err := s.input(in)
		if err != nil {
			return 0, 0, err
		}
		switch {
		case i == 0:
			first = v
		case better(v, first):
			first, second = v, first
		case i == 1 || better(v, second):
			second = v
		}
	}
	return first, second, nil
}

func (s *Session) evalMapping(n ast.Node, c *Compiled) (float64, error) {
	switch n := n.(type) {
	case *ast.Normalizer:
		fromMin, fromMax := ast.Or(n.FromMin, -1), ast.Or(n.FromMax, 1)
		toMin, toMax := ast.Or(n.ToMin, 0), ast.Or(n.ToMax, 1)
		return s.unary(n.Input, func(x float64) float64 {
			return toMin + (x-fromMin)/(fromMax-fromMin)*(toMax-toMin)
		})

	case *ast.CurveMapper:
		return s.unary(n.Input, c.Curve.Sample)

	case *ast.Offset:
		v, err := s.input(n.Input)
		if err != nil {
			return 0, err
		}
		off, err := s.input(n.Offset)
		if err != nil {
			return 0, err
		}
		return v + off, nil

	case *ast.Amplitude:
		v, err := s.input(n.Input)
		if err != nil {
			return 0, err
		}
		amp, err := s.input(n.Amplitude)
		if err != nil {
			return 0, err
		}
		return v * amp, nil
	}
	return 0, unsupported(n, c)
}

func (s *Session) evalMixing(n ast.Node) (float64, error) {
	switch n := n.(type) {
	case *ast.Mix:
		switch len(n.Inputs) {
		case 0:
			return 0, nil
		case 1, 2:
			g, err := s.input(nth(n.Inputs, 1))
			if err != nil {
				return 0, err
			}
			v, err := s.input(n.Inputs[0])
			if err != nil {
				return 0, err
			}
			return v * clamp(g, 0, 1), nil
		default:
			g, err := s.input(n.Inputs[2])
			if err != nil {
				return 0, err
			}
			a, err := s.input(n.Inputs[0])
			if err != nil {
				return 0, err
			}
			b, err := s.input(n.Inputs[1])
			if err != nil {
				return 0, err
			}
			return lerp(a, b, clamp(g, 0, 1)), nil
		}

	case *ast.MultiMix:
		return s.multiMix(n)
	}
	return 0, unsupported(n, nil)
}

// multiMix evaluates the gauge first and then only the one or two values
// surrounding it.
func (s *Session) multiMix(n *ast.MultiMix) (float64, error) {
	keys := n.Keys
	if len(keys) == 0 {
		return 0, nil
	}
	g, err := s.input(nth(n.Inputs, len(keys)))
	if err != nil {
		return 0, err
	}

	last := len(keys) - 1
	switch {
	case math.IsNaN(g):
		return g, nil
	case g <= keys[0]:
		return s.input(nth(n.Inputs, 0))
	case g >= keys[last]:
		return s.input(nth(n.Inputs, last))
	}

	i := 0
	for i < last && keys[i+1] <= g {
		i++
	}
	a, err := s.input(nth(n.Inputs, i))
	if err != nil {
		return 0, err
	}
	b, err := s.input(nth(n.Inputs, i+1))
	if err != nil {
		return 0, err
	}
	span := keys[i+1] - keys[i]
	if span == 0 {
		return b, nil
	}
	return lerp(a, b, (g-keys[i])/span), nil
}
