package resolver

import (
	"reflect"

	"github.com/terranova/density/pkg/ast"
)

var (
	inputType  = reflect.TypeOf(ast.Input{})
	inputsType = reflect.TypeOf([]ast.Input(nil))
)

// thread gives every step of every pipeline under root a Carried slot for the
// running value. A step receives it in its Input slot when that slot is empty,
// else as the first of its Inputs; a step with neither slot replaces the
// running value. The steps stay siblings, so the evaluator runs them in a loop.
func (r *resolver) thread(root ast.Node) {
	ast.Walk(root, func(n ast.Node) bool {
		p, ok := n.(*ast.Pipeline)
		if !ok {
			return true
		}
		for i, step := range p.Steps {
			if step.Node == nil {
				continue
			}
			c := &ast.Carried{Step: i}
			if feed(step.Node, ast.Of(c)) {
				r.carries[c] = p
			}
		}
		return true
	})
}

func feed(n ast.Node, value ast.Input) bool {
	v := reflect.ValueOf(n).Elem()
	if f := v.FieldByName("Input"); f.IsValid() && f.Type() == inputType {
		if f.Interface().(ast.Input).IsZero() {
			f.Set(reflect.ValueOf(value))
			return true
		}
	}
	if f := v.FieldByName("Inputs"); f.IsValid() && f.Type() == inputsType {
		rest := f.Interface().([]ast.Input)
		f.Set(reflect.ValueOf(append([]ast.Input{value}, rest...)))
		return true
	}
	return false
}
