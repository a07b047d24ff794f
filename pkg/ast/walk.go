package ast

import (
	"reflect"
	"strconv"
)

var (
	inputType      = reflect.TypeOf(Input{})
	inputSliceType = reflect.TypeOf([]Input(nil))
	vectorPtrType  = reflect.TypeOf((*Vector)(nil))
	caseSliceType  = reflect.TypeOf([]SwitchCase(nil))
)

// Slot is an addressable sub-tree position inside a node.
type Slot struct {
	// Field is the document key, with an index for list fields ("Inputs[2]").
	Field string
	In    *Input
}

// Slots returns every sub-tree slot of n in field order, absent ones included.
// Writing through Slot.In edits n in place.
func Slots(n Node) []Slot {
	if n == nil {
		return nil
	}
	v := reflect.ValueOf(n).Elem()
	t := v.Type()
	var out []Slot
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := jsonKey(f)
		fv := v.Field(i)
		switch f.Type {
		case inputType:
			out = append(out, Slot{Field: key, In: fv.Addr().Interface().(*Input)})
		case inputSliceType:
			for j := 0; j < fv.Len(); j++ {
				out = append(out, Slot{Field: indexed(key, j), In: fv.Index(j).Addr().Interface().(*Input)})
			}
		case vectorPtrType:
			if !fv.IsNil() {
				vec := fv.Interface().(*Vector)
				out = append(out, Slot{Field: key + ".Density", In: &vec.Density})
			}
		case caseSliceType:
			for j := 0; j < fv.Len(); j++ {
				c := fv.Index(j).Addr().Interface().(*SwitchCase)
				out = append(out, Slot{Field: indexed(key, j) + ".Density", In: &c.Density})
			}
		}
	}
	return out
}

// Children returns the direct sub-tree nodes of n.
func Children(n Node) []Node {
	var out []Node
	for _, s := range Slots(n) {
		if s.In.Node != nil {
			out = append(out, s.In.Node)
		}
	}
	return out
}

// Walk visits n and its descendants in preorder. Returning false from fn
// skips the children of that node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	total := 0
	Walk(n, func(Node) bool { total++; return true })
	return total
}

// Depth returns the height of the tree rooted at n; a leaf has depth 1.
func Depth(n Node) int {
	if n == nil {
		return 0
	}
	deepest := 0
	for _, c := range Children(n) {
		if d := Depth(c); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// Clone returns a deep copy of the tree rooted at n.
func Clone(n Node) Node {
	if n == nil {
		return nil
	}
	return deepCopy(reflect.ValueOf(n)).Interface().(Node)
}

func deepCopy(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(deepCopy(v.Elem()))
		return out
	case reflect.Interface:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(deepCopy(v.Elem()))
		return out
	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(deepCopy(v.Index(i)))
		}
		return out
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		out.Set(v) // scalars and unexported flags
		for i := 0; i < v.NumField(); i++ {
			if out.Field(i).CanSet() {
				out.Field(i).Set(deepCopy(v.Field(i)))
			}
		}
		return out
	default:
		return v
	}
}

func jsonKey(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			tag = tag[:i]
			break
		}
	}
	if tag == "" {
		return f.Name
	}
	return tag
}

func indexed(key string, i int) string {
	return key + "[" + strconv.Itoa(i) + "]"
}
