package compiler

import (
	"reflect"
	"strings"
	"sync"

	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/noise"
	"github.com/terranova/density/pkg/schema"
)

type fieldKind int

const (
	fieldScalar fieldKind = iota
	fieldInput
	fieldInputs
	fieldCurve
	fieldPositions
	fieldVector
	fieldCases
)

var (
	inputType      = reflect.TypeOf(ast.Input{})
	inputSliceType = reflect.TypeOf([]ast.Input(nil))
	curveType      = reflect.TypeOf((*ast.Curve)(nil))
	positionsType  = reflect.TypeOf((*ast.Positions)(nil))
	vectorType     = reflect.TypeOf((*ast.Vector)(nil))
	caseSliceType  = reflect.TypeOf([]ast.SwitchCase(nil))
	caseType       = reflect.TypeOf(ast.SwitchCase{})
)

// shape is the decoding plan of one node kind.
type shape struct {
	schema schema.Schema
	fields map[string]fieldKind
}

var (
	shapesOnce sync.Once
	shapes     map[ast.Kind]*shape
)

func shapeOf(k ast.Kind) *shape {
	shapesOnce.Do(func() {
		shapes = make(map[ast.Kind]*shape)
		for _, kind := range ast.Kinds() {
			n, _ := ast.New(kind)
			shapes[kind] = buildShape(reflect.TypeOf(n).Elem())
		}
	})
	return shapes[k]
}

// Shape returns the field schema of a node kind, for documentation and tooling.
func Shape(k ast.Kind) (schema.Schema, bool) {
	s := shapeOf(k)
	if s == nil {
		return nil, false
	}
	return s.schema, true
}

var (
	numberOrNode = schema.OneOf(schema.Float(), schema.Object())
	curveShape   = schema.OneOf(schema.String(), schema.Float(), schema.Slice(schema.Slice(schema.Float())), schema.Object())
	pointsShape  = schema.OneOf(schema.String(), schema.Slice(schema.Object()), schema.Object())
)

func buildShape(t reflect.Type) *shape {
	s := &shape{schema: schema.Schema{}, fields: map[string]fieldKind{}}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := strings.Split(f.Tag.Get("json"), ",")[0]
		var typ schema.Type
		kind := fieldScalar
		switch f.Type {
		case inputType:
			typ, kind = numberOrNode, fieldInput
		case inputSliceType:
			typ, kind = schema.Slice(numberOrNode), fieldInputs
		case curveType:
			typ, kind = curveShape, fieldCurve
		case positionsType:
			typ, kind = pointsShape, fieldPositions
		case vectorType:
			typ, kind = schema.Object(), fieldVector
		case caseSliceType:
			typ, kind = schema.Slice(schema.Object()), fieldCases
		default:
			typ = scalarType(key, f.Type)
		}
		s.schema[key] = schema.Optional(typ)
		s.fields[key] = kind
	}
	return s
}

func scalarType(key string, t reflect.Type) schema.Type {
	switch key {
	case "ReturnType":
		return schema.Enum(noise.ReturnTypes...)
	case "DistanceFunction":
		return schema.Enum(domain.Metrics...)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Float64:
		return schema.Float()
	case reflect.Int:
		return schema.Int()
	case reflect.String:
		return schema.String()
	case reflect.Bool:
		return schema.Bool()
	case reflect.Slice:
		return schema.Slice(schema.Float())
	}
	return schema.Custom(t.String(), func(any) error { return nil })
}
