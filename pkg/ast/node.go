package ast

import (
	"encoding/json"
	"fmt"
)

// Kind is the value of a node's "Type" discriminator.
type Kind string

// Category groups kinds by the family of algorithm they run.
type Category string

const (
	CategoryNoise              Category = "Noise"
	CategoryMath               Category = "Math"
	CategoryClamp              Category = "Clamp"
	CategoryMinMax             Category = "MinMax"
	CategoryMapping            Category = "Mapping"
	CategoryMixing             Category = "Mixing"
	CategorySpatialTransform   Category = "SpatialTransform"
	CategoryWarp               Category = "Warp"
	CategoryShape              Category = "Shape"
	CategoryCoordinateAccessor Category = "CoordinateAccessor"
	CategoryWorldContext       Category = "WorldContext"
	CategoryCache              Category = "Cache"
	CategorySwitch             Category = "Switch"
	CategoryPositionsBased     Category = "PositionsBased"
	CategoryImportExport       Category = "ImportExport"
	CategoryPipeline           Category = "Pipeline"
)

// Node is one density function. The set of implementations is closed:
// only the pointer types declared in this package satisfy it.
type Node interface {
	Kind() Kind
	node()
}

type entry struct {
	kind     Kind
	category Category
	new      func() Node
}

var byKind = func() map[Kind]entry {
	m := make(map[Kind]entry, len(catalog))
	for _, e := range catalog {
		m[e.kind] = e
	}
	return m
}()

// Kinds lists every node kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(catalog))
	for i, e := range catalog {
		out[i] = e.kind
	}
	return out
}

// New returns a zero node of the given kind.
func New(k Kind) (Node, bool) {
	e, ok := byKind[k]
	if !ok {
		return nil, false
	}
	return e.new(), true
}

// CategoryOf reports the category of k, or "" for unknown kinds.
func CategoryOf(k Kind) Category {
	return byKind[k].category
}

// Input is a slot that holds either a literal number or a sub-tree.
// The zero Input is absent.
type Input struct {
	Node    Node
	Literal float64
	literal bool
}

// Lit returns a literal input.
func Lit(v float64) Input { return Input{Literal: v, literal: true} }

// Of returns an input holding n. A nil n gives an absent input.
func Of(n Node) Input { return Input{Node: n} }

// IsZero reports whether the slot is absent.
func (in Input) IsZero() bool { return in.Node == nil && !in.literal }

// IsLiteral reports whether the slot holds a number.
func (in Input) IsLiteral() bool { return in.literal }

func (in Input) MarshalJSON() ([]byte, error) {
	switch {
	case in.Node != nil:
		return Marshal(in.Node)
	case in.literal:
		return json.Marshal(in.Literal)
	default:
		return []byte("null"), nil
	}
}

func (in Input) String() string {
	switch {
	case in.Node != nil:
		return string(in.Node.Kind())
	case in.literal:
		return fmt.Sprintf("%g", in.Literal)
	default:
		return "<absent>"
	}
}

// Float, Int and String build optional scalar fields.
func Float(v float64) *float64 { return &v }

func Int(v int) *int { return &v }

func String(v string) *string { return &v }

// Or returns *p, or def when p is nil.
func Or[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
