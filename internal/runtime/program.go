package runtime

import (
	"sort"
	"sync/atomic"

	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/curve"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/noise"
)

var programSerial atomic.Uint64

// Vector is a resolved vector slot: a fixed direction, or the gradient of a
// density sampled around the current coordinate.
type Vector struct {
	Fixed    domain.Vec3
	Gradient ast.Input
	Step     float64
}

// Dynamic reports whether the vector depends on the coordinate.
func (v *Vector) Dynamic() bool { return v != nil && !v.Gradient.IsZero() }

// Compiled is the precomputed state of one node.
type Compiled struct {
	// ID is the preorder identity of the node within its program.
	ID int

	Fractal *noise.Fractal
	Cell    *noise.Cell

	// Curve is the node's main curve. AltCurve is the radial curve of a
	// Cylinder and the angle curve of a Shell.
	Curve    curve.Curve
	AltCurve curve.Curve

	// Vector is the node's main vector slot. AltVector is the Cuboid frame
	// axis and the Angle provider.
	Vector    *Vector
	AltVector *Vector

	// Points holds inline positions; PointsName names a set supplied with the inputs.
	Points     domain.PointSet
	PointsName string
	Metric     domain.Metric
	Return     noise.ReturnType

	// Target is the export an Imported node is linked to.
	Target *ast.Exported
	// Pipeline is the pipeline whose running value a Carried node reads.
	Pipeline *ast.Pipeline

	// TopDependent marks cache nodes whose sub-tree reaches a single-instance
	// export. Their memo keys include the top-level point.
	TopDependent bool
}

// Program is a resolved document ready for evaluation.
// It is immutable and may be shared by any number of sessions.
type Program struct {
	id      uint64
	root    ast.Node
	nodes   map[ast.Node]*Compiled
	exports map[string]*ast.Exported
}

// NewProgram assembles a program. Every node reachable from root, including
// linked export bodies, must have an entry in nodes.
func NewProgram(root ast.Node, nodes map[ast.Node]*Compiled, exports map[string]*ast.Exported) *Program {
	return &Program{
		id:      programSerial.Add(1),
		root:    root,
		nodes:   nodes,
		exports: exports,
	}
}

// ID is unique per program within the process.
func (p *Program) ID() uint64 { return p.id }

// Root returns the resolved tree. Callers must not modify it.
func (p *Program) Root() ast.Node { return p.root }

// NodeCount reports the number of compiled nodes.
func (p *Program) NodeCount() int { return len(p.nodes) }

// Compiled returns the precomputed state of n.
func (p *Program) Compiled(n ast.Node) (*Compiled, bool) {
	c, ok := p.nodes[n]
	return c, ok
}

// Export returns a linked export by name.
func (p *Program) Export(name string) (*ast.Exported, bool) {
	e, ok := p.exports[name]
	return e, ok
}

// ExportNames lists the exports linked into the program.
func (p *Program) ExportNames() []string {
	names := make([]string, 0, len(p.exports))
	for name := range p.exports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
