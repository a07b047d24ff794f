package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/terranova/density/pkg/ast"
)

// Overlay contains evaluation data to visualize on the graph.
type Overlay struct {
	// Faulted lists node kinds that reported an evaluation error.
	Faulted []ast.Kind
}

// GenerateMermaid produces a Mermaid flowchart of a density tree.
// It applies semantic styling:
// - Coordinate and world inputs: ([Stadium])
// - Noise: {{Hexagon}}
// - Import/Export: [[Subroutine]]
// - Caches: [(Database)]
// - Literals: (Rounded)
// - Default: [Rectangle]
// Edges are labelled with the document key of the slot they fill.
func GenerateMermaid(root ast.Node, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if root == nil {
		return sb.String()
	}

	g := &generator{sb: &sb, faulted: make(map[ast.Kind]bool)}
	if overlay != nil {
		for _, k := range overlay.Faulted {
			g.faulted[k] = true
		}
	}
	g.node(root)

	if len(g.faultIDs) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast regardless of theme
		sb.WriteString("    classDef faulted fill:#ffcdd2,stroke:#b71c1c,stroke-width:3px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s faulted;\n", strings.Join(g.faultIDs, ",")))
	}
	return sb.String()
}

type generator struct {
	sb       *strings.Builder
	next     int
	faulted  map[ast.Kind]bool
	faultIDs []string
}

func (g *generator) id() string {
	id := "n" + strconv.Itoa(g.next)
	g.next++
	return id
}

func (g *generator) node(n ast.Node) string {
	id := g.id()
	opener, closer := shape(ast.CategoryOf(n.Kind()))
	fmt.Fprintf(g.sb, "    %s%s\"%s\"%s\n", id, opener, label(n), closer)
	if g.faulted[n.Kind()] {
		g.faultIDs = append(g.faultIDs, id)
	}

	for _, slot := range ast.Slots(n) {
		var child string
		switch {
		case slot.In.Node != nil:
			child = g.node(slot.In.Node)
		case slot.In.IsLiteral():
			child = g.id()
			fmt.Fprintf(g.sb, "    %s(\"%s\")\n", child, strconv.FormatFloat(slot.In.Literal, 'g', -1, 64))
		default:
			continue
		}
		fmt.Fprintf(g.sb, "    %s -- \"%s\" --> %s\n", id, slot.Field, child)
	}
	return id
}

func shape(c ast.Category) (string, string) {
	switch c {
	case ast.CategoryCoordinateAccessor, ast.CategoryWorldContext:
		return "([", "])"
	case ast.CategoryNoise:
		return "{{", "}}"
	case ast.CategoryImportExport:
		return "[[", "]]"
	case ast.CategoryCache:
		return "[(", ")]"
	default:
		return "[", "]"
	}
}

func label(n ast.Node) string {
	name := ""
	switch v := n.(type) {
	case *ast.Exported:
		name = ast.Or(v.Name, "")
	case *ast.Imported:
		name = ast.Or(v.Name, "")
	case *ast.CurveMapper:
		if v.Curve != nil {
			name = v.Curve.Name
		}
	}
	if name == "" {
		return string(n.Kind())
	}
	// Escape double quotes for the Mermaid label
	return string(n.Kind()) + " <br/> " + strings.ReplaceAll(name, "\"", "'")
}
