package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/terranova/density"
	"github.com/terranova/density/pkg/domain"
)

// PackMarkdown summarizes a pack load as a markdown document.
func PackMarkdown(title string, r *density.PackReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	sb.WriteString("| Assets | Count |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Curves | %d |\n", r.Curves)
	fmt.Fprintf(&sb, "| Positions | %d |\n", r.Positions)
	fmt.Fprintf(&sb, "| Documents | %d |\n", r.Documents)
	fmt.Fprintf(&sb, "| Exports | %d |\n\n", r.Exports)

	if r.OK() {
		sb.WriteString("No problems found.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "## Problems (%d)\n\n", len(r.Problems))
	for _, p := range r.Problems {
		fmt.Fprintf(&sb, "- **%s** `%s`: %s\n", p.Kind, p.ID, p.Message)
	}
	return sb.String()
}

// SliceMarkdown renders layer iy of a grid as a table, one row per z and one column per x.
// Failed samples are shown as NaN.
func SliceMarkdown(g *domain.Grid, iy int) string {
	d := g.Domain
	var sb strings.Builder
	fmt.Fprintf(&sb, "## y = %s\n\n", format(d.Point(0, iy, 0).Y))

	sb.WriteString("| z \\ x |")
	for ix := 0; ix < d.Size[0]; ix++ {
		fmt.Fprintf(&sb, " %s |", format(d.Point(ix, iy, 0).X))
	}
	sb.WriteString("\n|---|")
	sb.WriteString(strings.Repeat("---|", d.Size[0]))
	sb.WriteString("\n")

	for iz := 0; iz < d.Size[2]; iz++ {
		fmt.Fprintf(&sb, "| %s |", format(d.Point(0, iy, iz).Z))
		for ix := 0; ix < d.Size[0]; ix++ {
			fmt.Fprintf(&sb, " %s |", format(g.At(ix, iy, iz)))
		}
		sb.WriteString("\n")
	}

	if len(g.Faults) > 0 {
		fmt.Fprintf(&sb, "\n%d sample(s) failed; first: %s\n", len(g.Faults), g.Faults[0].Error)
	}
	return sb.String()
}

func format(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
