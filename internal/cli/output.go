package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/terranova/density/internal/presentation/tui"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintMarkdown writes markdown to w, styled when w is a terminal.
func PrintMarkdown(w io.Writer, markdown string) error {
	if IsTerminal(w) {
		if out, err := tui.NewRenderer()(markdown); err == nil {
			markdown = out
		}
	}
	_, err := fmt.Fprint(w, markdown)
	return err
}
