package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the density ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Earth tones, top to bottom
	lines := []struct {
		text  string
		color string
	}{
		{"      _                _ _", "#a3e635"},
		{"   __| | ___ _ __  ___(_) |_ _   _", "#84cc16"},
		{"  / _` |/ _ \\ '_ \\/ __| | __| | | |", "#ca8a04"},
		{" | (_| |  __/ | | \\__ \\ | |_| |_| |", "#b45309"},
		{"  \\__,_|\\___|_| |_|___/_|\\__|\\__, |", "#92400e"},
		{"                             |___/", "#78350f"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
