package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the cmdflow ASCII banner to w.
func PrintBanner(w io.Writer, color bool) {
	out := output(w, color)
	// Teal to blue, one shade per line.
	lines := []struct{ text, hex string }{
		{"                    _  __ _               ", "#2dd4bf"},
		{"   ___ _ __ ___   __| |/ _| | _____      __", "#22d3ee"},
		{"  / __| '_ ` _ \\ / _` | |_| |/ _ \\ \\ /\\ / /", "#38bdf8"},
		{" | (__| | | | | | (_| |  _| | (_) \\ V  V / ", "#60a5fa"},
		{"  \\___|_| |_| |_|\\__,_|_| |_|\\___/ \\_/\\_/  ", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.hex)))
	}
	fmt.Fprintln(w)
}
