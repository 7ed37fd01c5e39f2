package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the troupe banner to w using the given color profile.
func PrintBanner(w io.Writer, p termenv.Profile) {
	lines := []struct {
		text  string
		color string
	}{
		{" _                              ", "#818cf8"},
		{"| |_ _ __ ___  _   _ _ __   ___ ", "#a78bfa"},
		{"| __| '__/ _ \\| | | | '_ \\ / _ \\", "#c084fc"},
		{"| |_| | | (_) | |_| | |_) |  __/", "#e879f9"},
		{" \\__|_|  \\___/ \\__,_| .__/ \\___|", "#f472b6"},
		{"                    |_|         ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
