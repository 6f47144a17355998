package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"                    _                 _",
	"  _ __ __ _ _ __   __| | ___  _ __ ___ (_)_______ _ __",
	" | '__/ _` | '_ \\ / _` |/ _ \\| '_ ` _ \\| |_  / _ \\ '__|",
	" | | | (_| | | | | (_| | (_) | | | | | | |/ /  __/ |",
	" |_|  \\__,_|_| |_|\\__,_|\\___/|_| |_| |_|_/___\\___|_|",
}

var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6"}

// PrintBanner writes the ASCII art banner to w, colored when the
// terminal supports it.
func PrintBanner(w io.Writer) {
	p := termenv.NewOutput(w).ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w)
}
