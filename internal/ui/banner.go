// Package ui provides colored console output for the BuildMate AI gateway.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Version is printed in the startup banner.
const Version = "v1.0.0"

// PrintBanner displays the startup banner.
func PrintBanner() {
	FprintBanner(color.Output)
}

// FprintBanner writes the startup banner to w.
func FprintBanner(w io.Writer) {
	orange := color.New(color.FgHiYellow, color.Bold)
	steel := color.New(color.FgHiCyan)
	dim := color.New(color.FgHiBlack)

	fmt.Fprintln(w)
	orange.Fprintln(w, "╔════════════════════════════════════════════════╗")
	orange.Fprint(w, "║  ")
	steel.Fprint(w, "█▄▄ █ █ █ █   █▀▄ █▀▄▀█ ▄▀█ ▀█▀ █▀▀")
	orange.Fprintln(w, "           ║")
	orange.Fprint(w, "║  ")
	steel.Fprint(w, "█▄█ █▄█ █ █▄▄ █▄▀ █ ▀ █ █▀█  █  ██▄")
	orange.Fprintln(w, "           ║")
	orange.Fprintln(w, "╠════════════════════════════════════════════════╣")
	orange.Fprint(w, "║  ")
	steel.Fprint(w, "AI GATEWAY")
	dim.Fprint(w, "  │  ")
	fmt.Fprint(w, "construction assistant")
	dim.Fprint(w, "  │  ")
	fmt.Fprintf(w, "%-6s", Version)
	orange.Fprintln(w, "║")
	orange.Fprintln(w, "╚════════════════════════════════════════════════╝")
	fmt.Fprintln(w)
}
