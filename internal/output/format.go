// Package output provides terminal output formatting utilities for prbump CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintSuccess prints a colored success line, e.g. "✓ 12 records valid".
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintFailure prints a colored failure line, e.g. "✗ 3 errors in 2 files".
func PrintFailure(out io.Writer, message string) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", red("✗"), message)
}

// PrintFieldError prints one record validation error with the offending
// record identifier and field path highlighted.
func PrintFieldError(out io.Writer, record, field, message string) {
	red := color.New(color.FgRed).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	if field != "" {
		fmt.Fprintf(out, "  %s %s: %s\n", red(record), dim(field), message)
		return
	}
	fmt.Fprintf(out, "  %s: %s\n", red(record), message)
}

// PrintHeader prints a bold section header for grouped command output.
func PrintHeader(out io.Writer, header string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s\n", bold(header))
}
