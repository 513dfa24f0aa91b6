package prdoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// BumpStyle defines the color and icon for a bump level in terminal output.
type BumpStyle struct {
	Color *color.Color
	Icon  string
}

// bumpStyles maps bump levels to their terminal styling. Severity maps to the
// usual traffic-light colors.
var bumpStyles = map[BumpLevel]BumpStyle{
	BumpPatch: {Color: color.New(color.FgGreen), Icon: "·"},
	BumpMinor: {Color: color.New(color.FgYellow), Icon: "+"},
	BumpMajor: {Color: color.New(color.FgRed), Icon: "!"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatRecord writes a single record to the writer with terminal styling:
// bold title, audience-tagged doc entries, and color-coded crate bumps.
func FormatRecord(rec *Record, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeTitle(rec.Title, w, opts); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}

	for _, entry := range rec.Doc {
		if err := writeDocEntry(entry, w, opts, width); err != nil {
			return fmt.Errorf("writing doc entry: %w", err)
		}
	}

	if len(rec.Crates) > 0 {
		if err := writeCrates(rec.Crates, w, opts); err != nil {
			return fmt.Errorf("writing crates: %w", err)
		}
	}

	return nil
}

// FormatPlan writes a resolved bump plan to the writer with color-coded
// bump levels.
func FormatPlan(plan Plan, w io.Writer, opts FormatOptions) error {
	entries := plan.Entries()
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No crates to bump.")
		return err
	}

	nameWidth := 0
	for _, entry := range entries {
		if len(entry.Crate) > nameWidth {
			nameWidth = len(entry.Crate)
		}
	}

	for _, entry := range entries {
		if opts.Plain {
			if _, err := fmt.Fprintf(w, "%-*s  %s\n", nameWidth, entry.Crate, entry.Bump); err != nil {
				return err
			}
			continue
		}

		style := bumpStyles[entry.Bump]
		label := style.Color.Sprintf("%s %s", style.Icon, entry.Bump)
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", nameWidth, entry.Crate, label); err != nil {
			return err
		}
	}

	return nil
}

// writeTitle writes the record title line.
func writeTitle(title string, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "# %s\n", title)
		return err
	}
	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "%s\n", bold(title))
	return err
}

// writeDocEntry writes one audience-tagged doc entry, wrapping the
// description to the terminal width.
func writeDocEntry(entry DocEntry, w io.Writer, opts FormatOptions, width int) error {
	audience := entry.Audience
	if audience == "" {
		audience = GeneralAudience
	}

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n[%s]\n", audience); err != nil {
			return err
		}
	} else {
		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s\n", cyan("["+audience+"]")); err != nil {
			return err
		}
	}

	for _, line := range wrapText(strings.TrimRight(entry.Description, "\n"), width-2) {
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return err
		}
	}

	return nil
}

// writeCrates writes the record's crate bump requests.
func writeCrates(crates []CrateBump, w io.Writer, opts FormatOptions) error {
	if _, err := fmt.Fprintf(w, "\nCrates:\n"); err != nil {
		return err
	}

	for _, crate := range crates {
		if opts.Plain {
			if _, err := fmt.Fprintf(w, "  %s (%s)\n", crate.Name, crate.Bump); err != nil {
				return err
			}
			continue
		}

		style := bumpStyles[crate.Bump]
		if _, err := fmt.Fprintf(w, "  %s %s\n", crate.Name, style.Color.Sprintf("(%s)", crate.Bump)); err != nil {
			return err
		}
	}

	return nil
}

// wrapText wraps text to the given width, preserving existing line breaks.
// Lines that contain no spaces (e.g. long identifiers) are left intact.
func wrapText(text string, width int) []string {
	if width < 20 {
		width = 20
	}

	var wrapped []string
	for _, line := range strings.Split(text, "\n") {
		wrapped = append(wrapped, wrapLine(line, width)...)
	}
	return wrapped
}

// wrapLine wraps a single line at word boundaries.
func wrapLine(line string, width int) []string {
	if len(line) <= width {
		return []string{line}
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{line}
	}

	var out []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			out = append(out, current)
			current = word
			continue
		}
		current += " " + word
	}
	out = append(out, current)
	return out
}

// resolveWidth returns the effective output width: the explicit maximum when
// set, otherwise the terminal width, defaulting to 80.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}
