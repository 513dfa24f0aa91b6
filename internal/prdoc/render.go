package prdoc

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// RenderMarkdown writes a consolidated changelog for the given report and
// plan. Doc entries are grouped by audience and followed by the per-crate
// bump table.
//
// The function is idempotent - given the same input, it produces identical output.
func RenderMarkdown(report *Report, plan Plan, w io.Writer) error {
	if _, err := fmt.Fprint(w, "# Release notes\n"); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	for _, section := range report.Sections {
		if err := renderSection(&section, w); err != nil {
			return fmt.Errorf("rendering section %s: %w", section.Audience, err)
		}
	}

	if err := renderPlanTable(plan, w); err != nil {
		return fmt.Errorf("rendering bump table: %w", err)
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(report *Report, plan Plan) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(report, plan, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderSection writes a single audience section with its entries.
func renderSection(section *AudienceSection, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\n## %s\n", section.Audience); err != nil {
		return err
	}

	for _, entry := range section.Entries {
		if _, err := fmt.Fprintf(w, "\n### %s\n", entry.Title); err != nil {
			return err
		}
		description := strings.TrimRight(entry.Description, "\n")
		if description != "" {
			if _, err := fmt.Fprintf(w, "\n%s\n", description); err != nil {
				return err
			}
		}
	}

	return nil
}

// renderPlanTable writes the resolved bump levels as a markdown table.
func renderPlanTable(plan Plan, w io.Writer) error {
	if plan.Len() == 0 {
		return nil
	}

	if _, err := fmt.Fprint(w, "\n## Version bumps\n\n| Crate | Bump |\n|---|---|\n"); err != nil {
		return err
	}

	for _, entry := range plan.Entries() {
		if _, err := fmt.Fprintf(w, "| %s | %s |\n", entry.Crate, entry.Bump); err != nil {
			return err
		}
	}

	return nil
}

// RenderPlanText writes the plan as aligned crate/bump columns for terminal
// or file output.
func RenderPlanText(plan Plan, w io.Writer) error {
	entries := plan.Entries()

	width := 0
	for _, entry := range entries {
		if len(entry.Crate) > width {
			width = len(entry.Crate)
		}
	}

	for _, entry := range entries {
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, entry.Crate, entry.Bump); err != nil {
			return err
		}
	}

	return nil
}

// RenderPlanYAML writes the plan as a YAML sequence of name/bump pairs,
// sorted by crate name.
func RenderPlanYAML(plan Plan, w io.Writer) error {
	data, err := yaml.Marshal(plan.Entries())
	if err != nil {
		return fmt.Errorf("marshaling plan: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// RenderPlanJSON writes the plan as a JSON array of name/bump pairs, sorted
// by crate name. Intended for machine consumption in release pipelines.
func RenderPlanJSON(plan Plan, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan.Entries())
}

// MarshalJSON serializes the bump level as its wire string.
func (b BumpLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON deserializes a bump level from its wire string.
func (b *BumpLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	level, err := ParseBumpLevel(s)
	if err != nil {
		return err
	}
	*b = level
	return nil
}
