package prdoc

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// BumpLevel is a semantic-versioning severity level requested for a crate.
// Levels are ordered: BumpPatch < BumpMinor < BumpMajor. When multiple records
// request different levels for the same crate, the maximum wins.
type BumpLevel int

const (
	// BumpPatch indicates a backwards-compatible bug fix.
	BumpPatch BumpLevel = iota
	// BumpMinor indicates backwards-compatible functionality.
	BumpMinor
	// BumpMajor indicates an incompatible API change.
	BumpMajor
)

// String returns the canonical wire form of the bump level.
func (b BumpLevel) String() string {
	switch b {
	case BumpPatch:
		return "patch"
	case BumpMinor:
		return "minor"
	case BumpMajor:
		return "major"
	default:
		return fmt.Sprintf("BumpLevel(%d)", int(b))
	}
}

// ParseBumpLevel parses the wire form of a bump level.
// Only the exact strings "patch", "minor", and "major" are accepted.
func ParseBumpLevel(s string) (BumpLevel, error) {
	switch s {
	case "patch":
		return BumpPatch, nil
	case "minor":
		return BumpMinor, nil
	case "major":
		return BumpMajor, nil
	default:
		return 0, fmt.Errorf("invalid bump level %q (expected: patch, minor, or major)", s)
	}
}

// MaxBump returns the more severe of two bump levels.
func MaxBump(a, b BumpLevel) BumpLevel {
	if b > a {
		return b
	}
	return a
}

// MarshalYAML serializes the bump level as its wire string.
func (b BumpLevel) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}

// UnmarshalYAML deserializes a bump level from its wire string.
func (b *BumpLevel) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	level, err := ParseBumpLevel(s)
	if err != nil {
		return err
	}
	*b = level
	return nil
}

// Record represents a single parsed PR doc record.
// Records are immutable once parsed; aggregation never modifies them.
type Record struct {
	Title  string      `yaml:"title"`
	Doc    []DocEntry  `yaml:"doc,omitempty"`
	Crates []CrateBump `yaml:"crates"`

	// Path is the source file the record was loaded from, when known.
	// It is used for error reporting and is not part of the wire format.
	Path string `yaml:"-"`
}

// DocEntry is one audience-tagged documentation entry in a record.
// The description is free text and may contain embedded markdown.
type DocEntry struct {
	Audience    string `yaml:"audience,omitempty"`
	Description string `yaml:"description"`
}

// CrateBump is one crate's requested bump level. Crate names are not unique
// within or across records; independent changes may bump the same crate.
type CrateBump struct {
	Name string    `yaml:"name"`
	Bump BumpLevel `yaml:"bump"`
}

// Identifier returns the record identifier used in error and report output:
// the title when present, otherwise the source path.
func (r *Record) Identifier() string {
	if r.Title != "" {
		return r.Title
	}
	if r.Path != "" {
		return r.Path
	}
	return "<record>"
}

// Audiences returns the distinct audience tags in this record, in the order
// they first appear. Entries without an audience are reported as "".
func (r *Record) Audiences() []string {
	seen := make(map[string]bool)
	var audiences []string
	for _, e := range r.Doc {
		if !seen[e.Audience] {
			seen[e.Audience] = true
			audiences = append(audiences, e.Audience)
		}
	}
	return audiences
}

// Marshal serializes the record back to its YAML wire form.
// Parsing followed by Marshal is idempotent for the structured fields.
func (r *Record) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// KnownAudiences returns the well-known audience tags in their canonical
// report order. Records may use other tags; unknown tags are accepted unless
// strict validation is requested.
func KnownAudiences() []string {
	return []string{"Runtime Dev", "Runtime User", "Node Dev", "Node Operator"}
}
