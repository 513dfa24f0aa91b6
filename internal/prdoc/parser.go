package prdoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrorKind categorizes a record parse failure.
type ErrorKind int

const (
	// MalformedInput indicates the document is not structurally valid YAML.
	MalformedInput ErrorKind = iota
	// MissingField indicates a required field is absent or empty.
	MissingField
	// InvalidBumpLevel indicates a crate bump outside patch/minor/major.
	InvalidBumpLevel
	// UnknownAudience indicates an audience tag outside the known set.
	// Only reported under strict validation.
	UnknownAudience
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case MalformedInput:
		return "malformed input"
	case MissingField:
		return "missing field"
	case InvalidBumpLevel:
		return "invalid bump level"
	case UnknownAudience:
		return "unknown audience"
	default:
		return "parse error"
	}
}

// ParseError describes one validation failure in a record.
// Record identifies the offending record (title when known, otherwise the
// source path) and Field is the path of the offending field, e.g.
// "crates[2].bump". Malformed input cannot self-correct, so parse errors are
// never retried.
type ParseError struct {
	Kind    ErrorKind
	Record  string
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Record, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Record, e.Message)
}

// IsParseError returns true if the error is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// rawRecord mirrors the wire format with pointer fields so that an absent key
// can be distinguished from a present-but-empty value.
type rawRecord struct {
	Title  *string     `yaml:"title"`
	Doc    []DocEntry  `yaml:"doc"`
	Crates *[]rawCrate `yaml:"crates"`
}

type rawCrate struct {
	Name string  `yaml:"name"`
	Bump *string `yaml:"bump"`
}

// Load reads and validates a record file from the given path.
// Returns the parsed Record or the first ParseError encountered.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record file: %w", err)
	}

	rec, errs := Parse(data, path)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return rec, nil
}

// LoadFromReader reads and validates a record from an io.Reader.
// This is useful for testing and for parsing in-memory content.
func LoadFromReader(r io.Reader) (*Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading record: %w", err)
	}

	rec, errs := Parse(data, "")
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return rec, nil
}

// Parse validates raw record content and returns the parsed record together
// with every validation error found. A record with any errors must not be
// used in aggregated output; all errors are returned so a human can fix every
// issue in one pass. The source path is used as the record identifier when
// the title itself is missing.
func Parse(data []byte, source string) (*Record, []*ParseError) {
	var raw rawRecord
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, []*ParseError{{
			Kind:    MalformedInput,
			Record:  sourceIdentifier(source),
			Message: fmt.Sprintf("not a valid YAML document: %v", err),
		}}
	}

	rec := &Record{Path: source}
	identifier := sourceIdentifier(source)

	var errs []*ParseError

	if raw.Title == nil || strings.TrimSpace(*raw.Title) == "" {
		errs = append(errs, &ParseError{
			Kind:    MissingField,
			Record:  identifier,
			Field:   "title",
			Message: "required field is absent or empty",
		})
	} else {
		rec.Title = *raw.Title
		identifier = rec.Title
	}

	// An absent doc sequence is tolerated: no-op documentation is valid.
	rec.Doc = raw.Doc

	if raw.Crates == nil {
		errs = append(errs, &ParseError{
			Kind:    MissingField,
			Record:  identifier,
			Field:   "crates",
			Message: "required field is absent",
		})
		return nil, errs
	}

	rec.Crates = make([]CrateBump, 0, len(*raw.Crates))
	for i, crate := range *raw.Crates {
		bump, crateErrs := validateCrate(crate, i, identifier)
		if len(crateErrs) > 0 {
			errs = append(errs, crateErrs...)
			continue
		}
		rec.Crates = append(rec.Crates, CrateBump{Name: crate.Name, Bump: bump})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return rec, nil
}

// validateCrate checks one crate entry and resolves its bump level.
func validateCrate(crate rawCrate, index int, identifier string) (BumpLevel, []*ParseError) {
	var errs []*ParseError

	if strings.TrimSpace(crate.Name) == "" {
		errs = append(errs, &ParseError{
			Kind:    MissingField,
			Record:  identifier,
			Field:   fmt.Sprintf("crates[%d].name", index),
			Message: "required field is absent or empty",
		})
	}

	if crate.Bump == nil {
		errs = append(errs, &ParseError{
			Kind:    MissingField,
			Record:  identifier,
			Field:   fmt.Sprintf("crates[%d].bump", index),
			Message: "required field is absent",
		})
		return 0, errs
	}

	bump, err := ParseBumpLevel(*crate.Bump)
	if err != nil {
		errs = append(errs, &ParseError{
			Kind:    InvalidBumpLevel,
			Record:  identifier,
			Field:   fmt.Sprintf("crates[%d].bump", index),
			Message: err.Error(),
		})
		return 0, errs
	}

	return bump, errs
}

// UnknownAudiences returns the audience tags in the record that are not in
// the known set. Used by strict validation; lenient parsing accepts any tag.
func (r *Record) UnknownAudiences(known []string) []string {
	knownSet := make(map[string]bool, len(known))
	for _, a := range known {
		knownSet[a] = true
	}

	var unknown []string
	for _, a := range r.Audiences() {
		if a != "" && !knownSet[a] {
			unknown = append(unknown, a)
		}
	}
	return unknown
}

// sourceIdentifier returns a record identifier for errors found before the
// title is known.
func sourceIdentifier(source string) string {
	if source != "" {
		return source
	}
	return "<record>"
}
