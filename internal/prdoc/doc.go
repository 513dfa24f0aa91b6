// Package prdoc implements parsing, validation, and aggregation of PR doc
// records for prbump.
//
// This package implements:
//   - .prdoc record parsing and validation (title, doc entries, crate bumps)
//   - Batch scanning with a collect-all-errors policy
//   - Aggregation of many records into a per-crate version-bump plan
//   - Consolidated changelog rendering grouped by audience
//   - Terminal formatting for CLI display
//
// A record is a small YAML document attached to a pull request. It names the
// change (title), documents it for one or more audiences (doc), and requests a
// semver bump for every crate the change touches (crates). Records are
// immutable once parsed; aggregation produces derived values without altering
// the source records.
package prdoc
