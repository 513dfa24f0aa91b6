package prdoc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// DefaultPattern is the file glob that record files are expected to match.
const DefaultPattern = "*.prdoc"

// ScanResult holds the outcome of scanning a batch of record files.
// Scanning continues past malformed records: Records holds every record that
// parsed cleanly and Errors holds every failure across the batch, so a single
// run surfaces all problems at once. Records that failed to parse never
// contribute to aggregated output.
type ScanResult struct {
	Records []*Record
	Errors  []*ParseError
}

// OK returns true if every scanned record parsed cleanly.
func (s *ScanResult) OK() bool {
	return len(s.Errors) == 0
}

// ExpandPaths resolves a mix of files, directories, and globs into a sorted,
// de-duplicated list of record file paths. Directories are searched for files
// matching the given pattern (non-recursive). Globs are expanded with
// filepath.Glob semantics.
func ExpandPaths(paths []string, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			matches, err := filepath.Glob(filepath.Join(path, pattern))
			if err != nil {
				return nil, fmt.Errorf("listing %s: %w", path, err)
			}
			files = append(files, matches...)
		case err == nil:
			files = append(files, path)
		default:
			// Not an existing file or directory; try it as a glob.
			matches, err := filepath.Glob(path)
			if err != nil {
				return nil, fmt.Errorf("invalid path or glob %q: %w", path, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no record files match %q", path)
			}
			files = append(files, matches...)
		}
	}

	sort.Strings(files)
	return dedupe(files), nil
}

// Scan parses all the given record files in parallel and collects every
// record and every error. The result is deterministic: records and errors
// appear in the sorted order of their source paths regardless of which
// goroutine finished first.
func Scan(ctx context.Context, paths []string) (*ScanResult, error) {
	type fileResult struct {
		record *Record
		errs   []*ParseError
	}

	results := make([]fileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				results[i] = fileResult{errs: []*ParseError{{
					Kind:    MalformedInput,
					Record:  path,
					Message: fmt.Sprintf("reading record file: %v", err),
				}}}
				return nil
			}

			rec, errs := Parse(data, path)
			results[i] = fileResult{record: rec, errs: errs}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	scan := &ScanResult{}
	for _, res := range results {
		if len(res.errs) > 0 {
			scan.Errors = append(scan.Errors, res.errs...)
			continue
		}
		scan.Records = append(scan.Records, res.record)
	}

	return scan, nil
}

// dedupe removes adjacent duplicates from a sorted slice.
func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
