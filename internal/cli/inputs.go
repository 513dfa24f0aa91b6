package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/raveheart1/prbump/internal/errors"
	"github.com/raveheart1/prbump/internal/git"
	"github.com/raveheart1/prbump/internal/prdoc"
)

// resolveRecordPaths turns command arguments into a sorted list of record
// files. With no arguments, the configured record directory is used, resolved
// against the repository root when inside a git work tree.
func resolveRecordPaths(args []string) ([]string, error) {
	if len(args) > 0 {
		paths, err := prdoc.ExpandPaths(args, cfg.Pattern)
		if err != nil {
			return nil, errors.Wrap(err, errors.Argument,
				"Pass record files, directories, or globs, e.g. prbump check prdoc/")
		}
		return paths, nil
	}

	dir := defaultRecordDir()
	if _, err := os.Stat(dir); err != nil {
		return nil, errors.NewRecordsDirMissing(dir)
	}

	paths, err := prdoc.ExpandPaths([]string{dir}, cfg.Pattern)
	if err != nil {
		return nil, errors.Wrap(err, errors.Runtime)
	}
	if len(paths) == 0 {
		return nil, errors.NewNoRecordsFound(filepath.Join(dir, cfg.Pattern))
	}
	return paths, nil
}

// defaultRecordDir resolves the configured record directory against the
// repository root, falling back to the working directory outside a repo.
func defaultRecordDir() string {
	if filepath.IsAbs(cfg.PrdocDir) {
		return cfg.PrdocDir
	}
	if root, err := git.RepoRoot(""); err == nil {
		return filepath.Join(root, cfg.PrdocDir)
	}
	return cfg.PrdocDir
}

// openOutput returns the writer for --output style flags: the given fallback
// when path is empty, otherwise the created file. The caller owns the close
// function.
func openOutput(path string, fallback io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return fallback, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.WrapWithMessage(err, errors.Runtime, "creating output file")
	}
	return f, f.Close, nil
}
