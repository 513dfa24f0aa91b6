// Package git provides git repository utilities for prbump: repository-root
// detection for record discovery, and diffing record files against a base
// branch for CI gating. It uses the go-git library so no git CLI installation
// is required.
package git

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// openRepo opens the git repository containing the given path, traversing up
// the directory tree to find the repository root. If path is empty, the
// current working directory is used.
func openRepo(dir string) (*gogit.Repository, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}

	return repo, nil
}

// RepoRoot returns the work-tree root of the repository containing dir.
// Returns an error when dir is not inside a git work tree.
func RepoRoot(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("resolving work tree: %w", err)
	}

	return wt.Filesystem.Root(), nil
}

// IsRepository returns true if dir is inside a git work tree.
func IsRepository(dir string) bool {
	_, err := openRepo(dir)
	return err == nil
}

// ChangedRecordFiles returns the record files under recordDir (a repo-relative
// directory) that were added or modified on HEAD relative to the merge base
// with baseBranch. Paths are returned repo-relative, sorted. Deleted files are
// excluded since there is nothing left to validate.
func ChangedRecordFiles(repoDir, baseBranch, recordDir, pattern string) ([]string, error) {
	repo, err := openRepo(repoDir)
	if err != nil {
		return nil, err
	}

	headCommit, err := headCommit(repo)
	if err != nil {
		return nil, err
	}

	baseCommit, err := branchCommit(repo, baseBranch)
	if err != nil {
		return nil, err
	}

	// Diff against the merge base so commits already on the base branch
	// don't show up as changes.
	mergeBases, err := headCommit.MergeBase(baseCommit)
	if err != nil {
		return nil, fmt.Errorf("computing merge base with %s: %w", baseBranch, err)
	}
	if len(mergeBases) > 0 {
		baseCommit = mergeBases[0]
	}

	baseTree, err := baseCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("resolving base tree: %w", err)
	}
	headTree, err := headCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD tree: %w", err)
	}

	changes, err := object.DiffTree(baseTree, headTree)
	if err != nil {
		return nil, fmt.Errorf("diffing trees: %w", err)
	}

	return filterRecordChanges(changes, recordDir, pattern)
}

// headCommit resolves the commit at HEAD.
func headCommit(repo *gogit.Repository) (*object.Commit, error) {
	ref, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD commit: %w", err)
	}
	return commit, nil
}

// branchCommit resolves the tip commit of a branch, trying the local branch
// first and falling back to the origin remote.
func branchCommit(repo *gogit.Repository, branch string) (*object.Commit, error) {
	candidates := []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(branch),
		plumbing.NewRemoteReferenceName("origin", branch),
	}

	for _, name := range candidates {
		ref, err := repo.Reference(name, true)
		if err != nil {
			continue
		}
		commit, err := repo.CommitObject(ref.Hash())
		if err != nil {
			return nil, fmt.Errorf("resolving %s commit: %w", name, err)
		}
		return commit, nil
	}

	return nil, fmt.Errorf("branch %q not found locally or on origin", branch)
}

// filterRecordChanges keeps added/modified changes under recordDir whose base
// name matches pattern. Tree paths use forward slashes on all platforms.
func filterRecordChanges(changes object.Changes, recordDir, pattern string) ([]string, error) {
	prefix := strings.Trim(filepath.ToSlash(recordDir), "/")
	if prefix != "" {
		prefix += "/"
	}

	var files []string
	for _, change := range changes {
		action, err := change.Action()
		if err != nil {
			return nil, fmt.Errorf("resolving change action: %w", err)
		}
		if action == merkletrie.Delete {
			continue
		}

		name := change.To.Name
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		matched, err := path.Match(pattern, path.Base(name))
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if matched {
			files = append(files, name)
		}
	}

	sort.Strings(files)
	return files, nil
}
