package cli

import (
	"fmt"
	"path/filepath"

	"github.com/raveheart1/prbump/internal/errors"
	"github.com/raveheart1/prbump/internal/git"
	"github.com/raveheart1/prbump/internal/output"
	"github.com/spf13/cobra"
)

var (
	changedBaseFlag  string
	changedCheckFlag bool
)

var changedCmd = &cobra.Command{
	Use:   "changed",
	Short: "List record files changed relative to a base branch",
	Long: `List record files added or modified relative to a base branch.

The diff is taken against the merge base with the branch, so commits already
on the base branch are not reported. This is the CI entry point for pull
requests: combine with --check to require that a PR ships a valid record.

Examples:
  prbump changed                      # Records changed vs the configured base branch
  prbump changed --base release-v2    # Diff against another branch
  prbump changed --check              # Also validate the changed records`,
	GroupID:      GroupUtility,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChanged(cmd)
	},
}

func init() {
	rootCmd.AddCommand(changedCmd)

	changedCmd.Flags().StringVar(&changedBaseFlag, "base", "", "Base branch to diff against (default: configured base_branch)")
	changedCmd.Flags().BoolVar(&changedCheckFlag, "check", false, "Validate the changed records as well")
}

func runChanged(cmd *cobra.Command) error {
	base := changedBaseFlag
	if base == "" {
		base = cfg.BaseBranch
	}

	root, err := git.RepoRoot("")
	if err != nil {
		return errors.NewNotARepository(base)
	}

	files, err := git.ChangedRecordFiles(root, base, cfg.PrdocDir, cfg.Pattern)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "diffing record files",
			fmt.Sprintf("Make sure branch %q exists locally or on origin", base))
	}

	if len(files) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No record files changed relative to %s.\n", base)
		return nil
	}

	if !changedCheckFlag {
		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	}

	if !cfg.Plain {
		output.PrintHeader(cmd.OutOrStdout(), fmt.Sprintf("Records changed relative to %s:", base))
	}

	// Diff paths are repo-relative; the scan reads from the work tree.
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = filepath.Join(root, filepath.FromSlash(f))
	}

	scan, err := scanWithSpinner(cmd, paths)
	if err != nil {
		return err
	}

	return reportCheckResult(cmd, len(paths), scan, scan.Errors)
}
