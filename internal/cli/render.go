package cli

import (
	"fmt"

	"github.com/raveheart1/prbump/internal/errors"
	"github.com/raveheart1/prbump/internal/prdoc"
	"github.com/spf13/cobra"
)

var renderOutputFlag string

var renderCmd = &cobra.Command{
	Use:   "render [path|glob...]",
	Short: "Render the consolidated changelog",
	Long: `Render a consolidated markdown changelog from all records.

Documentation entries are grouped by audience, preserving record order within
each group. Well-known audiences appear first in their configured order;
other audiences follow in the order they are first seen. The resolved
version-bump table is appended at the end.

The output is deterministic - identical records always render identically.

Examples:
  prbump render                       # Render from the configured record directory
  prbump render -o RELEASE_NOTES.md   # Write to a file
  prbump render prdoc/pr_*.prdoc      # Render selected records`,
	GroupID:      GroupRecords,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutputFlag, "output", "o", "", "Write the changelog to a file instead of stdout")
}

func runRender(cmd *cobra.Command, args []string) error {
	paths, err := resolveRecordPaths(args)
	if err != nil {
		return err
	}

	scan, err := scanWithSpinner(cmd, paths)
	if err != nil {
		return err
	}

	reportScanErrors(cmd, scan)

	report := prdoc.BuildReport(scan.Records, cfg.Audiences)
	plan := prdoc.BuildPlan(scan.Records)

	w, closeOutput, err := openOutput(renderOutputFlag, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput()

	if err := prdoc.RenderMarkdown(report, plan, w); err != nil {
		return fmt.Errorf("rendering changelog: %w", err)
	}

	if !scan.OK() {
		errors.FprintError(cmd.ErrOrStderr(), errors.NewRecordsInvalid(len(scan.Errors)))
		return NewExitError(ExitValidationFailed)
	}
	return nil
}
