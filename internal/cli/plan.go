package cli

import (
	"fmt"

	"github.com/raveheart1/prbump/internal/errors"
	"github.com/raveheart1/prbump/internal/prdoc"
	"github.com/spf13/cobra"
)

var (
	planFormatFlag string
	planOutputFlag string
)

var planCmd = &cobra.Command{
	Use:   "plan [path|glob...]",
	Short: "Resolve the version-bump plan across all records",
	Long: `Resolve the per-crate version-bump plan across all records.

Every crate bump requested by any record is folded into a single resolved
level per crate: the maximum under patch < minor < major. The plan is
deterministic - crates are listed in name order regardless of input order.

Records that fail validation are reported on stderr and excluded from the
plan; the command then exits non-zero so CI does not release from partial
input.

Examples:
  prbump plan                         # Plan from the configured record directory
  prbump plan --format yaml           # Machine-readable YAML plan
  prbump plan --format json -o plan.json
  prbump plan prdoc/pr_*.prdoc        # Plan from selected records`,
	GroupID:      GroupRecords,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlan(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVar(&planFormatFlag, "format", "text", "Output format: text | yaml | json")
	planCmd.Flags().StringVarP(&planOutputFlag, "output", "o", "", "Write the plan to a file instead of stdout")
}

func runPlan(cmd *cobra.Command, args []string) error {
	paths, err := resolveRecordPaths(args)
	if err != nil {
		return err
	}

	scan, err := scanWithSpinner(cmd, paths)
	if err != nil {
		return err
	}

	reportScanErrors(cmd, scan)

	plan := prdoc.BuildPlan(scan.Records)

	w, closeOutput, err := openOutput(planOutputFlag, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput()

	switch planFormatFlag {
	case "text":
		if cfg.Plain || planOutputFlag != "" {
			err = prdoc.RenderPlanText(plan, w)
		} else {
			err = prdoc.FormatPlan(plan, w, prdoc.FormatOptions{Plain: cfg.Plain})
		}
	case "yaml":
		err = prdoc.RenderPlanYAML(plan, w)
	case "json":
		err = prdoc.RenderPlanJSON(plan, w)
	default:
		return errors.NewArgumentError(
			fmt.Sprintf("unknown format %q", planFormatFlag),
			"Use one of: text, yaml, json")
	}
	if err != nil {
		return fmt.Errorf("rendering plan: %w", err)
	}

	if !scan.OK() {
		errors.FprintError(cmd.ErrOrStderr(), errors.NewRecordsInvalid(len(scan.Errors)))
		return NewExitError(ExitValidationFailed)
	}
	return nil
}

// reportScanErrors prints batch parse errors to stderr. Broken records are
// already excluded from the scan's record list.
func reportScanErrors(cmd *cobra.Command, scan *prdoc.ScanResult) {
	for _, perr := range scan.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipping record: %s\n", perr.Error())
	}
}
