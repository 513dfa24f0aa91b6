package cli

import (
	"fmt"
	"os"

	"github.com/raveheart1/prbump/internal/output"
	"github.com/raveheart1/prbump/internal/prdoc"
	"github.com/raveheart1/prbump/internal/progress"
	"github.com/spf13/cobra"
)

var checkStrictFlag bool

var checkCmd = &cobra.Command{
	Use:   "check [path|glob...]",
	Short: "Validate record files",
	Long: `Validate record files against the PR doc schema.

Every record must have a non-empty title and a crates list, and every crate
bump must be one of patch, minor, or major. Validation continues past broken
records and reports every error with its record identifier and field path, so
all issues can be fixed in one pass.

With no arguments, all records in the configured record directory are checked.

Examples:
  prbump check                        # Check the configured record directory
  prbump check prdoc/pr_1234.prdoc    # Check one record
  prbump check "prdoc/*.prdoc"        # Check a glob
  prbump check --strict               # Unknown audience tags become errors`,
	GroupID:      GroupRecords,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkStrictFlag, "strict", false, "Treat unknown audience tags as errors")
}

func runCheck(cmd *cobra.Command, args []string) error {
	paths, err := resolveRecordPaths(args)
	if err != nil {
		return err
	}

	scan, err := scanWithSpinner(cmd, paths)
	if err != nil {
		return err
	}

	parseErrors := scan.Errors
	if checkStrictFlag || cfg.Strict {
		parseErrors = append(parseErrors, auditAudiences(scan.Records)...)
	}

	return reportCheckResult(cmd, len(paths), scan, parseErrors)
}

// scanWithSpinner runs a batch scan with a progress spinner on interactive
// terminals.
func scanWithSpinner(cmd *cobra.Command, paths []string) (*prdoc.ScanResult, error) {
	caps := progress.DetectTerminalCapabilities()
	spin := progress.NewScanSpinner(os.Stderr, caps, len(paths))
	if spin != nil {
		defer spin.Stop()
	}

	return prdoc.Scan(cmd.Context(), paths)
}

// auditAudiences reports unknown audience tags as validation errors.
// Strict mode only; lenient parsing accepts any tag.
func auditAudiences(records []*prdoc.Record) []*prdoc.ParseError {
	var errs []*prdoc.ParseError
	for _, rec := range records {
		for _, audience := range rec.UnknownAudiences(cfg.Audiences) {
			errs = append(errs, &prdoc.ParseError{
				Kind:    prdoc.UnknownAudience,
				Record:  rec.Identifier(),
				Field:   "doc.audience",
				Message: fmt.Sprintf("unknown audience %q (known: %v)", audience, cfg.Audiences),
			})
		}
	}
	return errs
}

// reportCheckResult prints the per-error detail and summary line, and maps
// the outcome to an exit code.
func reportCheckResult(cmd *cobra.Command, fileCount int, scan *prdoc.ScanResult, parseErrors []*prdoc.ParseError) error {
	out := cmd.OutOrStdout()

	if len(parseErrors) == 0 {
		if cfg.Plain {
			fmt.Fprintf(out, "%d record(s) valid\n", len(scan.Records))
		} else {
			output.PrintSuccess(out, fmt.Sprintf("%d record(s) valid", len(scan.Records)))
		}
		return nil
	}

	for _, perr := range parseErrors {
		if cfg.Plain {
			fmt.Fprintf(out, "  %s\n", perr.Error())
		} else {
			output.PrintFieldError(out, perr.Record, perr.Field, perr.Message)
		}
	}

	summary := fmt.Sprintf("%d error(s) across %d file(s)", len(parseErrors), fileCount)
	if cfg.Plain {
		fmt.Fprintln(out, summary)
	} else {
		output.PrintFailure(out, summary)
	}

	return NewExitError(ExitValidationFailed)
}
