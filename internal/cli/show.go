package cli

import (
	"errors"
	"fmt"

	"github.com/raveheart1/prbump/internal/prdoc"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Display a single record",
	Long: `Display a single record with terminal styling.

The title, audience-tagged documentation entries, and requested crate bumps
are shown with colors when the terminal supports them.

Examples:
  prbump show prdoc/pr_1234.prdoc
  prbump show prdoc/pr_1234.prdoc --plain`,
	GroupID:      GroupRecords,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, path string) error {
	rec, err := prdoc.Load(path)
	if err != nil {
		var perr *prdoc.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintf(cmd.ErrOrStderr(), "invalid record: %s\n", perr.Error())
			return NewExitError(ExitValidationFailed)
		}
		return fmt.Errorf("loading record: %w", err)
	}

	return prdoc.FormatRecord(rec, cmd.OutOrStdout(), prdoc.FormatOptions{Plain: cfg.Plain})
}
