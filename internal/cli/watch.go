package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raveheart1/prbump/internal/output"
	"github.com/raveheart1/prbump/internal/prdoc"
	"github.com/raveheart1/prbump/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Revalidate records when they change",
	Long: `Watch a record directory and revalidate on every change.

Useful while writing a record: keep this running in a terminal and every save
reprints the validation status. Stop with Ctrl+C.

Examples:
  prbump watch                        # Watch the configured record directory
  prbump watch prdoc/`,
	GroupID:      GroupUtility,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := defaultRecordDir()
	if len(args) == 1 {
		dir = args[0]
	}

	if _, err := os.Stat(dir); err != nil {
		return NewExitError(ExitMissingPrerequisites)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for record changes (Ctrl+C to stop)\n", dir)

	// Validate once up front so the first status doesn't wait for a save.
	if err := revalidate(cmd, dir)(ctx); err != nil {
		return err
	}

	w := watch.New(dir, cfg.Pattern)
	err := w.Watch(ctx, revalidate(cmd, dir))
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.OutOrStdout(), "\nStopped.")
		return nil
	}
	return err
}

// revalidate returns the watch callback: rescan the directory and print a
// timestamped status line plus any errors.
func revalidate(cmd *cobra.Command, dir string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		paths, err := prdoc.ExpandPaths([]string{dir}, cfg.Pattern)
		if err != nil {
			return err
		}

		scan, err := prdoc.Scan(ctx, paths)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		stamp := time.Now().Format("15:04:05")
		if scan.OK() {
			output.PrintSuccess(out, fmt.Sprintf("[%s] %d record(s) valid", stamp, len(scan.Records)))
			return nil
		}

		output.PrintFailure(out, fmt.Sprintf("[%s] %d error(s)", stamp, len(scan.Errors)))
		for _, perr := range scan.Errors {
			output.PrintFieldError(out, perr.Record, perr.Field, perr.Message)
		}
		return nil
	}
}
