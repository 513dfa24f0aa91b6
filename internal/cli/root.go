// Package cli implements the prbump command tree.
package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/raveheart1/prbump/internal/config"
	"github.com/raveheart1/prbump/internal/errors"
	"github.com/spf13/cobra"
)

// Command group IDs for help output.
const (
	GroupRecords = "records"
	GroupUtility = "utility"
)

var (
	// Global flags
	configPathFlag string
	plainFlag      bool
)

// cfg is the merged configuration, loaded before any command runs.
var cfg *config.Configuration

var rootCmd = &cobra.Command{
	Use:   "prbump",
	Short: "Validate PR doc records and plan crate version bumps",
	Long: `prbump consumes PR doc records - small YAML documents describing one
change each - and turns many of them into release artifacts.

Each record carries a title, audience-tagged documentation entries, and the
semver bump (patch/minor/major) requested for every crate the change touches.
prbump validates records, resolves the maximum bump per crate across all
records, and renders a consolidated changelog grouped by audience.`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPathFlag)
		if err != nil {
			return errors.Wrap(err, errors.Configuration,
				"Check .prbump/config.yml for syntax errors",
				"Run with --config to point at a different config file")
		}
		if plainFlag {
			loaded.Plain = true
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRecords, Title: "Record Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
	)

	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Path to project config file (default: .prbump/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Plain output (no colors/icons)")
}

// Execute runs the root command and reports errors to stderr.
// ExitError values pass through unprinted; the command already reported them.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return err
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.PrintError(cliErr)
		return err
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return err
}
