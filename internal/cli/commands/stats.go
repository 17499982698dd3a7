package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrNotImplemented is returned by commands that are declared but not built yet.
var ErrNotImplemented = errors.New("not implemented")

// StatsOptions holds options for the stats subcommands.
type StatsOptions struct {
	File string
}

// NewStatsCommand creates the stats command group.
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "CSV statistics",
		Long:  `Compute statistics over the columns of a CSV file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Help()
			return errors.New("the stats command requires a subcommand")
		},
	}

	cmd.AddCommand(newStatsSumCommand())

	return cmd
}

func newStatsSumCommand() *cobra.Command {
	opts := &StatsOptions{}

	cmd := &cobra.Command{
		Use:   "sum",
		Short: "Sum of columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatsSum(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "CSV file (default: standard input)")

	return cmd
}

func runStatsSum(_ *cobra.Command, _ *StatsOptions) error {
	return fmt.Errorf("stats sum: %w", ErrNotImplemented)
}
