package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// MergeOptions holds options for the merge command.
type MergeOptions struct {
	Files []string
	Out   string
}

var errNoMergeFiles = errors.New("at least one file is required (use -f/--file)")

// NewMergeCommand creates the merge command.
func NewMergeCommand() *cobra.Command {
	opts := &MergeOptions{}

	cmd := &cobra.Command{
		Use:   "merge [file...]",
		Short: "Merge one or more CSV files",
		Long: `Concatenate the rows of CSV files that share the same header.

The first file is loaded as-is and the rows of each following file are
appended in argument order. Headers must match exactly, column for column.
Merging stops at the first file that cannot be read or whose header differs,
and nothing is written in that case.

Files given with -f/--file come first, followed by positional arguments.
Use "-" to read one of the files from standard input.`,
		Example: `  # Merge two exports into one file
  csvtool merge -f jan.csv -f feb.csv > q1.csv

  # Positional arguments work too
  csvtool merge jan.csv feb.csv mar.csv

  # Show the merged result as a table
  csvtool merge -f jan.csv -f feb.csv --output table

  # Replace q1.csv in one step
  csvtool merge jan.csv feb.csv mar.csv --out q1.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, opts, args)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Files, "file", "f", nil, "CSV file to merge (repeatable)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Write the merged CSV to this file instead of standard output")

	return cmd
}

func runMerge(cmd *cobra.Command, opts *MergeOptions, args []string) error {
	files := make([]string, 0, len(opts.Files)+len(args))
	files = append(files, opts.Files...)
	files = append(files, args...)
	if len(files) == 0 {
		return errNoMergeFiles
	}

	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	merged, err := cc.loadTable(cmd, files[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	for _, path := range files[1:] {
		next, err := cc.loadTable(cmd, path)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		if err := merged.Merge(next); err != nil {
			return fmt.Errorf("failed to merge files: %w", err)
		}
		cc.Logger.Debug("merged table",
			slog.String("source", next.Source()),
			slog.Int("appended", next.Len()),
			slog.Int("total", merged.Len()))
	}

	return cc.emit(merged, opts.Out)
}
