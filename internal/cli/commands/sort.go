package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/csvtool/internal/cli/config"
	"github.com/leapstack-labs/csvtool/internal/table"
	"github.com/spf13/cobra"
)

// SortOptions holds options for the sort command.
type SortOptions struct {
	Key    string
	File   string
	Order  string
	Method string
	Out    string
}

// NewSortCommand creates the sort command.
func NewSortCommand() *cobra.Command {
	opts := &SortOptions{}

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort CSV file by column key",
		Long: `Sort the rows of a CSV file by the values in one column.

The numerical method compares values as decimal numbers and fails if any
value in the column is not a number. The alphabetical method compares raw
bytes, so upper case sorts before lower case. Rows with equal keys keep
their original order.

Without --file the table is read from standard input. The defaults for
--order and --method can be set under "sort:" in csvtool.yaml.`,
		Example: `  # Highest score first
  csvtool sort -c score -f results.csv

  # Lowest score first
  csvtool sort -c score -f results.csv -o ascending

  # Sort a file in place
  csvtool sort -c score -f results.csv --out results.csv

  # Sort names from a pipe
  cat people.csv | csvtool sort -c name -m alphabetical -o ascending`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSort(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Key, "key", "c", "", "Column key to sort by")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "CSV file (default: standard input)")
	cmd.Flags().StringVarP(&opts.Order, "order", "o", config.DefaultSortOrder, "Sort order (ascending|descending)")
	cmd.Flags().StringVarP(&opts.Method, "method", "m", config.DefaultSortMethod, "Sort method (numerical|alphabetical)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Write the sorted CSV to this file instead of standard output")
	_ = cmd.MarkFlagRequired("key")

	_ = cmd.RegisterFlagCompletionFunc("order", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"ascending", "descending"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("method", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"numerical", "alphabetical"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runSort(cmd *cobra.Command, opts *SortOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	order, method, err := resolveSortMode(cmd, cc.Cfg, opts)
	if err != nil {
		return err
	}

	t, err := cc.loadTable(cmd, opts.File)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	cc.Logger.Debug("sorting table",
		slog.String("key", opts.Key),
		slog.String("order", order.String()),
		slog.String("method", method.String()))

	if err := t.SortByColumn(opts.Key, order, method); err != nil {
		return err
	}

	return cc.emit(t, opts.Out)
}

// resolveSortMode applies explicit flags over the configured sort defaults.
func resolveSortMode(cmd *cobra.Command, cfg *config.Config, opts *SortOptions) (table.Order, table.Method, error) {
	order, method, err := cfg.SortDefaults()
	if err != nil {
		return 0, 0, err
	}

	if cmd.Flags().Changed("order") {
		if order, err = table.ParseOrder(opts.Order); err != nil {
			return 0, 0, err
		}
	}
	if cmd.Flags().Changed("method") {
		if method, err = table.ParseMethod(opts.Method); err != nil {
			return 0, 0, err
		}
	}
	return order, method, nil
}
