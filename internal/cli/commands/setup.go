// Package commands implements the csvtool subcommands.
package commands

import (
	"log/slog"

	"github.com/leapstack-labs/csvtool/internal/cli/config"
	"github.com/leapstack-labs/csvtool/internal/cli/output"
	"github.com/leapstack-labs/csvtool/internal/table"
	"github.com/spf13/cobra"
)

// stdinPath is the --file value that selects standard input.
const stdinPath = "-"

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Dialect  table.Dialect
}

// NewCommandContext creates a CommandContext from the config and logger stored
// in the command's context by the root command.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	dialect, err := cfg.Dialect()
	if err != nil {
		return nil, err
	}
	mode, err := cfg.OutputMode()
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
		Dialect:  dialect,
	}, nil
}

// loadTable loads a table from path, or from the command's standard input
// when path is empty or "-".
func (cc *CommandContext) loadTable(cmd *cobra.Command, path string) (*table.Table, error) {
	var (
		t   *table.Table
		err error
	)
	if path == "" || path == stdinPath {
		t, err = table.Load(cmd.InOrStdin(), table.StdinSource, cc.Dialect)
	} else {
		t, err = table.LoadFile(path, cc.Dialect)
	}
	if err != nil {
		return nil, err
	}

	cc.Logger.Debug("table loaded",
		slog.String("source", t.Source()),
		slog.Int("columns", len(t.Header())),
		slog.Int("rows", t.Len()))
	return t, nil
}

// emit renders t to the command's output, or writes it as delimited text to
// outPath when one is given.
func (cc *CommandContext) emit(t *table.Table, outPath string) error {
	if outPath == "" {
		return cc.Renderer.Table(t, cc.Dialect)
	}
	if err := t.WriteFile(outPath, cc.Dialect); err != nil {
		return err
	}
	cc.Logger.Debug("table written",
		slog.String("path", outPath),
		slog.Int("rows", t.Len()))
	return nil
}
