package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/csvtool/internal/cli/output"
	"github.com/leapstack-labs/csvtool/internal/table"
	"github.com/leapstack-labs/csvtool/internal/testutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "csvtool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "config file")
	flags.BoolP("verbose", "v", false, "verbose")
	flags.String("log-level", "", "log level")
	flags.String("output", "", "output format")
	flags.String("delimiter", "", "delimiter")
	flags.Bool("crlf", false, "crlf")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, `log_level: info
output: markdown
delimiter: ";"
crlf: true
sort:
  order: ascending
  method: alphabetical
`)

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.Equal(t, ";", cfg.Delimiter)
	assert.True(t, cfg.CRLF)
	assert.Equal(t, SortConfig{Order: "ascending", Method: "alphabetical"}, cfg.Sort)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

func TestLoadConfig_DiscoversFileInWorkingDir(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "csvtool.yml"), []byte("output: json\n"), 0600))
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "csvtool.yml", GetConfigFileUsed())
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, "log_level: info\nsort:\n  order: ascending\n")

	t.Setenv("CSVTOOL_LOG_LEVEL", "error")
	t.Setenv("CSVTOOL_SORT_ORDER", "descending")
	t.Setenv("CSVTOOL_CRLF", "true")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.LogLevel, "env var should override config file")
	assert.Equal(t, "descending", cfg.Sort.Order, "nested keys map from underscores")
	assert.True(t, cfg.CRLF)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, "log_level: info\ndelimiter: \";\"\n")
	t.Setenv("CSVTOOL_LOG_LEVEL", "error")

	flags := newFlagSet()
	require.NoError(t, flags.Set("log-level", "debug"))
	require.NoError(t, flags.Set("config", "ignored.yaml"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel, "flag value should override config file and env var")
	assert.Equal(t, ";", cfg.Delimiter, "unset flag should not override config file")
	assert.False(t, cfg.Verbose)
}

func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("CSVTOOL_OUTPUT", "table")

	flags := newFlagSet()

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "table", cfg.OutputFormat, "env var should be used when flag is not set")
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{"bad log level", "log_level: loud\n", "invalid log level"},
		{"bad output", "output: xml\n", "invalid output format"},
		{"bad delimiter", "delimiter: ab\n", "single character"},
		{"bad sort order", "sort:\n  order: sideways\n", "sort.order"},
		{"bad sort method", "sort:\n  method: random\n", "sort.method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			cfgPath := writeConfig(t, tt.content)

			_, err := LoadConfig(cfgPath, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration (config file")
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConfig_Validate_JoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "loud"
	cfg.OutputFormat = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestConfig_Dialect(t *testing.T) {
	tests := []struct {
		name      string
		delimiter string
		crlf      bool
		want      table.Dialect
		wantErr   bool
	}{
		{name: "default", delimiter: "", want: table.Dialect{Comma: ','}},
		{name: "semicolon", delimiter: ";", want: table.Dialect{Comma: ';'}},
		{name: "tab word", delimiter: "tab", want: table.Dialect{Comma: '\t'}},
		{name: "tab word uppercase", delimiter: "TAB", want: table.Dialect{Comma: '\t'}},
		{name: "escaped tab", delimiter: `\t`, want: table.Dialect{Comma: '\t'}},
		{name: "literal tab", delimiter: "\t", want: table.Dialect{Comma: '\t'}},
		{name: "multibyte rune", delimiter: "§", want: table.Dialect{Comma: '§'}},
		{name: "crlf", delimiter: ",", crlf: true, want: table.Dialect{Comma: ',', CRLF: true}},
		{name: "two characters", delimiter: "::", wantErr: true},
		{name: "quote", delimiter: `"`, wantErr: true},
		{name: "newline", delimiter: "\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Delimiter = tt.delimiter
			cfg.CRLF = tt.crlf

			got, err := cfg.Dialect()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_Level(t *testing.T) {
	tests := []struct {
		level   string
		verbose bool
		want    slog.Level
		wantErr bool
	}{
		{level: "", want: slog.LevelWarn},
		{level: "debug", want: slog.LevelDebug},
		{level: "INFO", want: slog.LevelInfo},
		{level: "warning", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
		{level: "error", verbose: true, want: slog.LevelDebug},
		{level: "trace", wantErr: true},
	}

	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level, Verbose: tt.verbose}
		got, err := cfg.Level()
		if tt.wantErr {
			assert.Error(t, err, "level %q", tt.level)
			continue
		}
		require.NoError(t, err, "level %q", tt.level)
		assert.Equal(t, tt.want, got, "level %q verbose=%v", tt.level, tt.verbose)
	}
}

func TestConfig_SortDefaults(t *testing.T) {
	order, method, err := Default().SortDefaults()
	require.NoError(t, err)
	assert.Equal(t, table.Descending, order)
	assert.Equal(t, table.Numerical, method)

	cfg := &Config{Sort: SortConfig{Order: "Ascending", Method: "ALPHABETICAL"}}
	order, method, err = cfg.SortDefaults()
	require.NoError(t, err)
	assert.Equal(t, table.Ascending, order)
	assert.Equal(t, table.Alphabetical, method)

	cfg = &Config{Sort: SortConfig{Order: "up"}}
	_, _, err = cfg.SortDefaults()
	assert.ErrorContains(t, err, "sort.order")
}

func TestLoadConfig_SortKeysIgnoreCase(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, "sort:\n  order: Ascending\n")
	t.Setenv("CSVTOOL_SORT_METHOD", "Alphabetical")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	order, method, err := cfg.SortDefaults()
	require.NoError(t, err)
	assert.Equal(t, table.Ascending, order)
	assert.Equal(t, table.Alphabetical, method)
}

func TestConfig_OutputMode(t *testing.T) {
	mode, err := (&Config{}).OutputMode()
	require.NoError(t, err)
	assert.Equal(t, output.ModeAuto, mode)

	mode, err = (&Config{OutputFormat: "md"}).OutputMode()
	require.NoError(t, err)
	assert.Equal(t, output.ModeMarkdown, mode)
}

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, Default(), GetConfig(ctx), "missing config falls back to defaults")
	assert.NotNil(t, GetLogger(ctx), "missing logger falls back to a discard logger")

	cfg := &Config{LogLevel: "debug"}
	logger := testutil.NewTestLogger(t)
	ctx = WithLogger(WithConfig(ctx, cfg), logger)

	assert.Same(t, cfg, GetConfig(ctx))
	assert.Same(t, logger, GetLogger(ctx))
}
