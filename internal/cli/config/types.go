// Package config provides configuration management for the csvtool CLI.
//
// Values are layered from built-in defaults, an optional YAML file, CSVTOOL_
// environment variables, and explicitly set command-line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/csvtool/internal/cli/output"
	"github.com/leapstack-labs/csvtool/internal/table"
)

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool       `koanf:"verbose"`
	LogLevel     string     `koanf:"log_level"`
	OutputFormat string     `koanf:"output"`
	Delimiter    string     `koanf:"delimiter"`
	CRLF         bool       `koanf:"crlf"`
	Sort         SortConfig `koanf:"sort"`
}

// SortConfig holds the defaults used by the sort command when its
// --order and --method flags are not given.
type SortConfig struct {
	Order  string `koanf:"order"`
	Method string `koanf:"method"`
}

// Default configuration values.
const (
	DefaultLogLevel   = "warn"
	DefaultOutput     = "auto" // Auto-detect: TTY=table, non-TTY=csv
	DefaultDelimiter  = ","
	DefaultSortOrder  = "descending"
	DefaultSortMethod = "numerical"
)

// Default returns a Config populated with the default values.
func Default() *Config {
	return &Config{
		LogLevel:     DefaultLogLevel,
		OutputFormat: DefaultOutput,
		Delimiter:    DefaultDelimiter,
		Sort: SortConfig{
			Order:  DefaultSortOrder,
			Method: DefaultSortMethod,
		},
	}
}

// Dialect returns the table dialect described by the delimiter and crlf settings.
// "tab" and a literal `\t` are accepted as spellings of the tab character.
func (c *Config) Dialect() (table.Dialect, error) {
	delim := c.Delimiter
	switch strings.ToLower(delim) {
	case "":
		delim = DefaultDelimiter
	case "tab", `\t`:
		delim = "\t"
	}

	if utf8.RuneCountInString(delim) != 1 {
		return table.Dialect{}, fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(delim)
	d := table.Dialect{Comma: r, CRLF: c.CRLF}
	if err := d.Validate(); err != nil {
		return table.Dialect{}, err
	}
	return d, nil
}

// SortDefaults returns the parsed default sort order and method. Like the
// other config values, they are matched case-insensitively.
func (c *Config) SortDefaults() (table.Order, table.Method, error) {
	order, err := table.ParseOrder(strings.ToLower(orDefault(c.Sort.Order, DefaultSortOrder)))
	if err != nil {
		return 0, 0, fmt.Errorf("sort.order: %w", err)
	}
	method, err := table.ParseMethod(strings.ToLower(orDefault(c.Sort.Method, DefaultSortMethod)))
	if err != nil {
		return 0, 0, fmt.Errorf("sort.method: %w", err)
	}
	return order, method, nil
}

// Level returns the slog level for the log_level setting. Verbose forces debug.
func (c *Config) Level() (slog.Level, error) {
	if c.Verbose {
		return slog.LevelDebug, nil
	}
	switch strings.ToLower(orDefault(c.LogLevel, DefaultLogLevel)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q (expected debug, info, warn or error)", c.LogLevel)
	}
}

// OutputMode returns the configured output mode.
func (c *Config) OutputMode() (output.Mode, error) {
	return output.ParseMode(orDefault(c.OutputFormat, DefaultOutput))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
