package table

import (
	"fmt"
	"strings"
)

// IOError reports a source or sink that could not be opened, read, or written.
type IOError struct {
	Op   string // "open", "read", "write", "flush", "close"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports malformed delimited text.
// Line is the 1-based input line where the problem was found, or 0 when unknown.
type ParseError struct {
	Source string
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse ")
	b.WriteString(displaySource(e.Source))
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaMismatchError is returned by Merge when the two headers differ.
type SchemaMismatchError struct {
	Source string // source of the table being merged in
	Want   []string
	Got    []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("cannot merge %s: header [%s] does not match [%s]",
		displaySource(e.Source), strings.Join(e.Got, ","), strings.Join(e.Want, ","))
}

// ColumnNotFoundError is returned when a sort key names no header column.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in header", e.Column)
}

// ValueParseError reports a cell that is not a number where numeric comparison
// was requested. Row is the 1-based data row number, or 0 when the value did not
// come from a table.
type ValueParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ValueParseError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("invalid number %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("row %d, column %q: invalid number %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ValueParseError) Unwrap() error { return e.Err }

func displaySource(s string) string {
	if s == "" {
		return "<input>"
	}
	return s
}
