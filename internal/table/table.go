// Package table holds the in-memory model of a delimited text file: a header
// row plus data rows, loaded whole, merged with other tables of the same
// schema, sorted by a column, and written back out.
//
// Tables are not safe for concurrent use.
package table

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// Table is a header and its rows.
type Table struct {
	source string
	header []string
	rows   [][]string
}

// New creates a table from a header and rows. The slices are copied.
// Rows are not checked against the header length; a missing cell reads as "".
func New(header []string, rows ...[]string) *Table {
	t := &Table{header: slices.Clone(header)}
	for _, row := range rows {
		t.rows = append(t.rows, slices.Clone(row))
	}
	return t
}

// Source returns the name the table was loaded from, if any.
func (t *Table) Source() string { return t.source }

// Header returns a copy of the header row.
func (t *Table) Header() []string { return slices.Clone(t.header) }

// Rows returns a deep copy of the data rows.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = slices.Clone(row)
	}
	return out
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// ColumnIndex returns the index of the first header column named name, or -1.
func (t *Table) ColumnIndex(name string) int {
	return slices.Index(t.header, name)
}

// Cell returns the value at row i, column j, or "" if the row is short.
func (t *Table) Cell(i, j int) string {
	return cell(t.rows[i], j)
}

func cell(row []string, j int) string {
	if j < len(row) {
		return row[j]
	}
	return ""
}

// Merge appends other's rows after t's rows. The headers must be identical,
// column for column; otherwise a *SchemaMismatchError is returned and t is
// unchanged.
func (t *Table) Merge(other *Table) error {
	if !slices.Equal(t.header, other.header) {
		return &SchemaMismatchError{
			Source: other.source,
			Want:   slices.Clone(t.header),
			Got:    slices.Clone(other.header),
		}
	}
	for _, row := range other.rows {
		t.rows = append(t.rows, slices.Clone(row))
	}
	return nil
}

// SortByColumn reorders the rows by the values in column key.
//
// The sort is stable: rows with equal keys keep their relative order. Under
// Numerical every key is parsed before any row moves, so a bad value returns a
// *ValueParseError and leaves the table as it was. An unknown key returns a
// *ColumnNotFoundError.
func (t *Table) SortByColumn(key string, order Order, method Method) error {
	idx := t.ColumnIndex(key)
	if idx < 0 {
		return &ColumnNotFoundError{Column: key}
	}

	switch method {
	case Numerical:
		keys := make([]float64, len(t.rows))
		for i, row := range t.rows {
			raw := cell(row, idx)
			v, err := ParseNumber(raw)
			if err != nil {
				return &ValueParseError{Row: i + 1, Column: key, Value: raw, Err: errors.Unwrap(err)}
			}
			keys[i] = v
		}
		sortRows(t.rows, keys, order)
	case Alphabetical:
		keys := make([]string, len(t.rows))
		for i, row := range t.rows {
			keys[i] = cell(row, idx)
		}
		sortRows(t.rows, keys, order)
	default:
		return fmt.Errorf("unknown sort method %v", method)
	}
	return nil
}

// sortRows stably sorts rows by their precomputed keys.
func sortRows[T cmp.Ordered](rows [][]string, keys []T, order Order) {
	perm := make([]int, len(rows))
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(a, b int) int {
		return compareKeys(keys[a], keys[b], order)
	})

	sorted := make([][]string, len(rows))
	for i, p := range perm {
		sorted[i] = rows[p]
	}
	copy(rows, sorted)
}
