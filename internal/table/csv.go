package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/natefinch/atomic"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// StdinSource is the source name used for tables read from standard input.
const StdinSource = "<stdin>"

// ErrNoHeader is wrapped in a *ParseError when the input has no records at all.
var ErrNoHeader = errors.New("missing header record")

var errInvalidUTF8 = errors.New("invalid UTF-8")

// Dialect is the delimiter and line ending shared by Load and Write.
// The zero value means comma-separated with "\n" line endings.
type Dialect struct {
	Comma rune
	CRLF  bool
}

// DefaultDialect is plain comma-separated text.
var DefaultDialect = Dialect{Comma: ','}

func (d Dialect) comma() rune {
	if d.Comma == 0 {
		return ','
	}
	return d.Comma
}

func (d Dialect) lineEnd() string {
	if d.CRLF {
		return "\r\n"
	}
	return "\n"
}

// Validate reports whether the delimiter can be used by both reader and writer.
func (d Dialect) Validate() error {
	c := d.comma()
	if c == '"' || c == '\r' || c == '\n' || c == utf8.RuneError || !utf8.ValidRune(c) {
		return fmt.Errorf("invalid delimiter %q", c)
	}
	return nil
}

// Load reads a whole table from r. The first record is the header.
//
// A leading byte order mark is dropped; UTF-16 input marked with a BOM is
// decoded to UTF-8. Malformed quoting, a record whose field count differs from
// the header, invalid UTF-8, and empty input are reported as *ParseError.
// Failures of r itself are reported as *IOError.
func Load(r io.Reader, source string, d Dialect) (*Table, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	cr.Comma = d.comma()

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Source: source, Err: ErrNoHeader}
	}
	if err != nil {
		return nil, readError(source, err)
	}
	if err := checkUTF8(cr, source, header); err != nil {
		return nil, err
	}

	t := &Table{source: source, header: header}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(source, err)
		}
		if err := checkUTF8(cr, source, record); err != nil {
			return nil, err
		}
		t.rows = append(t.rows, record)
	}
	return t, nil
}

// LoadFile opens path and loads a table from it. The file is closed before
// LoadFile returns, on success or failure.
func LoadFile(path string, d Dialect) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	return Load(f, path, d)
}

func readError(source string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Source: source, Line: pe.Line, Err: pe.Err}
	}
	return &IOError{Op: "read", Path: source, Err: err}
}

func checkUTF8(cr *csv.Reader, source string, record []string) error {
	for i, field := range record {
		if !utf8.ValidString(field) {
			line, _ := cr.FieldPos(i)
			return &ParseError{Source: source, Line: line, Err: errInvalidUTF8}
		}
	}
	return nil
}

// Write serializes the header and rows to w and flushes. Any value that Load
// produced is quoted so that loading the output yields the same value.
func (t *Table) Write(w io.Writer, d Dialect) error {
	return t.write(w, "", d)
}

// WriteFile serializes the table and atomically replaces path with the
// result. Readers of path never see a partially written file.
func (t *Table) WriteFile(path string, d Dialect) error {
	var buf bytes.Buffer
	if err := t.write(&buf, path, d); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return &IOError{Op: "replace", Path: path, Err: err}
	}
	return nil
}

func (t *Table) write(w io.Writer, path string, d Dialect) error {
	if err := d.Validate(); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = d.comma()
	cw.UseCRLF = d.CRLF

	if err := writeRecord(cw, w, t.header, d); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	for _, row := range t.rows {
		if err := writeRecord(cw, w, row, d); err != nil {
			return &IOError{Op: "write", Path: path, Err: err}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return &IOError{Op: "flush", Path: path, Err: err}
	}
	return nil
}

// writeRecord writes one record. csv.Writer emits a lone empty field as a
// blank line, which csv.Reader skips, so that record is written as "" instead.
func writeRecord(cw *csv.Writer, w io.Writer, record []string, d Dialect) error {
	if len(record) != 1 || record[0] != "" {
		return cw.Write(record)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(w, `""`+d.lineEnd())
	return err
}
