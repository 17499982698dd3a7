// Package output renders tables and errors for the CLI.
//
// Output adapts to the environment: on a terminal, tables are drawn with
// box characters; when piped, they are written as delimited text so that
// csvtool commands compose in shell pipelines.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/csvtool/internal/table"
)

// Mode is an output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeCSV      Mode = "csv"
	ModeTable    Mode = "table"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
)

// Modes lists the accepted --output values.
var Modes = []Mode{ModeAuto, ModeCSV, ModeTable, ModeMarkdown, ModeJSON, ModeYAML}

// ParseMode parses an output mode name. "md" and "yml" are accepted as
// short forms.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(s))
	switch m {
	case "md":
		return ModeMarkdown, nil
	case "yml":
		return ModeYAML, nil
	}
	for _, valid := range Modes {
		if m == valid {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid output format %q (expected auto, csv, table, markdown, json or yaml)", s)
}

// Renderer writes tables to out and diagnostics to errOut.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	errTTY bool
}

// NewRenderer creates a renderer, detecting whether out and errOut are terminals.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTerminal(out),
		errTTY: isTerminal(errOut),
	}
}

// NewRendererWithTTY creates a renderer with an explicit terminal state for
// both streams. Used by tests.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		errTTY: isTTY,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// EffectiveMode resolves ModeAuto (and the empty mode) against the terminal state.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto && r.mode != "" {
		return r.mode
	}
	if r.isTTY {
		return ModeTable
	}
	return ModeCSV
}

// Table writes t in the effective mode. d is used by the csv mode.
func (r *Renderer) Table(t *table.Table, d table.Dialect) error {
	switch r.EffectiveMode() {
	case ModeTable:
		return r.write(renderPretty(t, false))
	case ModeMarkdown:
		return r.write(renderPretty(t, true))
	case ModeJSON:
		return r.json(t)
	case ModeYAML:
		return r.yaml(t)
	default:
		return t.Write(r.out, d)
	}
}

// Error prints err to the error stream, prefixed with "Error:".
func (r *Renderer) Error(err error) {
	prefix := "Error:"
	if r.errTTY {
		style := lipgloss.NewRenderer(r.errOut).NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
		prefix = style.Render(prefix)
	}
	_, _ = fmt.Fprintf(r.errOut, "%s %v\n", prefix, err)
}

func (r *Renderer) write(s string) error {
	if _, err := io.WriteString(r.out, s); err != nil {
		return &table.IOError{Op: "write", Err: err}
	}
	return nil
}

func renderPretty(t *table.Table, markdown bool) string {
	style := prettytable.StyleLight
	style.Format.Header = text.FormatDefault
	tw := prettytable.NewWriter()
	tw.SetStyle(style)

	tw.AppendHeader(toRow(t.Header()))
	for _, row := range t.Rows() {
		tw.AppendRow(toRow(row))
	}

	if markdown {
		return tw.RenderMarkdown() + "\n"
	}
	return tw.Render() + "\n" + fmt.Sprintf("(%d rows)\n", t.Len())
}

func toRow(cells []string) prettytable.Row {
	row := make(prettytable.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

// record is one data row encoded as a JSON object whose keys keep header order.
type record struct {
	header []string
	t      *table.Table
	row    int
}

func (rec record) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, name := range rec.header {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(rec.t.Cell(rec.row, i))
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (r *Renderer) json(t *table.Table) error {
	header := t.Header()
	records := make([]record, t.Len())
	for i := range records {
		records[i] = record{header: header, t: t, row: i}
	}

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return &table.IOError{Op: "write", Err: err}
	}
	return nil
}

// yaml writes t as a sequence of mappings. Mapping keys keep header order and
// every value is tagged as a string so that "42" or "true" stay text.
func (r *Renderer) yaml(t *table.Table) error {
	header := t.Header()
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	if t.Len() == 0 {
		doc.Style = yaml.FlowStyle
	}
	for i := range t.Len() {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for j, name := range header {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.Cell(i, j)},
			)
		}
		doc.Content = append(doc.Content, m)
	}

	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return &table.IOError{Op: "write", Err: err}
	}
	if err := enc.Close(); err != nil {
		return &table.IOError{Op: "write", Err: err}
	}
	return nil
}
