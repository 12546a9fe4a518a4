// Package schema validates raw tabular input against the fixed column
// layouts of the campus roster and grade report extracts. Validation is
// strict and case-sensitive: grade data drives probationary outcomes
// for real students, so a misspelled or shifted header is fatal rather
// than guessed around.
package schema

import (
	"fmt"
	"strings"
)

// Descriptor describes where a table's header row sits and which
// columns it must carry, in order.
type Descriptor struct {
	// HeaderRow is the zero-based index of the header row. Rows above
	// it are preamble emitted by the campus reporting tool and are
	// ignored.
	HeaderRow int
	// Columns is the exact, ordered list of required column names.
	Columns []string
}

// SchemaError reports the first schema violation found in a raw table.
type SchemaError struct {
	Row    int    // zero-based row index of the offense
	Column string // offending column name, empty for offset problems
	Reason string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("schema: row %d, column %q: %s", e.Row+1, e.Column, e.Reason)
	}
	return fmt.Sprintf("schema: row %d: %s", e.Row+1, e.Reason)
}

// Table is a validated, column-name-indexed table. Data rows keep the
// order they had in the raw input.
type Table struct {
	columns map[string]int
	rows    [][]string
}

// Validate checks a raw table against the descriptor and returns a
// column-indexed view of its data rows. It fails with *SchemaError on
// a wrong header offset or on the first missing or misspelled column.
// The raw input is never modified.
func Validate(raw [][]string, d Descriptor) (*Table, error) {
	if d.HeaderRow < 0 || d.HeaderRow >= len(raw) {
		return nil, &SchemaError{
			Row:    d.HeaderRow,
			Reason: fmt.Sprintf("header row out of range, table has %d rows", len(raw)),
		}
	}

	header := raw[d.HeaderRow]
	for i, want := range d.Columns {
		if i >= len(header) {
			return nil, &SchemaError{Row: d.HeaderRow, Column: want, Reason: "column missing"}
		}
		if got := strings.TrimSpace(header[i]); got != want {
			return nil, &SchemaError{
				Row:    d.HeaderRow,
				Column: want,
				Reason: fmt.Sprintf("expected column %q, found %q", want, got),
			}
		}
	}

	columns := make(map[string]int, len(d.Columns))
	for i, name := range d.Columns {
		columns[name] = i
	}

	return &Table{columns: columns, rows: raw[d.HeaderRow+1:]}, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Cell returns the trimmed value at the given data row for the named
// column. Rows shorter than the header read as empty cells. Unknown
// column names panic: they indicate a programming error, not bad input.
func (t *Table) Cell(row int, column string) string {
	idx, ok := t.columns[column]
	if !ok {
		panic(fmt.Sprintf("schema: unknown column %q", column))
	}
	if idx >= len(t.rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.rows[row][idx])
}
