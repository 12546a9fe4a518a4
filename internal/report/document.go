package report

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sctk/internal/domain"
)

// CellType discriminates the value a Cell carries.
type CellType int

const (
	CellEmpty CellType = iota
	CellString
	CellFloat
	CellInt
	CellBool
)

// Cell is one typed value in a report grid.
type Cell struct {
	Type  CellType
	Str   string
	Float float64
	Int   int
	Bool  bool
}

// String returns a string cell.
func String(s string) Cell { return Cell{Type: CellString, Str: s} }

// Float returns a float cell.
func Float(f float64) Cell { return Cell{Type: CellFloat, Float: f} }

// Int returns an integer cell.
func Int(n int) Cell { return Cell{Type: CellInt, Int: n} }

// Bool returns a boolean cell.
func Bool(b bool) Cell { return Cell{Type: CellBool, Bool: b} }

// Empty returns an empty cell, used as a placeholder in checklist
// columns and for absent values.
func Empty() Cell { return Cell{Type: CellEmpty} }

// FloatOr returns a float cell when the GPA is present, otherwise an
// empty cell. Extracts leave GPA blank for first-term members, and the
// reports keep those cells blank rather than writing zeros.
func FloatOr(g domain.GPA) Cell {
	if !g.Valid {
		return Empty()
	}
	return Float(g.Value)
}

// Value returns the cell's dynamic value, nil for empty cells.
func (c Cell) Value() any {
	switch c.Type {
	case CellString:
		return c.Str
	case CellFloat:
		return c.Float
	case CellInt:
		return c.Int
	case CellBool:
		return c.Bool
	default:
		return nil
	}
}

// Sheet is a named grid of typed cells.
type Sheet struct {
	Name string
	Rows [][]Cell
}

// AppendRow adds one row to the sheet.
func (s *Sheet) AppendRow(cells ...Cell) {
	s.Rows = append(s.Rows, cells)
}

// Document is one generated report: an identified, timestamped
// sequence of sheets ready for a Sink.
type Document struct {
	ID          string
	Title       string
	Term        domain.Term
	GeneratedAt time.Time
	Sheets      []Sheet
}

// NewDocument returns an empty document for the given report title and
// target term.
func NewDocument(title string, term domain.Term) *Document {
	return &Document{
		ID:          uuid.NewString(),
		Title:       title,
		Term:        term,
		GeneratedAt: time.Now(),
	}
}

// AddSheet appends a sheet and returns a pointer to it for row writes.
func (d *Document) AddSheet(name string) *Sheet {
	d.Sheets = append(d.Sheets, Sheet{Name: name})
	return &d.Sheets[len(d.Sheets)-1]
}

// Sink persists a finished document and returns the path it was
// written to.
type Sink interface {
	Write(doc *Document) (string, error)
}

// invalid in spreadsheet sheet names, which cap at 31 characters
var sheetNameReplacer = strings.NewReplacer(
	":", "", "\\", "", "/", "", "?", "", "*", "", "[", "", "]", "",
)

// SafeSheetName normalizes a candidate sheet name to the character
// set and length spreadsheet formats accept.
func SafeSheetName(name string) string {
	name = strings.TrimSpace(sheetNameReplacer.Replace(name))
	if name == "" {
		name = "Sheet"
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
