// Package core defines the table model and pipeline interfaces for SheetPress.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// ColumnType classifies the values of a column. It is decided once at
// ingestion and never re-derived on edit.
type ColumnType string

const (
	TypeText     ColumnType = "text"
	TypeNumber   ColumnType = "number"
	TypeCurrency ColumnType = "currency"
	TypeDate     ColumnType = "date"
	TypeTag      ColumnType = "tag"
)

// Column is one entry of a table's ordered schema.
type Column struct {
	Key   string     `json:"key"`   // stable identifier, unique within the table
	Label string     `json:"label"` // display name
	Type  ColumnType `json:"type"`
}

// Row holds one record. ID is opaque, generated at ingestion and never
// reused; it is independent of the column values.
type Row struct {
	ID     string            `json:"id"`
	Values map[string]string `json:"values"`
}

// Table is an ordered column schema plus rows in source order.
// Construct through NewTable so the schema invariants hold.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable builds a Table from a schema and rows. Columns with a duplicate
// key are dropped (first occurrence wins) and row values whose key is not
// in the schema are discarded, so every table is valid by construction.
func NewTable(columns []Column, rows []Row) *Table {
	seen := make(map[string]bool, len(columns))
	schema := make([]Column, 0, len(columns))
	for _, c := range columns {
		if seen[c.Key] {
			continue
		}
		seen[c.Key] = true
		schema = append(schema, c)
	}

	kept := make([]Row, 0, len(rows))
	for _, r := range rows {
		values := make(map[string]string, len(schema))
		for k, v := range r.Values {
			if seen[k] {
				values[k] = v
			}
		}
		kept = append(kept, Row{ID: r.ID, Values: values})
	}

	return &Table{Columns: schema, Rows: kept}
}

// Column returns the schema entry for key, if present.
func (t *Table) Column(key string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// Clone returns a deep copy. Mutating stages operate on a copy so the
// caller's table is never changed in place.
func (t *Table) Clone() *Table {
	cols := make([]Column, len(t.Columns))
	copy(cols, t.Columns)
	rows := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		values := make(map[string]string, len(r.Values))
		for k, v := range r.Values {
			values[k] = v
		}
		rows[i] = Row{ID: r.ID, Values: values}
	}
	return &Table{Columns: cols, Rows: rows}
}

// CellRef addresses one cell of a table.
type CellRef struct {
	RowID     string
	ColumnKey string
}

// PaperSize is a supported print sheet format.
type PaperSize string

const (
	PaperA4     PaperSize = "a4"
	PaperLetter PaperSize = "letter"
	PaperLegal  PaperSize = "legal"
)

// Orientation is the print sheet orientation.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// RenderOptions carries everything a renderer needs besides the table.
type RenderOptions struct {
	Title       string
	Summary     string
	SourceName  string
	Paper       PaperSize
	Orientation Orientation
	RowsPerPage int
}

// Parser turns raw file text into a Table.
type Parser interface {
	Parse(text string) (*Table, error)
}

// Renderer converts a table into a final output format.
type Renderer interface {
	Render(table *Table, opts RenderOptions) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".pdf").
	Extension() string
}

// TableExtractor is the document-extraction collaborator: it receives raw
// file bytes plus a MIME type and returns a header list and row matrix.
type TableExtractor interface {
	ExtractTable(ctx context.Context, data []byte, mime string) (headers []string, rows [][]string, err error)
}

// Analyzer is the analysis collaborator. Implementations must degrade to a
// fixed fallback instead of returning an error.
type Analyzer interface {
	Analyze(ctx context.Context, table *Table) (summary, suggestedTitle string)
}
