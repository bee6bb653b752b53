// Package render — JSON renderer.
// Emits the full typed table plus page boundaries as indented JSON, so
// downstream tools get the schema, the rows in source order and the print
// layout without re-deriving anything.
package render

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gaurav-prasanna/sheetpress/core"
	"github.com/gaurav-prasanna/sheetpress/core/paginate"
)

// JSONRenderer produces structured JSON output for a table.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// tableJSON is the complete JSON document for one export.
type tableJSON struct {
	Metadata tableMetadata `json:"metadata"`
	Columns  []core.Column `json:"columns"`
	Rows     []core.Row    `json:"rows"`
	Pages    [][]string    `json:"pages"` // row ids per printed sheet
}

type tableMetadata struct {
	Title       string `json:"title,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Source      string `json:"source,omitempty"`
	GeneratedAt string `json:"generated_at"` // ISO8601
	Paper       string `json:"paper"`
	Orientation string `json:"orientation"`
	RowsPerPage int    `json:"rows_per_page"`
	RowCount    int    `json:"row_count"`
}

// Render converts the table and options into the JSON document.
func (r *JSONRenderer) Render(table *core.Table, opts core.RenderOptions) ([]byte, error) {
	perPage := opts.RowsPerPage
	if perPage == 0 {
		perPage = paginate.DefaultRowsPerPage(opts.Orientation)
	}
	perPage = paginate.Clamp(perPage)

	pages := paginate.Pages(table.Rows, perPage)
	pageIDs := make([][]string, len(pages))
	for i, page := range pages {
		ids := make([]string, len(page))
		for j, row := range page {
			ids[j] = row.ID
		}
		pageIDs[i] = ids
	}

	paper := opts.Paper
	if paper == "" {
		paper = core.PaperA4
	}
	orientation := opts.Orientation
	if orientation == "" {
		orientation = core.Portrait
	}

	doc := tableJSON{
		Metadata: tableMetadata{
			Title:       opts.Title,
			Summary:     opts.Summary,
			Source:      opts.SourceName,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Paper:       string(paper),
			Orientation: string(orientation),
			RowsPerPage: perPage,
			RowCount:    len(table.Rows),
		},
		Columns: table.Columns,
		Rows:    table.Rows,
		Pages:   pageIDs,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
