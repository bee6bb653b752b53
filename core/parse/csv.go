// Package parse turns raw file content into the core table model.
// This file implements the CSV parser: a single left-to-right scan that
// honors quoted fields, escaped quotes ("") and embedded newlines, followed
// by a validation pass that fixes the header row and drops malformed rows.
package parse

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gaurav-prasanna/sheetpress/core"
	"github.com/gaurav-prasanna/sheetpress/core/infer"
	"github.com/gaurav-prasanna/sheetpress/core/rowid"
)

// CSVParser parses comma-separated text into a Table.
type CSVParser struct{}

// NewCSV creates a CSVParser.
func NewCSV() *CSVParser {
	return &CSVParser{}
}

// Parse scans the full CSV text and returns the typed table.
// The first valid row is the header row; data rows must match the header
// width (one empty trailing cell is tolerated) or they are dropped.
func (p *CSVParser) Parse(text string) (*core.Table, error) {
	raw := scan(text)

	// Rows that are a single empty cell are trailing-newline artifacts.
	rows := raw[:0]
	for _, r := range raw {
		if len(r) == 1 && r[0] == "" {
			continue
		}
		rows = append(rows, r)
	}

	if len(rows) == 0 {
		return nil, core.NewParseError("file appears empty")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var tableRows []core.Row
	for _, r := range rows[1:] {
		switch {
		case len(r) == len(headers):
		case len(r) == len(headers)+1 && r[len(r)-1] == "":
			r = r[:len(headers)]
		default:
			continue // malformed width, drop silently
		}

		values := make(map[string]string, len(headers))
		for i, h := range headers {
			// Duplicate headers: first occurrence wins.
			if _, taken := values[h]; taken {
				continue
			}
			values[h] = r[i]
		}
		tableRows = append(tableRows, core.Row{ID: rowid.New(), Values: values})
	}

	if len(tableRows) == 0 {
		return nil, core.NewParseError("no valid data rows found")
	}

	columns := make([]core.Column, len(headers))
	for i, h := range headers {
		columns[i] = core.Column{
			Key:   h,
			Label: capitalize(h),
			Type:  inferColumn(h, tableRows),
		}
	}

	return core.NewTable(columns, tableRows), nil
}

// scan tokenizes the input in one pass, maintaining a quoting flag.
// Inside quotes every character is literal except `""`, which emits one
// double-quote. Outside quotes a comma ends the cell and CR, LF or CRLF
// ends the row. A pending cell or row at end of input is flushed.
func scan(text string) [][]string {
	var (
		rows [][]string
		row  []string
		cell strings.Builder
	)
	inQuotes := false

	for i := 0; i < len(text); {
		ch := text[i]

		if inQuotes {
			if ch == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					cell.WriteByte('"') // escaped quote
					i += 2
					continue
				}
				inQuotes = false
				i++
				continue
			}
			cell.WriteByte(ch)
			i++
			continue
		}

		switch ch {
		case '"':
			inQuotes = true
			i++
		case ',':
			row = append(row, cell.String())
			cell.Reset()
			i++
		case '\r', '\n':
			row = append(row, cell.String())
			cell.Reset()
			rows = append(rows, row)
			row = nil
			if ch == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i += 2 // CRLF is one terminator
			} else {
				i++
			}
		default:
			cell.WriteByte(ch)
			i++
		}
	}

	if cell.Len() > 0 || len(row) > 0 {
		row = append(row, cell.String())
		rows = append(rows, row)
	}
	return rows
}

// inferColumn runs type inference over one column's values in row order.
func inferColumn(key string, rows []core.Row) core.ColumnType {
	values := make([]string, len(rows))
	for i, r := range rows {
		values[i] = r.Values[key]
	}
	return infer.ColumnType(values)
}

// capitalize upper-cases the first rune for display labels.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
