// Package parse — raw-matrix structurer.
// Adapts an externally supplied header list and row-value matrix (as
// returned by the document-extraction collaborator) into the table model.
package parse

import (
	"github.com/gaurav-prasanna/sheetpress/core"
	"github.com/gaurav-prasanna/sheetpress/core/rowid"
)

// FromMatrix builds a Table from ordered headers and rows of string values.
// Shape mismatches are never an error: values beyond the header count are
// dropped and missing values default to the empty string.
func FromMatrix(headers []string, rows [][]string) *core.Table {
	tableRows := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		values := make(map[string]string, len(headers))
		for i, h := range headers {
			if _, taken := values[h]; taken {
				continue
			}
			if i < len(r) {
				values[h] = r[i]
			} else {
				values[h] = ""
			}
		}
		tableRows = append(tableRows, core.Row{ID: rowid.New(), Values: values})
	}

	columns := make([]core.Column, len(headers))
	for i, h := range headers {
		columns[i] = core.Column{
			Key:   h,
			Label: capitalize(h),
			Type:  inferColumn(h, tableRows),
		}
	}

	return core.NewTable(columns, tableRows)
}
