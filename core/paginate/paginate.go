// Package paginate partitions a row sequence into fixed-size printable
// pages. It only computes slice boundaries; callers combine each page with
// the paper geometry to render.
package paginate

import "github.com/gaurav-prasanna/sheetpress/core"

const (
	MinRowsPerPage = 5
	MaxRowsPerPage = 100

	// Auto-selected defaults when export mode is entered.
	DefaultPortraitRows  = 20
	DefaultLandscapeRows = 12
)

// DefaultRowsPerPage returns the orientation-dependent default page size.
func DefaultRowsPerPage(o core.Orientation) int {
	if o == core.Landscape {
		return DefaultLandscapeRows
	}
	return DefaultPortraitRows
}

// Clamp bounds a requested page size to [MinRowsPerPage, MaxRowsPerPage].
// Non-positive values fall back to the portrait default.
func Clamp(rowsPerPage int) int {
	switch {
	case rowsPerPage <= 0:
		return DefaultPortraitRows
	case rowsPerPage < MinRowsPerPage:
		return MinRowsPerPage
	case rowsPerPage > MaxRowsPerPage:
		return MaxRowsPerPage
	}
	return rowsPerPage
}

// Pages splits rows into contiguous pages of the clamped size, in original
// order. The last page holds the remainder; zero rows yields zero pages.
func Pages(rows []core.Row, rowsPerPage int) [][]core.Row {
	perPage := Clamp(rowsPerPage)

	var pages [][]core.Row
	for start := 0; start < len(rows); start += perPage {
		end := start + perPage
		if end > len(rows) {
			end = len(rows)
		}
		pages = append(pages, rows[start:end])
	}
	return pages
}

// Geometry is a sheet size in millimetres.
type Geometry struct {
	WidthMM  float64
	HeightMM float64
}

// paperSizes holds portrait dimensions for each supported paper size.
var paperSizes = map[core.PaperSize]Geometry{
	core.PaperA4:     {WidthMM: 210, HeightMM: 297},
	core.PaperLetter: {WidthMM: 216, HeightMM: 279},
	core.PaperLegal:  {WidthMM: 216, HeightMM: 356},
}

// PaperGeometry returns the sheet dimensions for the paper/orientation
// pair, swapping width and height under landscape. Unknown paper sizes
// fall back to A4.
func PaperGeometry(p core.PaperSize, o core.Orientation) Geometry {
	g, ok := paperSizes[p]
	if !ok {
		g = paperSizes[core.PaperA4]
	}
	if o == core.Landscape {
		g.WidthMM, g.HeightMM = g.HeightMM, g.WidthMM
	}
	return g
}
