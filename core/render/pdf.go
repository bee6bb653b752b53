// Package render — PDF renderer.
// Lays the table out as a printable multi-page document using gofpdf: one
// sheet per paginator page on the selected paper size and orientation,
// with the header row repeated on every sheet. Inline cell markup is
// flattened for print; whole-cell bold/italic/color styling is honored.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/sheetpress/core"
	"github.com/gaurav-prasanna/sheetpress/core/paginate"
	"github.com/gaurav-prasanna/sheetpress/core/richtext"
)

const (
	pageMargin   = 15.0 // mm
	headerHeight = 8.0
	rowHeight    = 7.0
	cellPadding  = 2.0
)

// PDFRenderer renders a table as a paginated PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the table into PDF bytes.
func (r *PDFRenderer) Render(table *core.Table, opts core.RenderOptions) ([]byte, error) {
	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("table has no columns to render")
	}

	orientation := "P"
	if opts.Orientation == core.Landscape {
		orientation = "L"
	}

	pdf := gofpdf.New(orientation, "mm", paperName(opts.Paper), "")
	pdf.SetAutoPageBreak(false, pageMargin)

	perPage := opts.RowsPerPage
	if perPage == 0 {
		perPage = paginate.DefaultRowsPerPage(opts.Orientation)
	}
	perPage = paginate.Clamp(perPage)
	pages := paginate.Pages(table.Rows, perPage)

	geom := paginate.PaperGeometry(opts.Paper, opts.Orientation)
	colWidth := (geom.WidthMM - 2*pageMargin) / float64(len(table.Columns))

	if len(pages) == 0 {
		// A table with zero visible rows still exports its schema.
		pages = [][]core.Row{nil}
	}

	for pageNum, pageRows := range pages {
		pdf.AddPage()
		pdf.SetXY(pageMargin, pageMargin)

		if pageNum == 0 {
			renderTitle(pdf, opts)
		}

		renderHeaderRow(pdf, table.Columns, colWidth)
		for _, row := range pageRows {
			renderDataRow(pdf, table.Columns, row, colWidth)
		}

		renderFooter(pdf, geom, pageNum+1, len(pages))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// paperName maps a paper size onto gofpdf's format names.
func paperName(p core.PaperSize) string {
	switch p {
	case core.PaperLetter:
		return "Letter"
	case core.PaperLegal:
		return "Legal"
	default:
		return "A4"
	}
}

// renderTitle writes the title block on the first sheet.
func renderTitle(pdf *gofpdf.Fpdf, opts core.RenderOptions) {
	if opts.Title != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.MultiCell(0, 8, opts.Title, "", "L", false)
	}
	if opts.Summary != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(80, 80, 80)
		pdf.MultiCell(0, 5, opts.Summary, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}
	if opts.SourceName != "" {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.MultiCell(0, 4, fmt.Sprintf("Source: %s (%s)", opts.SourceName,
			time.Now().Format("2006-01-02")), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)
	pdf.SetX(pageMargin)
}

// renderHeaderRow draws the column labels with a filled background.
func renderHeaderRow(pdf *gofpdf.Fpdf, columns []core.Column, colWidth float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	for _, col := range columns {
		label := truncateToWidth(pdf, col.Label, colWidth-cellPadding)
		pdf.CellFormat(colWidth, headerHeight, label, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(headerHeight)
	pdf.SetX(pageMargin)
}

// renderDataRow draws one table row. Cell text is the flattened markup;
// alignment follows the column type.
func renderDataRow(pdf *gofpdf.Fpdf, columns []core.Column, row core.Row, colWidth float64) {
	for _, col := range columns {
		raw := row.Values[col.Key]
		text := strings.ReplaceAll(richtext.Flatten(raw), "\n", " ")

		style, colorHex := cellStyle(raw)
		pdf.SetFont("Helvetica", style, 9)
		if r, g, b, ok := parseHexColor(colorHex); ok {
			pdf.SetTextColor(r, g, b)
		}

		text = truncateToWidth(pdf, text, colWidth-cellPadding)
		pdf.CellFormat(colWidth, rowHeight, text, "1", 0, alignFor(col.Type), false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(rowHeight)
	pdf.SetX(pageMargin)
}

// renderFooter writes the sheet number at the bottom of the page.
func renderFooter(pdf *gofpdf.Fpdf, geom paginate.Geometry, page, total int) {
	pdf.SetY(geom.HeightMM - 10)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of %d", page, total), "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// alignFor maps column types onto cell alignment: numeric values align
// right, tags center, everything else left.
func alignFor(t core.ColumnType) string {
	switch t {
	case core.TypeNumber, core.TypeCurrency:
		return "R"
	case core.TypeTag:
		return "C"
	default:
		return "L"
	}
}

// cellStyle inspects the cell's display tree. When the whole first line is
// one styled span, that style carries into print.
func cellStyle(raw string) (style string, colorHex string) {
	blocks := richtext.Parse(raw)
	if len(blocks) == 0 || len(blocks[0].Spans) != 1 {
		return "", ""
	}

	return spanStyle(blocks[0].Spans[0])
}

// spanStyle resolves the gofpdf style string and color of a single span
// chain (color wrapping bold wrapping italic).
func spanStyle(span richtext.Span) (style string, colorHex string) {
	for {
		switch span.Kind {
		case richtext.SpanColor:
			colorHex = span.Color
		case richtext.SpanBold:
			style += "B"
		case richtext.SpanItalic:
			style += "I"
		default:
			return style, colorHex
		}
		if len(span.Children) != 1 {
			return style, colorHex
		}
		span = span.Children[0]
	}
}

// parseHexColor decodes "#RGB" or "#RRGGBB".
func parseHexColor(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}
	var vals [3]int
	for i := 0; i < 3; i++ {
		hi, ok1 := hexVal(hex[i*2])
		lo, ok2 := hexVal(hex[i*2+1])
		if !ok1 || !ok2 {
			return 0, 0, 0, false
		}
		vals[i] = hi*16 + lo
	}
	return vals[0], vals[1], vals[2], true
}

func hexVal(ch byte) (int, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0'), true
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10, true
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10, true
	}
	return 0, false
}

// truncateToWidth shortens text with an ellipsis so it fits the cell.
func truncateToWidth(pdf *gofpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
