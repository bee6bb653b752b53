// Package parse — HTML table parser.
// Extracts the first <table> element into the table model using goquery.
// Inline formatting inside cells (<b>, <i>, ...) is carried over into the
// cell markup language via html-to-markdown so it survives ingestion.
package parse

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/sheetpress/core"
	"github.com/gaurav-prasanna/sheetpress/core/rowid"
)

// HTMLParser parses HTML/HTM markup into a Table.
type HTMLParser struct{}

// NewHTML creates an HTMLParser.
func NewHTML() *HTMLParser {
	return &HTMLParser{}
}

// Parse locates the first table in document order and builds a Table from
// it. Selecting among multiple tables is not supported: first match wins.
func (p *HTMLParser) Parse(text string) (*core.Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, core.NewParseError("no table found in document")
	}

	// Header row: prefer an explicit <thead>, fall back to the first row.
	headerRow := table.Find("thead tr").First()
	usedThead := headerRow.Length() > 0
	if !usedThead {
		headerRow = table.Find("tr").First()
	}
	if headerRow.Length() == 0 {
		return nil, core.NewParseError("table has no rows")
	}

	var headers []string
	headerRow.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		label := strings.TrimSpace(cell.Text())
		if label == "" {
			label = fmt.Sprintf("Column %d", i+1)
		}
		headers = append(headers, label)
	})
	if len(headers) == 0 {
		return nil, core.NewParseError("table has no header cells")
	}

	// Body rows: prefer an explicit <tbody>, else every row after the first.
	var bodyRows *goquery.Selection
	if tbody := table.Find("tbody tr"); tbody.Length() > 0 {
		bodyRows = tbody
	} else {
		bodyRows = table.Find("tr").Slice(1, goquery.ToEnd)
	}

	var tableRows []core.Row
	bodyRows.Each(func(_ int, tr *goquery.Selection) {
		values := make(map[string]string, len(headers))
		hasContent := false

		tr.Find("td, th").Each(func(i int, cell *goquery.Selection) {
			if i >= len(headers) {
				return // cells beyond the header count are ignored
			}
			key := headers[i]
			if _, taken := values[key]; taken {
				return
			}
			text := cellText(cell)
			values[key] = text
			if text != "" {
				hasContent = true
			}
		})

		// Fully blank rows (spacers) are discarded.
		if hasContent {
			tableRows = append(tableRows, core.Row{ID: rowid.New(), Values: values})
		}
	})

	if len(tableRows) == 0 {
		return nil, core.NewParseError("table has no data rows")
	}

	columns := make([]core.Column, len(headers))
	for i, h := range headers {
		columns[i] = core.Column{
			Key:   h,
			Label: h,
			Type:  inferColumn(h, tableRows),
		}
	}

	return core.NewTable(columns, tableRows), nil
}

// cellText extracts a cell's trimmed text. Cells carrying inline formatting
// elements go through html-to-markdown and the result is mapped into the
// cell markup language; on conversion failure the plain text is kept.
func cellText(cell *goquery.Selection) string {
	if cell.Find("b, strong, i, em").Length() == 0 {
		return strings.TrimSpace(cell.Text())
	}

	inner, err := cell.Html()
	if err != nil {
		return strings.TrimSpace(cell.Text())
	}
	md, err := htmltomarkdown.ConvertString(inner)
	if err != nil {
		return strings.TrimSpace(cell.Text())
	}
	return strings.TrimSpace(markdownToCellMarkup(md))
}

// markdownToCellMarkup maps Markdown emphasis onto the cell markup
// delimiters: **bold** becomes *bold*, *italic* (or _italic_) becomes
// _italic_.
func markdownToCellMarkup(md string) string {
	const boldMark = "\x00"
	s := strings.ReplaceAll(md, "**", boldMark)
	s = strings.ReplaceAll(s, "*", "_")
	s = strings.ReplaceAll(s, boldMark, "*")
	return s
}
