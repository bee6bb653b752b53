// Package render provides output renderers for the SheetPress pipeline.
// This file implements the Markdown renderer: a pipe table with the cell
// markup mapped onto Markdown emphasis.
package render

import (
	"strings"

	"github.com/gaurav-prasanna/sheetpress/core"
	"github.com/gaurav-prasanna/sheetpress/core/richtext"
)

// MarkdownRenderer writes the table as a Markdown pipe table.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render produces the Markdown document. Bold and italic spans become
// Markdown emphasis; color spans reduce to their content.
func (r *MarkdownRenderer) Render(table *core.Table, opts core.RenderOptions) ([]byte, error) {
	var b strings.Builder

	if opts.Title != "" {
		b.WriteString("# " + opts.Title + "\n\n")
	}
	if opts.Summary != "" {
		b.WriteString(opts.Summary + "\n\n")
	}

	labels := make([]string, len(table.Columns))
	rules := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		labels[i] = escapeCell(col.Label)
		rules[i] = "---"
	}
	b.WriteString("| " + strings.Join(labels, " | ") + " |\n")
	b.WriteString("| " + strings.Join(rules, " | ") + " |\n")

	for _, row := range table.Rows {
		cells := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			cells[i] = escapeCell(markdownCell(row.Values[col.Key]))
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// markdownCell renders one cell's display tree as inline Markdown, with
// lines joined by <br>.
func markdownCell(raw string) string {
	blocks := richtext.Parse(raw)
	lines := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if block.Kind == richtext.BlockSpacer {
			continue
		}
		var sb strings.Builder
		writeMarkdownSpans(&sb, block.Spans)
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "<br>")
}

func writeMarkdownSpans(sb *strings.Builder, spans []richtext.Span) {
	for _, span := range spans {
		switch span.Kind {
		case richtext.SpanBold:
			sb.WriteString("**")
			writeMarkdownSpans(sb, span.Children)
			sb.WriteString("**")
		case richtext.SpanItalic:
			sb.WriteString("*")
			writeMarkdownSpans(sb, span.Children)
			sb.WriteString("*")
		case richtext.SpanColor:
			writeMarkdownSpans(sb, span.Children)
		default:
			sb.WriteString(span.Text)
		}
	}
}

// escapeCell keeps pipe characters from breaking the table.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
