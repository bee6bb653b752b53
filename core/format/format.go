// Package format applies inline markup operations over a selection of
// cells. Operations are commands against an owned table value: they return
// a new table and never mutate the input, never fail, and skip selection
// entries that no longer resolve to a cell.
package format

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/sheetpress/core"
)

// OpKind names a formatting operation.
type OpKind string

const (
	OpBold   OpKind = "bold"
	OpItalic OpKind = "italic"
	OpColor  OpKind = "color"
	OpClear  OpKind = "clear"
)

// Op is one requested formatting operation. Color carries the hex value
// for OpColor and is ignored otherwise.
type Op struct {
	Kind  OpKind
	Color string
}

var (
	colorRe  = regexp.MustCompile(`\[color=[^\]]*\](.*?)\[/color\]`)
	boldRe   = regexp.MustCompile(`\*([^*]+)\*`)
	italicRe = regexp.MustCompile(`_([^_]+)_`)
)

// Apply runs op over every selected cell present in the table and returns
// the updated table. An empty selection is a no-op copy.
func Apply(t *core.Table, selection []core.CellRef, op Op) *core.Table {
	out := t.Clone()
	if len(selection) == 0 {
		return out
	}

	selected := make(map[core.CellRef]bool, len(selection))
	for _, ref := range selection {
		selected[ref] = true
	}

	for i := range out.Rows {
		row := &out.Rows[i]
		for _, col := range out.Columns {
			if !selected[core.CellRef{RowID: row.ID, ColumnKey: col.Key}] {
				continue
			}
			row.Values[col.Key] = applyToCell(row.Values[col.Key], op)
		}
	}
	return out
}

// applyToCell transforms one cell's text. Clear works on the whole text;
// the other operations run per line with the block prefix held aside so
// formatting never corrupts block structure.
func applyToCell(text string, op Op) string {
	if op.Kind == OpClear {
		return clearFormatting(text)
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		prefix, rest := splitBlockPrefix(strings.TrimSpace(line))
		switch op.Kind {
		case OpBold:
			rest = toggleBold(rest)
		case OpItalic:
			rest = toggleItalic(rest)
		case OpColor:
			rest = applyColor(rest, op.Color)
		}
		lines[i] = prefix + rest
	}
	return strings.Join(lines, "\n")
}

// splitBlockPrefix detects a heading ("h1 "–"h3 "), numbered-list ("# ")
// or bullet ("+ ", "- ", "* ") prefix and returns it separately from the
// remaining text. The prefix keeps its original spelling.
func splitBlockPrefix(line string) (prefix, rest string) {
	if len(line) >= 3 && (line[0] == 'h' || line[0] == 'H') &&
		line[1] >= '1' && line[1] <= '3' && line[2] == ' ' {
		return line[:3], line[3:]
	}
	if len(line) >= 2 && line[1] == ' ' {
		switch line[0] {
		case '#', '+', '-', '*':
			return line[:2], line[2:]
		}
	}
	return "", line
}

// toggleBold removes exactly one leading and one trailing asterisk when
// both are present, otherwise wraps the text.
func toggleBold(text string) string {
	t := strings.TrimSpace(text)
	if len(t) >= 2 && t[0] == '*' && t[len(t)-1] == '*' {
		return t[1 : len(t)-1]
	}
	return "*" + t + "*"
}

// toggleItalic wraps in underscores, but removal strips every leading and
// trailing underscore. The asymmetry with toggleBold is inherited behavior
// that callers depend on.
func toggleItalic(text string) string {
	t := strings.TrimSpace(text)
	if len(t) >= 2 && t[0] == '_' && t[len(t)-1] == '_' {
		return strings.Trim(t, "_")
	}
	return "_" + t + "_"
}

// applyColor strips any existing color wrapper, then wraps the remainder
// in the requested color. Reapplying always replaces, never toggles.
func applyColor(text, color string) string {
	t := colorRe.ReplaceAllString(strings.TrimSpace(text), "$1")
	if !strings.HasPrefix(color, "#") {
		color = "#" + color
	}
	return "[color=" + color + "]" + t + "[/color]"
}

// clearFormatting strips color wrappers, bold pairs and italic pairs, in
// that order, in a single non-recursive pass. Interleaved markup that
// survives one pass is a known limitation.
func clearFormatting(text string) string {
	text = colorRe.ReplaceAllString(text, "$1")
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	return text
}
