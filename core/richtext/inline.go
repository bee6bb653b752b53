// Package richtext — inline span parser.
// A small recursive-descent scanner with the precedence color ⊃ bold ⊃
// italic: color content is parsed for bold, bold content for italic, and
// italic content is plain text. Spans of the same kind never nest.
package richtext

import "strings"

// SpanKind names an inline run style.
type SpanKind string

const (
	SpanText   SpanKind = "text"
	SpanBold   SpanKind = "bold"
	SpanItalic SpanKind = "italic"
	SpanColor  SpanKind = "color"
)

// Span is an inline-formatted run of text. Text is set for text spans;
// Color holds the "#hex" value for color spans; styled spans carry their
// content in Children.
type Span struct {
	Kind     SpanKind
	Text     string
	Color    string
	Children []Span
}

const (
	colorOpen  = "[color=#"
	colorClose = "[/color]"
)

// ParseInline parses one line's text (block prefix already stripped) into
// spans.
func ParseInline(text string) []Span {
	return parseColor(text)
}

// parseColor splits on [color=#hex]...[/color] pairs. Hex values must be
// exactly 3 or 6 digits; anything else leaves the marker as literal text.
func parseColor(s string) []Span {
	var spans []Span
	start := 0 // start of unconsumed text
	i := 0

	for i < len(s) {
		idx := strings.Index(s[i:], colorOpen)
		if idx < 0 {
			break
		}
		open := i + idx

		hexStart := open + len(colorOpen)
		hexEnd := hexStart
		for hexEnd < len(s) && isHexDigit(s[hexEnd]) {
			hexEnd++
		}
		n := hexEnd - hexStart
		if (n != 3 && n != 6) || hexEnd >= len(s) || s[hexEnd] != ']' {
			i = open + 1
			continue
		}

		contentStart := hexEnd + 1
		closeIdx := strings.Index(s[contentStart:], colorClose)
		if closeIdx < 0 {
			i = open + 1
			continue
		}
		contentEnd := contentStart + closeIdx

		if open > start {
			spans = append(spans, parseBold(s[start:open])...)
		}
		spans = append(spans, Span{
			Kind:     SpanColor,
			Color:    "#" + s[hexStart:hexEnd],
			Children: parseBold(s[contentStart:contentEnd]),
		})

		i = contentEnd + len(colorClose)
		start = i
	}

	if start < len(s) {
		spans = append(spans, parseBold(s[start:])...)
	}
	return spans
}

// parseBold splits on *...* pairs. The wrapped content must be at least
// one character, so "**" stays literal.
func parseBold(s string) []Span {
	var spans []Span
	start := 0
	i := 0

	for i < len(s) {
		if s[i] != '*' {
			i++
			continue
		}
		j := strings.IndexByte(s[i+1:], '*')
		if j < 0 {
			break
		}
		j += i + 1
		if j == i+1 {
			// Empty pair: both markers are literal.
			i = j + 1
			continue
		}

		if i > start {
			spans = append(spans, parseItalic(s[start:i])...)
		}
		spans = append(spans, Span{
			Kind:     SpanBold,
			Children: parseItalic(s[i+1 : j]),
		})

		i = j + 1
		start = i
	}

	if start < len(s) {
		spans = append(spans, parseItalic(s[start:])...)
	}
	return spans
}

// parseItalic splits on _..._ pairs; content is plain text (innermost).
func parseItalic(s string) []Span {
	var spans []Span
	start := 0
	i := 0

	for i < len(s) {
		if s[i] != '_' {
			i++
			continue
		}
		j := strings.IndexByte(s[i+1:], '_')
		if j < 0 {
			break
		}
		j += i + 1
		if j == i+1 {
			i = j + 1
			continue
		}

		if i > start {
			spans = append(spans, Span{Kind: SpanText, Text: s[start:i]})
		}
		spans = append(spans, Span{
			Kind:     SpanItalic,
			Children: []Span{{Kind: SpanText, Text: s[i+1 : j]}},
		})

		i = j + 1
		start = i
	}

	if start < len(s) {
		spans = append(spans, Span{Kind: SpanText, Text: s[start:]})
	}
	return spans
}

func isHexDigit(ch byte) bool {
	switch {
	case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'f', ch >= 'A' && ch <= 'F':
		return true
	}
	return false
}

// writeSpans appends the plain text of spans to sb.
func writeSpans(sb *strings.Builder, spans []Span) {
	for _, sp := range spans {
		if sp.Kind == SpanText {
			sb.WriteString(sp.Text)
			continue
		}
		writeSpans(sb, sp.Children)
	}
}
