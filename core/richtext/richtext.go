// Package richtext interprets the inline markup language embedded in cell
// text and produces a display tree: one block per input line, each holding
// a sequence of styled spans.
//
// Block grammar (per line, on the trimmed form):
//
//	h1 |h2 |h3   heading of that level (case-insensitive)
//	#            numbered-list item (running counter)
//	+ |- |*      bulleted-list item
//	(blank)      vertical spacing
//	otherwise    plain paragraph
//
// Inline spans nest color ⊃ bold ⊃ italic; markers of the same kind do not
// nest, and a delimiter pair with no content between the markers is
// literal text. The renderer is pure: same input, same tree, no I/O.
package richtext

import "strings"

// BlockKind names the block-level element a line produced.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockBullet    BlockKind = "bullet"
	BlockOrdered   BlockKind = "ordered"
	BlockSpacer    BlockKind = "spacer"
)

// Block is one rendered line.
type Block struct {
	Kind   BlockKind
	Level  int // heading level 1–3
	Number int // 1-based ordered-list position
	Spans  []Span
}

// Text flattens the block's spans to plain text.
func (b Block) Text() string {
	var sb strings.Builder
	writeSpans(&sb, b.Spans)
	return sb.String()
}

// Parse renders a cell's raw text into its display tree.
func Parse(text string) []Block {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	blocks := make([]Block, 0, len(lines))
	ordinal := 0 // running numbered-list counter

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Blank lines are spacing and leave the active list untouched.
		if trimmed == "" {
			blocks = append(blocks, Block{Kind: BlockSpacer})
			continue
		}

		if level, rest, ok := headingPrefix(trimmed); ok {
			ordinal = 0
			blocks = append(blocks, Block{
				Kind:  BlockHeading,
				Level: level,
				Spans: ParseInline(rest),
			})
			continue
		}

		if rest, ok := strings.CutPrefix(trimmed, "# "); ok {
			ordinal++
			blocks = append(blocks, Block{
				Kind:   BlockOrdered,
				Number: ordinal,
				Spans:  ParseInline(rest),
			})
			continue
		}

		if rest, ok := bulletPrefix(trimmed); ok {
			ordinal = 0
			blocks = append(blocks, Block{
				Kind:  BlockBullet,
				Spans: ParseInline(rest),
			})
			continue
		}

		// Paragraphs keep their original indentation; only block-prefix
		// matching works on the trimmed form.
		ordinal = 0
		blocks = append(blocks, Block{
			Kind:  BlockParagraph,
			Spans: ParseInline(strings.TrimRight(line, " \t\r")),
		})
	}

	return blocks
}

// Flatten strips all markup and returns the plain text of the cell, lines
// joined with "\n". Block prefixes are dropped.
func Flatten(text string) string {
	blocks := Parse(text)
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = b.Text()
	}
	return strings.Join(parts, "\n")
}

// headingPrefix matches "h1 ", "h2 ", "h3 " case-insensitively.
func headingPrefix(line string) (level int, rest string, ok bool) {
	if len(line) < 3 {
		return 0, "", false
	}
	if line[0] != 'h' && line[0] != 'H' {
		return 0, "", false
	}
	if line[1] < '1' || line[1] > '3' || line[2] != ' ' {
		return 0, "", false
	}
	return int(line[1] - '0'), line[3:], true
}

// bulletPrefix matches "+ ", "- ", "* ".
func bulletPrefix(line string) (rest string, ok bool) {
	if len(line) < 2 || line[1] != ' ' {
		return "", false
	}
	switch line[0] {
	case '+', '-', '*':
		return line[2:], true
	}
	return "", false
}
