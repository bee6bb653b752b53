package richtext

import "testing"

func TestParseBlocks(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind BlockKind
	}{
		{"paragraph", "plain text", BlockParagraph},
		{"h1", "h1 Title", BlockHeading},
		{"h1 uppercase", "H1 Title", BlockHeading},
		{"bullet plus", "+ item", BlockBullet},
		{"bullet dash", "- item", BlockBullet},
		{"bullet star", "* item", BlockBullet},
		{"ordered", "# item", BlockOrdered},
		{"h without space is paragraph", "h1x", BlockParagraph},
		{"hash without space is paragraph", "#item", BlockParagraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Parse(tt.line)
			if len(blocks) != 1 {
				t.Fatalf("got %d blocks, want 1", len(blocks))
			}
			if blocks[0].Kind != tt.kind {
				t.Errorf("Parse(%q).Kind = %q, want %q", tt.line, blocks[0].Kind, tt.kind)
			}
		})
	}
}

func TestHeadingLevels(t *testing.T) {
	blocks := Parse("h1 a\nh2 b\nh3 c")
	for i, want := range []int{1, 2, 3} {
		if blocks[i].Kind != BlockHeading || blocks[i].Level != want {
			t.Errorf("line %d: kind=%q level=%d, want heading level %d", i, blocks[i].Kind, blocks[i].Level, want)
		}
	}
}

func TestOrderedListCounter(t *testing.T) {
	blocks := Parse("# one\n# two\n\n# three\nbreak\n# restart")

	type step struct {
		kind   BlockKind
		number int
	}
	want := []step{
		{BlockOrdered, 1},
		{BlockOrdered, 2},
		{BlockSpacer, 0}, // blank line does not reset the counter
		{BlockOrdered, 3},
		{BlockParagraph, 0},
		{BlockOrdered, 1}, // non-list line resets
	}

	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d", len(blocks), len(want))
	}
	for i, w := range want {
		if blocks[i].Kind != w.kind || blocks[i].Number != w.number {
			t.Errorf("block %d = %q #%d, want %q #%d", i, blocks[i].Kind, blocks[i].Number, w.kind, w.number)
		}
	}
}

func TestSpecHeadingExample(t *testing.T) {
	blocks := Parse("h1 *Total*: _42_")
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.Kind != BlockHeading || b.Level != 1 {
		t.Fatalf("block = %q level %d, want heading level 1", b.Kind, b.Level)
	}
	if len(b.Spans) != 3 {
		t.Fatalf("got %d spans, want 3: %#v", len(b.Spans), b.Spans)
	}
	if b.Spans[0].Kind != SpanBold || b.Spans[0].Children[0].Text != "Total" {
		t.Errorf("span 0 = %#v, want bold Total", b.Spans[0])
	}
	if b.Spans[1].Kind != SpanText || b.Spans[1].Text != ": " {
		t.Errorf("span 1 = %#v, want text %q", b.Spans[1], ": ")
	}
	if b.Spans[2].Kind != SpanItalic || b.Spans[2].Children[0].Text != "42" {
		t.Errorf("span 2 = %#v, want italic 42", b.Spans[2])
	}
}

func TestInlineColor(t *testing.T) {
	spans := ParseInline("[color=#ff0000]alert[/color] rest")
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2: %#v", len(spans), spans)
	}
	if spans[0].Kind != SpanColor || spans[0].Color != "#ff0000" {
		t.Errorf("span 0 = %#v, want color #ff0000", spans[0])
	}
	if spans[0].Children[0].Text != "alert" {
		t.Errorf("color content = %#v", spans[0].Children)
	}
	if spans[1].Kind != SpanText || spans[1].Text != " rest" {
		t.Errorf("span 1 = %#v", spans[1])
	}
}

func TestInlineColorShortHex(t *testing.T) {
	spans := ParseInline("[color=#f00]x[/color]")
	if len(spans) != 1 || spans[0].Kind != SpanColor || spans[0].Color != "#f00" {
		t.Fatalf("spans = %#v, want one color span #f00", spans)
	}
}

func TestInlineColorWrapsBoldAndItalic(t *testing.T) {
	spans := ParseInline("[color=#00ff00]*bold* and _slanted_[/color]")
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	inner := spans[0].Children
	if len(inner) != 3 {
		t.Fatalf("got %d inner spans, want 3: %#v", len(inner), inner)
	}
	if inner[0].Kind != SpanBold || inner[1].Kind != SpanText || inner[2].Kind != SpanItalic {
		t.Errorf("inner kinds = %q %q %q", inner[0].Kind, inner[1].Kind, inner[2].Kind)
	}
}

func TestInlineLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty bold pair", "a**b"},
		{"empty italic pair", "a__b"},
		{"unclosed bold", "a*b"},
		{"unclosed italic", "a_b"},
		{"bad hex length", "[color=#ff00]x[/color]"},
		{"unclosed color", "[color=#fff]x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := ParseInline(tt.input)
			for _, sp := range spans {
				if sp.Kind != SpanText {
					t.Fatalf("ParseInline(%q) produced a %q span: %#v", tt.input, sp.Kind, spans)
				}
			}
			var sb string
			for _, sp := range spans {
				sb += sp.Text
			}
			if sb != tt.input {
				t.Errorf("flattened %q, want the input back %q", sb, tt.input)
			}
		})
	}
}

func TestParagraphKeepsIndentation(t *testing.T) {
	blocks := Parse("  two spaces in")
	if len(blocks) != 1 || blocks[0].Kind != BlockParagraph {
		t.Fatalf("blocks = %#v, want one paragraph", blocks)
	}
	if got := blocks[0].Text(); got != "  two spaces in" {
		t.Errorf("paragraph text = %q, want leading spaces kept", got)
	}
}

func TestFlatten(t *testing.T) {
	got := Flatten("h2 *Report*\n# _one_\n# two")
	want := "Report\none\ntwo"
	if got != want {
		t.Errorf("Flatten = %q, want %q", got, want)
	}
}

func TestParseIsPure(t *testing.T) {
	const input = "h1 *x*\n[color=#abc]_y_[/color]"
	a := Parse(input)
	b := Parse(input)
	if len(a) != len(b) {
		t.Fatal("repeated parses differ in length")
	}
	for i := range a {
		if a[i].Text() != b[i].Text() || a[i].Kind != b[i].Kind {
			t.Fatal("repeated parses differ")
		}
	}
}
