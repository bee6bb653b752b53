package parse

import (
	"errors"
	"testing"

	"github.com/gaurav-prasanna/sheetpress/core"
)

func TestHTMLParseTheadTbody(t *testing.T) {
	input := `<html><body><table>
		<thead><tr><th>City</th><th>Pop</th></tr></thead>
		<tbody>
			<tr><td>Paris</td><td>2M</td></tr>
			<tr><td>Lyon</td><td>0.5M</td></tr>
		</tbody>
	</table></body></html>`

	table, err := NewHTML().Parse(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Columns) != 2 {
		t.Fatalf("got %d columns, want 2", len(table.Columns))
	}
	if table.Columns[0].Key != "City" || table.Columns[1].Key != "Pop" {
		t.Errorf("columns = %q, %q; want City, Pop", table.Columns[0].Key, table.Columns[1].Key)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	if table.Rows[0].Values["City"] != "Paris" || table.Rows[1].Values["Pop"] != "0.5M" {
		t.Errorf("row values = %v, %v", table.Rows[0].Values, table.Rows[1].Values)
	}
	// "2M" / "0.5M" are not purely numeric, so Pop must not infer as number.
	if table.Columns[1].Type == core.TypeNumber {
		t.Errorf("Pop column type = number, want non-numeric")
	}
}

func TestHTMLFirstRowHeaderFallback(t *testing.T) {
	input := `<table>
		<tr><td>name</td><td>status</td></tr>
		<tr><td>a</td><td>on</td></tr>
		<tr><td>b</td><td>off</td></tr>
		<tr><td>c</td><td>on</td></tr>
		<tr><td>d</td><td>on</td></tr>
		<tr><td>e</td><td>off</td></tr>
	</table>`

	table, err := NewHTML().Parse(input)
	if err != nil {
		t.Fatal(err)
	}
	if table.Columns[0].Key != "name" {
		t.Errorf("first column = %q, want name (first-row fallback)", table.Columns[0].Key)
	}
	if len(table.Rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(table.Rows))
	}
	// Low-cardinality short strings render as badges.
	if table.Columns[1].Type != core.TypeTag {
		t.Errorf("status column type = %q, want tag", table.Columns[1].Type)
	}
}

func TestHTMLEmptyHeaderPlaceholder(t *testing.T) {
	input := `<table>
		<thead><tr><th>name</th><th></th></tr></thead>
		<tbody><tr><td>x</td><td>y</td></tr></tbody>
	</table>`

	table, err := NewHTML().Parse(input)
	if err != nil {
		t.Fatal(err)
	}
	if table.Columns[1].Key != "Column 2" {
		t.Errorf("placeholder header = %q, want %q", table.Columns[1].Key, "Column 2")
	}
	if table.Rows[0].Values["Column 2"] != "y" {
		t.Errorf("value under placeholder = %q, want y", table.Rows[0].Values["Column 2"])
	}
}

func TestHTMLRowShapes(t *testing.T) {
	input := `<table>
		<thead><tr><th>a</th><th>b</th></tr></thead>
		<tbody>
			<tr><td></td><td>  </td></tr>
			<tr><td>1</td><td>2</td><td>extra</td></tr>
			<tr><td>solo</td></tr>
		</tbody>
	</table>`

	table, err := NewHTML().Parse(input)
	if err != nil {
		t.Fatal(err)
	}
	// The blank spacer row is dropped; the other two survive.
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	if _, ok := table.Rows[0].Values["extra"]; ok {
		t.Error("cell beyond header count must be ignored")
	}
	if got := table.Rows[1].Values["b"]; got != "" {
		t.Errorf("missing cell = %q, want empty", got)
	}
}

func TestHTMLFirstTableWins(t *testing.T) {
	input := `<table><tr><td>h</td></tr><tr><td>first</td></tr></table>
		<table><tr><td>x</td></tr><tr><td>second</td></tr></table>`

	table, err := NewHTML().Parse(input)
	if err != nil {
		t.Fatal(err)
	}
	if table.Columns[0].Key != "h" {
		t.Errorf("parsed the wrong table: %q", table.Columns[0].Key)
	}
}

func TestHTMLInlineFormattingCarriedOver(t *testing.T) {
	input := `<table>
		<thead><tr><th>item</th></tr></thead>
		<tbody><tr><td><b>urgent</b> review</td></tr></tbody>
	</table>`

	table, err := NewHTML().Parse(input)
	if err != nil {
		t.Fatal(err)
	}
	if got := table.Rows[0].Values["item"]; got != "*urgent* review" {
		t.Errorf("formatted cell = %q, want %q", got, "*urgent* review")
	}
}

func TestHTMLErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no table", `<html><body><p>hello</p></body></html>`},
		{"empty table", `<table></table>`},
		{"header only", `<table><thead><tr><th>a</th></tr></thead></table>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHTML().Parse(tt.input)
			var pe *core.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("got %v, want ParseError", err)
			}
		})
	}
}
