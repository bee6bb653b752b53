package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/sheetpress/core"
)

func TestCSVParseBasic(t *testing.T) {
	table, err := NewCSV().Parse("name,age\n\"Smith, John\",30\n")
	if err != nil {
		t.Fatal(err)
	}

	if len(table.Columns) != 2 {
		t.Fatalf("got %d columns, want 2", len(table.Columns))
	}
	if table.Columns[0].Key != "name" || table.Columns[1].Key != "age" {
		t.Errorf("column keys = %q, %q; want name, age", table.Columns[0].Key, table.Columns[1].Key)
	}
	if table.Columns[0].Label != "Name" || table.Columns[1].Label != "Age" {
		t.Errorf("column labels = %q, %q; want Name, Age", table.Columns[0].Label, table.Columns[1].Label)
	}
	if table.Columns[1].Type != core.TypeNumber {
		t.Errorf("age column type = %q, want number", table.Columns[1].Type)
	}

	if len(table.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(table.Rows))
	}
	row := table.Rows[0]
	if row.ID == "" {
		t.Error("row has no generated id")
	}
	if row.Values["name"] != "Smith, John" || row.Values["age"] != "30" {
		t.Errorf("row values = %v", row.Values)
	}
}

func TestCSVQuoting(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			"embedded comma",
			"a,b\n\"x, y\",z\n",
			map[string]string{"a": "x, y", "b": "z"},
		},
		{
			"embedded newline",
			"a,b\n\"line1\nline2\",z\n",
			map[string]string{"a": "line1\nline2", "b": "z"},
		},
		{
			"escaped quotes",
			"a,b\n\"say \"\"hi\"\"\",z\n",
			map[string]string{"a": `say "hi"`, "b": "z"},
		},
		{
			"crlf terminators",
			"a,b\r\n1,2\r\n",
			map[string]string{"a": "1", "b": "2"},
		},
		{
			"quoted crlf inside cell",
			"a,b\n\"x\r\ny\",z\n",
			map[string]string{"a": "x\r\ny", "b": "z"},
		},
		{
			"no trailing newline",
			"a,b\n1,2",
			map[string]string{"a": "1", "b": "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewCSV().Parse(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if len(table.Rows) != 1 {
				t.Fatalf("got %d rows, want 1", len(table.Rows))
			}
			for k, want := range tt.want {
				if got := table.Rows[0].Values[k]; got != want {
					t.Errorf("cell %q = %q, want %q", k, got, want)
				}
			}
		})
	}
}

// Generating a CSV with every tricky construct and parsing it back must
// reproduce the original cell values exactly.
func TestCSVRoundTrip(t *testing.T) {
	cells := []string{"plain", "with, comma", "with \"quotes\"", "multi\nline", ""}
	headers := []string{"c1", "c2", "c3", "c4", "c5"}

	quote := func(s string) string {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))
	b.WriteByte('\n')
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = quote(c)
	}
	b.WriteString(strings.Join(quoted, ","))
	b.WriteByte('\n')

	table, err := NewCSV().Parse(b.String())
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(table.Rows))
	}
	for i, h := range headers {
		if got := table.Rows[0].Values[h]; got != cells[i] {
			t.Errorf("cell %q = %q, want %q", h, got, cells[i])
		}
	}
}

func TestCSVRowWidthValidation(t *testing.T) {
	input := "a,b\n" +
		"1,2\n" + // exact width, kept
		"1,2,\n" + // one empty trailing cell, kept
		"1,2,3\n" + // extra non-empty cell, dropped
		"1\n" // too narrow, dropped

	table, err := NewCSV().Parse(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
}

func TestCSVHeaderTrimming(t *testing.T) {
	table, err := NewCSV().Parse("  name , age \nx,1\n")
	if err != nil {
		t.Fatal(err)
	}
	if table.Columns[0].Key != "name" || table.Columns[1].Key != "age" {
		t.Errorf("headers not trimmed: %q, %q", table.Columns[0].Key, table.Columns[1].Key)
	}
}

// Duplicate header text keeps the first column's values.
func TestCSVDuplicateHeaders(t *testing.T) {
	table, err := NewCSV().Parse("id,id\nfirst,second\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Columns) != 1 {
		t.Fatalf("got %d columns, want 1 (duplicates collapse)", len(table.Columns))
	}
	if got := table.Rows[0].Values["id"]; got != "first" {
		t.Errorf("duplicate header value = %q, want %q (first wins)", got, "first")
	}
}

func TestCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"zero bytes", "", "empty"},
		{"only newlines", "\n\n\n", "empty"},
		{"header only", "a,b\n", "no valid data"},
		{"all rows malformed", "a,b\n1,2,3,4\n", "no valid data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSV().Parse(tt.input)
			var pe *core.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("got %v, want ParseError", err)
			}
			if !strings.Contains(pe.Reason, tt.wantMsg) {
				t.Errorf("reason %q does not mention %q", pe.Reason, tt.wantMsg)
			}
		})
	}
}
