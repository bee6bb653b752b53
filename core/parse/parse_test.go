package parse

import (
	"context"
	"errors"
	"testing"

	"github.com/gaurav-prasanna/sheetpress/core"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		mime     string
		want     Format
	}{
		{"data.csv", "", FormatCSV},
		{"data.CSV", "", FormatCSV},
		{"page.html", "", FormatHTML},
		{"page.htm", "", FormatHTML},
		{"report.pdf", "", FormatPDF},
		// Extension wins over a contradicting MIME type.
		{"data.csv", "text/html", FormatCSV},
		// Unknown extension falls back to MIME.
		{"data.bin", "text/csv", FormatCSV},
		{"data.bin", "text/html; charset=utf-8", FormatHTML},
		{"data.bin", "application/pdf", FormatPDF},
	}

	for _, tt := range tests {
		got, err := Detect(tt.filename, tt.mime)
		if err != nil {
			t.Errorf("Detect(%q, %q): %v", tt.filename, tt.mime, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Detect(%q, %q) = %q, want %q", tt.filename, tt.mime, got, tt.want)
		}
	}
}

func TestDetectUnsupported(t *testing.T) {
	_, err := Detect("notes.xlsx", "application/vnd.ms-excel")
	var fe *core.FormatUnsupportedError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want FormatUnsupportedError", err)
	}
}

type fakeExtractor struct {
	headers []string
	rows    [][]string
	err     error
}

func (f *fakeExtractor) ExtractTable(ctx context.Context, data []byte, mime string) ([]string, [][]string, error) {
	return f.headers, f.rows, f.err
}

func TestPipelineRouting(t *testing.T) {
	pipe := NewPipeline(&fakeExtractor{
		headers: []string{"h"},
		rows:    [][]string{{"v"}},
	}, nil)
	ctx := context.Background()

	csvTable, err := pipe.Parse(ctx, []byte("a,b\n1,2\n"), "in.csv", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(csvTable.Rows) != 1 {
		t.Errorf("csv path: %d rows", len(csvTable.Rows))
	}

	htmlTable, err := pipe.Parse(ctx, []byte(`<table><tr><td>a</td></tr><tr><td>1</td></tr></table>`), "in.html", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(htmlTable.Rows) != 1 {
		t.Errorf("html path: %d rows", len(htmlTable.Rows))
	}

	pdfTable, err := pipe.Parse(ctx, []byte("%PDF-1.4"), "in.pdf", "application/pdf")
	if err != nil {
		t.Fatal(err)
	}
	if pdfTable.Rows[0].Values["h"] != "v" {
		t.Errorf("pdf path values = %v", pdfTable.Rows[0].Values)
	}
}

func TestPipelineExtractionFailure(t *testing.T) {
	wantErr := &core.ExtractionError{Reason: "malformed payload"}
	pipe := NewPipeline(&fakeExtractor{err: wantErr}, nil)

	_, err := pipe.Parse(context.Background(), []byte("%PDF-1.4"), "in.pdf", "")
	var ee *core.ExtractionError
	if !errors.As(err, &ee) {
		t.Fatalf("got %v, want ExtractionError", err)
	}
}
