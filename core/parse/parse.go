// Package parse — format detection and ingestion routing.
// Routing prefers the filename extension over the declared MIME type.
// CSV and HTML are parsed locally; PDF is handed to the document-extraction
// collaborator and the returned matrix is structured into a table.
package parse

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/sheetpress/core"
)

// Format identifies an ingestion path.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// Detect decides the ingestion path from the filename extension first,
// then the declared MIME type.
func Detect(filename, mime string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return FormatCSV, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".pdf":
		return FormatPDF, nil
	}

	switch normalizeMIME(mime) {
	case "text/csv":
		return FormatCSV, nil
	case "text/html":
		return FormatHTML, nil
	case "application/pdf":
		return FormatPDF, nil
	}

	return "", &core.FormatUnsupportedError{Ext: ext, MIME: mime}
}

// normalizeMIME strips parameters like "; charset=utf-8".
func normalizeMIME(mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}

// Pipeline routes file bytes to the right parser and produces a Table.
type Pipeline struct {
	csv       *CSVParser
	html      *HTMLParser
	extractor core.TableExtractor
	logger    *slog.Logger
}

// NewPipeline creates a Pipeline. The extractor may be nil, in which case
// PDF ingestion fails with a routing error.
func NewPipeline(extractor core.TableExtractor, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		csv:       NewCSV(),
		html:      NewHTML(),
		extractor: extractor,
		logger:    logger,
	}
}

// Parse ingests file bytes under the given filename and optional MIME type.
// On any error the previous table state is untouched: a table is returned
// only for a fully successful parse.
func (p *Pipeline) Parse(ctx context.Context, data []byte, filename, mime string) (*core.Table, error) {
	format, err := Detect(filename, mime)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("parsing upload", "file", filename, "format", format, "bytes", len(data))

	switch format {
	case FormatCSV:
		return p.csv.Parse(string(data))
	case FormatHTML:
		return p.html.Parse(string(data))
	case FormatPDF:
		if p.extractor == nil {
			return nil, fmt.Errorf("pdf ingestion requires an extraction service")
		}
		headers, rows, err := p.extractor.ExtractTable(ctx, data, "application/pdf")
		if err != nil {
			return nil, err
		}
		return FromMatrix(headers, rows), nil
	default:
		return nil, &core.FormatUnsupportedError{Ext: filepath.Ext(filename), MIME: mime}
	}
}
