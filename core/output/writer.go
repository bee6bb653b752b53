// Package output handles file naming and writing for SheetPress exports.
// Filenames are derived from the input filename's stem (e.g. "Q3 report.csv"
// renders to "Q3_report.pdf").
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// FileName derives the output filename from the source file's stem.
// Example: ("Q3 report.csv", ".pdf") → "Q3_report.pdf"
func FileName(sourceName, ext string) string {
	name := stem(sourceName)
	if name == "" {
		name = "table"
	}
	return name + ext
}

// Write stores rendered bytes under a name derived from the source file.
func (w *Writer) Write(sourceName string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, FileName(sourceName, ext))

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// stem strips the extension and sanitizes the remaining filename.
func stem(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return sanitize(base)
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
