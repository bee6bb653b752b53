// Package core — error taxonomy.
// Parse and extraction failures carry typed errors so callers can map them
// to distinct user-facing messages; analysis failures never surface at all.
package core

import "fmt"

// ParseError reports structurally empty or unreadable content: a CSV with
// no rows, an HTML document with no table, a table with no data rows.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Reason
}

// NewParseError creates a ParseError with a formatted reason.
func NewParseError(format string, args ...any) *ParseError {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}

// FormatUnsupportedError reports a file whose extension and MIME type match
// no known ingestion path.
type FormatUnsupportedError struct {
	Ext  string
	MIME string
}

func (e *FormatUnsupportedError) Error() string {
	if e.MIME != "" {
		return fmt.Sprintf("unsupported file format: %q (%s)", e.Ext, e.MIME)
	}
	return fmt.Sprintf("unsupported file format: %q", e.Ext)
}

// ExtractionError reports that the document-extraction collaborator
// returned malformed or absent data.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return "extraction failed: " + e.Reason
}

func (e *ExtractionError) Unwrap() error { return e.Err }
