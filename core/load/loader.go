// Package load implements the file-input boundary.
// It reads an upload from disk with a size ceiling, strips a UTF-8 BOM,
// and attaches the filename and a best-effort MIME type for routing.
package load

import (
	"bytes"
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// DefaultMaxBytes is the ingestion size ceiling (10 MB of text).
const DefaultMaxBytes = 10 * 1024 * 1024

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// File is one loaded upload.
type File struct {
	Name string // base filename
	MIME string // declared media type, may be empty
	Data []byte
}

// Loader reads upload files.
type Loader struct {
	MaxBytes int64
}

// New creates a Loader. A non-positive limit falls back to DefaultMaxBytes.
func New(maxBytes int64) *Loader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Loader{MaxBytes: maxBytes}
}

// Load reads the file at path.
func (l *Loader) Load(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > l.MaxBytes {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), l.MaxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	return &File{
		Name: filepath.Base(path),
		MIME: mime.TypeByExtension(filepath.Ext(path)),
		Data: data,
	}, nil
}
