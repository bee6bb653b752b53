// Package history persists the recent-conversion list.
// The list is a single JSON file read once at open and rewritten wholesale
// on every add or delete. It is surrounding-application state: nothing in
// the core pipeline consumes it.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	fileName = "history.json"

	// maxEntries caps the list; the oldest entries fall off.
	maxEntries = 50
)

// Entry records one successful conversion.
type Entry struct {
	ID       string    `json:"id"`
	FileName string    `json:"file_name"`
	Date     time.Time `json:"date"`
	RowCount int       `json:"row_count"`
}

// Store owns the persisted list. It is safe for concurrent use: the HTTP
// boundary serves each request on its own goroutine.
type Store struct {
	mu      sync.Mutex
	path    string
	entries []Entry
}

// Open loads the history list from dir, creating the directory if needed.
// A missing file is an empty list.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	s := &Store{path: filepath.Join(dir, fileName)}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}
	return s, nil
}

// Entries returns the list, newest first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Add prepends a new entry and rewrites the file.
func (s *Store) Add(fileName string, rowCount int) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{
		ID:       uuid.NewString(),
		FileName: fileName,
		Date:     time.Now().UTC(),
		RowCount: rowCount,
	}
	s.entries = append([]Entry{entry}, s.entries...)
	if len(s.entries) > maxEntries {
		s.entries = s.entries[:maxEntries]
	}
	if err := s.save(); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Delete removes the entry with the given id, if present, and rewrites
// the file.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return s.save()
}

// Clear empties the list and rewrites the file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return s.save()
}

// save rewrites the file. Callers hold mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}
