// Package store persists the task collection to a single JSON file.
//
// Every mutation rewrites the entire file; there are no partial updates.
// A missing file is not an error: Load bootstraps an empty collection on
// disk and returns it.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskdeck/taskdeck/internal/task"
)

// StorageError wraps a file system or encoding failure on the tasks file.
type StorageError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Store reads and writes the task collection at a fixed path.
type Store struct {
	path string
}

// New returns a store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and parses the tasks file. A missing file bootstraps an
// empty collection on disk and returns it; any other failure surfaces
// as a StorageError with the underlying cause.
func (s *Store) Load() (*task.Collection, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		c := task.NewCollection()
		if err := s.Save(c); err != nil {
			return nil, err
		}
		return c, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "load", Path: s.path, Err: fmt.Errorf("read tasks file: %w", err)}
	}

	var c task.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &StorageError{Op: "load", Path: s.path, Err: fmt.Errorf("parse tasks file: %w", err)}
	}

	if result := c.Validate(); !result.Valid {
		return nil, &StorageError{Op: "load", Path: s.path, Err: errors.Join(result.Errors...)}
	}

	return &c, nil
}

// Save writes the whole collection with 2-space indentation, creating
// the containing directory if needed.
func (s *Store) Save(c *task.Collection) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: fmt.Errorf("marshal tasks file: %w", err)}
	}

	// Add trailing newline
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: fmt.Errorf("create tasks dir: %w", err)}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: fmt.Errorf("write tasks file: %w", err)}
	}

	return nil
}
