// Package store persists named JSON resources.
//
// Persistence model:
//   - Each resource is one pretty-printed JSON file owned by this process.
//   - A missing file is not an error; the caller's default is returned.
//   - A file that exists but fails to decode is corrupt and surfaces as
//     an error wrapping ErrCorrupt. It is never silently reset.
//   - Writes replace the file wholesale: tmp file, fsync, rename.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCorrupt reports a resource that exists but does not hold valid JSON.
var ErrCorrupt = errors.New("store: corrupt resource")

// Resource binds a JSON-serializable value type to a file path.
type Resource[T any] struct {
	path string
}

// NewResource returns a resource stored at path.
func NewResource[T any](path string) Resource[T] {
	return Resource[T]{path: path}
}

// Path returns the backing file path.
func (r Resource[T]) Path() string { return r.path }

// Load returns the decoded resource contents, or def when the file does
// not exist.
func (r Resource[T]) Load(def T) (T, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return def, nil
		}
		return def, fmt.Errorf("store: read %s: %w", r.path, err)
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return def, fmt.Errorf("%w: %s: %v", ErrCorrupt, r.path, err)
	}
	return v, nil
}

// Save replaces the resource contents with v, pretty-printed with
// two-space indentation.
func (r Resource[T]) Save(v T) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", r.path, err)
	}
	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("store: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("store: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("store: sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("store: replace %s: %w", r.path, err)
	}
	return nil
}
