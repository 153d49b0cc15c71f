package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"warehouse-pos/internal/domain"
)

var emptyDocument = []byte("[]")

// JSONFile stores a collection as an indented JSON array in a single file.
type JSONFile[T any] struct {
	path string
}

// NewJSONFile returns a store for dir/name, creating the directory and an
// empty document when they do not exist yet.
func NewJSONFile[T any](dir, name string) (*JSONFile[T], error) {
	if name == "" {
		return nil, fmt.Errorf("%w: store: empty collection name", domain.ErrPersistence)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: store: create data directory %s: %v", domain.ErrPersistence, dir, err)
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: store: stat %s: %v", domain.ErrPersistence, path, err)
		}
		if err := os.WriteFile(path, emptyDocument, 0o644); err != nil {
			return nil, fmt.Errorf("%w: store: create %s: %v", domain.ErrPersistence, path, err)
		}
	}
	return &JSONFile[T]{path: path}, nil
}

// Path is the backing file.
func (s *JSONFile[T]) Path() string {
	return s.path
}

func (s *JSONFile[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: store: read %s: %w", domain.ErrPersistence, s.path, err)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: store: read %s: %v", domain.ErrPersistence, s.path, err)
	}

	records := []T{}
	if len(bytes.TrimSpace(data)) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: store: decode %s: %v", domain.ErrPersistence, s.path, err)
	}
	if records == nil { // document was "null"
		records = []T{}
	}
	return records, nil
}

// Save writes the whole collection to a temp file in the same directory and
// renames it over the previous document.
func (s *JSONFile[T]) Save(ctx context.Context, records []T) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: store: write %s: %w", domain.ErrPersistence, s.path, err)
	}
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: store: encode %s: %v", domain.ErrPersistence, s.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: store: create temp for %s: %v", domain.ErrPersistence, s.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: store: chmod %s: %v", domain.ErrPersistence, tmpName, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: store: write %s: %v", domain.ErrPersistence, s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: store: close %s: %v", domain.ErrPersistence, s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: store: replace %s: %v", domain.ErrPersistence, s.path, err)
	}
	return nil
}
