package airports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists the last successful airport mapping.
type Store interface {
	// Load returns the cached mapping, or ErrCacheNotFound when nothing is cached.
	Load(ctx context.Context) (map[string]string, error)

	// Save overwrites the cached mapping.
	Save(ctx context.Context, records map[string]string) error

	// Describe returns a human-readable location for logs.
	Describe() string
}

// FileStore keeps the mapping as a flat JSON object in a local file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the cache file location.
func (s *FileStore) Path() string {
	return s.path
}

// Describe implements Store.
func (s *FileStore) Describe() string {
	return s.path
}

// Load implements Store.
func (s *FileStore) Load(_ context.Context) (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCacheNotFound
		}
		return nil, fmt.Errorf("reading airport cache %s: %w", s.path, err)
	}
	return decodeRecords(data)
}

// Save implements Store. The file is written to a temporary sibling and
// renamed into place so readers never observe a truncated cache.
func (s *FileStore) Save(_ context.Context, records map[string]string) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding airport cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary cache file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing airport cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing airport cache: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing airport cache %s: %w", s.path, err)
	}
	return nil
}

// decodeRecords parses a cached JSON object. An empty object is reported as
// ErrCacheNotFound so that startup treats it like a missing cache.
func decodeRecords(data []byte) (map[string]string, error) {
	var records map[string]string
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding airport cache: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrCacheNotFound
	}
	return records, nil
}
