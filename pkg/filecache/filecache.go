// Package filecache is the default cache backend: a single JSON file holding
// the whitelisted opportunity cache between CLI runs.
package filecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mkhera/voluntree-cli/pkg/store"
)

// Cache stores the opportunity cache in a JSON file.
type Cache struct {
	path string
}

// New creates a file cache at the given path.
func New(path string) *Cache {
	return &Cache{path: path}
}

// Load reads the cached state. A missing file yields an empty state rather
// than an error; a first run has nothing cached yet.
func (c *Cache) Load(ctx context.Context) (*store.CachedState, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &store.CachedState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var state store.CachedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	return &state, nil
}

// Save writes the cached state, creating the parent directory if needed.
func (c *Cache) Save(ctx context.Context, state *store.CachedState) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache state: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// Clear removes the cache file. Clearing an absent cache is not an error.
func (c *Cache) Clear(ctx context.Context) error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return nil
}
