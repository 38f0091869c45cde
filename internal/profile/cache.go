// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	apperrors "chatty/cli/internal/errors"
	"chatty/cli/internal/xdg"
)

const cacheFile = "profiles.json"

// Cache maps session identities to profiles. When opened with a path it is
// written through to disk so later invocations see the same entries.
type Cache struct {
	mu      sync.RWMutex
	path    string
	entries map[string]Profile
}

// DefaultPath returns the cache file location in the XDG state dir.
func DefaultPath() (string, error) {
	dir, err := xdg.StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, cacheFile), nil
}

// NewMemoryCache returns a cache that is never persisted.
func NewMemoryCache() *Cache {
	return &Cache{entries: make(map[string]Profile)}
}

// OpenCache loads the cache at path. A missing file is an empty cache; a
// corrupt file is discarded since its content can always be fetched again.
func OpenCache(path string) (*Cache, error) {
	c := &Cache{path: path, entries: make(map[string]Profile)}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, apperrors.Wrap(apperrors.StorageFailed, "cannot read profile cache", err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		c.entries = make(map[string]Profile)
	}
	return c, nil
}

// Cached returns the profile stored for identity. It never fetches.
func (c *Cache) Cached(identity string) (Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.entries[identity]
	return p, ok
}

// Put stores p under identity.
func (c *Cache) Put(identity string, p Profile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[identity] = p
	return c.flush()
}

// Reset drops every entry.
func (c *Cache) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Profile)
	return c.flush()
}

// Len returns the number of cached profiles.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// flush writes entries atomically. Caller holds mu.
func (c *Cache) flush() error {
	if c.path == "" {
		return nil
	}
	b, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return apperrors.Wrap(apperrors.StorageFailed, "cannot write profile cache", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return apperrors.Wrap(apperrors.StorageFailed, "cannot write profile cache", fmt.Errorf("rename: %w", err))
	}
	return nil
}
