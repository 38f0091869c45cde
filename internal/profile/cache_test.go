// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), cacheFile)

	c, err := OpenCache(path)
	require.NoError(t, err)
	_, ok := c.Cached("u1")
	assert.False(t, ok)

	require.NoError(t, c.Put("u1", Profile{ID: "u1", Username: "alice"}))

	reopened, err := OpenCache(path)
	require.NoError(t, err)
	p, ok := reopened.Cached("u1")
	require.True(t, ok)
	assert.Equal(t, "alice", p.DisplayName())

	require.NoError(t, reopened.Reset())
	again, err := OpenCache(path)
	require.NoError(t, err)
	assert.Zero(t, again.Len())
}

func TestOpenCacheDiscardsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), cacheFile)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	c, err := OpenCache(path)
	require.NoError(t, err)
	assert.Zero(t, c.Len())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "alice", Profile{ID: "1", Username: "alice", Email: "a@b.com"}.DisplayName())
	assert.Equal(t, "a@b.com", Profile{ID: "1", Email: "a@b.com"}.DisplayName())
	assert.Equal(t, "1", Profile{ID: "1"}.DisplayName())
}
