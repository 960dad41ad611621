// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeUnderTest runs the shared Store contract against an implementation.
func storeUnderTest(t *testing.T, store Store) {
	t.Helper()
	defer store.Close()

	t.Run("empty load", func(t *testing.T) {
		snap, err := store.Load()
		require.NoError(t, err)
		assert.Nil(t, snap.Record)
		assert.Empty(t, snap.Screen)
	})

	t.Run("save and load", func(t *testing.T) {
		require.NoError(t, store.SaveRecord([]byte(`{"anamnese":{}}`)))
		require.NoError(t, store.SaveScreen("form"))

		snap, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"anamnese":{}}`), snap.Record)
		assert.Equal(t, "form", snap.Screen)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.SaveScreen("review"))
		snap, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "review", snap.Screen)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, store.Clear())
		snap, err := store.Load()
		require.NoError(t, err)
		assert.Nil(t, snap.Record)
		assert.Empty(t, snap.Screen)
	})
}

func TestMemoryStore(t *testing.T) {
	storeUnderTest(t, NewMemoryStore())
}

func TestBadgerStoreInMemory(t *testing.T) {
	store, err := Open(InMemoryConfig())
	require.NoError(t, err)
	storeUnderTest(t, store)
}

// TestBadgerStorePersists verifies snapshots survive a close/reopen cycle.
func TestBadgerStorePersists(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(DefaultConfig(dir))
	require.NoError(t, err)
	require.NoError(t, store.SaveRecord([]byte("snapshot")))
	require.NoError(t, store.SaveScreen("form"))
	require.NoError(t, store.Close())

	reopened, err := Open(DefaultConfig(dir))
	require.NoError(t, err)
	defer reopened.Close()

	snap, err := reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, []byte("snapshot"), snap.Record)
	assert.Equal(t, "form", snap.Screen)
}

// TestOpenRequiresPath verifies persistent mode demands a directory.
func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is required")
}
