// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_RoundTrip(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "nested", "credentials.json"))

	// Empty before anything is written.
	tok, err := store.Token()
	assert.NoError(t, err)
	assert.Empty(t, tok)

	assert.NoError(t, store.SetToken("abc"))

	tok, err = store.Token()
	assert.NoError(t, err)
	assert.Equal(t, "abc", tok)

	// Overwrite under the same key.
	assert.NoError(t, store.SetToken("def"))
	tok, err = store.Token()
	assert.NoError(t, err)
	assert.Equal(t, "def", tok)

	assert.NoError(t, store.DeleteToken())
	tok, err = store.Token()
	assert.NoError(t, err)
	assert.Empty(t, tok)

	// Deleting again is fine.
	assert.NoError(t, store.DeleteToken())
}

func TestStore_FilePermissions(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "credentials.json"))
	assert.NoError(t, store.SetToken("abc"))

	info, err := os.Stat(store.Path())
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_EnvOverride(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "credentials.json"))
	assert.NoError(t, store.SetToken("from-file"))

	t.Setenv("BLOGCTL_TOKEN", "from-env")
	tok, err := store.Token()
	assert.NoError(t, err)
	assert.Equal(t, "from-env", tok)
}

func TestNewStore_PathOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "creds.json")
	t.Setenv("BLOGCTL_CREDENTIALS", p)

	store, err := NewStore()
	assert.NoError(t, err)
	assert.Equal(t, p, store.Path())
}

func TestStore_CorruptFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	assert.NoError(t, os.WriteFile(p, []byte("not json"), 0o600))

	store := NewStoreAt(p)
	_, err := store.Token()
	assert.Error(t, err)
}
