package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreCreatesEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	st := newFileStore(path)

	var doc map[string]any
	require.NoError(t, st.Load(&doc))
	assert.Empty(t, doc)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(b))
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	st := newFileStore(path)

	in := map[string]any{
		"G1": map[string]any{
			"M1": map[string]any{"money": float64(100), "bank": float64(25)},
		},
	}
	require.NoError(t, st.Save(in))

	var out map[string]any
	require.NoError(t, st.Load(&out))
	assert.Equal(t, in, out)
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	st := newFileStore(path)
	var doc map[string]any
	err := st.Load(&doc)
	assert.ErrorIs(t, err, ErrCorruptStorage)
	assert.ErrorIs(t, st.Healthy(), ErrCorruptStorage)
}

func TestFileStoreHealthyRecreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	st := newFileStore(path)

	var doc map[string]any
	require.NoError(t, st.Load(&doc))
	require.NoError(t, os.Remove(path))

	require.NoError(t, st.Healthy())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(b))
}

func TestFileStoreCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "storage.json")
	st := newFileStore(path)

	var doc map[string]any
	require.NoError(t, st.Load(&doc))
	assert.FileExists(t, path)
}
