package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	err = store.Save(context.Background(), "receipt.pdf", strings.NewReader("file content"))
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "receipt.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "file content", string(content))

	err = store.Delete(context.Background(), "receipt.pdf")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "receipt.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_SaveReplacesExisting(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), "a.txt", strings.NewReader("old")))
	require.NoError(t, store.Save(context.Background(), "a.txt", strings.NewReader("new")))

	content, err := os.ReadFile(filepath.Join(store.dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestLocalStore_DeleteMissingFileIsNoop(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	err = store.Delete(context.Background(), "never-saved.pdf")
	assert.NoError(t, err)
}

func TestLocalStore_RejectsUnsafeNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{
		"",
		"../escape.txt",
		"sub/dir.txt",
		".hidden",
		"..",
	} {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, store.Save(context.Background(), name, strings.NewReader("x")))
			assert.Error(t, store.Delete(context.Background(), name))
		})
	}
}

func TestNewLocalStore_RequiresDirectory(t *testing.T) {
	_, err := NewLocalStore("")
	assert.Error(t, err)
}

func TestNewLocalStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "attachments")
	_, err := NewLocalStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
