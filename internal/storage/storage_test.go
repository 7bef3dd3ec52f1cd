package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openFixture(t *testing.T, content string) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.png")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestDiskSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	disk, err := NewDisk(dir)
	require.NoError(t, err)

	file := openFixture(t, "image-bytes")
	url, err := disk.Save(file, "cat.png", "image/png", "posts")
	require.NoError(t, err)
	assert.Equal(t, "/media/posts/cat.png", url)

	stored, err := os.ReadFile(filepath.Join(dir, "posts", "cat.png"))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(stored))

	require.NoError(t, disk.Delete(url))
	_, err = os.Stat(filepath.Join(dir, "posts", "cat.png"))
	assert.True(t, os.IsNotExist(err))

	// Deleting twice, or deleting a URL we never issued, is a no-op.
	assert.NoError(t, disk.Delete(url))
	assert.NoError(t, disk.Delete("https://elsewhere.example.com/cat.png"))
}
