package disk

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadStore_Save(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save(context.Background(), "photo.PNG", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d+_[0-9a-f]{16}\.png$`), name)

	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data), "payload must be stored verbatim")
}

func TestUploadStore_Save_DefaultExtension(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save(context.Background(), "blob", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"), "extensionless uploads default to .jpg, got %s", name)
}

// Path separators and traversal in the client-supplied name must not escape
// the upload directory.
func TestUploadStore_Save_StripsPath(t *testing.T) {
	dir := t.TempDir()
	store, err := NewUploadStore(dir)
	require.NoError(t, err)

	name, err := store.Save(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)

	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "..")
	_, err = os.Stat(filepath.Join(dir, name))
	assert.NoError(t, err)
}

func TestUploadStore_Save_UniqueNames(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	require.NoError(t, err)

	seen := map[string]bool{}
	for range 10 {
		name, err := store.Save(context.Background(), "a.jpg", strings.NewReader("x"))
		require.NoError(t, err)
		assert.False(t, seen[name], "duplicate generated name %s", name)
		seen[name] = true
	}
}

func TestUploadStore_Save_CancelledContext(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Save(ctx, "a.jpg", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestNewUploadStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := NewUploadStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
