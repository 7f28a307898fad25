package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir, "http://localhost:8000/")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Save(ctx, "u1", "beach.png", "image/png", bytes.NewReader([]byte("png-bytes")))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://localhost:8000/uploads/stories/u1/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	rel := strings.TrimPrefix(url, "http://localhost:8000/uploads/")
	b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))

	require.NoError(t, s.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	// second delete and foreign urls are no-ops
	assert.NoError(t, s.Delete(ctx, url))
	assert.NoError(t, s.Delete(ctx, "https://example.com/x.png"))
	assert.NoError(t, s.Delete(ctx, "http://localhost:8000/uploads/../../etc/passwd"))
}

func TestLocalRejectsNonImages(t *testing.T) {
	s, err := NewLocal(t.TempDir(), "http://localhost:8000")
	require.NoError(t, err)
	_, err = s.Save(context.Background(), "u1", "a.txt", "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestLocalRejectsOversized(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir, "http://localhost:8000")
	require.NoError(t, err)
	big := bytes.Repeat([]byte{1}, MaxImageBytes+1)
	_, err = s.Save(context.Background(), "u1", "a.jpg", "image/jpeg", bytes.NewReader(big))
	assert.ErrorIs(t, err, ErrImageTooLarge)

	entries, err := os.ReadDir(filepath.Join(dir, "stories", "u1"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExtFor(t *testing.T) {
	ext, err := ExtFor("image/JPEG; charset=binary")
	require.NoError(t, err)
	assert.Equal(t, ".jpg", ext)
	_, err = ExtFor("application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestLimitAllowsExactSize(t *testing.T) {
	var out bytes.Buffer
	_, err := out.ReadFrom(limit(bytes.NewReader(bytes.Repeat([]byte{1}, MaxImageBytes))))
	require.NoError(t, err)
	assert.Equal(t, MaxImageBytes, out.Len())
}
