package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalUploadListDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := NewLocal(root, "https://cdn.example/assets/")

	url, err := s.Upload(ctx, []byte("png"), "sessions/abc/hero.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/assets/sessions/abc/hero.png", url)

	data, err := os.ReadFile(filepath.Join(root, "sessions", "abc", "hero.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	_, err = s.Upload(ctx, []byte("x"), "sessions/def/banner.png")
	require.NoError(t, err)

	entries, err := s.List(ctx, "sessions/abc/")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sessions/abc/hero.png", entries[0].Path)
	assert.Equal(t, int64(3), entries[0].Size)

	require.NoError(t, s.Delete(ctx, []string{"sessions/abc/hero.png", "sessions/abc/missing.png"}))
	entries, err = s.List(ctx, "sessions/")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sessions/def/banner.png", entries[0].Path)
}

func TestLocalRejectsEscapingPaths(t *testing.T) {
	s := NewLocal(t.TempDir(), "http://x")

	_, err := s.Upload(context.Background(), []byte("x"), "../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = s.Upload(context.Background(), []byte("x"), "")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocalListEmptyRoot(t *testing.T) {
	s := NewLocal(filepath.Join(t.TempDir(), "missing"), "http://x")
	entries, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
