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

func TestLocalPutCreatesDirAndWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	l := NewLocal(dir)

	require.NoError(t, l.Put(context.Background(), "abc-photo.png", strings.NewReader("data"), 4, "image/png"))

	got, err := os.ReadFile(filepath.Join(dir, "abc-photo.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestLocalRejectsKeysOutsideDir(t *testing.T) {
	l := NewLocal(t.TempDir())

	for _, key := range []string{"", "../escape.png", "nested/file.png", ".hidden"} {
		err := l.Put(context.Background(), key, strings.NewReader("x"), 1, "image/png")
		assert.Error(t, err, key)
	}
}

func TestLocalDelete(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir)
	ctx := context.Background()

	require.NoError(t, l.Put(ctx, "a.png", strings.NewReader("x"), 1, "image/png"))
	require.NoError(t, l.Delete(ctx, "a.png"))

	_, err := os.Stat(filepath.Join(dir, "a.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, l.Delete(ctx, "a.png"), "deleting a missing object is not an error")
}

func TestNewS3RequiresCredentials(t *testing.T) {
	_, err := NewS3(S3Config{Bucket: "b"})
	assert.Error(t, err)

	s, err := NewS3(S3Config{Bucket: "b", AccessKeyID: "k", SecretAccessKey: "s", Region: "auto", Prefix: "uploads"})
	require.NoError(t, err)
	assert.Equal(t, "uploads/x.png", s.objectKey("x.png"))
}
