package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSBlobStorage_PutGetDelete(t *testing.T) {
	root := filepath.Join(t.TempDir(), "blobs")
	blobs, err := NewFSBlobStorage(root)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, blobs.Put(ctx, testFileID, []byte("a,b\n1,2\n"), "text/csv"))

	content, err := blobs.Get(ctx, testFileID)
	require.NoError(t, err)
	assert.Equal(t, []byte("a,b\n1,2\n"), content)

	_, statErr := os.Stat(filepath.Join(root, testFileID+".tmp"))
	assert.True(t, os.IsNotExist(statErr))

	require.NoError(t, blobs.Delete(ctx, testFileID))
	_, err = blobs.Get(ctx, testFileID)
	assert.ErrorIs(t, err, ErrBlobNotFound)

	// deleting twice is fine
	assert.NoError(t, blobs.Delete(ctx, testFileID))
}

func TestFSBlobStorage_RejectsEscapingKeys(t *testing.T) {
	blobs, err := NewFSBlobStorage(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", ".", "..", "../etc/passwd", `a\b`, "dir/file"} {
		t.Run(key, func(t *testing.T) {
			assert.Error(t, blobs.Put(context.Background(), key, []byte("x"), ""))
		})
	}
}

func TestFSBlobStorage_PutHonoursCancelledContext(t *testing.T) {
	blobs, err := NewFSBlobStorage(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, blobs.Put(ctx, "k", []byte("x"), ""), context.Canceled)
}
