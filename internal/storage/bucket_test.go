package storage

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocampo/api/internal/domain"
)

// Minimal PNG header so content-type sniffing recognizes the payload.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func newTestBucket(t *testing.T) *Bucket {
	t.Helper()
	bucket, err := NewBucket(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)
	return bucket
}

func TestSave(t *testing.T) {
	bucket := newTestBucket(t)

	url, err := bucket.Save(context.Background(), "foto.png", strings.NewReader(string(pngBytes)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), "extension from sniffed content type: %s", url)

	name := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	data, err := os.ReadFile(filepath.Join(bucket.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestSave_EmptyPayloadRejected(t *testing.T) {
	bucket := newTestBucket(t)

	_, err := bucket.Save(context.Background(), "foto.png", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaveBase64(t *testing.T) {
	bucket := newTestBucket(t)
	encoded := base64.StdEncoding.EncodeToString(pngBytes)

	t.Run("raw base64", func(t *testing.T) {
		url, err := bucket.SaveBase64(context.Background(), "foto.png", encoded)
		require.NoError(t, err)
		assert.Contains(t, url, "/uploads/")
	})

	t.Run("data uri prefix stripped", func(t *testing.T) {
		url, err := bucket.SaveBase64(context.Background(), "foto.png", "data:image/png;base64,"+encoded)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(url, ".png"), url)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, err := bucket.SaveBase64(context.Background(), "foto.png", "not-base64!!!")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestExtensionFallback(t *testing.T) {
	bucket := newTestBucket(t)

	url, err := bucket.Save(context.Background(), "notes.txt", strings.NewReader("plain text payload"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".txt"), "original extension kept when sniffing is inconclusive: %s", url)
}
