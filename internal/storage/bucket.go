package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/agrocampo/api/internal/domain"
	"github.com/agrocampo/api/internal/logger"
)

// Bucket stores uploaded files under a local data directory and hands
// back public URLs served by the router under /uploads/.
type Bucket struct {
	dir     string
	baseURL string
}

// NewBucket creates the upload directory if needed. baseURL is the
// externally visible server address, without a trailing slash.
func NewBucket(dir, baseURL string) (*Bucket, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Bucket{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the local directory backing the bucket.
func (b *Bucket) Dir() string { return b.dir }

// Save writes the payload to disk under a generated name and returns
// the public URL. Empty payloads are rejected. The file extension comes
// from the sniffed content type, falling back to the original name.
func (b *Bucket) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty payload", domain.ErrInvalidInput)
	}

	name := uuid.NewString() + extensionFor(data, originalName)
	path := filepath.Join(b.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	url := b.baseURL + "/uploads/" + name
	logger.FromContext(ctx).Info("file stored", "name", name, "bytes", len(data))
	return url, nil
}

// SaveBase64 decodes a base64 payload (with or without a data: URI
// prefix) and stores it like Save.
func (b *Bucket) SaveBase64(ctx context.Context, originalName, encoded string) (string, error) {
	if idx := strings.Index(encoded, ","); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64 payload", domain.ErrInvalidInput)
	}
	return b.Save(ctx, originalName, strings.NewReader(string(data)))
}

// extensionFor picks a file extension from the sniffed content type,
// keeping the original extension when sniffing is inconclusive.
func extensionFor(data []byte, originalName string) string {
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if ext := filepath.Ext(originalName); ext != "" {
		return ext
	}
	return ".bin"
}
