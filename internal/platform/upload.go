package platform

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/security"
	"github.com/remitflow/remitflow/internal/storage"
)

// StorageUploader implements Uploader on a storage.Store. Files are
// validated before they touch the store and served back under
// baseURL/uploads/<bucket>/<path>.
type StorageUploader struct {
	store        storage.Store
	baseURL      string
	maxBytes     int64
	allowedTypes []string
}

// NewStorageUploader creates an uploader writing to store.
func NewStorageUploader(store storage.Store, baseURL string, maxBytes int64, allowedTypes []string) *StorageUploader {
	return &StorageUploader{
		store:        store,
		baseURL:      baseURL,
		maxBytes:     maxBytes,
		allowedTypes: allowedTypes,
	}
}

// Upload validates and persists the file, returning its public location.
// Validation failures are reported as domain.ErrUpload so handlers can show
// the violations without treating them as server faults.
func (u *StorageUploader) Upload(ctx context.Context, bucket, filePath, mimeType string, size int64, r io.Reader) (*UploadResult, error) {
	result := security.ValidateFile(size, mimeType, security.FileOptions{
		MaxSize:      u.maxBytes,
		AllowedTypes: u.allowedTypes,
	})
	if !result.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpload, result.Errors)
	}

	key := path.Join(bucket, filePath)
	written, err := u.store.Save(ctx, key, io.LimitReader(r, u.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}
	if written > u.maxBytes {
		// The declared size lied. Remove the partial object.
		_ = u.store.Delete(ctx, key)
		return nil, fmt.Errorf("%w: file exceeds maximum size", domain.ErrUpload)
	}

	publicURL, err := url.JoinPath(u.baseURL, "uploads", bucket, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to build public URL: %w", err)
	}

	return &UploadResult{
		Path:      key,
		PublicURL: publicURL,
		Size:      written,
		MIMEType:  mimeType,
		StoredAt:  time.Now().UTC(),
	}, nil
}
