package platform

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/storage"
)

func newTestUploader() (*StorageUploader, *storage.AferoStore) {
	store := storage.NewAferoStore(afero.NewMemMapFs(), "data")
	uploader := NewStorageUploader(store, "http://localhost:8080", 5*1024*1024, []string{
		"image/jpeg", "image/png", "image/gif", "application/pdf",
	})
	return uploader, store
}

func TestUploadStoresFileAndReturnsPublicURL(t *testing.T) {
	uploader, store := newTestUploader()
	ctx := context.Background()

	content := "pdf bytes"
	result, err := uploader.Upload(ctx, "id-documents", "u1/passport.pdf", "application/pdf", int64(len(content)), strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, "id-documents/u1/passport.pdf", result.Path)
	assert.Equal(t, "http://localhost:8080/uploads/id-documents/u1/passport.pdf", result.PublicURL)
	assert.Equal(t, int64(len(content)), result.Size)
	assert.Equal(t, "application/pdf", result.MIMEType)

	rc, err := store.Get(ctx, "id-documents/u1/passport.pdf")
	require.NoError(t, err)
	rc.Close()
}

func TestUploadRejectsOversizeFile(t *testing.T) {
	uploader, store := newTestUploader()

	_, err := uploader.Upload(context.Background(), "id-documents", "u1/big.pdf", "application/pdf", 6*1024*1024, strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpload))

	// Nothing may be written for a rejected upload.
	_, err = store.Get(context.Background(), "id-documents/u1/big.pdf")
	assert.Error(t, err)
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	uploader, _ := newTestUploader()

	_, err := uploader.Upload(context.Background(), "id-documents", "u1/malware.exe", "application/x-msdownload", 100, strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpload))
}

func TestUploadRejectsTraversalKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := storage.NewAferoStore(fs, "data")
	uploader := NewStorageUploader(store, "http://localhost:8080", 5*1024*1024, []string{"image/png"})

	// A hostile multipart filename must not be able to climb out of the
	// storage root.
	_, err := uploader.Upload(context.Background(), "profile-pictures", "u1/../../../../authorized_keys", "image/png", 4, strings.NewReader("ssh!"))
	require.Error(t, err)

	exists, err := afero.Exists(fs, "authorized_keys")
	require.NoError(t, err)
	assert.False(t, exists, "file written outside the storage root")
}

func TestUploadRejectsUnderdeclaredSize(t *testing.T) {
	store := storage.NewAferoStore(afero.NewMemMapFs(), "data")
	uploader := NewStorageUploader(store, "http://localhost:8080", 8, []string{"image/png"})

	// Declared size passes validation but the stream is larger than the cap.
	_, err := uploader.Upload(context.Background(), "profile-pictures", "u1/p.png", "image/png", 4, strings.NewReader("way more than eight bytes"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpload))
}
