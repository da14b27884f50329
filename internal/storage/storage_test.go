package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAferoStoreRoundTrip(t *testing.T) {
	store := NewAferoStore(afero.NewMemMapFs(), "data")
	ctx := context.Background()

	n, err := store.Save(ctx, "id-documents/u1/passport.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)

	rc, err := store.Get(ctx, "id-documents/u1/passport.pdf")
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(content))
}

func TestAferoStoreDelete(t *testing.T) {
	store := NewAferoStore(afero.NewMemMapFs(), "data")
	ctx := context.Background()

	_, err := store.Save(ctx, "profile-pictures/u1/profile.jpg", strings.NewReader("jpg"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "profile-pictures/u1/profile.jpg"))

	_, err = store.Get(ctx, "profile-pictures/u1/profile.jpg")
	assert.Error(t, err)
}

func TestAferoStoreRejectsPathsOutsideRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewAferoStore(fs, "data")
	ctx := context.Background()

	cases := []string{
		"../escape.txt",
		"u1/../../escape.txt",
		"u1/../../../../authorized_keys",
	}
	for _, path := range cases {
		_, err := store.Save(ctx, path, strings.NewReader("x"))
		assert.Error(t, err, "Save(%q) must be rejected", path)

		_, err = store.Get(ctx, path)
		assert.Error(t, err, "Get(%q) must be rejected", path)

		assert.Error(t, store.Delete(ctx, path), "Delete(%q) must be rejected", path)
	}

	// Nothing may land outside the root.
	for _, outside := range []string{"escape.txt", "authorized_keys"} {
		exists, err := afero.Exists(fs, outside)
		require.NoError(t, err)
		assert.False(t, exists, "%s written outside the storage root", outside)
	}
}

func TestAferoStoreMissingFile(t *testing.T) {
	store := NewAferoStore(afero.NewMemMapFs(), "data")
	_, err := store.Get(context.Background(), "nope.txt")
	assert.Error(t, err)
}
