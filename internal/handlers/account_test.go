package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remitflow/remitflow/internal/handlers"
)

func setupAccountTest(profiles *mockProfileRepo, docs *mockDocumentRepo, uploader *mockUploader) *echo.Echo {
	e := setupEcho()
	e.Use(asUser(testUser()))
	h := handlers.NewAccountHandler(&mockAuthService{}, profiles, docs, uploader)
	e.POST("/account/picture", h.UploadPicture)
	return e
}

// pictureRequest builds a multipart upload with the given filename. The
// filename is attacker-controlled, so tests exercise hostile values too.
func pictureRequest(t *testing.T, filename string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="picture"; filename="`+filename+`"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("png bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/account/picture", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

func TestUploadPicture(t *testing.T) {
	t.Run("stores the picture under the user's key", func(t *testing.T) {
		docs := &mockDocumentRepo{}
		uploader := &mockUploader{}
		e := setupAccountTest(&mockProfileRepo{profile: pendingProfile()}, docs, uploader)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, pictureRequest(t, "me.png"))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/account", rec.Header().Get("Location"))
		assert.Equal(t, 1, uploader.uploads)
		assert.Equal(t, "user:u1/me.png", uploader.lastKey)
		require.Len(t, docs.docs, 1)
		assert.Equal(t, "me.png", docs.docs[0].Filename)
	})

	t.Run("traversal filename is reduced to its base name", func(t *testing.T) {
		docs := &mockDocumentRepo{}
		uploader := &mockUploader{}
		e := setupAccountTest(&mockProfileRepo{profile: pendingProfile()}, docs, uploader)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, pictureRequest(t, "../../../../authorized_keys"))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, 1, uploader.uploads)
		assert.Equal(t, "user:u1/authorized_keys", uploader.lastKey)
		require.Len(t, docs.docs, 1)
		assert.Equal(t, "authorized_keys", docs.docs[0].Filename)
	})
}
