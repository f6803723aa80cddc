package imagestore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *CloudinaryClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewCloudinaryClient(Config{
		BaseURL:   srv.URL,
		CloudName: "amg",
		APIKey:    "key",
		APISecret: "secret",
	}, srv.Client())
	require.NoError(t, err)
	return c
}

func TestUploadSendsSignedMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_1/amg/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "key", r.FormValue("api_key"))
		assert.Equal(t, "amg/property", r.FormValue("folder"))
		assert.NotEmpty(t, r.FormValue("timestamp"))
		assert.Len(t, r.FormValue("signature"), 40)

		f, _, err := r.FormFile("file")
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		assert.Equal(t, []byte("jpegbytes"), data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"public_id":"amg/property/abc","secure_url":"https://res.cloudinary.com/amg/abc.jpg","width":10,"height":5,"bytes":9}`)
	})

	out, err := c.Upload(context.Background(), port.UploadImageInput{Folder: "amg/property", Filename: "a.jpg", Data: []byte("jpegbytes")})
	require.NoError(t, err)
	assert.Equal(t, "amg/property/abc", out.PublicID)
	assert.Equal(t, "https://res.cloudinary.com/amg/abc.jpg", out.URL)
	assert.Equal(t, 10, out.Width)
	assert.Equal(t, int64(9), out.Bytes)
}

func TestUploadReportsAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"message":"Invalid Signature"}}`)
	})

	_, err := c.Upload(context.Background(), port.UploadImageInput{Folder: "amg", Data: []byte("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Signature")
}

func TestDelete(t *testing.T) {
	results := []string{"ok", "not found", "error"}
	i := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_1/amg/image/destroy", r.URL.Path)
		assert.Equal(t, "amg/property/abc", r.FormValue("public_id"))
		assert.Equal(t, "key", r.FormValue("api_key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"result":"`+results[i]+`"}`)
		i++
	})

	assert.NoError(t, c.Delete(context.Background(), "amg/property/abc"))
	assert.NoError(t, c.Delete(context.Background(), "amg/property/abc"))
	assert.Error(t, c.Delete(context.Background(), "amg/property/abc"))
	assert.Error(t, c.Delete(context.Background(), " "))
}

func TestNewCloudinaryClientRequiresCredentials(t *testing.T) {
	_, err := NewCloudinaryClient(Config{CloudName: "amg"}, nil)
	assert.Error(t, err)
}
