package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	objects map[string][]byte
	types   map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (s *memoryStore) EnsureBucket(ctx context.Context) error { return nil }

func (s *memoryStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = data
	s.types[key] = contentType
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *memoryStore) Bucket() string { return "test-bucket" }

// Minimal valid PNG header; DetectContentType only needs the magic bytes.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func multipartUpload(t *testing.T, fieldName, fileName string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := httptest.NewRequest(http.MethodPost, "/uploads", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())
	return r
}

func TestUpload(t *testing.T) {
	t.Run("stores PNG and returns public URL", func(t *testing.T) {
		store := newMemoryStore()
		h := NewUploadHandler(store, "https://media.inarawedding.com/")

		rec := httptest.NewRecorder()
		h.Upload(rec, multipartUpload(t, "image", "photo.png", pngBytes))

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, store.objects, 1)

		for key, data := range store.objects {
			assert.Contains(t, key, "uploads/")
			assert.Contains(t, key, ".png")
			assert.Equal(t, pngBytes, data)
			assert.Equal(t, "image/png", store.types[key])
			assert.Contains(t, rec.Body.String(), "https://media.inarawedding.com/"+key)
		}
	})

	t.Run("rejects non-image content", func(t *testing.T) {
		store := newMemoryStore()
		h := NewUploadHandler(store, "https://media.inarawedding.com")

		rec := httptest.NewRecorder()
		h.Upload(rec, multipartUpload(t, "image", "nasty.html", []byte("<script>alert(1)</script>")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, store.objects)
	})

	t.Run("missing field gets 400", func(t *testing.T) {
		store := newMemoryStore()
		h := NewUploadHandler(store, "https://media.inarawedding.com")

		rec := httptest.NewRecorder()
		h.Upload(rec, multipartUpload(t, "file", "photo.png", pngBytes))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unconfigured storage gets 503", func(t *testing.T) {
		h := NewUploadHandler(nil, "")

		rec := httptest.NewRecorder()
		h.Upload(rec, multipartUpload(t, "image", "photo.png", pngBytes))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
