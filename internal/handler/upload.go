package handler

import (
	"bytes"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/inarawedding/site-server-go/internal/audit"
	"github.com/inarawedding/site-server-go/internal/config"
	apperrors "github.com/inarawedding/site-server-go/internal/errors"
	"github.com/inarawedding/site-server-go/internal/middleware"
	"github.com/inarawedding/site-server-go/internal/storage"
)

var uploadExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadHandler proxies admin image uploads into object storage. A nil store
// means storage was never configured; uploads answer 503 instead of panicking.
type UploadHandler struct {
	store         storage.ObjectStore
	publicBaseURL string
}

func NewUploadHandler(store storage.ObjectStore, publicBaseURL string) *UploadHandler {
	return &UploadHandler{
		store:         store,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "Image uploads are not configured",
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)
	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		writeError(w, apperrors.InvalidInput("image", "file too large or malformed upload"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, apperrors.MissingRequired("image"))
		return
	}
	defer file.Close()

	// Sniff the real content type; the client-supplied header is not trusted.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		writeError(w, apperrors.Internal("Failed to read upload"))
		return
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	ext, ok := uploadExtensions[contentType]
	if !ok {
		writeError(w, apperrors.InvalidInput("image", "must be a JPEG, PNG, or WebP image"))
		return
	}

	key := "uploads/" + uuid.NewString() + ext
	reader := io.MultiReader(bytes.NewReader(head), file)

	if err := h.store.Put(r.Context(), key, reader, header.Size, contentType); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to store upload")
		writeError(w, apperrors.External("object storage", err))
		return
	}

	e := audit.Event{
		Type:    audit.EventImageUpload,
		Details: map[string]interface{}{"key": key, "contentType": contentType},
	}
	if claims := middleware.GetAdminClaims(r.Context()); claims != nil {
		e.AdminID = claims.AdminID
		e.Email = claims.Email
	}
	audit.LogFromRequest(r, e)

	writeJSON(w, http.StatusCreated, map[string]string{
		"url": h.publicBaseURL + path.Join("/", key),
	})
}
