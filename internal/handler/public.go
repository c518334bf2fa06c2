package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/inarawedding/site-server-go/internal/model"
	"github.com/inarawedding/site-server-go/internal/service"
	"github.com/inarawedding/site-server-go/internal/util"
)

// PublicHandler serves the storefront API. It only ever returns published
// content; drafts and unknown slugs are indistinguishable 404s.
type PublicHandler struct {
	catalogService *service.CatalogService
	blogService    *service.BlogService
}

func NewPublicHandler(catalogService *service.CatalogService, blogService *service.BlogService) *PublicHandler {
	return &PublicHandler{
		catalogService: catalogService,
		blogService:    blogService,
	}
}

func (h *PublicHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/templates", h.ListTemplates)
	r.Get("/templates/{slug}", h.GetTemplate)
	r.Get("/hantaran", h.ListHantaran)
	r.Get("/services", h.ListServices)
	r.Get("/posts", h.ListPosts)
	r.Get("/posts/{slug}", h.GetPost)
	r.Get("/testimonials", h.ListTestimonials)

	return r
}

var validTemplateCategories = []string{"classic", "modern", "floral", "minimalist"}

func (h *PublicHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)
	category := r.URL.Query().Get("category")

	if !util.IsValidEnum(category, validTemplateCategories) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid category value"})
		return
	}

	templates, total, err := h.catalogService.ListPublishedTemplates(r.Context(), model.TemplateCategory(category), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list templates")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": templates,
		"total": total,
	})
}

func (h *PublicHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	tpl, err := h.catalogService.GetPublishedTemplate(r.Context(), slug)
	if err != nil {
		log.Error().Err(err).Msg("failed to get template")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	if tpl == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Template not found"})
		return
	}

	writeJSON(w, http.StatusOK, tpl)
}

func (h *PublicHandler) ListHantaran(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	packages, total, err := h.catalogService.ListPublishedHantaran(r.Context(), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list hantaran packages")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": packages,
		"total": total,
	})
}

func (h *PublicHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	services, err := h.catalogService.ListPublishedServices(r.Context(), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list services")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": services,
		"total": len(services),
	})
}

func (h *PublicHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	posts, err := h.blogService.ListPublishedPosts(r.Context(), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list posts")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": posts,
		"total": len(posts),
	})
}

func (h *PublicHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.blogService.GetPublishedPost(r.Context(), slug)
	if err != nil {
		log.Error().Err(err).Msg("failed to get post")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	if post == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Post not found"})
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PublicHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	testimonials, err := h.blogService.ListPublishedTestimonials(r.Context(), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list testimonials")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": testimonials,
		"total": len(testimonials),
	})
}
