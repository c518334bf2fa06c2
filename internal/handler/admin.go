package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/inarawedding/site-server-go/internal/audit"
	apperrors "github.com/inarawedding/site-server-go/internal/errors"
	"github.com/inarawedding/site-server-go/internal/middleware"
	"github.com/inarawedding/site-server-go/internal/model"
	"github.com/inarawedding/site-server-go/internal/service"
	"github.com/inarawedding/site-server-go/internal/util"
)

// AdminHandler is the back-office API. Authentication happens upstream in the
// session gate; every request arriving here carries verified claims.
type AdminHandler struct {
	adminService   *service.AdminService
	catalogService *service.CatalogService
	blogService    *service.BlogService
}

func NewAdminHandler(
	adminService *service.AdminService,
	catalogService *service.CatalogService,
	blogService *service.BlogService,
) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		catalogService: catalogService,
		blogService:    blogService,
	}
}

func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.Me)
	r.Get("/stats", h.Stats)

	// Invitation templates
	r.Get("/templates", h.ListTemplates)
	r.Post("/templates", h.CreateTemplate)
	r.Patch("/templates/{id}", h.UpdateTemplate)
	r.Delete("/templates/{id}", h.DeleteTemplate)

	// Hantaran packages
	r.Get("/hantaran", h.ListHantaran)
	r.Post("/hantaran", h.CreateHantaran)
	r.Patch("/hantaran/{id}", h.UpdateHantaran)
	r.Delete("/hantaran/{id}", h.DeleteHantaran)

	// Wedding services
	r.Get("/services", h.ListServices)
	r.Post("/services", h.CreateService)
	r.Patch("/services/{id}", h.UpdateService)
	r.Delete("/services/{id}", h.DeleteService)

	// Blog posts
	r.Get("/posts", h.ListPosts)
	r.Post("/posts", h.CreatePost)
	r.Patch("/posts/{id}", h.UpdatePost)
	r.Post("/posts/{id}/publish", h.PublishPost)
	r.Post("/posts/{id}/unpublish", h.UnpublishPost)
	r.Delete("/posts/{id}", h.DeletePost)

	// Testimonials
	r.Get("/testimonials", h.ListTestimonials)
	r.Post("/testimonials", h.CreateTestimonial)
	r.Patch("/testimonials/{id}", h.UpdateTestimonial)
	r.Delete("/testimonials/{id}", h.DeleteTestimonial)

	// Administrators
	r.Get("/administrators", h.ListAdministrators)
	r.Post("/administrators", h.CreateAdministrator)
	r.Get("/administrators/{id}", h.GetAdministrator)
	r.Patch("/administrators/{id}", h.UpdateAdministrator)

	return r
}

func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetAdminClaims(r.Context())
	if claims == nil {
		writeError(w, apperrors.Unauthorized("No session"))
		return
	}

	admin, err := h.adminService.GetAdministrator(r.Context(), claims.AdminID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load current administrator")
		writeError(w, apperrors.Database(err))
		return
	}
	if admin == nil {
		// The account was removed after the token was issued.
		middleware.ClearSessionCookie(w, middleware.AdminTokenCookie, "/")
		writeError(w, apperrors.Unauthorized("Session no longer valid"))
		return
	}

	writeJSON(w, http.StatusOK, admin)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.GetStats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to get stats")
		writeError(w, apperrors.Database(err))
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func contentID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if !util.IsValidUUID(id) {
		return "", apperrors.InvalidInput("id", "must be a UUID")
	}
	return id, nil
}

func auditContent(r *http.Request, event audit.EventType, kind, id string) {
	e := audit.Event{
		Type:    event,
		Details: map[string]interface{}{"kind": kind, "id": id},
	}
	if claims := middleware.GetAdminClaims(r.Context()); claims != nil {
		e.AdminID = claims.AdminID
		e.Email = claims.Email
	}
	audit.LogFromRequest(r, e)
}

// Invitation templates

func (h *AdminHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	templates, total, err := h.catalogService.ListTemplates(r.Context(), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list templates")
		writeError(w, apperrors.Database(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": templates,
		"total": total,
	})
}

func (h *AdminHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slug        string  `json:"slug"`
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		PriceIDR    int64   `json:"priceIdr"`
		ImageURL    *string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("body", "must be valid JSON"))
		return
	}

	if !util.IsValidSlug(req.Slug) {
		writeError(w, apperrors.InvalidInput("slug", "must be lowercase letters, digits, and hyphens"))
		return
	}
	if req.Name == "" {
		writeError(w, apperrors.MissingRequired("name"))
		return
	}
	if req.Category == "" || !util.IsValidEnum(req.Category, validTemplateCategories) {
		writeError(w, apperrors.InvalidInput("category", "unknown category"))
		return
	}
	if req.PriceIDR < 0 {
		writeError(w, apperrors.InvalidInput("priceIdr", "must not be negative"))
		return
	}

	tpl, err := h.catalogService.CreateTemplate(r.Context(), model.CreateTemplateParams{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Category:    model.TemplateCategory(req.Category),
		PriceIDR:    req.PriceIDR,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create template")
		writeError(w, apperrors.Database(err))
		return
	}

	auditContent(r, audit.EventContentCreate, "template", tpl.ID)
	writeJSON(w, http.StatusCreated, tpl)
}

func (h *AdminHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		PriceIDR    *int64  `json:"priceIdr"`
		ImageURL    *string `json:"imageUrl"`
		IsPublished *bool   `json:"isPublished"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("body", "must be valid JSON"))
		return
	}

	params := model.UpdateTemplateParams{
		Name:        req.Name,
		Description: req.Description,
		PriceIDR:    req.PriceIDR,
		ImageURL:    req.ImageURL,
		IsPublished: req.IsPublished,
	}
	if req.Category != nil {
		if !util.IsValidEnum(*req.Category, validTemplateCategories) || *req.Category == "" {
			writeError(w, apperrors.InvalidInput("category", "unknown category"))
			return
		}
		category := model.TemplateCategory(*req.Category)
		params.Category = &category
	}

	tpl, err := h.catalogService.UpdateTemplate(r.Context(), id, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to update template")
		writeError(w, apperrors.Database(err))
		return
	}
	if tpl == nil {
		writeError(w, apperrors.NotFound("Template"))
		return
	}

	auditContent(r, audit.EventContentUpdate, "template", id)
	writeJSON(w, http.StatusOK, tpl)
}

func (h *AdminHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.catalogService.DeleteTemplate(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("failed to delete template")
		writeError(w, apperrors.Database(err))
		return
	}

	auditContent(r, audit.EventContentDelete, "template", id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Hantaran packages

func (h *AdminHandler) ListHantaran(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	packages, total, err := h.catalogService.ListHantaran(r.Context(), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list hantaran packages")
		writeError(w, apperrors.Database(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": packages,
		"total": total,
	})
}

func (h *AdminHandler) CreateHantaran(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slug        string           `json:"slug"`
		Name        string           `json:"name"`
		Description string           `json:"description"`
		PriceIDR    int64            `json:"priceIdr"`
		Items       *json.RawMessage `json:"items"`
		ImageURL    *string          `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("body", "must be valid JSON"))
		return
	}

	if !util.IsValidSlug(req.Slug) {
		writeError(w, apperrors.InvalidInput("slug", "must be lowercase letters, digits, and hyphens"))
		return
	}
	if req.Name == "" {
		writeError(w, apperrors.MissingRequired("name"))
		return
	}
	if req.PriceIDR < 0 {
		writeError(w, apperrors.InvalidInput("priceIdr", "must not be negative"))
		return
	}

	pkg, err := h.catalogService.CreateHantaran(r.Context(), model.CreateHantaranParams{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		PriceIDR:    req.PriceIDR,
		Items:       req.Items,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create hantaran package")
		writeError(w, apperrors.Database(err))
		return
	}

	auditContent(r, audit.EventContentCreate, "hantaran", pkg.ID)
	writeJSON(w, http.StatusCreated, pkg)
}

func (h *AdminHandler) UpdateHantaran(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Name        *string          `json:"name"`
		Description *string          `json:"description"`
		PriceIDR    *int64           `json:"priceIdr"`
		Items       *json.RawMessage `json:"items"`
		ImageURL    *string          `json:"imageUrl"`
		IsPublished *bool            `json:"isPublished"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("body", "must be valid JSON"))
		return
	}

	pkg, err := h.catalogService.UpdateHantaran(r.Context(), id, model.UpdateHantaranParams{
		Name:        req.Name,
		Description: req.Description,
		PriceIDR:    req.PriceIDR,
		Items:       req.Items,
		ImageURL:    req.ImageURL,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update hantaran package")
		writeError(w, apperrors.Database(err))
		return
	}
	if pkg == nil {
		writeError(w, apperrors.NotFound("Hantaran package"))
		return
	}

	auditContent(r, audit.EventContentUpdate, "hantaran", id)
	writeJSON(w, http.StatusOK, pkg)
}

func (h *AdminHandler) DeleteHantaran(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.catalogService.DeleteHantaran(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("failed to delete hantaran package")
		writeError(w, apperrors.Database(err))
		return
	}

	auditContent(r, audit.EventContentDelete, "hantaran", id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Wedding services

func (h *AdminHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	services, total, err := h.catalogService.ListServices(r.Context(), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list services")
		writeError(w, apperrors.Database(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": services,
		"total": total,
	})
}

func (h *AdminHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slug         string  `json:"slug"`
		Name         string  `json:"name"`
		Description  string  `json:"description"`
		PriceFromIDR int64   `json:"priceFromIdr"`
		ImageURL     *string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("body", "must be valid JSON"))
		return
	}

	if !util.IsValidSlug(req.Slug) {
		writeError(w, apperrors.InvalidInput("slug", "must be lowercase letters, digits, and hyphens"))
		return
	}
	if req.Name == "" {
		writeError(w, apperrors.MissingRequired("name"))
		return
	}
	if req.PriceFromIDR < 0 {
		writeError(w, apperrors.InvalidInput("priceFromIdr", "must not be negative"))
		return
	}

	svc, err := h.catalogService.CreateService(r.Context(), model.CreateWeddingServiceParams{
		Slug:         req.Slug,
		Name:         req.Name,
		Description:  req.Description,
		PriceFromIDR: req.PriceFromIDR,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create service")
		writeError(w, apperrors.Database(err))
		return
	}

	auditContent(r, audit.EventContentCreate, "service", svc.ID)
	writeJSON(w, http.StatusCreated, svc)
}

func (h *AdminHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Name         *string `json:"name"`
		Description  *string `json:"description"`
		PriceFromIDR *int64  `json:"priceFromIdr"`
		ImageURL     *string `json:"imageUrl"`
		IsPublished  *bool   `json:"isPublished"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("body", "must be valid JSON"))
		return
	}

	svc, err := h.catalogService.UpdateService(r.Context(), id, model.UpdateWeddingServiceParams{
		Name:         req.Name,
		Description:  req.Description,
		PriceFromIDR: req.PriceFromIDR,
		ImageURL:     req.ImageURL,
		IsPublished:  req.IsPublished,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update service")
		writeError(w, apperrors.Database(err))
		return
	}
	if svc == nil {
		writeError(w, apperrors.NotFound("Service"))
		return
	}

	auditContent(r, audit.EventContentUpdate, "service", id)
	writeJSON(w, http.StatusOK, svc)
}

func (h *AdminHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.catalogService.DeleteService(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("failed to delete service")
		writeError(w, apperrors.Database(err))
		return
	}

	auditContent(r, audit.EventContentDelete, "service", id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Blog posts

func (h *AdminHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	posts, total, err := h.blogService.ListPosts(r.Context(), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list posts")
		writeError(w, apperrors.Database(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": posts,
		"total": total,
	})
}

func (h *AdminHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slug          string  `json:"slug"`
		Title         string  `json:"title"`
		Excerpt       string  `json:"excerpt"`
		Body          string  `json:"body"`
		CoverImageURL *string `json:"coverImageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("body", "must be valid JSON"))
		return
	}

	if !util.IsValidSlug(req.Slug) {
		writeError(w, apperrors.InvalidInput("slug", "must be lowercase letters, digits, and hyphens"))
		return
	}
	if req.Title == "" {
		writeError(w, apperrors.MissingRequired("title"))
		return
	}

	post, err := h.blogService.CreatePost(r.Context(), model.CreateBlogPostParams{
		Slug:          req.Slug,
		Title:         req.Title,
		Excerpt:       req.Excerpt,
		Body:          req.Body,
		CoverImageURL: req.CoverImageURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create post")
		writeError(w, apperrors.Database(err))
		return
	}

	auditContent(r, audit.EventContentCreate, "post", post.ID)
	writeJSON(w, http.StatusCreated, post)
}

func (h *AdminHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Title         *string `json:"title"`
		Excerpt       *string `json:"excerpt"`
		Body          *string `json:"body"`
		CoverImageURL *string `json:"coverImageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("body", "must be valid JSON"))
		return
	}

	post, err := h.blogService.UpdatePost(r.Context(), id, model.UpdateBlogPostParams{
		Title:         req.Title,
		Excerpt:       req.Excerpt,
		Body:          req.Body,
		CoverImageURL: req.CoverImageURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update post")
		writeError(w, apperrors.Database(err))
		return
	}
	if post == nil {
		writeError(w, apperrors.NotFound("Post"))
		return
	}

	auditContent(r, audit.EventContentUpdate, "post", id)
	writeJSON(w, http.StatusOK, post)
}

func (h *AdminHandler) PublishPost(w http.ResponseWriter, r *http.Request) {
	h.setPostPublished(w, r, true)
}

func (h *AdminHandler) UnpublishPost(w http.ResponseWriter, r *http.Request) {
	h.setPostPublished(w, r, false)
}

func (h *AdminHandler) setPostPublished(w http.ResponseWriter, r *http.Request, published bool) {
	id, err := contentID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	post, err := h.blogService.SetPostPublished(r.Context(), id, published)
	if err != nil {
		log.Error().Err(err).Msg("failed to change post visibility")
		writeError(w, apperrors.Database(err))
		return
	}
	if post == nil {
		writeError(w, apperrors.NotFound("Post"))
		return
	}

	auditContent(r, audit.EventContentUpdate, "post", id)
	writeJSON(w, http.StatusOK, post)
}

func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.blogService.DeletePost(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("failed to delete post")
		writeError(w, apperrors.Database(err))
		return
	}

	auditContent(r, audit.EventContentDelete, "post", id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Testimonials

func (h *AdminHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	testimonials, total, err := h.blogService.ListTestimonials(r.Context(), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list testimonials")
		writeError(w, apperrors.Database(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": testimonials,
		"total": total,
	})
}

func (h *AdminHandler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientName string     `json:"clientName"`
		EventDate  *time.Time `json:"eventDate"`
		Quote      string     `json:"quote"`
		Rating     int        `json:"rating"`
		PhotoURL   *string    `json:"photoUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("body", "must be valid JSON"))
		return
	}

	if req.ClientName == "" {
		writeError(w, apperrors.MissingRequired("clientName"))
		return
	}
	if req.Quote == "" {
		writeError(w, apperrors.MissingRequired("quote"))
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, apperrors.InvalidInput("rating", "must be between 1 and 5"))
		return
	}

	testimonial, err := h.blogService.CreateTestimonial(r.Context(), model.CreateTestimonialParams{
		ClientName: req.ClientName,
		EventDate:  req.EventDate,
		Quote:      req.Quote,
		Rating:     req.Rating,
		PhotoURL:   req.PhotoURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create testimonial")
		writeError(w, apperrors.Database(err))
		return
	}

	auditContent(r, audit.EventContentCreate, "testimonial", testimonial.ID)
	writeJSON(w, http.StatusCreated, testimonial)
}

func (h *AdminHandler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		ClientName  *string    `json:"clientName"`
		EventDate   *time.Time `json:"eventDate"`
		Quote       *string    `json:"quote"`
		Rating      *int       `json:"rating"`
		PhotoURL    *string    `json:"photoUrl"`
		IsPublished *bool      `json:"isPublished"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("body", "must be valid JSON"))
		return
	}

	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		writeError(w, apperrors.InvalidInput("rating", "must be between 1 and 5"))
		return
	}

	testimonial, err := h.blogService.UpdateTestimonial(r.Context(), id, model.UpdateTestimonialParams{
		ClientName:  req.ClientName,
		EventDate:   req.EventDate,
		Quote:       req.Quote,
		Rating:      req.Rating,
		PhotoURL:    req.PhotoURL,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update testimonial")
		writeError(w, apperrors.Database(err))
		return
	}
	if testimonial == nil {
		writeError(w, apperrors.NotFound("Testimonial"))
		return
	}

	auditContent(r, audit.EventContentUpdate, "testimonial", id)
	writeJSON(w, http.StatusOK, testimonial)
}

func (h *AdminHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.blogService.DeleteTestimonial(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("failed to delete testimonial")
		writeError(w, apperrors.Database(err))
		return
	}

	auditContent(r, audit.EventContentDelete, "testimonial", id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Administrators

var validAdminRoles = []string{"owner", "editor"}

func (h *AdminHandler) ListAdministrators(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	admins, total, err := h.adminService.ListAdministrators(r.Context(), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list administrators")
		writeError(w, apperrors.Database(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": admins,
		"total": total,
	})
}

func (h *AdminHandler) CreateAdministrator(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("body", "must be valid JSON"))
		return
	}

	if !util.IsValidEmail(req.Email) {
		writeError(w, apperrors.InvalidInput("email", "must be a valid address"))
		return
	}
	if req.Name == "" {
		writeError(w, apperrors.MissingRequired("name"))
		return
	}
	if len(req.Password) < 8 {
		writeError(w, apperrors.InvalidInput("password", "must be at least 8 characters"))
		return
	}
	if req.Role == "" || !util.IsValidEnum(req.Role, validAdminRoles) {
		writeError(w, apperrors.InvalidInput("role", "unknown role"))
		return
	}

	admin, err := h.adminService.CreateAdministrator(r.Context(), req.Email, req.Name, req.Password, model.AdminRole(req.Role))
	if err != nil {
		if apperrors.GetCode(err) != apperrors.ErrCodeAlreadyExists {
			log.Error().Err(err).Msg("failed to create administrator")
		}
		writeError(w, err)
		return
	}

	e := audit.Event{Type: audit.EventAdminCreate, Details: map[string]interface{}{"createdId": admin.ID}}
	if claims := middleware.GetAdminClaims(r.Context()); claims != nil {
		e.AdminID = claims.AdminID
		e.Email = claims.Email
	}
	audit.LogFromRequest(r, e)

	writeJSON(w, http.StatusCreated, admin)
}

func (h *AdminHandler) GetAdministrator(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	admin, err := h.adminService.GetAdministrator(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get administrator")
		writeError(w, apperrors.Database(err))
		return
	}
	if admin == nil {
		writeError(w, apperrors.NotFound("Administrator"))
		return
	}

	writeJSON(w, http.StatusOK, admin)
}

func (h *AdminHandler) UpdateAdministrator(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Role     *string `json:"role"`
		IsActive *bool   `json:"isActive"`
		Password *string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("body", "must be valid JSON"))
		return
	}

	var role *model.AdminRole
	if req.Role != nil {
		if *req.Role == "" || !util.IsValidEnum(*req.Role, validAdminRoles) {
			writeError(w, apperrors.InvalidInput("role", "unknown role"))
			return
		}
		v := model.AdminRole(*req.Role)
		role = &v
	}
	if req.Password != nil && len(*req.Password) < 8 {
		writeError(w, apperrors.InvalidInput("password", "must be at least 8 characters"))
		return
	}

	admin, err := h.adminService.UpdateAdministrator(r.Context(), id, req.Name, role, req.IsActive, req.Password)
	if err != nil {
		if apperrors.GetCode(err) != apperrors.ErrCodeNotFound {
			log.Error().Err(err).Msg("failed to update administrator")
		}
		writeError(w, err)
		return
	}

	eventType := audit.EventAdminUpdate
	if req.IsActive != nil && !*req.IsActive {
		eventType = audit.EventAdminDeactivate
	}
	e := audit.Event{Type: eventType, Details: map[string]interface{}{"targetId": id}}
	if claims := middleware.GetAdminClaims(r.Context()); claims != nil {
		e.AdminID = claims.AdminID
		e.Email = claims.Email
	}
	audit.LogFromRequest(r, e)

	writeJSON(w, http.StatusOK, admin)
}
