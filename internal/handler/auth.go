package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/inarawedding/site-server-go/internal/audit"
	apperrors "github.com/inarawedding/site-server-go/internal/errors"
	"github.com/inarawedding/site-server-go/internal/middleware"
	"github.com/inarawedding/site-server-go/internal/service"
)

// AuthHandler owns the admin session lifecycle: POST issues the session
// cookie, DELETE clears it. Logout never fails, even without a cookie.
type AuthHandler struct {
	authService      *service.AuthService
	loginRateLimiter *middleware.LoginRateLimiter
	isProduction     bool
}

func NewAuthHandler(
	authService *service.AuthService,
	loginRateLimiter *middleware.LoginRateLimiter,
	isProduction bool,
) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		loginRateLimiter: loginRateLimiter,
		isProduction:     isProduction,
	}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(h.loginRateLimiter.Handler).Post("/admin", h.Login)
	r.Delete("/admin", h.Logout)

	return r
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("body", "must be valid JSON"))
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		writeError(w, apperrors.MissingRequired("email"))
		return
	}
	if req.Password == "" {
		writeError(w, apperrors.MissingRequired("password"))
		return
	}

	admin, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeUnauthorized {
			audit.LogFromRequest(r, audit.Event{
				Type:  audit.EventLoginFailure,
				Email: req.Email,
			})
		} else {
			log.Error().Err(err).Msg("admin login error")
		}
		writeError(w, err)
		return
	}

	middleware.SetSessionCookie(w, middleware.AdminTokenCookie, token, "/", h.isProduction)

	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventLoginSuccess,
		AdminID: admin.ID,
		Email:   admin.Email,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user": map[string]any{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
			"role":  admin.Role,
		},
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, middleware.AdminTokenCookie, "/")

	audit.LogFromRequest(r, audit.Event{Type: audit.EventLogout})

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
