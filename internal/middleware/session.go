package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/inarawedding/site-server-go/internal/auth"
	"github.com/inarawedding/site-server-go/internal/config"
)

const (
	// AdminTokenCookie carries the stateless session JWT for the admin area.
	AdminTokenCookie = "admin-token"

	adminLandingPath = "/admin"
	adminLoginPath   = "/admin/login"
	adminAssetPrefix = "/admin/assets/"
)

type contextKey string

const AdminClaimsContextKey contextKey = "adminClaims"

func GetAdminClaims(ctx context.Context) *auth.Claims {
	if claims, ok := ctx.Value(AdminClaimsContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

// AuthState classifies a request's session cookie.
type AuthState int

const (
	AuthMissing AuthState = iota
	AuthValid
	AuthInvalid
)

type AuthResult struct {
	State  AuthState
	Claims *auth.Claims
}

// SessionGate decides, per request, whether the admin area is reachable. It
// does no I/O: the only check is local token verification, so it is safe to
// run on every request.
type SessionGate struct {
	codec *auth.TokenCodec
}

func NewSessionGate(codec *auth.TokenCodec) *SessionGate {
	return &SessionGate{codec: codec}
}

// Authenticate inspects the request's cookies and returns the session state.
// Exposed separately from the middleware handlers so it is unit-testable
// without an HTTP stack.
func (g *SessionGate) Authenticate(r *http.Request) AuthResult {
	cookie, err := r.Cookie(AdminTokenCookie)
	if err != nil || cookie.Value == "" {
		return AuthResult{State: AuthMissing}
	}

	claims, err := g.codec.Verify(cookie.Value)
	if err != nil {
		// Expired, tampered, or malformed: the distinction stays server-side.
		log.Debug().Err(err).Msg("session gate: token verification failed")
		return AuthResult{State: AuthInvalid}
	}

	return AuthResult{State: AuthValid, Claims: claims}
}

// Pages gates the admin SPA. Unauthenticated requests bounce to the login
// page; an invalid cookie is cleared on the way. The login page itself flips
// the logic: an authenticated visitor is sent to the admin landing page
// instead of being shown the form again.
func (g *SessionGate) Pages(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Shared assets are not gated; the login page needs them to render.
		if strings.HasPrefix(r.URL.Path, adminAssetPrefix) {
			next.ServeHTTP(w, r)
			return
		}

		result := g.Authenticate(r)

		if isLoginPath(r.URL.Path) {
			switch result.State {
			case AuthValid:
				http.Redirect(w, r, adminLandingPath, http.StatusFound)
				return
			case AuthInvalid:
				ClearSessionCookie(w, AdminTokenCookie, "/")
			}
			next.ServeHTTP(w, r)
			return
		}

		switch result.State {
		case AuthValid:
			ctx := context.WithValue(r.Context(), AdminClaimsContextKey, result.Claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		case AuthInvalid:
			ClearSessionCookie(w, AdminTokenCookie, "/")
			http.Redirect(w, r, adminLoginPath, http.StatusFound)
		default:
			http.Redirect(w, r, adminLoginPath, http.StatusFound)
		}
	})
}

// API gates the admin JSON endpoints: same Authenticate, but failures get a
// 401 body instead of a redirect.
func (g *SessionGate) API(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result := g.Authenticate(r)
		if result.State != AuthValid {
			if result.State == AuthInvalid {
				ClearSessionCookie(w, AdminTokenCookie, "/")
			}
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Unauthorized",
			})
			return
		}

		ctx := context.WithValue(r.Context(), AdminClaimsContextKey, result.Claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func isLoginPath(path string) bool {
	return path == adminLoginPath || strings.HasPrefix(path, adminLoginPath+"/")
}

func SetSessionCookie(w http.ResponseWriter, name, token string, path string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     path,
		MaxAge:   int(config.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, name, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:   name,
		Value:  "",
		Path:   path,
		MaxAge: -1,
	})
}
