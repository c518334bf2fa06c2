package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T) *LoginRateLimiter {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewLoginRateLimiter(client)
}

func loginAttempt(handler http.Handler, ip string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/auth/admin", nil)
	r.RemoteAddr = ip + ":52000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	return rec
}

func TestLoginRateLimiter(t *testing.T) {
	limiter := newTestLimiter(t)

	handler := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("allows up to the limit", func(t *testing.T) {
		for i := 0; i < loginMaxAttempts; i++ {
			rec := loginAttempt(handler, "10.0.0.1")
			assert.Equal(t, http.StatusOK, rec.Code, "attempt %d", i+1)
		}
	})

	t.Run("blocks past the limit", func(t *testing.T) {
		rec := loginAttempt(handler, "10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	})

	t.Run("limits are per IP", func(t *testing.T) {
		rec := loginAttempt(handler, "10.0.0.2")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestLoginRateLimiterFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	limiter := NewLoginRateLimiter(client)

	// Redis going away must not lock administrators out.
	mr.Close()

	handler := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := loginAttempt(handler, "10.0.0.3")
	assert.Equal(t, http.StatusOK, rec.Code)
}
