package middleware

import (
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	loginMaxAttempts = 5
	loginWindow      = 60 * time.Second
	loginKeyPrefix   = "loginlimit:"
)

var loginLimitScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

local windowStart = now - window

redis.call('ZREMRANGEBYSCORE', key, '-inf', windowStart)

local count = redis.call('ZCARD', key)

if count >= limit then
    return 0
end

redis.call('ZADD', key, now, now .. '-' .. math.random())
redis.call('EXPIRE', key, window + 10)

return 1
`)

// LoginRateLimiter throttles credential-guessing by client IP with a sliding
// window in Redis. Redis being down never locks administrators out: errors
// fail open.
type LoginRateLimiter struct {
	client *redis.Client
}

func NewLoginRateLimiter(client *redis.Client) *LoginRateLimiter {
	return &LoginRateLimiter{client: client}
}

func (l *LoginRateLimiter) allow(r *http.Request) bool {
	ip := clientIP(r)
	now := time.Now().Unix()

	result, err := loginLimitScript.Run(
		r.Context(), l.client,
		[]string{loginKeyPrefix + ip},
		now, int64(loginWindow.Seconds()), loginMaxAttempts,
	).Int64()
	if err != nil {
		log.Warn().Err(err).Str("ip", ip).Msg("login rate limit check failed, allowing request")
		return true
	}

	return result == 1
}

func (l *LoginRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(r) {
			log.Warn().Str("ip", clientIP(r)).Msg("login rate limit exceeded")
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"error": "Too many login attempts. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	// chi's RealIP middleware rewrites RemoteAddr from proxy headers.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
