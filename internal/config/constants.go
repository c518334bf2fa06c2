package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Admin session token lifetime. Tokens are stateless; this is both the JWT
// expiry and the cookie Max-Age.
const SessionTTL = 24 * time.Hour

// Maximum accepted upload size for admin image uploads
const MaxUploadBytes = 5 << 20
