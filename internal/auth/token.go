package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every verification failure: malformed
// token, bad signature, unexpected algorithm, or expiry. Callers never learn
// which; the reason stays in server-side logs if anyone cares to log it.
var ErrInvalidToken = errors.New("invalid session token")

// Claims are the administrator identity carried by a session token.
type Claims struct {
	AdminID string `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies stateless HS256 session tokens. The secret
// is process-wide and loaded once at startup; rotating it invalidates every
// outstanding token.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a new token for the given administrator, expiring after the
// codec's TTL.
func (c *TokenCodec) Issue(adminID, email, role string) (string, error) {
	now := c.now()
	claims := Claims{
		AdminID: adminID,
		Email:   email,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			Issuer:    "inarawedding",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks the token's signature and expiry and returns its claims.
// Only HMAC signatures are accepted; "none" and asymmetric algorithms fail.
func (c *TokenCodec) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
