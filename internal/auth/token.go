package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "la_xin"

// DefaultTTL is the token lifetime used when config supplies none.
const DefaultTTL = 24 * time.Hour

// Claims is the verified token payload. It exists only between Encode and
// Decode; nothing else holds on to it.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// Codec signs and verifies bearer tokens with a process-wide HS256 secret.
// The secret and lifetime are fixed at startup and never mutated.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec builds a Codec. ttl <= 0 falls back to DefaultTTL.
func NewCodec(secret []byte, ttl time.Duration) Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return Codec{secret: secret, ttl: ttl, now: time.Now}
}

// NewCodecAt is NewCodec with an injected clock, for tests.
func NewCodecAt(secret []byte, ttl time.Duration, now func() time.Time) Codec {
	c := NewCodec(secret, ttl)
	if now != nil {
		c.now = now
	}
	return c
}

// TTL reports the configured token lifetime.
func (c Codec) TTL() time.Duration { return c.ttl }

// Encode signs a token for userID with iat = now and exp = now + ttl.
func (c Codec) Encode(userID int64) (string, error) {
	if userID <= 0 {
		return "", errors.New("user id is required")
	}
	if len(c.secret) == 0 {
		return "", errors.New("token secret is not configured")
	}

	now := c.now().UTC()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies token and returns its claims, or nil on any failure:
// bad signature, wrong algorithm, malformed structure, or expiry. A token is
// expired from exp onwards (now == exp already fails). Decode never errors.
func (c Codec) Decode(token string) *Claims {
	if token == "" || len(c.secret) == 0 {
		return nil
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithIssuer(issuer))
	if err != nil || !parsed.Valid {
		return nil
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.UserID <= 0 {
		return nil
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil
	}
	if !c.now().Before(claims.ExpiresAt.Time) {
		return nil
	}
	return claims
}
