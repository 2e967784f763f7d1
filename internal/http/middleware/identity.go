package middleware

import (
	"laxin/internal/auth"
	"laxin/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	currentUserKey = "current_user"

	// TokenHeader is checked first; TokenCookie is the fallback for
	// transports that cannot set custom headers (browser websockets).
	TokenHeader = "Token"
	TokenCookie = "token"
)

// UserLoader resolves a token subject to its stored user record.
type UserLoader func(c *gin.Context, id int64) (domain.User, error)

// Identity attaches the caller's identity to every request before any
// handler runs. A missing, invalid or expired credential silently degrades
// to the anonymous identity: enforcement happens at capability checks, not
// here, so public endpoints stay reachable without a token.
func Identity(codec auth.Codec, load UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(currentUserKey, resolveUser(c, codec, load))
		c.Next()
	}
}

func resolveUser(c *gin.Context, codec auth.Codec, load UserLoader) domain.User {
	token := c.GetHeader(TokenHeader)
	if token == "" {
		if fromCookie, err := c.Cookie(TokenCookie); err == nil {
			token = fromCookie
		}
	}
	if token == "" {
		return domain.Anonymous()
	}

	claims := codec.Decode(token)
	if claims == nil {
		return domain.Anonymous()
	}

	user, err := load(c, claims.UserID)
	if err != nil {
		return domain.Anonymous()
	}
	return user
}

// CurrentUser returns the identity resolved for this request, anonymous
// when the middleware has not run.
func CurrentUser(c *gin.Context) domain.User {
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(domain.User); ok {
			return u
		}
	}
	return domain.Anonymous()
}
