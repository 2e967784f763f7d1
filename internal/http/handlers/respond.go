package handlers

import (
	"net/http"

	"laxin/internal/auth"
	"laxin/internal/domain"
	"laxin/internal/http/middleware"
	"laxin/internal/repositories"
	"laxin/internal/utils"

	"github.com/gin-gonic/gin"
)

// API bundles the handler dependencies: the user store, the token codec and
// registration defaults. One value is built at startup and shared; it holds
// no per-request state.
type API struct {
	Repo            repositories.UserRepository
	Codec           auth.Codec
	DefaultPassword string
}

// jsonify sends the envelope: the catalogue code merged into the payload.
// A payload carrying a token also sets it as a cookie so browser transports
// that cannot send custom headers can authenticate.
func (a API) jsonify(c *gin.Context, status int, code domain.Code, body gin.H) {
	payload := gin.H{"code": int(code)}
	for k, v := range body {
		payload[k] = v
	}
	if token, ok := payload["token"].(string); ok && token != "" {
		c.SetCookie(middleware.TokenCookie, token, int(a.Codec.TTL().Seconds()), "/", "", false, true)
	}
	c.JSON(status, payload)
}

func (a API) ok(c *gin.Context, body gin.H) {
	a.jsonify(c, http.StatusOK, domain.CodeOK, body)
}

func (a API) created(c *gin.Context, body gin.H) {
	a.jsonify(c, http.StatusCreated, domain.CodeCreated, body)
}

func (a API) badRequest(c *gin.Context, code domain.Code, message string) {
	a.jsonify(c, http.StatusBadRequest, code, gin.H{"message": message})
}

func (a API) unauthorized(c *gin.Context) {
	code := domain.CodeUnauthorized
	a.jsonify(c, http.StatusUnauthorized, code, gin.H{"message": domain.Message(code)})
}

func (a API) forbidden(c *gin.Context, code domain.Code, message string) {
	a.jsonify(c, http.StatusForbidden, code, gin.H{"message": message})
}

func (a API) notFound(c *gin.Context, message string) {
	a.jsonify(c, http.StatusNotFound, domain.CodeNotFound, gin.H{"message": message})
}

// respondError maps domain errors onto envelopes at the handler boundary.
// Permission and validation failures keep their own codes and messages;
// anything unrecognized becomes an opaque 500.
func (a API) respondError(c *gin.Context, err error) {
	switch {
	case domain.IsPermission(err):
		perm, _ := domain.AsPermission(err)
		a.forbidden(c, perm.Code, perm.Error())
	case domain.IsAPIError(err):
		apiErr, _ := domain.AsAPIError(err)
		switch apiErr.Code {
		case domain.CodeUnauthorized:
			a.unauthorized(c)
		case domain.CodeUserExists:
			a.jsonify(c, http.StatusConflict, apiErr.Code, gin.H{"message": apiErr.Error()})
		default:
			a.badRequest(c, apiErr.Code, apiErr.Error())
		}
	case domain.IsValidation(err):
		a.badRequest(c, domain.CodeClientError, err.Error())
	case domain.IsNotFound(err):
		a.notFound(c, err.Error())
	case domain.IsConflict(err):
		a.jsonify(c, http.StatusConflict, domain.CodeUserExists, gin.H{"message": err.Error()})
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "unhandled_error", err.Error())
		a.jsonify(c, http.StatusInternalServerError, domain.CodeServerError,
			gin.H{"message": domain.Message(domain.CodeServerError)})
	}
}
