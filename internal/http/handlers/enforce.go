package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"laxin/internal/domain"
	"laxin/internal/http/middleware"
	"laxin/internal/permissions"

	"github.com/gin-gonic/gin"
)

// Capability names one permission check against the resolved Action. Checks
// that need request context (a target id from the path) read it from c.
type Capability func(act permissions.Action, c *gin.Context) error

var (
	CapCreateUser Capability = func(act permissions.Action, _ *gin.Context) error {
		return act.CanCreateUser()
	}
	CapEditUser Capability = func(act permissions.Action, _ *gin.Context) error {
		return act.CanEditUser()
	}
	CapDeleteUser Capability = func(act permissions.Action, _ *gin.Context) error {
		return act.CanDeleteUser()
	}
)

// CapReadUser checks read permission against the id in the named path
// parameter.
func CapReadUser(param string) Capability {
	return func(act permissions.Action, c *gin.Context) error {
		id, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil || id <= 0 {
			return domain.ValidationError{Field: param, Msg: "must be a positive integer"}
		}
		return act.CanReadUser(id)
	}
}

type permitConfig struct {
	bodyField string
}

type PermitOption func(*permitConfig)

// WhenBodyHas makes the gate conditional: the capability is only enforced
// when the JSON body carries a non-empty value for field. The body stays
// readable for the wrapped handler.
func WhenBodyHas(field string) PermitOption {
	return func(cfg *permitConfig) { cfg.bodyField = field }
}

// Permit gates the wrapped handler behind one capability check. On denial it
// responds with that denial's own code and message and the handler never
// runs; the request is otherwise untouched.
func (a API) Permit(capability Capability, opts ...PermitOption) gin.HandlerFunc {
	var cfg permitConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(c *gin.Context) {
		if cfg.bodyField != "" && !bodyHasField(c, cfg.bodyField) {
			c.Next()
			return
		}

		act, err := permissions.ForUser(middleware.CurrentUser(c))
		if err != nil {
			a.respondError(c, err)
			c.Abort()
			return
		}

		if err := capability(act, c); err != nil {
			a.respondError(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}

// bodyHasField peeks at the JSON body for a non-empty field, then restores
// the body so binding downstream still works.
func bodyHasField(c *gin.Context, field string) bool {
	if c.Request.Body == nil {
		return false
	}
	raw, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil || len(raw) == 0 {
		return false
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return false
	}
	value, ok := body[field]
	if !ok || value == nil {
		return false
	}
	if s, isString := value.(string); isString && s == "" {
		return false
	}
	return true
}
