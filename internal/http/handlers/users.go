package handlers

import (
	"strconv"

	"laxin/internal/domain"
	"laxin/internal/http/middleware"
	"laxin/internal/listing"
	"laxin/internal/permissions"
	"laxin/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// serializeUser is the wire shape of a user record. The password hash lives
// only in the repository and can never appear here.
func serializeUser(u domain.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"phone":      u.Phone,
		"name":       u.Name,
		"role":       u.Role.String(),
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

func itoa64(n int64) string { return strconv.FormatInt(n, 10) }

// userFilters declares the recognized list filters; anything else in the
// query string is ignored.
func userFilters() map[string]listing.Filter[domain.User] {
	return map[string]listing.Filter[domain.User]{
		"phone": func(value string, col listing.Collection[domain.User]) (listing.Collection[domain.User], error) {
			return col.Where("phone", listing.OpEq, value), nil
		},
		"name": func(value string, col listing.Collection[domain.User]) (listing.Collection[domain.User], error) {
			return col.Where("name", listing.OpContains, value), nil
		},
		"role": func(value string, col listing.Collection[domain.User]) (listing.Collection[domain.User], error) {
			role, ok := domain.ParseRole(value)
			if !ok {
				return nil, domain.ValidationError{Field: "role", Msg: "unknown role " + value}
			}
			return col.Where("role", listing.OpEq, int(role)), nil
		},
	}
}

// ListUsers handles GET /api/users. The base collection comes from the
// caller's role scope, so filters can only narrow what the role already
// permits.
func (a API) ListUsers(c *gin.Context) {
	pipeline := listing.Pipeline[domain.User]{
		Scope: func() (listing.Collection[domain.User], error) {
			act, err := permissions.ForUser(middleware.CurrentUser(c))
			if err != nil {
				return nil, err
			}
			return act.UserScope(a.Repo.Collection()), nil
		},
		Filters:   userFilters(),
		Serialize: func(u domain.User) any { return serializeUser(u) },
	}

	res, err := pipeline.Run(c.Request)
	if err != nil {
		a.respondError(c, err)
		return
	}
	a.ok(c, gin.H{
		"count":    res.Count,
		"next":     res.Next,
		"previous": res.Previous,
		"results":  res.Results,
	})
}

// GetUser handles GET /api/users/:id; Permit(CapReadUser) has already run.
func (a API) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		a.badRequest(c, domain.CodeClientError, "invalid user id")
		return
	}

	user, err := a.Repo.ByID(c.Request.Context(), id)
	if err != nil {
		a.respondError(c, err)
		return
	}
	a.ok(c, gin.H{"result": serializeUser(user)})
}

type createUserRequest struct {
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUser handles POST /api/users (staff-side creation, gated by
// CapCreateUser).
func (a API) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequest(c, domain.CodeClientError, "invalid payload")
		return
	}

	if err := domain.ValidatePhone(req.Phone); err != nil {
		a.respondError(c, err)
		return
	}
	if err := domain.ValidateName(req.Name); err != nil {
		a.respondError(c, err)
		return
	}

	role := domain.RoleRegular
	if req.Role != "" {
		parsed, ok := domain.ParseRole(req.Role)
		if !ok {
			a.badRequest(c, domain.CodeClientError, "unknown role "+req.Role)
			return
		}
		role = parsed
	}

	exists, err := a.Repo.PhoneExists(c.Request.Context(), req.Phone)
	if err != nil {
		a.respondError(c, err)
		return
	}
	if exists {
		a.respondError(c, domain.NewAPIError(domain.CodeUserExists))
		return
	}

	password := req.Password
	if password == "" {
		password = a.DefaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		a.respondError(c, err)
		return
	}

	id, err := a.Repo.Create(c.Request.Context(),
		domain.User{Phone: req.Phone, Name: req.Name, Role: role}, string(hash))
	if err != nil {
		a.respondError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "users", "create", "user_id="+itoa64(id))
	a.created(c, gin.H{"id": id})
}

type updateUserRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
}

// UpdateUser handles PUT /api/users/:id with key-presence patch semantics:
// absent fields keep their stored values.
func (a API) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		a.badRequest(c, domain.CodeClientError, "invalid user id")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequest(c, domain.CodeClientError, "invalid payload")
		return
	}

	user, err := a.Repo.ByID(c.Request.Context(), id)
	if err != nil {
		a.respondError(c, err)
		return
	}

	if req.Name != nil {
		if err := domain.ValidateName(*req.Name); err != nil {
			a.respondError(c, err)
			return
		}
		user.Name = *req.Name
	}
	if req.Role != nil {
		role, ok := domain.ParseRole(*req.Role)
		if !ok {
			a.badRequest(c, domain.CodeClientError, "unknown role "+*req.Role)
			return
		}
		user.Role = role
	}

	if err := a.Repo.Update(c.Request.Context(), user); err != nil {
		a.respondError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "users", "update", "user_id="+itoa64(id))
	a.ok(c, gin.H{"result": serializeUser(user)})
}

// DeleteUser handles DELETE /api/users/:id.
func (a API) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		a.badRequest(c, domain.CodeClientError, "invalid user id")
		return
	}

	if err := a.Repo.Delete(c.Request.Context(), id); err != nil {
		a.respondError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "users", "delete", "user_id="+itoa64(id))
	a.ok(c, gin.H{"id": id})
}
