package handlers

import (
	"laxin/internal/domain"
	"laxin/internal/http/middleware"
	"laxin/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register handles POST /api/auth/register. Self-registration needs only a
// phone; the password falls back to the configured default. Supplying a role
// is gated upstream by Permit(CapCreateUser, WhenBodyHas("role")).
func (a API) Register(c *gin.Context) {
	var req registerRequest
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

	token, err := a.Codec.Encode(id)
	if err != nil {
		a.respondError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "register", "user_id="+itoa64(id))
	a.created(c, gin.H{"token": token, "id": id})
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. An unknown phone and a wrong password
// answer identically so the endpoint does not leak which phones exist.
func (a API) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequest(c, domain.CodeClientError, "invalid payload")
		return
	}

	user, hash, err := a.Repo.Credentials(c.Request.Context(), req.Phone)
	if err != nil {
		if domain.IsNotFound(err) {
			a.respondError(c, domain.NewAPIError(domain.CodeBadCredentials))
			return
		}
		a.respondError(c, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		a.respondError(c, domain.NewAPIError(domain.CodeBadCredentials))
		return
	}

	token, err := a.Codec.Encode(user.ID)
	if err != nil {
		a.respondError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "user_id="+itoa64(user.ID))
	result := serializeUser(user)
	result["token"] = token
	a.ok(c, gin.H{"result": result, "token": token})
}
