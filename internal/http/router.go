package api

import (
	"database/sql"
	"log"
	stdhttp "net/http"

	"laxin/internal/auth"
	intconfig "laxin/internal/config"
	"laxin/internal/domain"
	h "laxin/internal/http/handlers"
	"laxin/internal/http/middleware"
	"laxin/internal/repositories"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, db *sql.DB) *gin.Engine {
	codec := auth.NewCodec([]byte(env.TokenSecret), env.TokenTTL)
	repo := repositories.UserRepository{DB: db}
	api := h.API{
		Repo:            repo,
		Codec:           codec,
		DefaultPassword: env.DefaultPassword,
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(),
		middleware.RateLimit(50, 100),
		middleware.Identity(codec, func(c *gin.Context, id int64) (domain.User, error) {
			return repo.ByID(c.Request.Context(), id)
		}),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	root := r.Group("/api")
	{
		root.GET("/health", api.Health)
		root.GET("/db-check", api.DBCheck)

		// Auth. Self-registration is open; choosing a role on registration
		// needs create-user permission.
		authGroup := root.Group("/auth")
		authGroup.POST("/register", api.Permit(h.CapCreateUser, h.WhenBodyHas("role")), api.Register)
		authGroup.POST("/login", api.Login)

		// Users
		users := root.Group("/users")
		users.GET("", api.ListUsers)
		users.GET("/export", api.ExportUsers)
		users.GET("/:id", api.Permit(h.CapReadUser("id")), api.GetUser)
		users.POST("", api.Permit(h.CapCreateUser), api.CreateUser)
		users.PUT("/:id", api.Permit(h.CapEditUser), api.UpdateUser)
		users.DELETE("/:id", api.Permit(h.CapDeleteUser), api.DeleteUser)
	}

	return r
}
