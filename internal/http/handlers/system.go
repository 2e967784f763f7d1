package handlers

import (
	"net/http"

	"laxin/internal/config"

	"github.com/gin-gonic/gin"
)

// Health reports process liveness.
func (a API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DBCheck pings the database so deploys can verify connectivity.
func (a API) DBCheck(c *gin.Context) {
	if err := config.EnsureDB(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}
