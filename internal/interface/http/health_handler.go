package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health GET /health, used by liveness and readiness probes.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
