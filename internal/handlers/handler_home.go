package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerStatusRoutes registers the unauthenticated liveness routes.
func registerStatusRoutes(r *gin.Engine) {
	r.GET("/", getStatus)
	r.GET("/health", getStatus)
}

// getStatus godoc
// @Summary Service status
// @Description Returns a static payload confirming the service is up
// @Tags status
// @Produce  json
// @Success 200 {object} map[string]string
// @Router /health [get]
func getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "procurement-backend",
		"status":  "ok",
	})
}
