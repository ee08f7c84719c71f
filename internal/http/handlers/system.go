package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to Commute.ai API"})
}

// GET /health reports 503 with the same body when any dependency is down.
func (h *Handler) HealthCheck(c *gin.Context) {
	report := h.Health.Check(c.Request.Context())
	status := http.StatusOK
	if !report.Healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
