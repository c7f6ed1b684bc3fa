// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker  func() bool
	aiAvailable      bool
	supportedSources []string
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string   `json:"status"`
	Database  string   `json:"database"`
	AI        string   `json:"ai"`
	Sources   []string `json:"sources"`
	Timestamp string   `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker func() bool, aiAvailable bool, supportedSources []string) *HealthController {
	return &HealthController{
		dbHealthChecker:  dbHealthChecker,
		aiAvailable:      aiAvailable,
		supportedSources: supportedSources,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its dependencies.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		dbStatus = "connected"
	}

	aiStatus := "not_configured"
	if h.aiAvailable {
		aiStatus = "configured"
	}

	sources := h.supportedSources
	if sources == nil {
		sources = []string{}
	}

	response := HealthResponse{
		Status:    "ok",
		Database:  dbStatus,
		AI:        aiStatus,
		Sources:   sources,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, response)
}
