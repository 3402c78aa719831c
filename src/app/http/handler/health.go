// Package handler contains HTTP handlers for the API.
// Handlers parse requests, call use case methods and render the response envelope.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"diarybook/src/app/http/response"
	"diarybook/src/app/middleware"
	"diarybook/src/core/usecase"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	healthService *usecase.HealthService
	now           func() time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(healthService *usecase.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
		now:           time.Now,
	}
}

// HealthResponse is the data of the health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Health reports that the process is serving requests.
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response.Message(c, "Diary Book API is running", HealthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC(),
	})
}

// DetailedHealth checks every component and answers 503 when one is down.
// GET /health/detailed
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	status := h.healthService.Check(c.Request.Context())
	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, response.Success{Success: code == http.StatusOK, Data: status})
}

// WelcomeResponse is the data of the root endpoint.
type WelcomeResponse struct {
	Version       string `json:"version"`
	Authenticated bool   `json:"authenticated"`
}

// Welcome greets the caller and reports whether a valid token came with the request.
// GET /
func Welcome(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, ok := middleware.GetIdentity(c)
		response.Message(c, "Welcome to Diary Book API", WelcomeResponse{
			Version:       version,
			Authenticated: ok,
		})
	}
}
