// Package v1 provides the public HTTP handlers for the backend.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/insightdrift/insightdrift/internal/service"
)

// Handler handles public HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers public routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Home)
	e.GET("/events", h.ListEvents)

	// A/B testing API
	e.POST("/assign-user/:experiment_id/:user_id", h.AssignUser)
	e.POST("/log-ab-test-result", h.LogResult)
	e.GET("/ab-test-results/:experiment_id", h.Results)

	e.GET("/health", h.Health)
}

// Home returns the plain-text welcome message the dashboard renders.
func (h *Handler) Home(c echo.Context) error {
	return c.String(http.StatusOK, "Welcome to InsightDrift!")
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
