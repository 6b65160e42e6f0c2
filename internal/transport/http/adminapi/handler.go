// Package adminapi provides the internal experiment administration API.
// The routes here change experiment lifecycle state and are only served on
// the internal port.
package adminapi

import (
	"github.com/labstack/echo/v4"

	"github.com/insightdrift/insightdrift/internal/service"
)

// Handler handles internal admin requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers internal routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/internal/experiments", h.CreateExperiment)
	e.GET("/internal/experiments", h.ListExperiments)
	e.GET("/internal/experiments/:experiment_id", h.GetExperiment)
	e.POST("/internal/experiments/:experiment_id/status", h.UpdateStatus)
}
