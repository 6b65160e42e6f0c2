// Package http provides the HTTP server implementations for the backend.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/insightdrift/insightdrift/internal/service"
	"github.com/insightdrift/insightdrift/internal/transport/http/adminapi"
	v1 "github.com/insightdrift/insightdrift/internal/transport/http/v1"
)

// NewPublicServer creates and configures the public-facing HTTP server.
// This server handles variant assignment, event logging and result queries
// for the presentation layer.
func NewPublicServer(svc *service.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	publicHandler := v1.NewHandler(svc)

	// Register Routes
	publicHandler.RegisterRoutes(e)

	return e
}

// NewInternalServer creates and configures the internal-facing HTTP server.
// This server handles experiment administration and is not exposed publicly.
func NewInternalServer(svc *service.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Handlers
	adminHandler := adminapi.NewHandler(svc)

	// Register Routes
	adminHandler.RegisterRoutes(e)

	return e
}
