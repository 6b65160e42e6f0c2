package adminapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/insightdrift/insightdrift/internal/domain"
)

// CreateExperiment creates a new experiment in Draft state.
func (h *Handler) CreateExperiment(c echo.Context) error {
	var req domain.CreateExperimentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errBody(domain.CodeInvalidArgument, "invalid request body"))
	}

	ctx := c.Request().Context()

	exp, err := h.service.CreateExperiment(ctx, req)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, exp)
}

// GetExperiment retrieves one experiment.
func (h *Handler) GetExperiment(c echo.Context) error {
	ctx := c.Request().Context()

	exp, err := h.service.GetExperiment(ctx, c.Param("experiment_id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, exp)
}

// ListExperiments lists all experiments.
func (h *Handler) ListExperiments(c echo.Context) error {
	ctx := c.Request().Context()

	experiments, err := h.service.ListExperiments(ctx)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"experiments": experiments})
}

// UpdateStatus performs a lifecycle transition on an experiment.
func (h *Handler) UpdateStatus(c echo.Context) error {
	var req domain.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errBody(domain.CodeInvalidArgument, "invalid request body"))
	}

	ctx := c.Request().Context()

	exp, err := h.service.UpdateExperimentStatus(ctx, c.Param("experiment_id"), req.Status)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, exp)
}

func errBody(code domain.Code, message string) map[string]interface{} {
	return map[string]interface{}{
		"error": map[string]string{"code": string(code), "message": message},
	}
}

func jsonError(c echo.Context, err error) error {
	var derr *domain.Error
	if errors.As(err, &derr) {
		return c.JSON(derr.Code.HTTPStatus(), errBody(derr.Code, derr.Message))
	}
	return c.JSON(http.StatusInternalServerError, errBody("internal", "internal error"))
}
