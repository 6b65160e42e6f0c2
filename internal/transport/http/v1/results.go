package v1

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Results returns per-variant event counts for an experiment as one
// group_<label>_results field per variant, zero-filled. The optional
// event_type query parameter narrows the count to one event type.
func (h *Handler) Results(c echo.Context) error {
	experimentID := c.Param("experiment_id")
	eventType := c.QueryParam("event_type")

	ctx := c.Request().Context()

	counts, err := h.service.Results(ctx, experimentID, eventType)
	if err != nil {
		return jsonError(c, err)
	}

	body := make(map[string]int64, len(counts))
	for _, vc := range counts {
		body[fmt.Sprintf("group_%s_results", vc.Variant)] = vc.Count
	}
	return c.JSON(http.StatusOK, body)
}
