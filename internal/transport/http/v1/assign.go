package v1

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/insightdrift/insightdrift/internal/domain"
)

// AssignUser buckets a user into a variant of the experiment. Idempotent:
// repeated calls for the same pair always return the same variant.
func (h *Handler) AssignUser(c echo.Context) error {
	experimentID := c.Param("experiment_id")
	userID := c.Param("user_id")

	ctx := c.Request().Context()

	assignment, err := h.service.Assign(ctx, experimentID, userID)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, domain.AssignResponse{
		Message:      fmt.Sprintf("User %s assigned to group %s", assignment.UserID, assignment.Variant),
		ExperimentID: assignment.ExperimentID,
		UserID:       assignment.UserID,
		Variant:      assignment.Variant,
	})
}
