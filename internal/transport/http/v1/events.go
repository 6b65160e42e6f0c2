package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/insightdrift/insightdrift/internal/domain"
)

// LogResult records one interaction event attributed to the caller's
// assigned variant.
func (h *Handler) LogResult(c echo.Context) error {
	var req domain.LogResultRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{
			Error: errorDetail{Code: string(domain.CodeInvalidArgument), Message: "invalid request body"},
		})
	}

	ctx := c.Request().Context()

	event, duplicate, err := h.service.Record(ctx, req.TestID, req.UserID, req.EventType, req.IdempotencyKey)
	if err != nil {
		return jsonError(c, err)
	}

	status := http.StatusCreated
	if duplicate {
		status = http.StatusOK
	}
	return c.JSON(status, domain.LogResultResponse{
		Message:   "event recorded",
		EventID:   event.ID,
		Variant:   event.Variant,
		Duplicate: duplicate,
	})
}

// ListEvents returns the logged-event feed, most recent first. The results
// list is always present, empty rather than null.
func (h *Handler) ListEvents(c echo.Context) error {
	limit := 0
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}

	ctx := c.Request().Context()

	events, err := h.service.ListEvents(ctx, limit)
	if err != nil {
		return jsonError(c, err)
	}

	results := make([]domain.EventRecord, 0, len(events))
	for _, e := range events {
		results = append(results, domain.EventRecord{
			ID:        e.ID,
			EventType: e.EventType,
			UserID:    e.UserID,
			Timestamp: e.OccurredAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, domain.EventsResponse{Results: results})
}
