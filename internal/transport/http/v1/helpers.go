package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/insightdrift/insightdrift/internal/domain"
)

// errorBody is the uniform error response shape.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// jsonError maps a domain error onto its HTTP status and the uniform error
// body. Unknown errors become a 500 without leaking internals.
func jsonError(c echo.Context, err error) error {
	var derr *domain.Error
	if errors.As(err, &derr) {
		return c.JSON(derr.Code.HTTPStatus(), errorBody{
			Error: errorDetail{Code: string(derr.Code), Message: derr.Message},
		})
	}
	return c.JSON(http.StatusInternalServerError, errorBody{
		Error: errorDetail{Code: "internal", Message: "internal error"},
	})
}
