package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stelehq/stele/pkg/common"
	"github.com/stelehq/stele/pkg/logger"
	"github.com/stelehq/stele/pkg/store"
)

// searchErrorResponse maps engine and store errors onto HTTP statuses.
// Saturation is a retryable 429, contract violations are 400s, everything
// else is a 500.
func searchErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrTooManyRequests):
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "Too many concurrent searches"})
	case errors.Is(err, store.ErrRawQueryUnsupported):
		return c.JSON(http.StatusNotImplemented, map[string]string{"error": "Raw queries are not supported by this store"})
	case errors.Is(err, common.ErrNoProperties),
		errors.Is(err, common.ErrHighlightMismatch),
		errors.Is(err, common.ErrBadMode):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	logger.Error("[Server][Search] Request failed", "err", err)
	return c.String(http.StatusInternalServerError, err.Error())
}
