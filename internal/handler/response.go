package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sony/gobreaker/v2"

	"hidingbook/internal/client/etherscan"
	"hidingbook/internal/client/rook"
	"hidingbook/internal/service"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

// listMeta marks empty results so clients can tell "none found" from errors.
func listMeta(n int) map[string]any {
	return map[string]any{"count": n, "empty": n == 0}
}

// statusClientClosedRequest is logged when the caller went away before the
// answer was ready. Nobody reads the body.
const statusClientClosedRequest = 499

// Fail maps a service error onto a status code. Bad input is 400; anything
// coming back from an upstream is 502.
func Fail(c *gin.Context, err error) {
	var (
		rookErr *rook.APIError
		scanErr *etherscan.APIError
	)
	switch {
	case service.IsValidation(err):
		Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, etherscan.ErrMissingAPIKey):
		Error(c, http.StatusServiceUnavailable, err.Error(), nil)
	case errors.Is(err, context.Canceled):
		Error(c, statusClientClosedRequest, "request canceled", nil)
	case errors.Is(err, context.DeadlineExceeded):
		Error(c, http.StatusGatewayTimeout, err.Error(), nil)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		Error(c, http.StatusBadGateway, err.Error(), map[string]any{"circuit": "open"})
	case errors.As(err, &rookErr):
		Error(c, http.StatusBadGateway, err.Error(), map[string]any{"upstream_status": rookErr.Status})
	case errors.As(err, &scanErr):
		Error(c, http.StatusBadGateway, err.Error(), map[string]any{"upstream_status": scanErr.Status})
	default:
		Error(c, http.StatusBadGateway, err.Error(), nil)
	}
}
