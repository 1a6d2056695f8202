package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"happiness/internal/engine"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// statusFor maps engine errors to HTTP statuses.
func statusFor(err error) (int, string) {
	var (
		invalid   *engine.InvalidArgumentError
		empty     *engine.EmptyViewError
		undefined *engine.UndefinedCorrelationError
		parse     *engine.ParseError
		load      *engine.LoadError
	)
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest, "invalid_argument"
	case errors.As(err, &empty):
		return http.StatusNotFound, "empty_view"
	case errors.As(err, &undefined):
		return http.StatusUnprocessableEntity, "undefined_correlation"
	case errors.As(err, &parse):
		return http.StatusInternalServerError, "parse"
	case errors.As(err, &load):
		return http.StatusInternalServerError, "load"
	}
	return http.StatusInternalServerError, "internal"
}

func respondError(c echo.Context, err error) error {
	status, kind := statusFor(err)
	if status >= http.StatusInternalServerError {
		zap.L().Error("request failed", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	}
	return c.JSON(status, errorBody{Error: err.Error(), Kind: kind})
}
