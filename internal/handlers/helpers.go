package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mkravtsov/storefront/internal/service"
)

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// httpError maps service errors onto responses. Client mistakes log at
// warn, everything else at error.
func httpError(c echo.Context, l *slog.Logger, op string, err error) error {
	var status int
	var msg string

	switch {
	case errors.Is(err, service.ErrValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, service.ErrUnauthenticated):
		status, msg = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, service.ErrForbidden):
		status, msg = http.StatusForbidden, "access denied"
	case errors.Is(err, service.ErrNotFound):
		status, msg = http.StatusNotFound, "not found"
	case errors.Is(err, service.ErrDuplicateEmail):
		status, msg = http.StatusConflict, "email already registered"
	case errors.Is(err, service.ErrInsufficientStock):
		status, msg = http.StatusConflict, err.Error()
	default:
		status, msg = http.StatusInternalServerError, "internal error"
	}

	if status >= 500 {
		l.Error(op, "status", status, "error", err)
	} else {
		l.Warn(op, "status", status, "error", err)
	}
	return c.JSON(status, echo.Map{"error": msg})
}
