package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
)

// publicMessage drops the sentinel suffix added by the service layer.
func publicMessage(err, sentinel error) string {
	return strings.TrimSuffix(err.Error(), ": "+sentinel.Error())
}

// serviceError logs err under "<op>_error" and converts it to the HTTP error
// the client receives.
func serviceError(l *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(op+"_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, publicMessage(err, service.ErrValidation))
	case errors.Is(err, service.ErrNotFound):
		l.Warn(op+"_error", "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, publicMessage(err, service.ErrNotFound))
	case errors.Is(err, service.ErrConflict):
		l.Warn(op+"_error", "status", 409, "error", err)
		return echo.NewHTTPError(http.StatusConflict, publicMessage(err, service.ErrConflict))
	default:
		l.Error(op+"_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
