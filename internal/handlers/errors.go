package handlers

import (
	"errors"
	"net/http"

	"github.com/enzogallo/discover-backend/internal/apperror"
	"github.com/labstack/echo/v4"
)

// httpError maps application errors onto HTTP statuses. Anything that is
// not a recognized application error is treated as a transient store
// failure and answered with a generic retry-suggested message; the real
// error stays in the server log via echo's error handler internals.
func httpError(err error) *echo.HTTPError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrAlreadyPostedToday):
			return echo.NewHTTPError(http.StatusConflict, appErr.Message)
		case errors.Is(err, apperror.ErrPseudonymTaken):
			return echo.NewHTTPError(http.StatusConflict, appErr.Message)
		case errors.Is(err, apperror.ErrUnauthorized):
			return echo.NewHTTPError(http.StatusForbidden, appErr.Message)
		case errors.Is(err, apperror.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, appErr.Message)
		case errors.Is(err, apperror.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, appErr.Message)
		case errors.Is(err, apperror.ErrConflict):
			return echo.NewHTTPError(http.StatusConflict, appErr.Message)
		}
	}
	return echo.NewHTTPError(http.StatusServiceUnavailable, "storage temporarily unavailable, please retry").SetInternal(err)
}
