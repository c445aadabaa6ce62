package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dayfold/dayfold/server/service/calendar"
)

// serviceError maps calendar service errors onto HTTP status codes. The
// resolver's user-facing reason strings pass through verbatim so the chat
// gateway can relay them.
func serviceError(err error) error {
	var resolveErr *calendar.ResolveError
	switch {
	case errors.As(err, &resolveErr):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, resolveErr.Reason)
	case errors.Is(err, calendar.ErrInvalidTimezone),
		errors.Is(err, calendar.ErrInvalidPrivacy):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, calendar.ErrTimezoneNotSet):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, calendar.ErrEventNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, calendar.ErrCalendarPrivate):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, calendar.ErrUnrepresentable):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
