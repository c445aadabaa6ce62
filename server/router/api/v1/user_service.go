package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dayfold/dayfold/store"
)

// UserSettings is the JSON shape of a user's calendar settings.
type UserSettings struct {
	ID       int64  `json:"id"`
	Timezone string `json:"timezone"`
	Privacy  string `json:"privacy"`
}

func convertUser(user *store.User) *UserSettings {
	return &UserSettings{
		ID:       user.ID,
		Timezone: user.Timezone,
		Privacy:  string(user.Privacy),
	}
}

// GetSettings returns the caller's settings, creating defaults on first use.
func (s *APIV1Service) GetSettings(c echo.Context) error {
	user, err := s.Calendar.GetSettings(c.Request().Context(), currentUserID(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, convertUser(user))
}

type setTimezoneRequest struct {
	Timezone string `json:"timezone"`
}

// SetTimezone stores the caller's IANA timezone identifier.
func (s *APIV1Service) SetTimezone(c echo.Context) error {
	var req setTimezoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	user, err := s.Calendar.SetTimezone(c.Request().Context(), currentUserID(c), req.Timezone)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, convertUser(user))
}

type setPrivacyRequest struct {
	Privacy string `json:"privacy"`
}

// SetPrivacy stores whether other users may peek at the caller's calendar.
func (s *APIV1Service) SetPrivacy(c echo.Context) error {
	var req setPrivacyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	user, err := s.Calendar.SetPrivacy(c.Request().Context(), currentUserID(c), store.Privacy(req.Privacy))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, convertUser(user))
}
