package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dayfold/dayfold/server/auth"
)

const userIDContextKey = "user-id"

// authMiddleware validates the bearer token and stores the caller's user ID
// on the request context.
func (s *APIV1Service) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := auth.Authenticate(c.Request().Header.Get(echo.HeaderAuthorization), []byte(s.Secret))
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		c.Set(userIDContextKey, userID)
		return next(c)
	}
}

// rateLimitMiddleware enforces the per-user limit. Runs after auth so the
// key is the authenticated user, not the connection.
func (s *APIV1Service) rateLimitMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := currentUserID(c)
		if !s.rateLimiter.Allow(strconv.FormatInt(userID, 10)) {
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		}
		return next(c)
	}
}

func currentUserID(c echo.Context) int64 {
	userID, _ := c.Get(userIDContextKey).(int64)
	return userID
}
