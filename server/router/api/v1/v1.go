// Package v1 exposes the calendar commands as a JSON HTTP API. The chat
// gateway in front of it translates slash commands into these endpoints.
package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/dayfold/dayfold/internal/profile"
	"github.com/dayfold/dayfold/server/middleware"
	"github.com/dayfold/dayfold/server/service/calendar"
	"github.com/dayfold/dayfold/store"
)

type APIV1Service struct {
	Secret   string
	Profile  *profile.Profile
	Store    *store.Store
	Calendar calendar.Service

	rateLimiter *middleware.RateLimiter
}

func NewAPIV1Service(secret string, profile *profile.Profile, store *store.Store, cal calendar.Service) *APIV1Service {
	return &APIV1Service{
		Secret:   secret,
		Profile:  profile,
		Store:    store,
		Calendar: cal,
		// 5 requests per second per user, burst of 10.
		rateLimiter: middleware.NewRateLimiter(5, 10),
	}
}

// Register mounts the v1 routes on the given Echo instance.
func (s *APIV1Service) Register(echoServer *echo.Echo) {
	g := echoServer.Group("/api/v1", s.authMiddleware, s.rateLimitMiddleware)

	g.GET("/settings", s.GetSettings)
	g.POST("/timezone", s.SetTimezone)
	g.POST("/privacy", s.SetPrivacy)

	g.POST("/events", s.ScheduleEvent)
	g.GET("/events", s.ListEvents)
	g.DELETE("/events", s.WipeEvents)
	g.DELETE("/events/:uid", s.RemoveEvent)
	g.GET("/users/:id/events", s.PeekEvents)
}
