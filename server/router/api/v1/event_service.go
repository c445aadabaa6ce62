package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dayfold/dayfold/server/datetime"
	"github.com/dayfold/dayfold/server/service/calendar"
	"github.com/dayfold/dayfold/server/timezone"
	"github.com/dayfold/dayfold/store"
)

// EventPayload is the JSON shape of a calendar event. When is the start
// formatted in the owner's timezone; it is empty if the timezone is unset.
type EventPayload struct {
	UID     string `json:"uid"`
	Title   string `json:"title"`
	StartTs int64  `json:"start_ts"`
	When    string `json:"when,omitempty"`
}

func convertEvent(event *store.Event, tz string) *EventPayload {
	payload := &EventPayload{
		UID:     event.UID,
		Title:   event.Title,
		StartTs: event.StartTs,
	}
	if tz != "" {
		if loc, err := timezone.Parse(tz); err == nil {
			payload.When = timezone.FormatEventTime(event.StartTs, loc)
		}
	}
	return payload
}

func (s *APIV1Service) convertEvents(c echo.Context, ownerID int64, events []*store.Event) ([]*EventPayload, error) {
	owner, err := s.Calendar.GetSettings(c.Request().Context(), ownerID)
	if err != nil {
		return nil, err
	}
	payloads := make([]*EventPayload, 0, len(events))
	for _, event := range events {
		payloads = append(payloads, convertEvent(event, owner.Timezone))
	}
	return payloads, nil
}

type scheduleEventRequest struct {
	Title string `json:"title"`
	Year  *int   `json:"year,omitempty"`
	Month string `json:"month,omitempty"`
	Day   string `json:"day,omitempty"`
	Time  string `json:"time,omitempty"`
}

// ScheduleEvent resolves the partial date/time in the caller's timezone and
// stores the event.
func (s *APIV1Service) ScheduleEvent(c echo.Context) error {
	var req scheduleEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	userID := currentUserID(c)
	event, err := s.Calendar.ScheduleEvent(c.Request().Context(), userID, req.Title, datetime.Request{
		Year:  req.Year,
		Month: req.Month,
		Day:   req.Day,
		Time:  req.Time,
	})
	if err != nil {
		return serviceError(err)
	}

	user, err := s.Calendar.GetSettings(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, convertEvent(event, user.Timezone))
}

// ListEvents returns the caller's events. Query parameters: upcoming, limit,
// offset.
func (s *APIV1Service) ListEvents(c echo.Context) error {
	userID := currentUserID(c)
	events, err := s.Calendar.ListEvents(c.Request().Context(), userID, listOptions(c))
	if err != nil {
		return serviceError(err)
	}
	payloads, err := s.convertEvents(c, userID, events)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, payloads)
}

// PeekEvents returns another user's events if their calendar is public.
func (s *APIV1Service) PeekEvents(c echo.Context) error {
	ownerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	events, err := s.Calendar.PeekEvents(c.Request().Context(), currentUserID(c), ownerID, listOptions(c))
	if err != nil {
		return serviceError(err)
	}
	payloads, err := s.convertEvents(c, ownerID, events)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, payloads)
}

// RemoveEvent deletes one of the caller's events by UID.
func (s *APIV1Service) RemoveEvent(c echo.Context) error {
	userID := currentUserID(c)
	event, err := s.Calendar.RemoveEvent(c.Request().Context(), userID, c.Param("uid"))
	if err != nil {
		return serviceError(err)
	}
	user, err := s.Calendar.GetSettings(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, convertEvent(event, user.Timezone))
}

type wipeEventsResponse struct {
	Removed int64 `json:"removed"`
}

// WipeEvents deletes all of the caller's events.
func (s *APIV1Service) WipeEvents(c echo.Context) error {
	removed, err := s.Calendar.WipeEvents(c.Request().Context(), currentUserID(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, wipeEventsResponse{Removed: removed})
}

func listOptions(c echo.Context) calendar.ListOptions {
	opts := calendar.ListOptions{}
	if upcoming, err := strconv.ParseBool(c.QueryParam("upcoming")); err == nil {
		opts.UpcomingOnly = upcoming
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}
	if offset, err := strconv.Atoi(c.QueryParam("offset")); err == nil && offset > 0 {
		opts.Offset = offset
	}
	return opts
}
