package calendar

import (
	"context"

	"github.com/dayfold/dayfold/server/datetime"
	"github.com/dayfold/dayfold/store"
)

// Service is the interface for calendar command operations. It is what the
// chat-command layer calls; all date/time interpretation happens behind it.
type Service interface {
	// SetTimezone validates and stores the user's IANA timezone identifier.
	SetTimezone(ctx context.Context, userID int64, timezone string) (*store.User, error)
	// SetPrivacy stores whether other users may peek at the calendar.
	SetPrivacy(ctx context.Context, userID int64, privacy store.Privacy) (*store.User, error)
	// GetSettings returns the user's settings, creating defaults on first use.
	GetSettings(ctx context.Context, userID int64) (*store.User, error)

	// ScheduleEvent resolves a partial date/time in the user's timezone and
	// persists the event at the resulting UTC instant.
	ScheduleEvent(ctx context.Context, userID int64, title string, req datetime.Request) (*store.Event, error)
	// ListEvents returns the user's own events ordered by start time.
	ListEvents(ctx context.Context, userID int64, opts ListOptions) ([]*store.Event, error)
	// PeekEvents returns another user's upcoming events, honoring privacy.
	PeekEvents(ctx context.Context, viewerID, ownerID int64, opts ListOptions) ([]*store.Event, error)
	// RemoveEvent deletes one event by UID and returns it.
	RemoveEvent(ctx context.Context, userID int64, uid string) (*store.Event, error)
	// WipeEvents deletes all of the user's events and returns the count.
	WipeEvents(ctx context.Context, userID int64) (int64, error)
	// CountEvents counts the user's events.
	CountEvents(ctx context.Context, userID int64) (int64, error)
}

// ListOptions controls event listing.
type ListOptions struct {
	// UpcomingOnly drops events that have already started.
	UpcomingOnly bool
	Limit        int
	Offset       int
}

// Store is the interface for store operations needed by the calendar service.
type Store interface {
	GetUser(ctx context.Context, find *store.FindUser) (*store.User, error)
	UpsertUser(ctx context.Context, upsert *store.UpsertUser) (*store.User, error)
	CreateEvent(ctx context.Context, create *store.Event) (*store.Event, error)
	ListEvents(ctx context.Context, find *store.FindEvent) ([]*store.Event, error)
	GetEvent(ctx context.Context, find *store.FindEvent) (*store.Event, error)
	DeleteEvents(ctx context.Context, delete *store.DeleteEvent) (int64, error)
	CountEvents(ctx context.Context, find *store.FindEvent) (int64, error)
}
