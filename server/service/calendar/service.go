// Package calendar provides the command-facing calendar operations: user
// settings (timezone, privacy) and event scheduling built on the natural
// date/time resolver.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayfold/dayfold/server/datetime"
	"github.com/dayfold/dayfold/server/timezone"
	"github.com/dayfold/dayfold/store"
)

// Calendar-specific errors that can be checked with errors.Is.
var (
	// ErrTimezoneNotSet is returned when scheduling before a timezone exists.
	ErrTimezoneNotSet = errors.New("timezone not set")
	// ErrInvalidTimezone is returned for identifiers the zone database rejects.
	ErrInvalidTimezone = errors.New("invalid timezone")
	// ErrInvalidPrivacy is returned for unknown privacy values.
	ErrInvalidPrivacy = errors.New("invalid privacy setting")
	// ErrEventNotFound is returned when removing a missing or foreign event.
	ErrEventNotFound = errors.New("event not found")
	// ErrCalendarPrivate is returned when peeking at a private calendar.
	ErrCalendarPrivate = errors.New("calendar is private")
	// ErrUnrepresentable is returned when a resolved instant cannot be
	// converted in the user's timezone.
	ErrUnrepresentable = errors.New("date/time cannot be represented in this timezone")
)

// ResolveError reports a date/time the resolver could not interpret. The
// Reason is user-facing.
type ResolveError struct {
	Reason string
}

func (e *ResolveError) Error() string {
	return e.Reason
}

type service struct {
	store    Store
	clockFor func(loc *time.Location) datetime.Clock
	nowUnix  func() int64
}

// Option configures the service.
type Option func(*service)

// WithClockFactory overrides the clock used for resolution. Tests pin it to
// a fixed instant.
func WithClockFactory(f func(loc *time.Location) datetime.Clock) Option {
	return func(s *service) {
		s.clockFor = f
	}
}

// WithNow overrides the "current UTC timestamp" source used for the
// upcoming-events filter.
func WithNow(f func() int64) Option {
	return func(s *service) {
		s.nowUnix = f
	}
}

// NewService creates a calendar service over the given store.
func NewService(store Store, opts ...Option) Service {
	s := &service{
		store:    store,
		clockFor: datetime.SystemClock,
		nowUnix:  func() int64 { return time.Now().Unix() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) SetTimezone(ctx context.Context, userID int64, tz string) (*store.User, error) {
	if !timezone.IsValid(tz) || tz == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	return s.store.UpsertUser(ctx, &store.UpsertUser{ID: userID, Timezone: &tz})
}

func (s *service) SetPrivacy(ctx context.Context, userID int64, privacy store.Privacy) (*store.User, error) {
	if !privacy.Validate() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrivacy, privacy)
	}
	return s.store.UpsertUser(ctx, &store.UpsertUser{ID: userID, Privacy: &privacy})
}

func (s *service) GetSettings(ctx context.Context, userID int64) (*store.User, error) {
	user, err := s.store.GetUser(ctx, &store.FindUser{ID: &userID})
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	return s.store.UpsertUser(ctx, &store.UpsertUser{ID: userID})
}

func (s *service) ScheduleEvent(ctx context.Context, userID int64, title string, req datetime.Request) (*store.Event, error) {
	user, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Timezone == "" {
		return nil, ErrTimezoneNotSet
	}

	parser, err := datetime.NewParser(user.Timezone)
	if err != nil {
		// A stored timezone can go stale if the zone database changes.
		slog.Warn("stored timezone no longer resolves",
			slog.Int64("user", userID), slog.String("timezone", user.Timezone))
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, user.Timezone)
	}
	parser = parser.WithClock(s.clockFor(parser.Location()))

	parsed := parser.Resolve(req)
	if !parsed.Valid {
		return nil, &ResolveError{Reason: parsed.Reason}
	}

	ts, ok := parser.UTCTimestamp(parsed)
	if !ok {
		return nil, ErrUnrepresentable
	}

	event, err := s.store.CreateEvent(ctx, &store.Event{
		UserID:  userID,
		Title:   title,
		StartTs: ts,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("event scheduled",
		slog.Int64("user", userID),
		slog.String("uid", event.UID),
		slog.Int64("start_ts", event.StartTs))
	return event, nil
}

func (s *service) ListEvents(ctx context.Context, userID int64, opts ListOptions) ([]*store.Event, error) {
	return s.store.ListEvents(ctx, s.findFor(userID, opts))
}

func (s *service) PeekEvents(ctx context.Context, viewerID, ownerID int64, opts ListOptions) ([]*store.Event, error) {
	if viewerID != ownerID {
		owner, err := s.store.GetUser(ctx, &store.FindUser{ID: &ownerID})
		if err != nil {
			return nil, err
		}
		if owner == nil || owner.IsPrivate() {
			return nil, ErrCalendarPrivate
		}
	}
	return s.store.ListEvents(ctx, s.findFor(ownerID, opts))
}

func (s *service) RemoveEvent(ctx context.Context, userID int64, uid string) (*store.Event, error) {
	event, err := s.store.GetEvent(ctx, &store.FindEvent{UserID: &userID, UID: &uid})
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	if _, err := s.store.DeleteEvents(ctx, &store.DeleteEvent{UserID: userID, UID: &uid}); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *service) WipeEvents(ctx context.Context, userID int64) (int64, error) {
	return s.store.DeleteEvents(ctx, &store.DeleteEvent{UserID: userID})
}

func (s *service) CountEvents(ctx context.Context, userID int64) (int64, error) {
	return s.store.CountEvents(ctx, &store.FindEvent{UserID: &userID})
}

func (s *service) findFor(userID int64, opts ListOptions) *store.FindEvent {
	find := &store.FindEvent{UserID: &userID}
	if opts.UpcomingOnly {
		now := s.nowUnix()
		find.StartsAfter = &now
	}
	if opts.Limit > 0 {
		find.Limit = &opts.Limit
		if opts.Offset > 0 {
			find.Offset = &opts.Offset
		}
	}
	return find
}
