package store

import (
	"context"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// Event is the object representing a scheduled calendar event.
type Event struct {
	ID int32
	// UID is the stable public identifier used in command replies.
	UID    string
	UserID int64
	Title  string
	// StartTs is the event instant as a UTC Unix timestamp.
	StartTs   int64
	CreatedTs int64
}

// StartTime returns the event instant as a time.Time in UTC.
func (e *Event) StartTime() time.Time {
	return time.Unix(e.StartTs, 0).UTC()
}

// IsUpcoming reports whether the event starts at or after the given instant.
func (e *Event) IsUpcoming(now int64) bool {
	return e.StartTs >= now
}

// FindEvent is the find condition for event.
type FindEvent struct {
	ID     *int32
	UID    *string
	UserID *int64

	// StartsAfter keeps only events at or after the given UTC timestamp.
	StartsAfter *int64
	// StartsBefore keeps only events strictly before the given UTC timestamp.
	StartsBefore *int64

	// Pagination
	Limit  *int
	Offset *int
}

// DeleteEvent is the delete request for event. UserID is required so a user
// can only ever touch their own events; ID/UID narrow to a single event.
type DeleteEvent struct {
	UserID int64
	ID     *int32
	UID    *string
}

// CreateEvent creates a new event, assigning a UID when absent.
func (s *Store) CreateEvent(ctx context.Context, create *Event) (*Event, error) {
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	return s.driver.CreateEvent(ctx, create)
}

// ListEvents lists events with filter, ordered by start time.
func (s *Store) ListEvents(ctx context.Context, find *FindEvent) ([]*Event, error) {
	return s.driver.ListEvents(ctx, find)
}

// GetEvent gets a single event by find condition.
func (s *Store) GetEvent(ctx context.Context, find *FindEvent) (*Event, error) {
	list, err := s.driver.ListEvents(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// DeleteEvents removes matching events and returns the removed count.
func (s *Store) DeleteEvents(ctx context.Context, delete *DeleteEvent) (int64, error) {
	return s.driver.DeleteEvents(ctx, delete)
}

// CountEvents counts events matching the filter.
func (s *Store) CountEvents(ctx context.Context, find *FindEvent) (int64, error) {
	return s.driver.CountEvents(ctx, find)
}
