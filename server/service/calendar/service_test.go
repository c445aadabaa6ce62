package calendar

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayfold/dayfold/server/datetime"
	"github.com/dayfold/dayfold/store"
)

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	users  map[int64]*store.User
	events []*store.Event
	nextID int32
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[int64]*store.User{}}
}

func (f *fakeStore) GetUser(_ context.Context, find *store.FindUser) (*store.User, error) {
	if find.ID == nil {
		return nil, nil
	}
	return f.users[*find.ID], nil
}

func (f *fakeStore) UpsertUser(_ context.Context, upsert *store.UpsertUser) (*store.User, error) {
	user, ok := f.users[upsert.ID]
	if !ok {
		user = &store.User{ID: upsert.ID, Privacy: store.PrivacyPrivate}
		f.users[upsert.ID] = user
	}
	if upsert.Timezone != nil {
		user.Timezone = *upsert.Timezone
	}
	if upsert.Privacy != nil {
		user.Privacy = *upsert.Privacy
	}
	return user, nil
}

func (f *fakeStore) CreateEvent(_ context.Context, create *store.Event) (*store.Event, error) {
	f.nextID++
	create.ID = f.nextID
	if create.UID == "" {
		create.UID = time.Now().Format("uid-150405.000000000")
	}
	f.events = append(f.events, create)
	return create, nil
}

func (f *fakeStore) ListEvents(_ context.Context, find *store.FindEvent) ([]*store.Event, error) {
	var list []*store.Event
	for _, e := range f.events {
		if find.UserID != nil && e.UserID != *find.UserID {
			continue
		}
		if find.UID != nil && e.UID != *find.UID {
			continue
		}
		if find.StartsAfter != nil && e.StartTs < *find.StartsAfter {
			continue
		}
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StartTs < list[j].StartTs })
	if find.Offset != nil && *find.Offset < len(list) {
		list = list[*find.Offset:]
	}
	if find.Limit != nil && *find.Limit < len(list) {
		list = list[:*find.Limit]
	}
	return list, nil
}

func (f *fakeStore) GetEvent(ctx context.Context, find *store.FindEvent) (*store.Event, error) {
	list, err := f.ListEvents(ctx, find)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (f *fakeStore) DeleteEvents(_ context.Context, delete *store.DeleteEvent) (int64, error) {
	var kept []*store.Event
	var removed int64
	for _, e := range f.events {
		match := e.UserID == delete.UserID
		if delete.UID != nil && e.UID != *delete.UID {
			match = false
		}
		if delete.ID != nil && e.ID != *delete.ID {
			match = false
		}
		if match {
			removed++
		} else {
			kept = append(kept, e)
		}
	}
	f.events = kept
	return removed, nil
}

func (f *fakeStore) CountEvents(ctx context.Context, find *store.FindEvent) (int64, error) {
	list, err := f.ListEvents(ctx, find)
	return int64(len(list)), err
}

// newTestService pins resolution to 2024-01-10 12:00 in the user's zone.
func newTestService(fs *fakeStore) Service {
	return NewService(fs,
		WithClockFactory(func(loc *time.Location) datetime.Clock {
			return datetime.FixedClock(time.Date(2024, 1, 10, 12, 0, 0, 0, loc))
		}),
		WithNow(func() int64 {
			return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC).Unix()
		}),
	)
}

func TestSetTimezone(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeStore())

	user, err := svc.SetTimezone(ctx, 1, "Europe/London")
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", user.Timezone)

	_, err = svc.SetTimezone(ctx, 1, "Atlantis/Lemuria")
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	_, err = svc.SetTimezone(ctx, 1, "")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestSetPrivacy(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeStore())

	user, err := svc.SetPrivacy(ctx, 1, store.PrivacyPublic)
	require.NoError(t, err)
	assert.Equal(t, store.PrivacyPublic, user.Privacy)

	_, err = svc.SetPrivacy(ctx, 1, store.Privacy("friends-only"))
	assert.ErrorIs(t, err, ErrInvalidPrivacy)
}

func TestGetSettingsCreatesDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeStore())

	user, err := svc.GetSettings(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.Equal(t, store.PrivacyPrivate, user.Privacy)
	assert.Empty(t, user.Timezone)
}

func TestScheduleEventRequiresTimezone(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeStore())

	_, err := svc.ScheduleEvent(ctx, 1, "meeting", datetime.Request{Time: "10am"})
	assert.ErrorIs(t, err, ErrTimezoneNotSet)
}

func TestScheduleEventResolvesInUserZone(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStore()
	svc := newTestService(fs)

	_, err := svc.SetTimezone(ctx, 1, "America/New_York")
	require.NoError(t, err)

	event, err := svc.ScheduleEvent(ctx, 1, "new year", datetime.Request{
		Year:  datetime.YearOf(2024),
		Month: "1",
		Day:   "1",
		Time:  "00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "new year", event.Title)
	// Midnight Eastern is 05:00 UTC.
	assert.Equal(t, int64(1704085200), event.StartTs)
}

func TestScheduleEventReportsResolveFailure(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeStore())

	_, err := svc.SetTimezone(ctx, 1, "UTC")
	require.NoError(t, err)

	_, err = svc.ScheduleEvent(ctx, 1, "nope", datetime.Request{Month: "February", Day: "30"})
	var resolveErr *ResolveError
	require.True(t, errors.As(err, &resolveErr))
	assert.Contains(t, resolveErr.Reason, "February")
	assert.Contains(t, resolveErr.Reason, "30")
}

func TestListEventsUpcomingOnly(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStore()
	svc := newTestService(fs)

	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC).Unix()
	fs.events = []*store.Event{
		{ID: 1, UID: "a", UserID: 1, Title: "past", StartTs: now - 3600},
		{ID: 2, UID: "b", UserID: 1, Title: "future", StartTs: now + 3600},
	}

	all, err := svc.ListEvents(ctx, 1, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	upcoming, err := svc.ListEvents(ctx, 1, ListOptions{UpcomingOnly: true})
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "future", upcoming[0].Title)
}

func TestPeekEventsHonorsPrivacy(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStore()
	svc := newTestService(fs)

	_, err := svc.SetTimezone(ctx, 2, "UTC")
	require.NoError(t, err)
	fs.events = []*store.Event{{ID: 1, UID: "a", UserID: 2, Title: "secret", StartTs: 1}}

	// Default privacy is private.
	_, err = svc.PeekEvents(ctx, 1, 2, ListOptions{})
	assert.ErrorIs(t, err, ErrCalendarPrivate)

	// Unknown owner is private too.
	_, err = svc.PeekEvents(ctx, 1, 99, ListOptions{})
	assert.ErrorIs(t, err, ErrCalendarPrivate)

	// The owner can always see their own calendar.
	own, err := svc.PeekEvents(ctx, 2, 2, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, own, 1)

	_, err = svc.SetPrivacy(ctx, 2, store.PrivacyPublic)
	require.NoError(t, err)

	list, err := svc.PeekEvents(ctx, 1, 2, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRemoveEvent(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStore()
	svc := newTestService(fs)

	fs.events = []*store.Event{{ID: 1, UID: "a", UserID: 1, Title: "gone soon", StartTs: 1}}

	_, err := svc.RemoveEvent(ctx, 1, "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)

	// Another user cannot remove it.
	_, err = svc.RemoveEvent(ctx, 2, "a")
	assert.ErrorIs(t, err, ErrEventNotFound)

	event, err := svc.RemoveEvent(ctx, 1, "a")
	require.NoError(t, err)
	assert.Equal(t, "gone soon", event.Title)
	assert.Empty(t, fs.events)
}

func TestWipeEvents(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStore()
	svc := newTestService(fs)

	fs.events = []*store.Event{
		{ID: 1, UID: "a", UserID: 1, StartTs: 1},
		{ID: 2, UID: "b", UserID: 1, StartTs: 2},
		{ID: 3, UID: "c", UserID: 2, StartTs: 3},
	}

	removed, err := svc.WipeEvents(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	count, err := svc.CountEvents(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
