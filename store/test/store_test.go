package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayfold/dayfold/internal/profile"
	"github.com/dayfold/dayfold/store"
	"github.com/dayfold/dayfold/store/db/sqlite"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	p := &profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "dayfold_test.db"),
	}
	driver, err := sqlite.NewDB(p)
	require.NoError(t, err)

	s := store.New(driver, p)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUserUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Unknown user is nil, not an error.
	user, err := s.GetUser(ctx, &store.FindUser{ID: ptr(int64(42))})
	require.NoError(t, err)
	assert.Nil(t, user)

	// Bare upsert creates the row with defaults.
	user, err = s.UpsertUser(ctx, &store.UpsertUser{ID: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Empty(t, user.Timezone)
	assert.Equal(t, store.PrivacyPrivate, user.Privacy)
	assert.True(t, user.IsPrivate())

	// Partial updates keep the other fields.
	tz := "America/New_York"
	user, err = s.UpsertUser(ctx, &store.UpsertUser{ID: 42, Timezone: &tz})
	require.NoError(t, err)
	assert.Equal(t, tz, user.Timezone)
	assert.Equal(t, store.PrivacyPrivate, user.Privacy)

	privacy := store.PrivacyPublic
	user, err = s.UpsertUser(ctx, &store.UpsertUser{ID: 42, Privacy: &privacy})
	require.NoError(t, err)
	assert.Equal(t, tz, user.Timezone)
	assert.Equal(t, store.PrivacyPublic, user.Privacy)
	assert.False(t, user.IsPrivate())

	// Cached read returns the fresh row.
	user, err = s.GetUser(ctx, &store.FindUser{ID: ptr(int64(42))})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, tz, user.Timezone)
}

func TestEventLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.UpsertUser(ctx, &store.UpsertUser{ID: 7})
	require.NoError(t, err)

	first, err := s.CreateEvent(ctx, &store.Event{UserID: 7, Title: "dentist", StartTs: 1_700_000_000})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.NotEmpty(t, first.UID)

	second, err := s.CreateEvent(ctx, &store.Event{UserID: 7, Title: "standup", StartTs: 1_600_000_000})
	require.NoError(t, err)
	assert.NotEqual(t, first.UID, second.UID)

	// Ordered by start time, not insertion.
	list, err := s.ListEvents(ctx, &store.FindEvent{UserID: ptr(int64(7))})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "standup", list[0].Title)
	assert.Equal(t, "dentist", list[1].Title)

	// Upcoming filter.
	list, err = s.ListEvents(ctx, &store.FindEvent{UserID: ptr(int64(7)), StartsAfter: ptr(int64(1_650_000_000))})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "dentist", list[0].Title)

	// Pagination.
	list, err = s.ListEvents(ctx, &store.FindEvent{UserID: ptr(int64(7)), Limit: ptr(1), Offset: ptr(1)})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "dentist", list[0].Title)

	count, err := s.CountEvents(ctx, &store.FindEvent{UserID: ptr(int64(7))})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Lookup by UID.
	got, err := s.GetEvent(ctx, &store.FindEvent{UID: &first.UID})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)

	// Deleting scoped to another user removes nothing.
	removed, err := s.DeleteEvents(ctx, &store.DeleteEvent{UserID: 8, UID: &first.UID})
	require.NoError(t, err)
	assert.Zero(t, removed)

	removed, err = s.DeleteEvents(ctx, &store.DeleteEvent{UserID: 7, UID: &first.UID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	// Wipe removes the rest.
	removed, err = s.DeleteEvents(ctx, &store.DeleteEvent{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestDeleteUserRemovesEvents(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.UpsertUser(ctx, &store.UpsertUser{ID: 9})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = s.CreateEvent(ctx, &store.Event{UserID: 9, Title: "e", StartTs: int64(i)})
		require.NoError(t, err)
	}

	events, existed, err := s.DeleteUser(ctx, &store.DeleteUser{ID: 9})
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, int64(3), events)

	user, err := s.GetUser(ctx, &store.FindUser{ID: ptr(int64(9))})
	require.NoError(t, err)
	assert.Nil(t, user)

	// Deleting again reports the user as missing.
	events, existed, err = s.DeleteUser(ctx, &store.DeleteUser{ID: 9})
	require.NoError(t, err)
	assert.False(t, existed)
	assert.Zero(t, events)
}

func ptr[T any](v T) *T {
	return &v
}
