package store

import (
	"context"
	"fmt"
)

// Privacy controls who may see a user's events.
type Privacy string

const (
	// PrivacyPrivate hides the calendar from everyone but its owner.
	PrivacyPrivate Privacy = "private"
	// PrivacyPublic lets other users peek at the calendar.
	PrivacyPublic Privacy = "public"
)

func (p Privacy) String() string {
	return string(p)
}

// Validate reports whether the privacy value is one of the known settings.
func (p Privacy) Validate() bool {
	return p == PrivacyPrivate || p == PrivacyPublic
}

// User is the object representing a chat-platform user's settings.
type User struct {
	// ID is the chat-platform user identifier.
	ID int64
	// Timezone is an IANA zone identifier; empty until the user sets one.
	Timezone  string
	Privacy   Privacy
	CreatedTs int64
	UpdatedTs int64
}

func (u *User) IsPrivate() bool {
	return u.Privacy != PrivacyPublic
}

// FindUser is the find condition for user.
type FindUser struct {
	ID *int64
}

// UpsertUser creates the user row when missing and updates the supplied
// fields otherwise.
type UpsertUser struct {
	ID       int64
	Timezone *string
	Privacy  *Privacy
}

// DeleteUser is the delete request for user.
type DeleteUser struct {
	ID int64
}

func userCacheKey(id int64) string {
	return fmt.Sprintf("user-%d", id)
}

// GetUser gets a user by find condition.
func (s *Store) GetUser(ctx context.Context, find *FindUser) (*User, error) {
	if find.ID != nil {
		if v, ok := s.userCache.Get(userCacheKey(*find.ID)); ok {
			if user, ok := v.(*User); ok {
				return user, nil
			}
		}
	}

	user, err := s.driver.GetUser(ctx, find)
	if err != nil {
		return nil, err
	}
	if user != nil {
		s.userCache.Set(userCacheKey(user.ID), user)
	}
	return user, nil
}

// UpsertUser creates or updates a user and refreshes the cache.
func (s *Store) UpsertUser(ctx context.Context, upsert *UpsertUser) (*User, error) {
	user, err := s.driver.UpsertUser(ctx, upsert)
	if err != nil {
		return nil, err
	}
	s.userCache.Set(userCacheKey(user.ID), user)
	return user, nil
}

// DeleteUser removes a user and all their events. Returns the number of
// events removed and whether the user existed.
func (s *Store) DeleteUser(ctx context.Context, delete *DeleteUser) (int64, bool, error) {
	events, existed, err := s.driver.DeleteUser(ctx, delete)
	if err != nil {
		return 0, false, err
	}
	s.userCache.Delete(userCacheKey(delete.ID))
	return events, existed, nil
}
