package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// User model related methods.
	UpsertUser(ctx context.Context, upsert *UpsertUser) (*User, error)
	GetUser(ctx context.Context, find *FindUser) (*User, error)
	// DeleteUser removes the user and all their events. Returns the number
	// of events removed and whether the user row existed.
	DeleteUser(ctx context.Context, delete *DeleteUser) (int64, bool, error)

	// Event model related methods.
	CreateEvent(ctx context.Context, create *Event) (*Event, error)
	ListEvents(ctx context.Context, find *FindEvent) ([]*Event, error)
	// DeleteEvents removes matching events and returns the removed count.
	DeleteEvents(ctx context.Context, delete *DeleteEvent) (int64, error)
	CountEvents(ctx context.Context, find *FindEvent) (int64, error)
}
