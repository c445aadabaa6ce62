package store

import (
	"time"

	"github.com/dayfold/dayfold/internal/profile"
	"github.com/dayfold/dayfold/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// userCache holds user settings rows; timezone and privacy are read on
	// every command, so they are cached with a short TTL.
	userCache *cache.Cache
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	cacheConfig := cache.Config{
		DefaultTTL:      10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        1000,
	}

	return &Store{
		driver:    driver,
		profile:   profile,
		userCache: cache.New(cacheConfig),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	s.userCache.Close()
	return s.driver.Close()
}
