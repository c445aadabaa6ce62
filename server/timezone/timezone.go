// Package timezone provides timezone utilities shared by the command and
// service layers. Offset and DST rules are applied only when converting a
// resolved local instant to UTC; everything else treats zone identifiers as
// opaque validated strings.
package timezone

import (
	"fmt"
	"time"
)

// Parse parses an IANA timezone identifier (e.g. "America/New_York").
// If the identifier is invalid, returns UTC and an error.
func Parse(tz string) (*time.Location, error) {
	if tz == "" || tz == "UTC" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// MustParse parses a timezone or panics. For identifiers known valid at
// compile time.
func MustParse(tz string) *time.Location {
	loc, err := Parse(tz)
	if err != nil {
		panic(err)
	}
	return loc
}

// IsValid checks whether a timezone identifier resolves against the zone
// database.
func IsValid(tz string) bool {
	if tz == "" || tz == "UTC" {
		return true
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// NowIn returns the current time in the given timezone.
func NowIn(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc)
}

// FromUnix converts a UTC Unix timestamp to a time in the given timezone.
func FromUnix(ts int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(ts, 0).In(loc)
}

// FormatUnix formats a UTC Unix timestamp in the given timezone. The format
// is a Go reference-time layout.
func FormatUnix(ts int64, loc *time.Location, format string) string {
	return FromUnix(ts, loc).Format(format)
}

// FormatEventTime renders an event's UTC timestamp the way list and
// confirmation replies display it.
func FormatEventTime(ts int64, loc *time.Location) string {
	return FromUnix(ts, loc).Format("Mon, Jan 2 2006 at 15:04")
}
