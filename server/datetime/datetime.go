// Package datetime resolves partially specified date/time components into a
// single calendar instant in a user's timezone.
//
// Any subset of year, month, day and time-of-day may be supplied; month and
// day accept English names as well as numbers. Omitted components default to
// the next occurrence consistent with what was supplied, so "Monday 10am"
// is the coming Monday and a bare "3pm" rolls to tomorrow once today's 3pm
// has passed. Explicit full dates are taken literally even when in the past.
//
// Resolution is a pure function of the injected clock, the timezone and the
// request; the package holds no state and is safe for concurrent use.
package datetime

import (
	"fmt"
	"time"
)

// Request carries the raw, possibly partial, date/time components.
// Empty strings and a nil year mean "not specified".
type Request struct {
	Year  *int   `json:"year,omitempty"`
	Month string `json:"month,omitempty"` // number (1-12) or English month name
	Day   string `json:"day,omitempty"`   // number (1-31) or weekday name
	Time  string `json:"time,omitempty"`  // "10am", "14:30", "10:30pm", "9"
}

// YearOf is a convenience for building requests with an explicit year.
func YearOf(year int) *int {
	return &year
}

// Parsed is the fully resolved result. Callers must check Valid before
// reading the date fields; on failure Reason carries a user-facing message
// and the other fields are unspecified.
type Parsed struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int

	Valid  bool
	Reason string
}

func invalid(format string, args ...any) Parsed {
	return Parsed{Reason: fmt.Sprintf(format, args...)}
}

// Clock supplies "now" in the user's timezone. Production code uses
// SystemClock; tests inject FixedClock for deterministic resolution.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// SystemClock returns a Clock reading the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	return systemClock{loc: loc}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

// FixedClock returns a Clock pinned to t.
func FixedClock(t time.Time) Clock {
	return fixedClock{t: t}
}

// Parser resolves requests against one IANA timezone.
type Parser struct {
	loc   *time.Location
	clock Clock
}

// NewParser creates a parser for the given IANA timezone identifier.
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{
		loc:   loc,
		clock: SystemClock(loc),
	}, nil
}

// WithClock returns a copy of the parser using the given clock.
func (p *Parser) WithClock(clock Clock) *Parser {
	return &Parser{
		loc:   p.loc,
		clock: clock,
	}
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.loc
}
