package datetime

import (
	"strings"
	"time"
)

// Resolve turns a partial request into one concrete calendar instant in the
// parser's timezone. Malformed input is reported through Parsed.Valid and
// Parsed.Reason; Resolve never panics and never substitutes a default for a
// token that was supplied but unreadable.
func (p *Parser) Resolve(req Request) Parsed {
	now := p.clock.Now().In(p.loc)

	tod := parseTimeOfDay(req.Time)
	if tod.state == fieldInvalid {
		return invalid("Invalid time: '%s'. Use formats like '10am', '14:30', or '10:30pm'.", req.Time)
	}
	hour, minute := 0, 0
	if tod.state == fieldSet {
		hour, minute = tod.hour, tod.minute
	}

	day := parseDay(req.Day)
	if day.state == fieldInvalid {
		return invalid("Invalid day: '%s'. Use day number (1-31) or day name (e.g., 'Monday').", req.Day)
	}

	// A weekday name overrides month and year entirely: the result is the
	// next strictly-future occurrence of that weekday.
	if day.state == fieldSet && day.isWeekday {
		next := nextWeekday(now, day.weekday)
		return Parsed{
			Year:   next.Year(),
			Month:  next.Month(),
			Day:    next.Day(),
			Hour:   hour,
			Minute: minute,
			Valid:  true,
		}
	}

	monthGiven := strings.TrimSpace(req.Month) != ""
	var month time.Month
	if monthGiven {
		m, state := parseMonth(req.Month)
		if state != fieldSet {
			return invalid("Invalid month: '%s'. Use month name or number (1-12).", req.Month)
		}
		month = m
	}

	yearGiven := req.Year != nil
	year := now.Year()
	if yearGiven {
		year = *req.Year
	}

	dayGiven := day.state == fieldSet
	dom := 0
	if dayGiven {
		dom = day.number
	}

	switch {
	case monthGiven && dayGiven:
		if dom > daysInMonth(year, month) {
			return invalid("Invalid date: %s doesn't have %d days.", month, dom)
		}
		if !yearGiven {
			target := time.Date(year, month, dom, hour, minute, 0, 0, p.loc)
			if !target.After(now) {
				year++
				// The bumped year can lose Feb 29; fail rather than search
				// further ahead.
				if dom > daysInMonth(year, month) {
					return invalid("Invalid date: %s %d doesn't have %d days.", month, year, dom)
				}
			}
		}

	case monthGiven:
		dom = 1
		if !yearGiven && month <= now.Month() {
			year++
		}

	case dayGiven:
		startYear, startMonth := now.Year(), now.Month()
		if dom <= now.Day() {
			startMonth++
			if startMonth > time.December {
				startMonth = time.January
				startYear++
			}
		}
		year, month = nextMonthWithDay(dom, startYear, startMonth)

	case yearGiven:
		month, dom = time.January, 1

	default:
		year, month, dom = now.Year(), now.Month(), now.Day()
	}

	// Bare time of day means "the next time the clock reads that": once
	// today's instant has passed, the date rolls to tomorrow.
	if tod.state == fieldSet && !monthGiven && !dayGiven && !yearGiven {
		target := time.Date(year, month, dom, hour, minute, 0, 0, p.loc)
		if !target.After(now) {
			tomorrow := now.AddDate(0, 0, 1)
			year, month, dom = tomorrow.Year(), tomorrow.Month(), tomorrow.Day()
		}
	}

	return Parsed{
		Year:   year,
		Month:  month,
		Day:    dom,
		Hour:   hour,
		Minute: minute,
		Valid:  true,
	}
}

// UTCTimestamp localizes a valid resolution against the parser's timezone
// and returns the whole-second UTC Unix timestamp. ok is false for invalid
// resolutions and unrepresentable dates.
func (p *Parser) UTCTimestamp(parsed Parsed) (int64, bool) {
	return utcTimestamp(parsed, p.loc)
}

// ToUTCTimestamp is the package-level converter for callers holding only a
// timezone identifier. ok is false when the zone does not resolve.
func ToUTCTimestamp(parsed Parsed, timezone string) (int64, bool) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return 0, false
	}
	return utcTimestamp(parsed, loc)
}

func utcTimestamp(parsed Parsed, loc *time.Location) (int64, bool) {
	if !parsed.Valid {
		return 0, false
	}
	if parsed.Year < 1 || parsed.Year > 9999 {
		return 0, false
	}
	t := time.Date(parsed.Year, parsed.Month, parsed.Day, parsed.Hour, parsed.Minute, 0, 0, loc)
	// time.Date normalizes instead of failing; a shifted date means the
	// combination did not exist.
	if t.Year() != parsed.Year || t.Month() != parsed.Month || t.Day() != parsed.Day {
		return 0, false
	}
	return t.Unix(), true
}
