package datetime

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Each component resolver distinguishes three states: the field was absent
// (defaulting applies), present but malformed (resolution fails), or parsed.
type fieldState int

const (
	fieldAbsent fieldState = iota
	fieldInvalid
	fieldSet
)

// Time-of-day patterns, matched in order of specificity.
var (
	re12hWithMinutes = regexp.MustCompile(`(?i)^([01]?[0-9]|2[0-3]):([0-5][0-9])(am|pm)$`)
	re12hNoMinutes   = regexp.MustCompile(`(?i)^([01]?[0-9]|2[0-3])(am|pm)$`)
	re24hWithMinutes = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)
	re24hNoMinutes   = regexp.MustCompile(`^([01]?[0-9]|2[0-3])$`)
)

// Weekday names in prefix-match order, Monday = 0.
var weekdayNames = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

type timeOfDay struct {
	state  fieldState
	hour   int
	minute int
}

// parseTimeOfDay resolves a raw time token to (hour, minute).
func parseTimeOfDay(token string) timeOfDay {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return timeOfDay{state: fieldAbsent}
	}

	if m := re12hWithMinutes.FindStringSubmatch(token); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		return adjust12h(hour, minute, m[3])
	}
	if m := re12hNoMinutes.FindStringSubmatch(token); m != nil {
		hour, _ := strconv.Atoi(m[1])
		return adjust12h(hour, 0, m[2])
	}
	if m := re24hWithMinutes.FindStringSubmatch(token); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		return timeOfDay{state: fieldSet, hour: hour, minute: minute}
	}
	if m := re24hNoMinutes.FindStringSubmatch(token); m != nil {
		hour, _ := strconv.Atoi(m[1])
		return timeOfDay{state: fieldSet, hour: hour}
	}

	return timeOfDay{state: fieldInvalid}
}

// adjust12h converts a 12-hour clock reading to 24-hour. An hour above 12
// with a meridiem suffix is malformed, not a 24-hour time.
func adjust12h(hour, minute int, period string) timeOfDay {
	if hour > 12 {
		return timeOfDay{state: fieldInvalid}
	}
	switch {
	case strings.EqualFold(period, "pm") && hour != 12:
		hour += 12
	case strings.EqualFold(period, "am") && hour == 12:
		hour = 0
	}
	return timeOfDay{state: fieldSet, hour: hour, minute: minute}
}

// parseMonth resolves a raw month token to 1-12. Accepts numbers and full
// or three-letter English month names, case-insensitively.
func parseMonth(token string) (time.Month, fieldState) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, fieldAbsent
	}

	if n, err := strconv.Atoi(token); err == nil {
		if n < 1 || n > 12 {
			return 0, fieldInvalid
		}
		return time.Month(n), fieldSet
	}

	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if strings.EqualFold(token, name) || strings.EqualFold(token, name[:3]) {
			return m, fieldSet
		}
	}
	return 0, fieldInvalid
}

type dayField struct {
	state     fieldState
	number    int  // day of month when !isWeekday
	weekday   int  // Monday = 0 when isWeekday
	isWeekday bool
}

// parseDay resolves a raw day token to either a day-of-month number or a
// weekday indicator. Weekday names match by case-insensitive prefix, so
// "fri" and "Friday" are equivalent.
func parseDay(token string) dayField {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return dayField{state: fieldAbsent}
	}

	if n, err := strconv.Atoi(token); err == nil {
		if n < 1 || n > 31 {
			return dayField{state: fieldInvalid}
		}
		return dayField{state: fieldSet, number: n}
	}

	for dow, name := range weekdayNames {
		if strings.HasPrefix(name, token) {
			return dayField{state: fieldSet, weekday: dow, isWeekday: true}
		}
	}
	return dayField{state: fieldInvalid}
}

// daysInMonth returns the day count of the given month, honoring leap years.
// The zero day of the following month normalizes to the last day requested.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// nextMonthWithDay walks forward from the starting month to the first month
// containing the given day number. Every 12-month span has a month of 31
// days, so the walk terminates within 12 steps for any day in 1-31.
func nextMonthWithDay(day, startYear int, startMonth time.Month) (int, time.Month) {
	year, month := startYear, startMonth
	for i := 0; i < 12; i++ {
		if day <= daysInMonth(year, month) {
			return year, month
		}
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return year, month
}

// nextWeekday returns the next strictly-future occurrence of the target
// weekday (Monday = 0) relative to now. When today already is the target
// weekday, the result is a full week ahead.
func nextWeekday(now time.Time, target int) time.Time {
	current := (int(now.Weekday()) + 6) % 7 // time.Weekday counts from Sunday
	ahead := (target - current + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return now.AddDate(0, 0, ahead)
}
