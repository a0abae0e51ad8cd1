package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Date is a civil calendar day with no time-of-day or zone attached.
// All arithmetic happens on UTC midnights so DST transitions in the school's
// zone can never shift a day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the civil date of t as seen on the wall clock in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Key is the YYYY-MM-DD form used as the map key for statuses.
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) String() string { return d.Key() }

func (d Date) utc() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.utc().AddDate(0, 0, n), time.UTC)
}

// Weekday is the day of week of d.
func (d Date) Weekday() time.Weekday { return d.utc().Weekday() }

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.utc().Before(o.utc()) }

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool { return d.utc().After(o.utc()) }

// DayKey derives the day key of t from its local calendar fields.
func DayKey(t time.Time) string {
	return DateOf(t, nil).Key()
}

// dateLayouts are tried in order when the input carries no zone.
var dateLayouts = []string{
	time.DateOnly,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDay turns a backend date string into a civil date. Plain dates are
// taken as-is; timestamps with an offset are first moved into loc so a
// late-evening UTC timestamp lands on the school's local day. Malformed
// input reports ok=false instead of failing.
func ParseDay(raw string, loc *time.Location) (Date, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Date{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return DateOf(t, loc), true
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return DateOf(t, loc), true
	}
	return Date{}, false
}
