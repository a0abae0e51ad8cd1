// Package calendar builds the month view of a staff member's attendance by
// merging approved leave ranges with individual attendance records.
package calendar

import (
	"errors"
	"time"
)

// ErrInvalidMonth is returned by NewMonth for out-of-range input.
var ErrInvalidMonth = errors.New("month must be between 1 and 12")

// Month identifies a displayed calendar month. Months are 1-based.
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// NewMonth validates a 1-based month number.
func NewMonth(year, month int) (Month, error) {
	if month < 1 || month > 12 || year < 1 {
		return Month{}, ErrInvalidMonth
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// First is the first day of the month.
func (m Month) First() Date { return Date{Year: m.Year, Month: m.Month, Day: 1} }

// Last is the last day of the month.
func (m Month) Last() Date {
	return Date{Year: m.Year, Month: m.Month + 1, Day: 1}.norm().AddDays(-1)
}

// Days is the number of days in the month.
func (m Month) Days() int { return m.Last().Day }

// Contains reports whether d falls inside the month.
func (m Month) Contains(d Date) bool { return d.Year == m.Year && d.Month == m.Month }

func (d Date) norm() Date { return DateOf(d.utc(), time.UTC) }

// LeaveRange is an inclusive fromDate..toDate span; every day is on leave.
type LeaveRange struct {
	FromDate string
	ToDate   string
}

// AttendanceEntry is a single dated attendance row.
type AttendanceEntry struct {
	Date   string
	Status string
}

// Options tune how unrecorded days are classified.
type Options struct {
	// WeeklyHolidays are weekdays with no attendance expected.
	WeeklyHolidays []time.Weekday
	// Today anchors the Upcoming/Not Marked split. Zero means time.Now().
	Today time.Time
	// Location is the zone used to derive day keys. Nil means UTC.
	Location *time.Location
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

func (o Options) today() Date {
	t := o.Today
	if t.IsZero() {
		t = time.Now()
	}
	return DateOf(t, o.location())
}

func (o Options) isHoliday(d Date) bool {
	wd := d.Weekday()
	for _, h := range o.WeeklyHolidays {
		if h == wd {
			return true
		}
	}
	return false
}

// Aggregate produces the day key → status map for one month.
//
// Leave ranges are applied first and mark every covered day OnLeave. An
// attendance record only fills a day that has no entry yet, so leave wins
// over attendance and the first of several rows for a day wins over later
// ones. Remaining days become Holiday, Upcoming or Not Marked. Rows with
// unparseable dates or statuses are skipped. The result always has exactly
// one entry per day of the month.
func Aggregate(month Month, leaves []LeaveRange, records []AttendanceEntry, opts Options) map[string]Status {
	loc := opts.location()
	first, last := month.First(), month.Last()
	out := make(map[string]Status, month.Days())

	for _, lv := range leaves {
		from, to, ok := leaveBounds(lv, loc)
		if !ok {
			continue
		}
		if from.Before(first) {
			from = first
		}
		if to.After(last) {
			to = last
		}
		for d := from; !d.After(to); d = d.AddDays(1) {
			out[d.Key()] = StatusOnLeave
		}
	}

	for _, rec := range records {
		d, ok := ParseDay(rec.Date, loc)
		if !ok || !month.Contains(d) {
			continue
		}
		status, ok := ParseStatus(rec.Status)
		if !ok {
			continue
		}
		key := d.Key()
		if _, exists := out[key]; !exists {
			out[key] = status
		}
	}

	today := opts.today()
	for d := first; !d.After(last); d = d.AddDays(1) {
		key := d.Key()
		if _, exists := out[key]; exists {
			continue
		}
		switch {
		case opts.isHoliday(d):
			out[key] = StatusHoliday
		case d.After(today):
			out[key] = StatusUpcoming
		default:
			out[key] = StatusNotMarked
		}
	}

	return out
}

// LeaveDays expands leave ranges into day keys without bounding them to a
// month.
func LeaveDays(leaves []LeaveRange, loc *time.Location) map[string]Status {
	if loc == nil {
		loc = time.UTC
	}
	out := make(map[string]Status)
	for _, lv := range leaves {
		from, to, ok := leaveBounds(lv, loc)
		if !ok {
			continue
		}
		for d := from; !d.After(to); d = d.AddDays(1) {
			out[d.Key()] = StatusOnLeave
		}
	}
	return out
}

func leaveBounds(lv LeaveRange, loc *time.Location) (Date, Date, bool) {
	from, ok := ParseDay(lv.FromDate, loc)
	if !ok {
		return Date{}, Date{}, false
	}
	to, ok := ParseDay(lv.ToDate, loc)
	if !ok || to.Before(from) {
		return Date{}, Date{}, false
	}
	return from, to, true
}

// Summarize counts days per status.
func Summarize(statuses map[string]Status) map[Status]int {
	counts := make(map[Status]int)
	for _, s := range statuses {
		counts[s]++
	}
	return counts
}
