package calendar

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jan2024 = Month{Year: 2024, Month: time.January}

func testOptions() Options {
	return Options{
		WeeklyHolidays: []time.Weekday{time.Sunday},
		Today:          time.Date(2024, time.January, 20, 10, 0, 0, 0, time.UTC),
		Location:       time.UTC,
	}
}

func TestLeaveDays_ExpandsInclusiveRange(t *testing.T) {
	got := LeaveDays([]LeaveRange{{FromDate: "2024-01-10", ToDate: "2024-01-12"}}, time.UTC)

	assert.Equal(t, map[string]Status{
		"2024-01-10": StatusOnLeave,
		"2024-01-11": StatusOnLeave,
		"2024-01-12": StatusOnLeave,
	}, got)
}

func TestAggregate_LeaveMarksOnlyCoveredDays(t *testing.T) {
	got := Aggregate(jan2024, []LeaveRange{{FromDate: "2024-01-10", ToDate: "2024-01-12"}}, nil, testOptions())

	var onLeave []string
	for k, s := range got {
		if s == StatusOnLeave {
			onLeave = append(onLeave, k)
		}
	}
	assert.ElementsMatch(t, []string{"2024-01-10", "2024-01-11", "2024-01-12"}, onLeave)
	assert.Len(t, got, 31)
}

func TestAggregate_Precedence(t *testing.T) {
	leaves := []LeaveRange{{FromDate: "2024-01-10", ToDate: "2024-01-12"}}
	records := []AttendanceEntry{
		{Date: "2024-01-11", Status: "Present"},
		{Date: "2024-01-15", Status: "Absent"},
		{Date: "2024-01-16", Status: "Half Day"},
		{Date: "2024-01-16", Status: "Present"},
	}

	got := Aggregate(jan2024, leaves, records, testOptions())

	tests := []struct {
		day  string
		want Status
	}{
		{"2024-01-11", StatusOnLeave},
		{"2024-01-15", StatusAbsent},
		{"2024-01-16", StatusHalfDay},
	}
	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			assert.Equal(t, tt.want, got[tt.day])
		})
	}
}

func TestAggregate_UnrecordedDays(t *testing.T) {
	got := Aggregate(jan2024, nil, nil, testOptions())

	tests := []struct {
		name string
		day  string
		want Status
	}{
		{"past sunday is holiday", "2024-01-07", StatusHoliday},
		{"future sunday is holiday", "2024-01-28", StatusHoliday},
		{"future weekday is upcoming", "2024-01-22", StatusUpcoming},
		{"past weekday is not marked", "2024-01-03", StatusNotMarked},
		{"today is not marked", "2024-01-20", StatusNotMarked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, got[tt.day])
		})
	}
}

func TestAggregate_AttendanceOnHolidayIsKept(t *testing.T) {
	got := Aggregate(jan2024, nil, []AttendanceEntry{{Date: "2024-01-14", Status: "Present"}}, testOptions())

	assert.Equal(t, StatusPresent, got["2024-01-14"])
}

func TestAggregate_SkipsMalformedInput(t *testing.T) {
	leaves := []LeaveRange{
		{FromDate: "not-a-date", ToDate: "2024-01-05"},
		{FromDate: "2024-01-09", ToDate: "2024-01-08"},
		{FromDate: "", ToDate: ""},
	}
	records := []AttendanceEntry{
		{Date: "2024-13-40", Status: "Present"},
		{Date: "2024-01-04", Status: "Teleported"},
		{Date: "", Status: "Absent"},
	}

	require.NotPanics(t, func() {
		got := Aggregate(jan2024, leaves, records, testOptions())
		assert.Equal(t, StatusNotMarked, got["2024-01-04"])
		assert.Equal(t, StatusNotMarked, got["2024-01-08"])
		assert.Len(t, got, 31)
	})
}

func TestAggregate_ClipsLeaveToMonth(t *testing.T) {
	got := Aggregate(jan2024, []LeaveRange{{FromDate: "2023-12-30", ToDate: "2024-01-02"}}, nil, testOptions())

	assert.Equal(t, StatusOnLeave, got["2024-01-01"])
	assert.Equal(t, StatusOnLeave, got["2024-01-02"])
	assert.NotContains(t, got, "2023-12-31")
	assert.Len(t, got, 31)
}

func TestAggregate_TimestampsUseSchoolZone(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	opts := testOptions()
	opts.Location = kolkata

	// 19:00 UTC on the 9th is already the 10th in Kolkata.
	got := Aggregate(jan2024, nil, []AttendanceEntry{{Date: "2024-01-09T19:00:00Z", Status: "Absent"}}, opts)

	assert.Equal(t, StatusAbsent, got["2024-01-10"])
	assert.Equal(t, StatusNotMarked, got["2024-01-09"])
}

func TestAggregate_Idempotent(t *testing.T) {
	leaves := []LeaveRange{{FromDate: "2024-01-10", ToDate: "2024-01-12"}}
	records := []AttendanceEntry{{Date: "2024-01-11", Status: "Present"}, {Date: "2024-01-15", Status: "Absent"}}

	first := Aggregate(jan2024, leaves, records, testOptions())
	second := Aggregate(jan2024, leaves, records, testOptions())

	assert.Equal(t, first, second)
}

func TestMonth(t *testing.T) {
	_, err := NewMonth(2024, 13)
	assert.ErrorIs(t, err, ErrInvalidMonth)

	feb, err := NewMonth(2024, 2)
	require.NoError(t, err)
	assert.Equal(t, 29, feb.Days())

	dec, _ := NewMonth(2023, 12)
	assert.Equal(t, Date{Year: 2023, Month: time.December, Day: 31}, dec.Last())
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"Present", StatusPresent, true},
		{"half_day", StatusHalfDay, true},
		{"Half Day", StatusHalfDay, true},
		{"On Leave", StatusOnLeave, true},
		{"absent", StatusAbsent, true},
		{"late", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseStatus(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(map[string]Status{"a": StatusPresent, "b": StatusPresent, "c": StatusAbsent})
	assert.Equal(t, map[Status]int{StatusPresent: 2, StatusAbsent: 1}, got)
}
