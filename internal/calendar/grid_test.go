package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGrid_LeadingBlanks(t *testing.T) {
	tests := []struct {
		name    string
		month   Month
		leading int
		weeks   int
	}{
		{"starts on monday", Month{2024, time.January}, 0, 5},
		{"starts on sunday", Month{2023, time.October}, 6, 6},
		{"starts on thursday", Month{2024, time.February}, 3, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := BuildGrid(tt.month, nil)
			assert.Equal(t, tt.leading, g.Leading)
			assert.Len(t, g.Weeks, tt.weeks)
			for _, w := range g.Weeks {
				assert.Len(t, w, 7)
			}
		})
	}
}

func TestBuildGrid_CellsCarryStatus(t *testing.T) {
	m := Month{2023, time.October}
	statuses := Aggregate(m, nil, []AttendanceEntry{{Date: "2023-10-02", Status: "Present"}}, Options{
		WeeklyHolidays: []time.Weekday{time.Sunday},
		Today:          time.Date(2023, time.October, 31, 0, 0, 0, 0, time.UTC),
	})

	g := BuildGrid(m, statuses)

	for i := 0; i < 6; i++ {
		assert.Nil(t, g.Weeks[0][i])
	}
	sunday := g.Weeks[0][6]
	require.NotNil(t, sunday)
	assert.Equal(t, 1, sunday.Day)
	assert.Equal(t, StatusHoliday, sunday.Status)

	monday := g.Weeks[1][0]
	require.NotNil(t, monday)
	assert.Equal(t, "2023-10-02", monday.DayKey)
	assert.Equal(t, StatusPresent, monday.Status)
}

func TestMondayIndex(t *testing.T) {
	assert.Equal(t, 0, mondayIndex(time.Monday))
	assert.Equal(t, 6, mondayIndex(time.Sunday))
	assert.Equal(t, 5, mondayIndex(time.Saturday))
}
