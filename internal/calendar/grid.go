package calendar

import "time"

// Cell is one day on the month grid.
type Cell struct {
	Day    int    `json:"day"`
	DayKey string `json:"date"`
	Status Status `json:"status"`
}

// Grid is a Monday-first, 7-column month layout.
type Grid struct {
	Month   Month     `json:"month"`
	Leading int       `json:"leading_blanks"`
	Weeks   [][]*Cell `json:"weeks"`
}

// mondayIndex maps Sunday-first weekdays onto a Monday-first column.
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// BuildGrid lays out the month with leading blanks (nil cells) before the
// 1st and trailing blanks to complete the final week.
func BuildGrid(month Month, statuses map[string]Status) Grid {
	first := month.First()
	leading := mondayIndex(first.Weekday())
	days := month.Days()

	total := leading + days
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	weeks := make([][]*Cell, 0, total/7)
	week := make([]*Cell, 0, 7)
	for i := 0; i < total; i++ {
		var cell *Cell
		if day := i - leading + 1; day >= 1 && day <= days {
			d := Date{Year: month.Year, Month: month.Month, Day: day}
			cell = &Cell{Day: day, DayKey: d.Key(), Status: statuses[d.Key()]}
		}
		week = append(week, cell)
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]*Cell, 0, 7)
		}
	}

	return Grid{Month: month, Leading: leading, Weeks: weeks}
}
