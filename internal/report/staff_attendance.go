package report

import (
	"fmt"

	"github.com/edunexus/schoolhub/internal/calendar"
	"github.com/xuri/excelize/v2"
)

// StaffMonth is one staff member's computed month.
type StaffMonth struct {
	EmployeeNo string
	Name       string
	Statuses   map[string]calendar.Status
	Summary    map[calendar.Status]int
}

var summaryColumns = []calendar.Status{
	calendar.StatusPresent, calendar.StatusAbsent, calendar.StatusHalfDay,
	calendar.StatusOnLeave, calendar.StatusHoliday, calendar.StatusNotMarked,
}

// StaffAttendanceWorkbook lays out one row per staff member and one column
// per day of month, followed by per-status totals.
func StaffAttendanceWorkbook(month calendar.Month, staff []StaffMonth) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("%s %d", month.Month, month.Year)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	days := month.Days()
	header := []any{"Employee No", "Name"}
	for d := 1; d <= days; d++ {
		header = append(header, d)
	}
	for _, st := range summaryColumns {
		header = append(header, string(st))
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return nil, err
	}
	if err := boldHeader(f, sheet, len(header)); err != nil {
		return nil, err
	}

	first := month.First()
	for i, s := range staff {
		row := []any{s.EmployeeNo, s.Name}
		for d := 0; d < days; d++ {
			row = append(row, string(s.Statuses[first.AddDays(d).Key()]))
		}
		for _, st := range summaryColumns {
			row = append(row, s.Summary[st])
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, XSplit: 2, YSplit: 1, TopLeftCell: "C2", ActivePane: "bottomRight",
	}); err != nil {
		return nil, err
	}
	return writeBytes(f)
}
