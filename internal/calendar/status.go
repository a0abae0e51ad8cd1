package calendar

import "strings"

// Status is the per-day state shown on a staff attendance calendar.
type Status string

const (
	StatusPresent   Status = "Present"
	StatusAbsent    Status = "Absent"
	StatusHalfDay   Status = "HalfDay"
	StatusOnLeave   Status = "OnLeave"
	StatusHoliday   Status = "Holiday"
	StatusUpcoming  Status = "Upcoming"
	StatusNotMarked Status = "Not Marked"
)

// RecordedStatuses are the statuses an attendance row may carry.
var RecordedStatuses = []Status{StatusPresent, StatusAbsent, StatusHalfDay, StatusOnLeave}

// ParseStatus normalizes the spellings that manual entry and biometric
// devices produce ("Half Day", "half_day", "On Leave", ...).
func ParseStatus(raw string) (Status, bool) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(norm)
	switch norm {
	case "present", "p":
		return StatusPresent, true
	case "absent", "a":
		return StatusAbsent, true
	case "halfday", "half", "h":
		return StatusHalfDay, true
	case "onleave", "leave", "l":
		return StatusOnLeave, true
	}
	return "", false
}
