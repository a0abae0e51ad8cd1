package model

import "time"

// AttendanceSource records how a staff attendance row was captured.
type AttendanceSource string

const (
	SourceManual    AttendanceSource = "manual"
	SourceBiometric AttendanceSource = "biometric"
)

// StaffAttendance is one staff member's status on one day. Status holds one
// of calendar.RecordedStatuses.
type StaffAttendance struct {
	ID        int              `json:"id"`
	StaffID   int              `json:"staff_id"`
	StaffName string           `json:"staff_name,omitempty"`
	Date      string           `json:"date"`
	Status    string           `json:"status"`
	Source    AttendanceSource `json:"source"`
	Remarks   string           `json:"remarks"`
	MarkedBy  *int             `json:"marked_by,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// MarkStaffAttendanceRequest upserts a staff attendance row.
type MarkStaffAttendanceRequest struct {
	StaffID int              `json:"staff_id" binding:"required,min=1"`
	Date    string           `json:"date" binding:"required,date"`
	Status  string           `json:"status" binding:"required,oneof=Present Absent HalfDay OnLeave"`
	Source  AttendanceSource `json:"source" binding:"omitempty,oneof=manual biometric"`
	Remarks string           `json:"remarks" binding:"omitempty,max=500"`
}

// StaffAttendanceQuery filters attendance listings by staff and date range.
type StaffAttendanceQuery struct {
	StaffID int    `form:"staff_id"`
	From    string `form:"from" binding:"required,date"`
	To      string `form:"to" binding:"required,date"`
}

// StudentAttendanceStatus is a student's daily mark.
type StudentAttendanceStatus string

const (
	StudentPresent StudentAttendanceStatus = "present"
	StudentAbsent  StudentAttendanceStatus = "absent"
	StudentLate    StudentAttendanceStatus = "late"
	StudentExcused StudentAttendanceStatus = "excused"
)

// StudentAttendance is a student's mark for one day.
type StudentAttendance struct {
	StudentID   int                     `json:"student_id"`
	StudentName string                  `json:"student_name"`
	ClassID     int                     `json:"class_id"`
	Date        string                  `json:"date"`
	Status      StudentAttendanceStatus `json:"status"`
}

// StudentAttendanceEntry is one line of a bulk class register.
type StudentAttendanceEntry struct {
	StudentID int                     `json:"student_id" binding:"required,min=1"`
	Status    StudentAttendanceStatus `json:"status" binding:"required,oneof=present absent late excused"`
}

// MarkClassAttendanceRequest records the whole class register for a day.
type MarkClassAttendanceRequest struct {
	Date    string                   `json:"date" binding:"required,date"`
	Entries []StudentAttendanceEntry `json:"entries" binding:"required,min=1,dive"`
}
