package model

// Weekdays on which timetable slots may be scheduled.
var SchoolDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// TimetableSlot is one period of one class on one day.
type TimetableSlot struct {
	ID          int    `json:"id"`
	BranchID    int    `json:"branch_id"`
	ClassID     int    `json:"class_id"`
	Day         string `json:"day"`
	Period      int    `json:"period"`
	Subject     string `json:"subject"`
	TeacherID   *int   `json:"teacher_id"`
	TeacherName string `json:"teacher_name,omitempty"`
}

// UpsertSlotRequest sets the subject/teacher of a class period.
type UpsertSlotRequest struct {
	ClassID   int    `json:"class_id" binding:"required,min=1"`
	Day       string `json:"day" binding:"required,oneof=monday tuesday wednesday thursday friday saturday"`
	Period    int    `json:"period" binding:"required,min=1,max=12"`
	Subject   string `json:"subject" binding:"required,min=1,max=60"`
	TeacherID *int   `json:"teacher_id"`
}

// SlotQuery identifies a day/period across all classes.
type SlotQuery struct {
	Day    string `form:"day" binding:"required,oneof=monday tuesday wednesday thursday friday saturday"`
	Period int    `form:"period" binding:"required,min=1,max=12"`
}
