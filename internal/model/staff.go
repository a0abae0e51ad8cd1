package model

import "time"

// Staff is a teacher or other employee of a branch.
type Staff struct {
	ID          int       `json:"id"`
	BranchID    int       `json:"branch_id"`
	EmployeeNo  string    `json:"employee_no"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Designation string    `json:"designation"`
	IsTeacher   bool      `json:"is_teacher"`
	Subjects    []string  `json:"subjects"`
	JoinedOn    *string   `json:"joined_on"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StaffRequest is the payload for creating or updating staff.
type StaffRequest struct {
	EmployeeNo  string   `json:"employee_no" binding:"required,min=1,max=30"`
	Name        string   `json:"name" binding:"required,min=2,max=150"`
	Email       string   `json:"email" binding:"omitempty,email,max=150"`
	Phone       string   `json:"phone" binding:"omitempty,max=30"`
	Designation string   `json:"designation" binding:"required,max=60"`
	IsTeacher   bool     `json:"is_teacher"`
	Subjects    []string `json:"subjects" binding:"omitempty,dive,min=1,max=60"`
	JoinedOn    string   `json:"joined_on" binding:"omitempty,date"`
}
