package model

import "time"

// Gender represents the student's gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// StudentStatus tracks the admission lifecycle.
type StudentStatus string

const (
	StudentActive    StudentStatus = "active"
	StudentWithdrawn StudentStatus = "withdrawn"
	StudentGraduated StudentStatus = "graduated"
)

// Student represents an admitted student.
type Student struct {
	ID             int           `json:"id"`
	BranchID       int           `json:"branch_id"`
	AdmissionNo    string        `json:"admission_no"`
	Name           string        `json:"name"`
	Gender         Gender        `json:"gender"`
	DateOfBirth    *string       `json:"date_of_birth"`
	ClassID        *int          `json:"class_id"`
	ClassName      string        `json:"class_name,omitempty"`
	UserID         *int          `json:"user_id,omitempty"`
	GuardianUserID *int          `json:"guardian_user_id,omitempty"`
	GuardianEmail  string        `json:"guardian_email"`
	Status         StudentStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// StudentRequest is the payload for creating or updating a student.
type StudentRequest struct {
	AdmissionNo   string        `json:"admission_no" binding:"required,min=1,max=30"`
	Name          string        `json:"name" binding:"required,min=2,max=150"`
	Gender        Gender        `json:"gender" binding:"required,oneof=male female other"`
	DateOfBirth   string        `json:"date_of_birth" binding:"omitempty,date"`
	ClassID       *int          `json:"class_id"`
	GuardianEmail string        `json:"guardian_email" binding:"omitempty,email"`
	Status        StudentStatus `json:"status" binding:"omitempty,oneof=active withdrawn graduated"`
}

// StudentFilter narrows student listings.
type StudentFilter struct {
	ClassID int    `form:"class_id"`
	Query   string `form:"q" binding:"omitempty,max=100"`
	Status  string `form:"status" binding:"omitempty,oneof=active withdrawn graduated"`
	Page    int    `form:"page" binding:"omitempty,min=1"`
	PerPage int    `form:"per_page" binding:"omitempty,min=1,max=200"`
}

// Normalize fills pagination defaults.
func (f *StudentFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PerPage <= 0 {
		f.PerPage = 50
	}
}

// ImportResult summarizes a bulk admission import.
type ImportResult struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}

// ImportError points at the spreadsheet row that failed.
type ImportError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
