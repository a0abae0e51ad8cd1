package model

import "time"

// Class represents a grade/section group within a branch.
type Class struct {
	ID              int       `json:"id"`
	BranchID        int       `json:"branch_id"`
	GradeLevel      string    `json:"grade_level"`
	Section         string    `json:"section"`
	Room            string    `json:"room"`
	MentorTeacherID *int      `json:"mentor_teacher_id"`
	MentorName      string    `json:"mentor_name,omitempty"`
	StudentCount    int       `json:"student_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ClassRequest is the payload for creating or updating a class.
type ClassRequest struct {
	GradeLevel string `json:"grade_level" binding:"required,min=1,max=10"`
	Section    string `json:"section" binding:"required,min=1,max=10"`
	Room       string `json:"room" binding:"omitempty,max=30"`
}

// AssignMentorRequest sets (or clears, when null) a class's mentor teacher.
type AssignMentorRequest struct {
	TeacherID *int `json:"teacher_id"`
}
