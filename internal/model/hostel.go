package model

import "time"

// Hostel is a residential block of a branch.
type Hostel struct {
	ID         int       `json:"id"`
	BranchID   int       `json:"branch_id"`
	Name       string    `json:"name"`
	Gender     string    `json:"gender"`
	WardenName string    `json:"warden_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// HostelRequest is the payload for creating or updating a hostel.
type HostelRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Gender     string `json:"gender" binding:"required,oneof=male female mixed"`
	WardenName string `json:"warden_name" binding:"omitempty,max=150"`
}

// Room is a hostel room with a fixed number of beds.
type Room struct {
	ID       int    `json:"id"`
	HostelID int    `json:"hostel_id"`
	RoomNo   string `json:"room_no"`
	Capacity int    `json:"capacity"`
	Occupied int    `json:"occupied"`
}

// HasSpace reports whether another student fits.
func (r *Room) HasSpace() bool { return r.Occupied < r.Capacity }

// RoomRequest is the payload for creating or updating a room.
type RoomRequest struct {
	RoomNo   string `json:"room_no" binding:"required,min=1,max=20"`
	Capacity int    `json:"capacity" binding:"required,min=1,max=50"`
}

// RoomAssignment links a student to a room.
type RoomAssignment struct {
	StudentID   int       `json:"student_id"`
	StudentName string    `json:"student_name"`
	RoomID      int       `json:"room_id"`
	AssignedAt  time.Time `json:"assigned_at"`
}

// AssignStudentRequest names the student being placed.
type AssignStudentRequest struct {
	StudentID int `json:"student_id" binding:"required,min=1"`
}
