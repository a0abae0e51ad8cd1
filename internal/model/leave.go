package model

import "time"

// LeaveStatus is the review state of a leave application.
type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

// LeaveApplication is a staff request to be away for an inclusive date range.
type LeaveApplication struct {
	ID         int         `json:"id"`
	BranchID   int         `json:"branch_id"`
	StaffID    int         `json:"staff_id"`
	StaffName  string      `json:"staff_name,omitempty"`
	LeaveType  string      `json:"leave_type"`
	FromDate   string      `json:"from_date"`
	ToDate     string      `json:"to_date"`
	Reason     string      `json:"reason"`
	Status     LeaveStatus `json:"status"`
	ReviewedBy *int        `json:"reviewed_by,omitempty"`
	Remarks    string      `json:"remarks"`
	ReviewedAt *time.Time  `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// ApplyLeaveRequest is the payload for filing leave.
type ApplyLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=casual sick earned unpaid maternity other"`
	FromDate  string `json:"from_date" binding:"required,date"`
	ToDate    string `json:"to_date" binding:"required,date"`
	Reason    string `json:"reason" binding:"required,min=3,max=1000"`
}

// ReviewRequest carries optional reviewer remarks for approve/reject.
type ReviewRequest struct {
	Remarks string `json:"remarks" binding:"omitempty,max=1000"`
}

// LeaveFilter narrows leave listings.
type LeaveFilter struct {
	Status  string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
	StaffID int    `form:"staff_id"`
}
