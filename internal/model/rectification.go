package model

import "time"

// RectificationKind is the kind of record a correction targets.
type RectificationKind string

const (
	RectifyGrade      RectificationKind = "grade"
	RectifyAttendance RectificationKind = "attendance"
	RectifyExamMark   RectificationKind = "exam_mark"
)

// RectificationStatus is the review state of a correction request.
type RectificationStatus string

const (
	RectificationPending  RectificationStatus = "pending"
	RectificationApproved RectificationStatus = "approved"
	RectificationRejected RectificationStatus = "rejected"
)

// Rectification is a formal request to correct a recorded value.
type Rectification struct {
	ID             int                 `json:"id"`
	BranchID       int                 `json:"branch_id"`
	Kind           RectificationKind   `json:"kind"`
	TargetID       int                 `json:"target_id"`
	CurrentValue   string              `json:"current_value"`
	RequestedValue string              `json:"requested_value"`
	Reason         string              `json:"reason"`
	Status         RectificationStatus `json:"status"`
	RequestedBy    int                 `json:"requested_by"`
	RequesterName  string              `json:"requester_name,omitempty"`
	ReviewedBy     *int                `json:"reviewed_by,omitempty"`
	Remarks        string              `json:"remarks"`
	ReviewedAt     *time.Time          `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// RectificationRequest is the payload for filing a correction.
type RectificationRequest struct {
	Kind           RectificationKind `json:"kind" binding:"required,oneof=grade attendance exam_mark"`
	TargetID       int               `json:"target_id" binding:"required,min=1"`
	CurrentValue   string            `json:"current_value" binding:"required,max=200"`
	RequestedValue string            `json:"requested_value" binding:"required,max=200"`
	Reason         string            `json:"reason" binding:"required,min=3,max=1000"`
}

// RectificationFilter narrows listings.
type RectificationFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Kind   string `form:"kind" binding:"omitempty,oneof=grade attendance exam_mark"`
}
