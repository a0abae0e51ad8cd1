package model

import "time"

// Branch is a tenant school location.
type Branch struct {
	ID        int       `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BranchRequest is the payload for creating or updating a branch.
type BranchRequest struct {
	Code     string `json:"code" binding:"required,alphanum,min=2,max=20"`
	Name     string `json:"name" binding:"required,min=2,max=150"`
	Address  string `json:"address" binding:"omitempty,max=500"`
	Phone    string `json:"phone" binding:"omitempty,max=30"`
	IsActive *bool  `json:"is_active"`
}
