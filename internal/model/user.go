package model

import "time"

// Role is the portal a user signs in to.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RolePrincipal  Role = "principal"
	RoleRegistrar  Role = "registrar"
	RoleTeacher    Role = "teacher"
	RoleLibrarian  Role = "librarian"
	RoleStudent    Role = "student"
	RoleParent     Role = "parent"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := RolePermissions[r]
	return ok
}

// IsStaffRole reports whether accounts with this role are linked to a staff record.
func (r Role) IsStaffRole() bool {
	return r == RolePrincipal || r == RoleRegistrar || r == RoleTeacher || r == RoleLibrarian
}

// User is a login account. Superadmins have no branch.
type User struct {
	ID           int       `json:"id"`
	BranchID     *int      `json:"branch_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	AvatarURL    string    `json:"avatar_url"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	StaffID      *int      `json:"staff_id,omitempty"`
	StudentID    *int      `json:"student_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Branch returns the user's branch ID, or 0 for superadmins.
func (u *User) Branch() int {
	if u.BranchID == nil {
		return 0
	}
	return *u.BranchID
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=150"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// UpdateProfileRequest is the payload for editing one's own profile.
type UpdateProfileRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=150"`
	Phone     string `json:"phone" binding:"omitempty,max=30"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,max=500"`
}

// ChangePasswordRequest is the payload for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
}

// CreateUserRequest is used by superadmins to create accounts.
type CreateUserRequest struct {
	BranchID *int   `json:"branch_id"`
	Name     string `json:"name" binding:"required,min=2,max=150"`
	Email    string `json:"email" binding:"required,email,max=150"`
	Phone    string `json:"phone" binding:"omitempty,max=30"`
	Role     Role   `json:"role" binding:"required,oneof=superadmin principal registrar teacher librarian student parent"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	StaffID  *int   `json:"staff_id"`
}

// UpdateUserRequest is used by superadmins to edit accounts.
type UpdateUserRequest struct {
	BranchID *int   `json:"branch_id"`
	Name     string `json:"name" binding:"required,min=2,max=150"`
	Phone    string `json:"phone" binding:"omitempty,max=30"`
	Role     Role   `json:"role" binding:"required,oneof=superadmin principal registrar teacher librarian student parent"`
	IsActive *bool  `json:"is_active" binding:"required"`
	Password string `json:"password" binding:"omitempty,min=8,max=128"`
	StaffID  *int   `json:"staff_id"`
}
