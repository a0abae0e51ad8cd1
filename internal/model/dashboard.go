package model

import "github.com/edunexus/schoolhub/internal/calendar"

// DashboardStats holds the headline counts of a branch.
type DashboardStats struct {
	Students              int `json:"students"`
	Staff                 int `json:"staff"`
	Classes               int `json:"classes"`
	PendingLeaves         int `json:"pending_leaves"`
	PendingRectifications int `json:"pending_rectifications"`
	UnpaidInvoices        int `json:"unpaid_invoices"`
	OverdueBooks          int `json:"overdue_books"`
}

// StaffOnLeave is a staff member away on an approved leave today.
type StaffOnLeave struct {
	StaffID   int    `json:"staff_id"`
	Name      string `json:"name"`
	LeaveType string `json:"leave_type"`
	Until     string `json:"until"`
}

// Dashboard is the payload of the branch dashboard.
type Dashboard struct {
	Stats        *DashboardStats `json:"stats"`
	StaffOnLeave []StaffOnLeave  `json:"staff_on_leave"`
}

// StaffCalendar is the month view of one staff member.
type StaffCalendar struct {
	StaffID  int                        `json:"staff_id"`
	Year     int                        `json:"year"`
	Month    int                        `json:"month"`
	Statuses map[string]calendar.Status `json:"statuses"`
	Grid     calendar.Grid              `json:"grid"`
	Summary  map[calendar.Status]int    `json:"summary"`
}

// CalendarQuery selects the displayed month.
type CalendarQuery struct {
	Year  int `form:"year" binding:"required,min=2000,max=2100"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}
