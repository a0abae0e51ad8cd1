package handler

import (
	"net/http"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/validator"
	"github.com/gin-gonic/gin"
)

// StaffHandler handles staff records, staff attendance and calendars.
type StaffHandler struct {
	staffService      *service.StaffService
	attendanceService *service.AttendanceService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(staffService *service.StaffService, attendanceService *service.AttendanceService) *StaffHandler {
	return &StaffHandler{staffService: staffService, attendanceService: attendanceService}
}

type listStaffQuery struct {
	TeachersOnly bool `form:"teachers_only"`
}

// ListStaff godoc
// GET /api/v1/staff?teachers_only=
func (h *StaffHandler) ListStaff(c *gin.Context) {
	var q listStaffQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	staff, err := h.staffService.List(c.Request.Context(), branchID, q.TeachersOnly)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, staff)
}

// GetStaff godoc
// GET /api/v1/staff/:id
func (h *StaffHandler) GetStaff(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	staff, err := h.staffService.GetByID(c.Request.Context(), branchID, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, staff)
}

// CreateStaff godoc
// POST /api/v1/staff
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req model.StaffRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	staff, err := h.staffService.Create(c.Request.Context(), branchID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, staff)
}

// UpdateStaff godoc
// PUT /api/v1/staff/:id
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.StaffRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	staff, err := h.staffService.Update(c.Request.Context(), branchID, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, staff)
}

// DeleteStaff godoc
// DELETE /api/v1/staff/:id
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	if err := h.staffService.Delete(c.Request.Context(), branchID, id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "staff deleted successfully"})
}

// MarkAttendance godoc
// POST /api/v1/staff-attendance
// Upserts one staff member's status for a day.
func (h *StaffHandler) MarkAttendance(c *gin.Context) {
	var req model.MarkStaffAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	claims, branchID := scope(c)
	row, err := h.attendanceService.MarkStaff(c.Request.Context(), claims, branchID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, row)
}

// ListAttendance godoc
// GET /api/v1/staff-attendance?staff_id=&from=&to=
func (h *StaffHandler) ListAttendance(c *gin.Context) {
	var q model.StaffAttendanceQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	rows, err := h.attendanceService.ListStaff(c.Request.Context(), branchID, q)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, rows)
}

// Calendar godoc
// GET /api/v1/staff/:id/calendar?year=&month=
// Returns day statuses, the Monday-first grid and per-status counts.
func (h *StaffHandler) Calendar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.calendar(c, id)
}

// MyCalendar godoc
// GET /api/v1/staff/me/calendar?year=&month=
func (h *StaffHandler) MyCalendar(c *gin.Context) {
	claims, _ := scope(c)
	if claims.StaffID == nil {
		fail(c, service.ErrNotStaff)
		return
	}
	h.calendar(c, *claims.StaffID)
}

func (h *StaffHandler) calendar(c *gin.Context, staffID int) {
	var q model.CalendarQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	cal, err := h.attendanceService.StaffCalendar(c.Request.Context(), branchID, staffID, q)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, cal)
}
