package handler

import (
	"net/http"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/validator"
	"github.com/gin-gonic/gin"
)

// ClassHandler handles class management and the class register.
type ClassHandler struct {
	classService      *service.ClassService
	attendanceService *service.AttendanceService
	timetableService  *service.TimetableService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService, attendanceService *service.AttendanceService, timetableService *service.TimetableService) *ClassHandler {
	return &ClassHandler{
		classService:      classService,
		attendanceService: attendanceService,
		timetableService:  timetableService,
	}
}

// ListClasses godoc
// GET /api/v1/classes
// Lists all classes of the branch without pagination.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	_, branchID := scope(c)
	classes, err := h.classService.List(c.Request.Context(), branchID)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, classes)
}

// GetClass godoc
// GET /api/v1/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	class, err := h.classService.GetByID(c.Request.Context(), branchID, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, class)
}

// CreateClass godoc
// POST /api/v1/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req model.ClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	_, branchID := scope(c)
	class, err := h.classService.Create(c.Request.Context(), branchID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, class)
}

// UpdateClass godoc
// PUT /api/v1/classes/:id
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.ClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	_, branchID := scope(c)
	class, err := h.classService.Update(c.Request.Context(), branchID, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, class)
}

// DeleteClass godoc
// DELETE /api/v1/classes/:id
// Will fail if students are attached.
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	if err := h.classService.Delete(c.Request.Context(), branchID, id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "class deleted successfully"})
}

// AssignMentor godoc
// PUT /api/v1/classes/:id/mentor
// A teacher mentors at most one class; null clears the mentor.
func (h *ClassHandler) AssignMentor(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.AssignMentorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	_, branchID := scope(c)
	class, err := h.classService.AssignMentor(c.Request.Context(), branchID, id, req.TeacherID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, class)
}

// ListStudents godoc
// GET /api/v1/classes/:id/students
func (h *ClassHandler) ListStudents(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	students, err := h.classService.Students(c.Request.Context(), branchID, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, students)
}

// MarkAttendance godoc
// POST /api/v1/classes/:id/attendance
// Bulk upsert of one day's register.
func (h *ClassHandler) MarkAttendance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.MarkClassAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims, branchID := scope(c)
	if err := h.attendanceService.MarkClass(c.Request.Context(), claims, branchID, id, req); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marked": len(req.Entries)})
}

type classDateQuery struct {
	Date string `form:"date" binding:"required,date"`
}

// ListAttendance godoc
// GET /api/v1/classes/:id/attendance?date=
func (h *ClassHandler) ListAttendance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var q classDateQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims, branchID := scope(c)
	rows, err := h.attendanceService.ListClass(c.Request.Context(), claims, branchID, id, q.Date)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, rows)
}

// Timetable godoc
// GET /api/v1/classes/:id/timetable
func (h *ClassHandler) Timetable(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	slots, err := h.timetableService.ClassTimetable(c.Request.Context(), branchID, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, slots)
}
