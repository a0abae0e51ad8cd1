package handler

import (
	"net/http"

	"github.com/edunexus/schoolhub/internal/middleware"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/validator"
	"github.com/gin-gonic/gin"
)

// StudentHandler handles admissions.
type StudentHandler struct {
	studentService *service.StudentService
	reportService  *service.ReportService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService, reportService *service.ReportService) *StudentHandler {
	return &StudentHandler{studentService: studentService, reportService: reportService}
}

// ListStudents godoc
// GET /api/v1/students?class_id=&q=&status=&page=&per_page=
func (h *StudentHandler) ListStudents(c *gin.Context) {
	var f model.StudentFilter
	if fields := validator.BindQuery(c, &f); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	_, branchID := scope(c)
	students, pagination, err := h.studentService.List(c.Request.Context(), branchID, f)
	if err != nil {
		fail(c, err)
		return
	}
	response.ListWithPagination(c, students, pagination)
}

// GetStudent godoc
// GET /api/v1/students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	student, err := h.studentService.GetByID(c.Request.Context(), branchID, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, student)
}

// CreateStudent godoc
// POST /api/v1/students
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req model.StudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	_, branchID := scope(c)
	student, err := h.studentService.Create(c.Request.Context(), branchID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, student)
}

// UpdateStudent godoc
// PUT /api/v1/students/:id
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.StudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	_, branchID := scope(c)
	student, err := h.studentService.Update(c.Request.Context(), branchID, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, student)
}

// DeleteStudent godoc
// DELETE /api/v1/students/:id
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	if err := h.studentService.Delete(c.Request.Context(), branchID, id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "student deleted successfully"})
}

// ImportStudents godoc
// POST /api/v1/students/import (multipart, field "file")
// Admits every valid row of the first sheet and reports the rest.
func (h *StudentHandler) ImportStudents(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	_, branchID := scope(c)
	result, err := h.studentService.Import(c.Request.Context(), branchID, file)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// ImportTemplate godoc
// GET /api/v1/students/import/template.xlsx
func (h *StudentHandler) ImportTemplate(c *gin.Context) {
	body, err := h.reportService.StudentTemplate()
	if err != nil {
		fail(c, err)
		return
	}
	response.Spreadsheet(c, "students-import-template.xlsx", body)
}

// Children godoc
// GET /api/v1/parent/children
// Students whose guardian account is the caller.
func (h *StudentHandler) Children(c *gin.Context) {
	claims := middleware.GetClaims(c)
	children, err := h.studentService.Children(c.Request.Context(), claims.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, children)
}
