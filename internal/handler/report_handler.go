package handler

import (
	"net/http"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/validator"
	"github.com/gin-gonic/gin"
)

// ReportHandler streams xlsx exports and the dashboard counters.
type ReportHandler struct {
	reportService    *service.ReportService
	dashboardService *service.DashboardService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService, dashboardService *service.DashboardService) *ReportHandler {
	return &ReportHandler{reportService: reportService, dashboardService: dashboardService}
}

// StaffAttendance godoc
// GET /api/v1/reports/staff-attendance.xlsx?year=&month=
func (h *ReportHandler) StaffAttendance(c *gin.Context) {
	var q model.CalendarQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	body, name, err := h.reportService.StaffAttendance(c.Request.Context(), branchID, q)
	if err != nil {
		fail(c, err)
		return
	}
	response.Spreadsheet(c, name, body)
}

// FeeLedger godoc
// GET /api/v1/reports/fees.xlsx?status=
func (h *ReportHandler) FeeLedger(c *gin.Context) {
	var f model.InvoiceFilter
	if fields := validator.BindQuery(c, &f); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	body, name, err := h.reportService.FeeLedger(c.Request.Context(), branchID, f)
	if err != nil {
		fail(c, err)
		return
	}
	response.Spreadsheet(c, name, body)
}

// Dashboard godoc
// GET /api/v1/dashboard
// Returns branch stat cards and the staff on leave today.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	_, branchID := scope(c)
	data, err := h.dashboardService.GetDashboardData(c.Request.Context(), branchID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, data)
}
