package handler

import (
	"net/http"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/validator"
	"github.com/gin-gonic/gin"
)

// FeeHandler handles fee templates, invoices and checkout.
type FeeHandler struct {
	feeService *service.FeeService
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(feeService *service.FeeService) *FeeHandler {
	return &FeeHandler{feeService: feeService}
}

// ListTemplates godoc
// GET /api/v1/fees/templates
func (h *FeeHandler) ListTemplates(c *gin.Context) {
	_, branchID := scope(c)
	templates, err := h.feeService.ListTemplates(c.Request.Context(), branchID)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, templates)
}

// GetTemplate godoc
// GET /api/v1/fees/templates/:id
func (h *FeeHandler) GetTemplate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	t, err := h.feeService.GetTemplate(c.Request.Context(), branchID, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

// CreateTemplate godoc
// POST /api/v1/fees/templates
// The total is derived from the items.
func (h *FeeHandler) CreateTemplate(c *gin.Context) {
	var req model.FeeTemplateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	t, err := h.feeService.CreateTemplate(c.Request.Context(), branchID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t)
}

// UpdateTemplate godoc
// PUT /api/v1/fees/templates/:id
func (h *FeeHandler) UpdateTemplate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.FeeTemplateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	t, err := h.feeService.UpdateTemplate(c.Request.Context(), branchID, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

// DeleteTemplate godoc
// DELETE /api/v1/fees/templates/:id
func (h *FeeHandler) DeleteTemplate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	if err := h.feeService.DeleteTemplate(c.Request.Context(), branchID, id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "template deleted successfully"})
}

// AssignTemplate godoc
// POST /api/v1/fees/templates/:id/assign
// Bills every student of the class once; existing invoices are skipped.
func (h *FeeHandler) AssignTemplate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.AssignFeeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	res, err := h.feeService.AssignToClass(c.Request.Context(), branchID, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// ListInvoices godoc
// GET /api/v1/fees/invoices?student_id=&status=
// Students and parents see only their own invoices.
func (h *FeeHandler) ListInvoices(c *gin.Context) {
	var f model.InvoiceFilter
	if fields := validator.BindQuery(c, &f); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	claims, branchID := scope(c)
	invoices, err := h.feeService.ListInvoices(c.Request.Context(), claims, branchID, f)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, invoices)
}

// Checkout godoc
// POST /api/v1/fees/invoices/:id/checkout
// Opens a gateway session. The portal keeps order_id to confirm later.
func (h *FeeHandler) Checkout(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	claims, branchID := scope(c)
	res, err := h.feeService.Checkout(c.Request.Context(), claims, branchID, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}
