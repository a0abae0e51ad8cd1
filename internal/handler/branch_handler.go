package handler

import (
	"net/http"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/validator"
	"github.com/gin-gonic/gin"
)

// BranchHandler handles superadmin branch (tenant) management.
type BranchHandler struct {
	branchService *service.BranchService
}

func NewBranchHandler(branchService *service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// ListBranches godoc
// GET /api/v1/admin/branches
func (h *BranchHandler) ListBranches(c *gin.Context) {
	branches, err := h.branchService.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, branches)
}

// GetBranch godoc
// GET /api/v1/admin/branches/:id
func (h *BranchHandler) GetBranch(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	branch, err := h.branchService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, branch)
}

// CreateBranch godoc
// POST /api/v1/admin/branches
func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req model.BranchRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	branch, err := h.branchService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, branch)
}

// UpdateBranch godoc
// PUT /api/v1/admin/branches/:id
func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.BranchRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	branch, err := h.branchService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, branch)
}

// DeleteBranch godoc
// DELETE /api/v1/admin/branches/:id
// Fails with DEPENDENCY_EXISTS while users or students still reference it.
func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.branchService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "branch deleted successfully"})
}
