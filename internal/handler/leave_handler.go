package handler

import (
	"context"
	"net/http"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/validator"
	"github.com/gin-gonic/gin"
)

// LeaveHandler handles leave applications and their review.
type LeaveHandler struct {
	leaveService *service.LeaveService
}

func NewLeaveHandler(leaveService *service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// Apply godoc
// POST /api/v1/leaves
func (h *LeaveHandler) Apply(c *gin.Context) {
	var req model.ApplyLeaveRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	claims, _ := scope(c)
	leave, err := h.leaveService.Apply(c.Request.Context(), claims, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, leave)
}

// List godoc
// GET /api/v1/leaves?status=&staff_id=
func (h *LeaveHandler) List(c *gin.Context) {
	var f model.LeaveFilter
	if fields := validator.BindQuery(c, &f); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	leaves, err := h.leaveService.List(c.Request.Context(), branchID, f)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, leaves)
}

// Mine godoc
// GET /api/v1/leaves/mine
func (h *LeaveHandler) Mine(c *gin.Context) {
	claims, _ := scope(c)
	leaves, err := h.leaveService.Mine(c.Request.Context(), claims)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, leaves)
}

// Approve godoc
// POST /api/v1/leaves/:id/approve
func (h *LeaveHandler) Approve(c *gin.Context) {
	h.review(c, h.leaveService.Approve)
}

// Reject godoc
// POST /api/v1/leaves/:id/reject
func (h *LeaveHandler) Reject(c *gin.Context) {
	h.review(c, h.leaveService.Reject)
}

type leaveReviewFunc func(ctx context.Context, actor *service.Claims, branchID, id int, remarks string) (*model.LeaveApplication, error)

func (h *LeaveHandler) review(c *gin.Context, fn leaveReviewFunc) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.ReviewRequest
	if c.Request.ContentLength != 0 {
		if fields := validator.Bind(c, &req); fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}
	}
	claims, branchID := scope(c)
	leave, err := fn(c.Request.Context(), claims, branchID, id, req.Remarks)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, leave)
}

// Cancel godoc
// DELETE /api/v1/leaves/:id
// The applicant withdraws a pending leave.
func (h *LeaveHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	claims, _ := scope(c)
	leave, err := h.leaveService.Cancel(c.Request.Context(), claims, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, leave)
}
