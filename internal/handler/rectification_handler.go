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

// RectificationHandler handles correction requests.
type RectificationHandler struct {
	rectificationService *service.RectificationService
}

func NewRectificationHandler(rectificationService *service.RectificationService) *RectificationHandler {
	return &RectificationHandler{rectificationService: rectificationService}
}

// Submit godoc
// POST /api/v1/rectifications
func (h *RectificationHandler) Submit(c *gin.Context) {
	var req model.RectificationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	claims, _ := scope(c)
	r, err := h.rectificationService.Submit(c.Request.Context(), claims, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, r)
}

// List godoc
// GET /api/v1/rectifications?status=&kind=
// Reviewers see the whole branch, everyone else their own requests.
func (h *RectificationHandler) List(c *gin.Context) {
	var f model.RectificationFilter
	if fields := validator.BindQuery(c, &f); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	claims, branchID := scope(c)
	items, err := h.rectificationService.List(c.Request.Context(), claims, branchID, f)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, items)
}

// Approve godoc
// POST /api/v1/rectifications/:id/approve
func (h *RectificationHandler) Approve(c *gin.Context) {
	h.review(c, h.rectificationService.Approve)
}

// Reject godoc
// POST /api/v1/rectifications/:id/reject
func (h *RectificationHandler) Reject(c *gin.Context) {
	h.review(c, h.rectificationService.Reject)
}

func (h *RectificationHandler) review(c *gin.Context, fn func(context.Context, *service.Claims, int, int, string) (*model.Rectification, error)) {
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
	r, err := fn(c.Request.Context(), claims, branchID, id, req.Remarks)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}
