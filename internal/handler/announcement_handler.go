package handler

import (
	"net/http"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/validator"
	"github.com/gin-gonic/gin"
)

// AnnouncementHandler handles notices and the per-role feed.
type AnnouncementHandler struct {
	announcementService *service.AnnouncementService
}

func NewAnnouncementHandler(announcementService *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// List godoc
// GET /api/v1/announcements
func (h *AnnouncementHandler) List(c *gin.Context) {
	_, branchID := scope(c)
	items, err := h.announcementService.List(c.Request.Context(), branchID)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, items)
}

// Feed godoc
// GET /api/v1/announcements/feed
// Published announcements addressed to the caller's role or class.
func (h *AnnouncementHandler) Feed(c *gin.Context) {
	claims, branchID := scope(c)
	items, err := h.announcementService.Feed(c.Request.Context(), claims, branchID)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, items)
}

// Create godoc
// POST /api/v1/announcements
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req model.AnnouncementRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	claims, branchID := scope(c)
	a, err := h.announcementService.Create(c.Request.Context(), claims, branchID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a)
}

// Update godoc
// PUT /api/v1/announcements/:id
func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.AnnouncementRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	claims, branchID := scope(c)
	a, err := h.announcementService.Update(c.Request.Context(), claims, branchID, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

// Delete godoc
// DELETE /api/v1/announcements/:id
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	claims, branchID := scope(c)
	if err := h.announcementService.Delete(c.Request.Context(), claims, branchID, id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "announcement deleted successfully"})
}
