package handler

import (
	"net/http"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/validator"
	"github.com/gin-gonic/gin"
)

// TimetableHandler handles period slots and teacher availability.
type TimetableHandler struct {
	timetableService *service.TimetableService
}

func NewTimetableHandler(timetableService *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableService: timetableService}
}

// UpsertSlot godoc
// PUT /api/v1/timetable/slots
// A teacher cannot hold two classes in the same day and period.
func (h *TimetableHandler) UpsertSlot(c *gin.Context) {
	var req model.UpsertSlotRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	slot, err := h.timetableService.UpsertSlot(c.Request.Context(), branchID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, slot)
}

// DeleteSlot godoc
// DELETE /api/v1/timetable/slots/:id
func (h *TimetableHandler) DeleteSlot(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	if err := h.timetableService.DeleteSlot(c.Request.Context(), branchID, id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "slot deleted successfully"})
}

// AvailableTeachers godoc
// GET /api/v1/timetable/available-teachers?day=&period=
func (h *TimetableHandler) AvailableTeachers(c *gin.Context) {
	var q model.SlotQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	teachers, err := h.timetableService.AvailableTeachers(c.Request.Context(), branchID, q)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, teachers)
}
