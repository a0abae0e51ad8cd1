package handler

import (
	"net/http"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/validator"
	"github.com/gin-gonic/gin"
)

// HostelHandler handles hostels, rooms and bed assignments.
type HostelHandler struct {
	hostelService *service.HostelService
}

func NewHostelHandler(hostelService *service.HostelService) *HostelHandler {
	return &HostelHandler{hostelService: hostelService}
}

// ListHostels godoc
// GET /api/v1/hostel/hostels
func (h *HostelHandler) ListHostels(c *gin.Context) {
	_, branchID := scope(c)
	hostels, err := h.hostelService.ListHostels(c.Request.Context(), branchID)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, hostels)
}

// CreateHostel godoc
// POST /api/v1/hostel/hostels
func (h *HostelHandler) CreateHostel(c *gin.Context) {
	var req model.HostelRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	hostel, err := h.hostelService.CreateHostel(c.Request.Context(), branchID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, hostel)
}

// UpdateHostel godoc
// PUT /api/v1/hostel/hostels/:id
func (h *HostelHandler) UpdateHostel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.HostelRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	hostel, err := h.hostelService.UpdateHostel(c.Request.Context(), branchID, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, hostel)
}

// DeleteHostel godoc
// DELETE /api/v1/hostel/hostels/:id
func (h *HostelHandler) DeleteHostel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	if err := h.hostelService.DeleteHostel(c.Request.Context(), branchID, id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "hostel deleted successfully"})
}

// ListRooms godoc
// GET /api/v1/hostel/hostels/:id/rooms
func (h *HostelHandler) ListRooms(c *gin.Context) {
	hostelID, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	rooms, err := h.hostelService.ListRooms(c.Request.Context(), branchID, hostelID)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, rooms)
}

// CreateRoom godoc
// POST /api/v1/hostel/hostels/:id/rooms
func (h *HostelHandler) CreateRoom(c *gin.Context) {
	hostelID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.RoomRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	room, err := h.hostelService.CreateRoom(c.Request.Context(), branchID, hostelID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, room)
}

// UpdateRoom godoc
// PUT /api/v1/hostel/rooms/:id
// Capacity cannot drop below the current occupancy.
func (h *HostelHandler) UpdateRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.RoomRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	room, err := h.hostelService.UpdateRoom(c.Request.Context(), branchID, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, room)
}

// DeleteRoom godoc
// DELETE /api/v1/hostel/rooms/:id
func (h *HostelHandler) DeleteRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	if err := h.hostelService.DeleteRoom(c.Request.Context(), branchID, id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "room deleted successfully"})
}

// Occupants godoc
// GET /api/v1/hostel/rooms/:id/occupants
func (h *HostelHandler) Occupants(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	rows, err := h.hostelService.Occupants(c.Request.Context(), branchID, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, rows)
}

// Assign godoc
// POST /api/v1/hostel/rooms/:id/assign
// Places a student in a room with a free bed. A student holds one bed.
func (h *HostelHandler) Assign(c *gin.Context) {
	roomID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.AssignStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	a, err := h.hostelService.Assign(c.Request.Context(), branchID, roomID, req.StudentID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a)
}

// Vacate godoc
// DELETE /api/v1/hostel/assignments/:student_id
func (h *HostelHandler) Vacate(c *gin.Context) {
	studentID, ok := paramID(c, "student_id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	if err := h.hostelService.Vacate(c.Request.Context(), branchID, studentID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "bed vacated"})
}
