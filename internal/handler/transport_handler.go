package handler

import (
	"net/http"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/validator"
	"github.com/gin-gonic/gin"
)

// TransportHandler handles bus routes, stops and riders.
type TransportHandler struct {
	transportService *service.TransportService
}

func NewTransportHandler(transportService *service.TransportService) *TransportHandler {
	return &TransportHandler{transportService: transportService}
}

// ListRoutes godoc
// GET /api/v1/transport/routes
func (h *TransportHandler) ListRoutes(c *gin.Context) {
	_, branchID := scope(c)
	routes, err := h.transportService.ListRoutes(c.Request.Context(), branchID)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, routes)
}

// GetRoute godoc
// GET /api/v1/transport/routes/:id
// Includes the stops in sequence order.
func (h *TransportHandler) GetRoute(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	route, err := h.transportService.GetRoute(c.Request.Context(), branchID, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, route)
}

// CreateRoute godoc
// POST /api/v1/transport/routes
func (h *TransportHandler) CreateRoute(c *gin.Context) {
	var req model.RouteRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	route, err := h.transportService.CreateRoute(c.Request.Context(), branchID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, route)
}

// UpdateRoute godoc
// PUT /api/v1/transport/routes/:id
func (h *TransportHandler) UpdateRoute(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.RouteRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	route, err := h.transportService.UpdateRoute(c.Request.Context(), branchID, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, route)
}

// DeleteRoute godoc
// DELETE /api/v1/transport/routes/:id
func (h *TransportHandler) DeleteRoute(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	if err := h.transportService.DeleteRoute(c.Request.Context(), branchID, id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "route deleted successfully"})
}

// CreateStop godoc
// POST /api/v1/transport/routes/:id/stops
func (h *TransportHandler) CreateStop(c *gin.Context) {
	routeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.StopRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	stop, err := h.transportService.CreateStop(c.Request.Context(), branchID, routeID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, stop)
}

// UpdateStop godoc
// PUT /api/v1/transport/stops/:id
func (h *TransportHandler) UpdateStop(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.StopRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	stop, err := h.transportService.UpdateStop(c.Request.Context(), branchID, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stop)
}

// DeleteStop godoc
// DELETE /api/v1/transport/stops/:id
func (h *TransportHandler) DeleteStop(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	if err := h.transportService.DeleteStop(c.Request.Context(), branchID, id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "stop deleted successfully"})
}

// Riders godoc
// GET /api/v1/transport/routes/:id/riders
func (h *TransportHandler) Riders(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	rows, err := h.transportService.Riders(c.Request.Context(), branchID, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, rows)
}

// Assign godoc
// POST /api/v1/transport/routes/:id/assign
// The stop must belong to the route and the bus must have a free seat.
func (h *TransportHandler) Assign(c *gin.Context) {
	routeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.AssignRiderRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	_, branchID := scope(c)
	a, err := h.transportService.Assign(c.Request.Context(), branchID, routeID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a)
}

// Unassign godoc
// DELETE /api/v1/transport/assignments/:student_id
func (h *TransportHandler) Unassign(c *gin.Context) {
	studentID, ok := paramID(c, "student_id")
	if !ok {
		return
	}
	_, branchID := scope(c)
	if err := h.transportService.Unassign(c.Request.Context(), branchID, studentID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "rider removed"})
}
