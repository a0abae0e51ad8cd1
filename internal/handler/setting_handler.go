package handler

import (
	"net/http"
	"strconv"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/validator"
	"github.com/gin-gonic/gin"
)

type SettingHandler struct {
	settingService *service.SettingService
}

func NewSettingHandler(settingService *service.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// GetAllSettings godoc
// GET /api/v1/settings
func (h *SettingHandler) GetAllSettings(c *gin.Context) {
	_, branchID := scope(c)
	settings, err := h.settingService.GetAllSettings(c.Request.Context(), branchID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, settings)
}

// UpdateSettings godoc
// PUT /api/v1/settings
func (h *SettingHandler) UpdateSettings(c *gin.Context) {
	var req model.UpdateSettingsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	_, branchID := scope(c)
	if err := h.settingService.UpdateSettings(c.Request.Context(), branchID, req.Settings); err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "settings updated successfully"})
}

// GetPublicSettings godoc
// GET /api/v1/public/settings?branch_id=
// Served to the sign-in page, so only display keys are exposed.
func (h *SettingHandler) GetPublicSettings(c *gin.Context) {
	branchID, err := strconv.Atoi(c.Query("branch_id"))
	if err != nil || branchID <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBranchRequired)
		return
	}
	settings, err := h.settingService.PublicSettings(c.Request.Context(), branchID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, settings)
}
