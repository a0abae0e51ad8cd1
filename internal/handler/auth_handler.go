package handler

import (
	"net/http"

	"github.com/edunexus/schoolhub/internal/middleware"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/validator"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles sign-in and the caller's own profile.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// POST /api/v1/auth/login
// Validates email + password and opens a session. Returns the token and the
// cached session user.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// Logout godoc
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// Me godoc
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.Me(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// UpdateProfile godoc
// PUT /api/v1/auth/me
// Saves name, phone and avatar, then replaces the cached session user.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), middleware.GetClaims(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// ChangePassword godoc
// PUT /api/v1/auth/password
// Ends every session of the user and returns a fresh one for this device.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req model.ChangePasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res, err := h.authService.ChangePassword(c.Request.Context(), middleware.GetClaims(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}
