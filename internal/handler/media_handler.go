package handler

import (
	"net/http"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/validator"
	"github.com/gin-gonic/gin"
)

// MediaHandler handles media upload endpoints.
type MediaHandler struct {
	mediaService *service.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadMedia godoc
// POST /api/v1/media/upload
// Uploads a file in one multipart request and returns its URL.
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	url, err := h.mediaService.SaveUpload(file, header)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"url": url})
}

// Presign godoc
// POST /api/v1/media/presign
// Issues a short-lived signed URL the portal PUTs the file body to.
func (h *MediaHandler) Presign(c *gin.Context) {
	var req model.PresignRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	upload, err := h.mediaService.Presign(req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, upload)
}

// PutSigned godoc
// PUT /uploads/put/:object_key?ct=&expires=&sig=
// Unauthenticated: the signature is the credential.
func (h *MediaHandler) PutSigned(c *gin.Context) {
	if c.Request.ContentLength == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	url, err := h.mediaService.SaveSigned(
		c.Param("object_key"),
		c.Query("ct"),
		c.Query("expires"),
		c.Query("sig"),
		c.Request.Body,
	)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"url": url})
}
