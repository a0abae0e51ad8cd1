package model

import "time"

// PresignRequest asks for a one-time upload URL.
type PresignRequest struct {
	Filename    string `json:"filename" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

// PresignedUpload is where and until when the client may PUT the file.
type PresignedUpload struct {
	UploadURL   string    `json:"upload_url"`
	ObjectKey   string    `json:"object_key"`
	ContentType string    `json:"content_type"`
	PublicURL   string    `json:"public_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}
