package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/edunexus/schoolhub/internal/config"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/google/uuid"
)

// Allowed upload MIME types.
var allowedMIMETypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// objectKeyPattern matches the keys Presign hands out.
var objectKeyPattern = regexp.MustCompile(`^[0-9a-f-]{36}\.[a-z]{3,4}$`)

// MediaService handles file uploads: direct multipart posts and pre-signed
// PUT URLs.
type MediaService struct {
	cfg *config.Config
	now func() time.Time
}

// NewMediaService creates a new MediaService.
func NewMediaService(cfg *config.Config) *MediaService {
	return &MediaService{cfg: cfg, now: time.Now}
}

// SaveUpload saves an uploaded file to local storage with a UUID filename.
// Returns the relative URL path to the saved file.
func (s *MediaService) SaveUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	contentType := header.Header.Get("Content-Type")
	ext, err := extensionFor(contentType)
	if err != nil {
		return "", err
	}
	if header.Size > s.cfg.MaxUploadBytes {
		return "", fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, header.Size, s.cfg.MaxUploadBytes)
	}
	return s.write(uuid.NewString()+ext, file)
}

// Presign issues an upload URL valid for the configured TTL. The signature
// covers object key, content type and expiry, so none can be altered.
func (s *MediaService) Presign(req model.PresignRequest) (*model.PresignedUpload, error) {
	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	ext, err := extensionFor(contentType)
	if err != nil {
		return nil, err
	}

	key := uuid.NewString() + ext
	expiresAt := s.now().Add(s.cfg.UploadURLTTL).UTC().Truncate(time.Second)
	expires := strconv.FormatInt(expiresAt.Unix(), 10)

	q := url.Values{}
	q.Set("expires", expires)
	q.Set("ct", contentType)
	q.Set("sig", s.sign(key, contentType, expires))

	return &model.PresignedUpload{
		UploadURL:   s.cfg.PublicBaseURL + "/uploads/put/" + key + "?" + q.Encode(),
		ObjectKey:   key,
		ContentType: contentType,
		PublicURL:   s.cfg.PublicBaseURL + "/uploads/" + key,
		ExpiresAt:   expiresAt,
	}, nil
}

// VerifyUpload checks a pre-signed URL's parameters.
func (s *MediaService) VerifyUpload(key, contentType, expires, sig string) error {
	if !objectKeyPattern.MatchString(key) {
		return ErrBadUploadSignature
	}
	want := s.sign(key, contentType, expires)
	if !hmac.Equal([]byte(want), []byte(strings.ToLower(sig))) {
		return ErrBadUploadSignature
	}

	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return ErrBadUploadSignature
	}
	if s.now().Unix() > exp {
		return ErrUploadExpired
	}

	ext, err := extensionFor(contentType)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(key, ext) {
		return ErrBadUploadSignature
	}
	return nil
}

// SaveSigned verifies a pre-signed upload and writes the body. The body is
// cut off one byte past the size limit so oversized uploads are detected
// without trusting Content-Length.
func (s *MediaService) SaveSigned(key, contentType, expires, sig string, body io.Reader) (string, error) {
	if err := s.VerifyUpload(key, contentType, expires, sig); err != nil {
		return "", err
	}
	path, err := s.write(key, io.LimitReader(body, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return "", err
	}

	info, err := os.Stat(filepath.Join(s.cfg.UploadDir, key))
	if err == nil && info.Size() > s.cfg.MaxUploadBytes {
		_ = os.Remove(filepath.Join(s.cfg.UploadDir, key))
		return "", fmt.Errorf("%w: max %d bytes", ErrFileTooLarge, s.cfg.MaxUploadBytes)
	}
	return path, nil
}

func (s *MediaService) write(filename string, src io.Reader) (string, error) {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	full := filepath.Join(s.cfg.UploadDir, filename)
	dst, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("close file: %w", err)
	}
	return "/uploads/" + filename, nil
}

func (s *MediaService) sign(key, contentType, expires string) string {
	mac := hmac.New(sha256.New, []byte(s.cfg.UploadSigningSecret))
	mac.Write([]byte(key + "|" + contentType + "|" + expires))
	return hex.EncodeToString(mac.Sum(nil))
}

func extensionFor(contentType string) (string, error) {
	ext, ok := allowedMIMETypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s (allowed: %s)",
			ErrUnsupportedFileType, contentType, strings.Join(allowedTypes(), ", "))
	}
	return ext, nil
}

func allowedTypes() []string {
	types := make([]string, 0, len(allowedMIMETypes))
	for t := range allowedMIMETypes {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}
