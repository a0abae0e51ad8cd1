package service

import (
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/edunexus/schoolhub/internal/config"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMedia(t *testing.T) (*MediaService, *time.Time) {
	t.Helper()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := NewMediaService(&config.Config{
		UploadDir:           t.TempDir(),
		MaxUploadBytes:      16,
		UploadSigningSecret: "test-secret",
		UploadURLTTL:        15 * time.Minute,
		PublicBaseURL:       "http://school.test",
	})
	svc.now = func() time.Time { return now }
	return svc, &now
}

func signedParams(t *testing.T, p *model.PresignedUpload) (key, ct, expires, sig string) {
	t.Helper()
	u, err := url.Parse(p.UploadURL)
	require.NoError(t, err)
	q := u.Query()
	return strings.TrimPrefix(u.Path, "/uploads/put/"), q.Get("ct"), q.Get("expires"), q.Get("sig")
}

func TestPresign_RoundTrip(t *testing.T) {
	svc, _ := newTestMedia(t)

	p, err := svc.Presign(model.PresignRequest{Filename: "avatar.png", ContentType: "image/png"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(p.ObjectKey, ".png"))
	assert.Equal(t, "http://school.test/uploads/"+p.ObjectKey, p.PublicURL)

	key, ct, expires, sig := signedParams(t, p)
	assert.Equal(t, p.ObjectKey, key)

	path, err := svc.SaveSigned(key, ct, expires, sig, strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+key, path)

	data, err := os.ReadFile(filepath.Join(svc.cfg.UploadDir, key))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestPresign_RejectsUnknownType(t *testing.T) {
	svc, _ := newTestMedia(t)
	_, err := svc.Presign(model.PresignRequest{Filename: "x.exe", ContentType: "application/x-msdownload"})
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestVerifyUpload(t *testing.T) {
	svc, now := newTestMedia(t)
	p, err := svc.Presign(model.PresignRequest{Filename: "a.jpg", ContentType: "image/jpeg"})
	require.NoError(t, err)
	key, ct, expires, sig := signedParams(t, p)

	assert.NoError(t, svc.VerifyUpload(key, ct, expires, sig))
	assert.ErrorIs(t, svc.VerifyUpload(key, "image/png", expires, sig), ErrBadUploadSignature)
	assert.ErrorIs(t, svc.VerifyUpload(key, ct, expires+"0", sig), ErrBadUploadSignature)
	assert.ErrorIs(t, svc.VerifyUpload("../../etc/passwd", ct, expires, sig), ErrBadUploadSignature)

	*now = now.Add(16 * time.Minute)
	assert.ErrorIs(t, svc.VerifyUpload(key, ct, expires, sig), ErrUploadExpired)
}

func TestSaveSigned_TooLarge(t *testing.T) {
	svc, _ := newTestMedia(t)
	p, err := svc.Presign(model.PresignRequest{Filename: "a.pdf", ContentType: "application/pdf"})
	require.NoError(t, err)
	key, ct, expires, sig := signedParams(t, p)

	_, err = svc.SaveSigned(key, ct, expires, sig, strings.NewReader(strings.Repeat("x", 17)))
	assert.ErrorIs(t, err, ErrFileTooLarge)
	_, statErr := os.Stat(filepath.Join(svc.cfg.UploadDir, key))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSaveSigned_BrokenBodyLeavesNoFile(t *testing.T) {
	svc, _ := newTestMedia(t)
	p, err := svc.Presign(model.PresignRequest{Filename: "a.pdf", ContentType: "application/pdf"})
	require.NoError(t, err)
	key, ct, expires, sig := signedParams(t, p)

	body := io.MultiReader(strings.NewReader("%PDF-"), iotest.ErrReader(errors.New("connection reset")))
	_, err = svc.SaveSigned(key, ct, expires, sig, body)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(svc.cfg.UploadDir, key))
}
