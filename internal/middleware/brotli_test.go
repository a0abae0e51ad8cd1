package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func brotliRouter() *gin.Engine {
	big := strings.Repeat("attendance ", 500)
	r := gin.New()
	r.Use(Brotli())
	r.GET("/big", func(c *gin.Context) { c.String(http.StatusOK, big) })
	r.GET("/small", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/report.xlsx", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []byte(big))
	})
	r.GET("/uploads/a.txt", func(c *gin.Context) { c.String(http.StatusOK, big) })
	return r
}

func getBr(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept-Encoding", "gzip, br;q=1.0")
	return serve(r, req)
}

func TestBrotli_CompressesLargeBodies(t *testing.T) {
	w := getBr(brotliRouter(), "/big")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "br", w.Header().Get("Content-Encoding"))

	plain, err := io.ReadAll(brotli.NewReader(w.Body))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("attendance ", 500), string(plain))
}

func TestBrotli_PassThrough(t *testing.T) {
	r := brotliRouter()
	for _, path := range []string{"/small", "/report.xlsx", "/uploads/a.txt"} {
		w := getBr(r, path)
		assert.Empty(t, w.Header().Get("Content-Encoding"), path)
		assert.NotEmpty(t, w.Body.String(), path)
	}

	req := httptest.NewRequest(http.MethodGet, "/big", nil)
	assert.Empty(t, serve(r, req).Header().Get("Content-Encoding"), "client without br")
}
