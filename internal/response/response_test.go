package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestEmptyIfNil(t *testing.T) {
	var nilSlice []int
	assert.Equal(t, []int{}, EmptyIfNil(nilSlice))
	assert.Equal(t, []any{}, EmptyIfNil(nil))
	assert.Equal(t, []int{1}, EmptyIfNil([]int{1}))
	assert.Equal(t, "x", EmptyIfNil("x"))
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 41)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 0, NewPagination(1, 0, 10).TotalPages)
}

func TestList_NilSliceIsEmptyArray(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		var rows []string
		List(c, rows)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-00000001")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.JSONEq(t, `[]`, string(body["data"]))
	assert.Equal(t, "req-00000001", w.Header().Get("X-Request-ID"))
}

func TestAbortFail_StopsChain(t *testing.T) {
	r := gin.New()
	reached := false
	r.GET("/", func(c *gin.Context) {
		AbortFail(c, http.StatusForbidden, ErrPermissionDenied)
	}, func(c *gin.Context) { reached = true })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, w.Code)
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrPermissionDenied, body.Error.Code)
	assert.NotEmpty(t, body.Error.Message)
}
