package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edunexus/schoolhub/internal/payment"
	"github.com/edunexus/schoolhub/internal/report"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func failWith(t *testing.T, err error) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fail(c, err)

	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return w, body
}

func TestFail(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   response.ErrCode
	}{
		{"no rows", fmt.Errorf("get class: %w", pgx.ErrNoRows), http.StatusNotFound, response.ErrNotFound},
		{"wrapped sentinel", fmt.Errorf("assign: %w", service.ErrRoomFull), http.StatusConflict, response.ErrRoomFull},
		{"teacher busy", service.ErrTeacherBusy, http.StatusConflict, response.ErrTeacherBusy},
		{"not staff", service.ErrNotStaff, http.StatusForbidden, response.ErrNotStaff},
		{"signature", payment.ErrInvalidSignature, http.StatusUnauthorized, response.ErrInvalidSignature},
		{"gateway", service.ErrPaymentGateway, http.StatusBadGateway, response.ErrPaymentGateway},
		{"too large", service.ErrFileTooLarge, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge},
		{"invalid value", fmt.Errorf("%w: unknown weekday", service.ErrInvalidValue), http.StatusBadRequest, response.ErrValidation},
		{"bad workbook", fmt.Errorf("%w: zip: not a valid zip file", report.ErrUnreadableWorkbook), http.StatusBadRequest, response.ErrValidation},
		{"unique", &pgconn.PgError{Code: "23505"}, http.StatusConflict, response.ErrConflict},
		{"foreign key", fmt.Errorf("delete branch: %w", &pgconn.PgError{Code: "23503"}), http.StatusConflict, response.ErrDependencyExists},
		{"check", &pgconn.PgError{Code: "23514"}, http.StatusConflict, response.ErrInvalidState},
		{"other pg error", &pgconn.PgError{Code: "40001"}, http.StatusInternalServerError, response.ErrInternal},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, response.ErrInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := failWith(t, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestFail_InvalidValueCarriesDetail(t *testing.T) {
	_, body := failWith(t, fmt.Errorf("%w: fine must be a whole number", service.ErrInvalidValue))
	assert.Contains(t, body.Error.Fields["detail"], "fine must be a whole number")
}

func TestParamID(t *testing.T) {
	for _, tc := range []struct {
		raw string
		ok  bool
	}{{"12", true}, {"0", false}, {"-3", false}, {"abc", false}} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: tc.raw}}

		id, ok := paramID(c, "id")
		assert.Equal(t, tc.ok, ok, tc.raw)
		if tc.ok {
			assert.Equal(t, 12, id)
		} else {
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	}
}
