package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/edunexus/schoolhub/internal/middleware"
	"github.com/edunexus/schoolhub/internal/payment"
	"github.com/edunexus/schoolhub/internal/report"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
)

type errorMapping struct {
	target error
	status int
	code   response.ErrCode
}

var serviceErrors = []errorMapping{
	{service.ErrInvalidCredentials, http.StatusUnauthorized, response.ErrInvalidCredentials},
	{service.ErrAccountDisabled, http.StatusForbidden, response.ErrAccountDisabled},
	{service.ErrSessionEnded, http.StatusUnauthorized, response.ErrSessionInvalidated},
	{service.ErrForbidden, http.StatusForbidden, response.ErrForbidden},
	{service.ErrNotFound, http.StatusNotFound, response.ErrNotFound},
	{service.ErrInvalidState, http.StatusConflict, response.ErrInvalidState},
	{service.ErrInvalidDate, http.StatusBadRequest, response.ErrInvalidDate},
	{service.ErrNotStaff, http.StatusForbidden, response.ErrNotStaff},
	{service.ErrLeaveRangeInverted, http.StatusBadRequest, response.ErrLeaveRangeInverted},
	{service.ErrTeacherBusy, http.StatusConflict, response.ErrTeacherBusy},
	{service.ErrNotATeacher, http.StatusBadRequest, response.ErrNotATeacher},
	{service.ErrMentorAssigned, http.StatusConflict, response.ErrMentorAssigned},
	{service.ErrRoomFull, http.StatusConflict, response.ErrRoomFull},
	{service.ErrRouteFull, http.StatusConflict, response.ErrRouteFull},
	{service.ErrStopNotOnRoute, http.StatusBadRequest, response.ErrStopNotOnRoute},
	{service.ErrNoCopiesAvailable, http.StatusConflict, response.ErrNoCopiesAvailable},
	{service.ErrAlreadyReturned, http.StatusConflict, response.ErrAlreadyReturned},
	{service.ErrInvoicePaid, http.StatusConflict, response.ErrInvoicePaid},
	{service.ErrPaymentGateway, http.StatusBadGateway, response.ErrPaymentGateway},
	{service.ErrPaymentBusy, http.StatusConflict, response.ErrPaymentBusy},
	{payment.ErrInvalidSignature, http.StatusUnauthorized, response.ErrInvalidSignature},
	{service.ErrUnsupportedFileType, http.StatusBadRequest, response.ErrUnsupportedFile},
	{service.ErrFileTooLarge, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge},
	{service.ErrUploadExpired, http.StatusForbidden, response.ErrUploadExpired},
	{service.ErrBadUploadSignature, http.StatusForbidden, response.ErrInvalidSignature},
}

// fail writes the response for err. Unknown errors become 500 and are
// attached to the Gin context so the access log shows them.
func fail(c *gin.Context, err error) {
	if repository.IsNotFound(err) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			response.Fail(c, m.status, m.code)
			return
		}
	}

	if errors.Is(err, service.ErrInvalidValue) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"detail": err.Error()})
		return
	}

	if errors.Is(err, report.ErrMissingColumns) || errors.Is(err, report.ErrUnreadableWorkbook) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"file": err.Error()})
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		case "23503": // foreign_key_violation
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		case "23514": // check_violation
			response.Fail(c, http.StatusConflict, response.ErrInvalidState)
			return
		}
	}

	_ = c.Error(err)
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}

// paramID parses a positive integer path parameter. On failure the error
// response has already been written.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// scope returns the caller and the branch resolved by BranchScope.
func scope(c *gin.Context) (*service.Claims, int) {
	return middleware.GetClaims(c), middleware.GetBranchID(c)
}
