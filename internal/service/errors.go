package service

import "errors"

// Domain errors returned by services. Handlers map each to a response code.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrSessionEnded       = errors.New("session ended")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInvalidState       = errors.New("record is not in a state that allows this change")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidValue       = errors.New("invalid value")

	ErrNotStaff           = errors.New("account is not linked to a staff record")
	ErrLeaveRangeInverted = errors.New("leave ends before it starts")
	ErrTeacherBusy        = errors.New("teacher already has a class in this period")
	ErrNotATeacher        = errors.New("staff member is not a teacher")
	ErrMentorAssigned     = errors.New("teacher already mentors another class")
	ErrRoomFull           = errors.New("room is full")
	ErrRouteFull          = errors.New("route is full")
	ErrStopNotOnRoute     = errors.New("stop does not belong to route")
	ErrNoCopiesAvailable  = errors.New("no copies available")
	ErrAlreadyReturned    = errors.New("book already returned")
	ErrInvoicePaid        = errors.New("invoice already paid")
	ErrPaymentGateway     = errors.New("payment gateway error")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUploadExpired       = errors.New("upload url expired")
	ErrBadUploadSignature  = errors.New("upload signature mismatch")
)
