package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrAccountDisabled    ErrCode = "ACCOUNT_DISABLED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"
	ErrBranchMismatch   ErrCode = "BRANCH_MISMATCH"
	ErrBranchRequired   ErrCode = "BRANCH_REQUIRED"
	ErrNotStaff         ErrCode = "NOT_STAFF"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidDate    ErrCode = "INVALID_DATE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"
	ErrInvalidState     ErrCode = "INVALID_STATE"

	// ─── School operations ─────────────────────────────────────────────
	ErrTeacherBusy        ErrCode = "TEACHER_BUSY"
	ErrMentorAssigned     ErrCode = "MENTOR_ALREADY_ASSIGNED"
	ErrRoomFull           ErrCode = "ROOM_FULL"
	ErrRouteFull          ErrCode = "ROUTE_FULL"
	ErrStopNotOnRoute     ErrCode = "STOP_NOT_ON_ROUTE"
	ErrNoCopiesAvailable  ErrCode = "NO_COPIES_AVAILABLE"
	ErrAlreadyReturned    ErrCode = "ALREADY_RETURNED"
	ErrInvoicePaid        ErrCode = "INVOICE_ALREADY_PAID"
	ErrPaymentGateway     ErrCode = "PAYMENT_GATEWAY_ERROR"
	ErrInvalidSignature   ErrCode = "INVALID_SIGNATURE"
	ErrLeaveRangeInverted ErrCode = "LEAVE_RANGE_INVERTED"
	ErrNotATeacher        ErrCode = "NOT_A_TEACHER"
	ErrPaymentBusy        ErrCode = "PAYMENT_IN_PROGRESS"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"
	ErrUploadExpired   ErrCode = "UPLOAD_URL_EXPIRED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Incorrect email or password."
	case ErrSessionInvalidated:
		return "Your session has ended. Please sign in again."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid."
	case ErrAccountDisabled:
		return "This account has been disabled."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have access to this resource."
	case ErrPermissionDenied:
		return "Permission denied."
	case ErrBranchMismatch:
		return "This record belongs to another branch."
	case ErrBranchRequired:
		return "Select a branch with the X-Branch-ID header."
	case ErrNotStaff:
		return "Your account is not linked to a staff record."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrInvalidDate:
		return "Invalid date. Use YYYY-MM-DD."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrDependencyExists:
		return "This record cannot be deleted because other records depend on it."
	case ErrInvalidState:
		return "This action is not allowed in the record's current state."

	// ─── School operations ─────────────────────────────────────────────
	case ErrTeacherBusy:
		return "The teacher is already assigned to another class in this period."
	case ErrMentorAssigned:
		return "The teacher is already mentoring another class."
	case ErrRoomFull:
		return "The room has no free beds."
	case ErrRouteFull:
		return "The route has reached its seating capacity."
	case ErrStopNotOnRoute:
		return "The bus stop does not belong to this route."
	case ErrNoCopiesAvailable:
		return "No copies of this book are available."
	case ErrAlreadyReturned:
		return "This book has already been returned."
	case ErrInvoicePaid:
		return "This invoice has already been paid."
	case ErrPaymentGateway:
		return "The payment gateway could not process the request."
	case ErrInvalidSignature:
		return "Signature verification failed."
	case ErrLeaveRangeInverted:
		return "The leave end date must not be before its start date."
	case ErrNotATeacher:
		return "The selected staff member is not a teacher."
	case ErrPaymentBusy:
		return "This payment is being confirmed. Please try again shortly."

	// ─── Media ─────────────────────────────────────────────────────────
	case ErrFileRequired:
		return "A file upload is required."
	case ErrUnsupportedFile:
		return "Unsupported file type."
	case ErrFileTooLarge:
		return "File exceeds the size limit."
	case ErrUploadExpired:
		return "The upload URL has expired."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
