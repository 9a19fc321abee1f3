package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUnauthorized       = errors.New("unauthorized")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrStudentNoExists    = errors.New("student number already exists")
)

// Application lifecycle denials. Each one is raised by the eligibility and
// transition guards before any persistence happens.
var (
	ErrAlreadyEmployed   = errors.New("student already holds a position")
	ErrPendingExists     = errors.New("student already has a pending application")
	ErrDuplicateTarget   = errors.New("student already applied to this position")
	ErrPositionClosed    = errors.New("position is not open for applications")
	ErrInvalidTransition = errors.New("invalid application status transition")
	ErrPositionFull      = errors.New("position has no remaining slots")
	ErrDuplicateDecision = errors.New("application decision already recorded")
)

// Entity lookup errors
var (
	ErrStudentNotFound     = errors.New("student not found")
	ErrPositionNotFound    = errors.New("position not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrDepartmentNotFound  = errors.New("department not found")
	ErrNoticeNotFound      = errors.New("notice not found")
)

// Remote data-access errors, raised by the client SDK
var (
	ErrRemoteError = errors.New("remote service error")
	ErrUnreachable = errors.New("remote service unreachable")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewRemoteError wraps a server-provided detail message
func NewRemoteError(detail string) error {
	return &CustomError{
		Err:     ErrRemoteError,
		Message: detail,
	}
}

// Is returns whether target or any error in errList matches err
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// IsDenial reports whether err is one of the lifecycle validation denials.
// Denials are recoverable and never reach the persistence layer.
func IsDenial(err error) bool {
	return Is(err, ErrAlreadyEmployed,
		ErrPendingExists,
		ErrDuplicateTarget,
		ErrPositionClosed,
		ErrInvalidTransition,
		ErrPositionFull)
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}
