package errors

import "fmt"

// ErrorCode identifies an application error category
type ErrorCode string

const (
	// Admission pipeline rejections
	ErrTitleRequired       ErrorCode = "TITLE_REQUIRED"
	ErrInvalidDate         ErrorCode = "INVALID_DATE"
	ErrInvalidTimeRange    ErrorCode = "INVALID_TIME_RANGE"
	ErrInvalidEmail        ErrorCode = "INVALID_EMAIL"
	ErrOutsideWorkingHours ErrorCode = "OUTSIDE_WORKING_HOURS"
	ErrSlotUnavailable     ErrorCode = "SLOT_UNAVAILABLE"

	// Mutation failures
	ErrNotFound          ErrorCode = "NOT_FOUND"
	ErrOwnershipMismatch ErrorCode = "OWNERSHIP_MISMATCH"

	// Infrastructure failures
	ErrStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"
)

// AppError is the typed result carried from service to transport.
// Details holds every human-readable message collected during one
// validation pass; Code and Message reflect the first failure in
// declared field order.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details []string  `json:"details,omitempty"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails attaches the full list of collected messages
func (e *AppError) WithDetails(details ...string) *AppError {
	e.Details = details
	return e
}

// IsRecoverable reports whether the error is a normal rejection that the
// caller can surface to the user, as opposed to a server-side failure.
func (e *AppError) IsRecoverable() bool {
	switch e.Code {
	case ErrStorageUnavailable, ErrInternalServer:
		return false
	}
	return true
}
