package apperror

import "errors"

// Error kinds. Services wrap these so handlers can map an outcome to a status
// code with errors.Is instead of matching message strings.
var (
	ErrValidation        = errors.New("validation failed")
	ErrAuthentication    = errors.New("authentication failed")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInsertFailed      = errors.New("insert failed")
	ErrUpstream          = errors.New("upstream failure")
	ErrCorruptCredential = errors.New("corrupt credential")
)

// AppError pairs an error kind with the user-facing message for it.
type AppError struct {
	Err     error  // one of the kinds above
	Message string // human-readable message returned to the client
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation returns a 400-class input error.
func Validation(message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message}
}

// Authentication returns a 401-class error.
func Authentication(message string) *AppError {
	return &AppError{Err: ErrAuthentication, Message: message}
}

// NotFound returns a 404-class error.
func NotFound(message string) *AppError {
	return &AppError{Err: ErrNotFound, Message: message}
}

// Conflict returns a duplicate-record error.
func Conflict(message string) *AppError {
	return &AppError{Err: ErrConflict, Message: message}
}

// InsertFailed returns a storage-level write anomaly.
func InsertFailed(message string) *AppError {
	return &AppError{Err: ErrInsertFailed, Message: message}
}

// Upstream returns a provider failure (identity provider, broker).
func Upstream(message string) *AppError {
	return &AppError{Err: ErrUpstream, Message: message}
}
