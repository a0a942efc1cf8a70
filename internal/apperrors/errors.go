package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates that a transfer would take the source account below zero.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrConstraintViolation indicates that a deletion is blocked by dependent records.
var ErrConstraintViolation = errors.New("constraint violation")

// ErrStore indicates a failure in the underlying persistence layer.
var ErrStore = errors.New("store error")

// ErrFormat indicates malformed import or backup input.
var ErrFormat = errors.New("format error")

// ErrHeaderMismatch indicates a CSV file whose header does not start with the required columns.
var ErrHeaderMismatch = fmt.Errorf("%w: header mismatch", ErrFormat)

// ErrNoActiveBusiness indicates that an operation needs a business context and none was supplied.
var ErrNoActiveBusiness = errors.New("no active business")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller lacks the permission for an action.
var ErrForbidden = errors.New("forbidden")

// Per-row CSV import failures.
var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrInvalidDate      = errors.New("invalid date format")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrPersist          = errors.New("failed to create transaction")
)

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError. A nil err is replaced by ErrStore so the
// error still matches the persistence family.
func NewAppError(code int, message string, err error) *AppError {
	if err == nil {
		err = ErrStore
	}
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps a driver failure so it matches both ErrStore and the cause.
func NewStoreError(message string, err error) *AppError {
	return NewAppError(500, message, fmt.Errorf("%w: %w", ErrStore, err))
}
