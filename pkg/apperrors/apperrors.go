package apperrors

import (
	"errors"
	"fmt"
)

// AppError carries a machine-readable code alongside the human message so
// transport layers can map failures to status codes without string matching.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Code extracts the error code from err, or ErrCodeInternalError when err is
// not an *AppError.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternalError
}

// Is reports whether err is an *AppError carrying the given code.
func Is(err error, code string) bool {
	return err != nil && Code(err) == code
}

const (
	// Reference workflow failures
	ErrCodeNotEligibleRole  = "NOT_ELIGIBLE_ROLE"
	ErrCodeNotFriends       = "NOT_FRIENDS"
	ErrCodeDuplicateActive  = "DUPLICATE_ACTIVE_RELATIONSHIP"
	ErrCodeCapacityExceeded = "CAPACITY_EXCEEDED"
	ErrCodeSelfReference    = "SELF_REFERENCE_FORBIDDEN"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeNotAuthorized    = "NOT_AUTHORIZED"
	ErrCodeInvalidState     = "INVALID_STATE"
	ErrCodeTransientFailure = "TRANSIENT_FAILURE"

	// General failures
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeInternalError = "INTERNAL_ERROR"
)
