package apperrors

import (
	"errors"
	"fmt"
)

// Re-export the standard helpers so callers only import one errors package.
var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// AppError is an error carrying an application error code.
type AppError struct {
	code    string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string {
	return e.code
}

func (e *AppError) Unwrap() error {
	return e.err
}

// NewAppError creates a coded application error.
func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

// NotFound creates a NOT_FOUND error.
func NotFound(message string) *AppError {
	return NewAppError(CodeNotFound, message, nil)
}

// Conflict creates a CONFLICT error.
func Conflict(message string) *AppError {
	return NewAppError(CodeConflict, message, nil)
}

// InvalidArgument creates an INVALID_ARGUMENT error.
func InvalidArgument(message string) *AppError {
	return NewAppError(CodeInvalidArgument, message, nil)
}

// Wrap wraps an error, preserving the code of an existing AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return NewAppError(appErr.Code(), message, err)
	}

	return NewAppError(CodeInternal, message, err)
}

// CodeOf returns the code of err, or INTERNAL for uncoded errors.
func CodeOf(err error) string {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Code()
	}
	return CodeInternal
}
