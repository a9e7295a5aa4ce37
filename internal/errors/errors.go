package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of an
// AppError cause
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    GetCodeOr(err, CodeInternalError),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode wraps err under the given code
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the code of the outermost AppError in the chain, or "UNKNOWN"
func GetCode(err error) string {
	return GetCodeOr(err, "UNKNOWN")
}

// GetCodeOr returns the code of the outermost AppError in the chain, or fallback
func GetCodeOr(err error, fallback string) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return fallback
}

// Predefined error codes
const (
	CodeUsage           = "USAGE_ERROR"
	CodeParse           = "PARSE_ERROR"
	CodeIO              = "IO_ERROR"
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeDatabaseError   = "DATABASE_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeValidationError = "VALIDATION_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeInternalError   = "INTERNAL_ERROR"
)

// Process exit statuses
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if GetCode(err) == CodeUsage {
		return ExitUsage
	}
	return ExitError
}

// Common error constructors
func Usage(message string) *AppError {
	return New(CodeUsage, message)
}

func ParseError(what string, cause error) *AppError {
	return &AppError{
		Code:    CodeParse,
		Message: fmt.Sprintf("cannot parse %s", what),
		Cause:   cause,
	}
}

func IOError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeIO,
		Message: message,
		Cause:   cause,
	}
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeDatabaseError,
		Message: message,
		Cause:   cause,
	}
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
