package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidLoanInput = errors.New("invalid loan input")
	ErrCRMNotConfigured = errors.New("crm credentials not configured")
)

// AppError represents an application-level error with a stable code
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

// NewAppError creates a new application error
func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeConfiguration  = "CONFIGURATION_ERROR"
	ErrCodeDatabaseError  = "DATABASE_ERROR"
	ErrCodeCRMUnreachable = "CRM_UNREACHABLE"
)

// Wrap common errors with application context
func WrapInvalidLoanInput(detail string) *AppError {
	return NewAppError(
		ErrCodeValidation,
		detail,
		ErrInvalidLoanInput,
	)
}

func WrapConfigurationError(hint string) *AppError {
	return NewAppError(
		ErrCodeConfiguration,
		hint,
		ErrCRMNotConfigured,
	)
}

func WrapDatabaseError(err error) *AppError {
	return NewAppError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCRMUnreachable(err error) *AppError {
	return NewAppError(
		ErrCodeCRMUnreachable,
		"could not reach the CRM",
		err,
	)
}
