package errors

import (
	"errors"
	"fmt"
)

// Messages shown instead of the internal message for errors the user
// cannot act on directly
var fallbackMessages = map[ErrorType]string{
	ErrorTypeStorage: "Your tasks could not be saved or loaded. Please try again.",
	ErrorTypeTimeout: "The operation timed out. Please try again.",
}

func newAppError(t ErrorType, code, message string, cause error) *AppError {
	return &AppError{
		Type:    t,
		Message: message,
		Code:    code,
		Cause:   cause,
		Context: map[string]interface{}{},
	}
}

// NewValidationError wraps the field errors collected for a draft.
// message is usually the user-friendly summary of cause.
func NewValidationError(message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, "VALIDATION_FAILED", message, cause)
}

// NewNotFoundError reports that no resource matched identifier
func NewNotFoundError(resource string, identifier string) *AppError {
	return newAppError(ErrorTypeNotFound, "NOT_FOUND",
		fmt.Sprintf("%s not found: %s", resource, identifier), nil).
		WithContext("resource", resource).
		WithContext("identifier", identifier)
}

// NewStorageError reports a failed read or write of persisted tasks
func NewStorageError(operation string, cause error) *AppError {
	return newAppError(ErrorTypeStorage, "STORAGE_ERROR",
		"storage operation failed: "+operation, cause).
		WithContext("operation", operation)
}

// NewInvalidInputError reports a value the user typed that could not be parsed
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newAppError(ErrorTypeInvalidInput, "INVALID_INPUT",
		fmt.Sprintf("invalid input for %s: %s", field, reason), nil).
		WithContext("field", field).
		WithContext("value", value).
		WithContext("reason", reason)
}

// NewTimeoutError reports an operation that ran past its deadline
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return newAppError(ErrorTypeTimeout, "TIMEOUT",
		"operation timed out: "+operation, nil).
		WithContext("operation", operation).
		WithContext("timeout", timeout)
}

// NewBusyError rejects a submission made while another one is in flight
func NewBusyError(operation string) *AppError {
	return newAppError(ErrorTypeBusy, "BUSY",
		operation+" rejected: a previous submission is still in progress", nil).
		WithContext("operation", operation)
}

// WrapError attaches a type and message to err. The code is the type name.
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return newAppError(errorType, errorType.String(), message, err)
}

// IsAppError reports whether err wraps an *AppError
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError returns the first *AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType reports whether err wraps an *AppError of errorType
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

// GetUserMessage returns the text to show the user for err
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	if appErr.Type.userFacing() {
		return appErr.Message
	}
	if msg, ok := fallbackMessages[appErr.Type]; ok {
		return msg
	}
	return "An unexpected error occurred. Please try again."
}

// GetErrorCode returns the stable code of err, or UNKNOWN_ERROR
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError reports whether err is worth a debug log entry.
// Mistakes in user input are not.
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	return !ok || !appErr.Type.userFacing()
}
