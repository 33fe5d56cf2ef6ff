package cli

import (
	"fmt"

	"task-board/internal/errors"
	"task-board/internal/logging"
	"task-board/internal/validation"
)

// ErrorHandler turns errors from the business API into the one-line
// messages printed by the commands
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes the user message for err with "failed to <operation>".
// Unstructured errors stay wrapped so callers can still inspect them.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	eh.logIfNeeded(operation, err)

	if msg, ok := eh.userMessage(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, msg)
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple is Handle without the operation prefix
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	eh.logIfNeeded("", err)

	if msg, ok := eh.userMessage(err); ok {
		return fmt.Errorf("%s", msg)
	}
	return err
}

// userMessage picks the text to print for structured errors. A bare
// ValidationError lists its field messages.
func (eh *ErrorHandler) userMessage(err error) (string, bool) {
	if _, ok := errors.AsAppError(err); ok {
		return errors.GetUserMessage(err), true
	}
	if ve, ok := validation.AsValidationError(err); ok {
		return ve.GetUserFriendlyMessage(), true
	}
	return "", false
}

func (eh *ErrorHandler) logIfNeeded(operation string, err error) {
	if !errors.ShouldLogError(err) {
		return
	}
	if operation == "" {
		logging.Debugf("%s: %v", errors.GetErrorCode(err), err)
		return
	}
	logging.Debugf("%s (%s): %v", operation, errors.GetErrorCode(err), err)
}

// IsValidationError reports a rejected draft, bare or wrapped in an AppError
func (eh *ErrorHandler) IsValidationError(err error) bool {
	return validation.IsValidationError(err) || errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError reports an unknown task ID
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsStorageError reports a failed read or write of the task slot
func (eh *ErrorHandler) IsStorageError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeStorage)
}

// GetErrorCode returns the stable code of a structured error
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
