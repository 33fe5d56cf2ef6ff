package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "3f2a")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: 3f2a" {
		t.Errorf("NewNotFoundError message = %v", err.Message)
	}
	if err.Code != "NOT_FOUND" {
		t.Errorf("NewNotFoundError code = %v, want NOT_FOUND", err.Code)
	}
	if identifier, ok := err.GetContext("identifier"); !ok || identifier != "3f2a" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewStorageError(t *testing.T) {
	cause := errors.New("database is locked")
	err := NewStorageError("write slot tasks", cause)

	if err.Type != ErrorTypeStorage {
		t.Errorf("NewStorageError type = %v, want %v", err.Type, ErrorTypeStorage)
	}
	if err.Message != "storage operation failed: write slot tasks" {
		t.Errorf("NewStorageError message = %v", err.Message)
	}
	if err.Code != "STORAGE_ERROR" {
		t.Errorf("NewStorageError code = %v, want STORAGE_ERROR", err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewStorageError should wrap its cause")
	}
}

func TestNewBusyError(t *testing.T) {
	err := NewBusyError("create task")

	if err.Type != ErrorTypeBusy || err.Code != "BUSY" {
		t.Errorf("NewBusyError = %+v", err)
	}
	if operation, ok := err.GetContext("operation"); !ok || operation != "create task" {
		t.Errorf("NewBusyError should set operation context")
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("priority", "urgent", "must be High, Medium or Low")

	if err.Message != "invalid input for priority: must be High, Medium or Low" {
		t.Errorf("NewInvalidInputError message = %v", err.Message)
	}
	if value, ok := err.GetContext("value"); !ok || value != "urgent" {
		t.Errorf("NewInvalidInputError should set value context")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original error")
	err := WrapError(cause, ErrorTypeStorage, "wrapped message")

	if err.Code != "storage" {
		t.Errorf("WrapError code = %v, want storage", err.Code)
	}
	if err.Cause != cause {
		t.Errorf("WrapError cause = %v, want %v", err.Cause, cause)
	}
}

func TestAsAppError(t *testing.T) {
	appError := NewNotFoundError("task", "1")
	wrapped := fmt.Errorf("lookup: %w", appError)

	result, ok := AsAppError(wrapped)
	if !ok || result != appError {
		t.Errorf("AsAppError should unwrap to the original AppError")
	}

	if _, ok := AsAppError(errors.New("regular error")); ok {
		t.Errorf("AsAppError should return false for regular error")
	}
	if IsAppError(nil) {
		t.Errorf("IsAppError should return false for nil")
	}
	if !IsErrorType(wrapped, ErrorTypeNotFound) {
		t.Errorf("IsErrorType should see through wrapping")
	}
	if IsErrorType(wrapped, ErrorTypeStorage) {
		t.Errorf("IsErrorType should return false for a different type")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Validation error", NewValidationError("title is required", nil), "title is required"},
		{"Not found error", NewNotFoundError("task", "123"), "task not found: 123"},
		{"Storage error", NewStorageError("write", errors.New("io")), "Your tasks could not be saved or loaded. Please try again."},
		{"Timeout error", NewTimeoutError("create task", "60s"), "The operation timed out. Please try again."},
		{"Busy error", NewBusyError("update task"), "update task rejected: a previous submission is still in progress"},
		{"Regular error", errors.New("regular error"), "regular error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetUserMessage(tt.err); got != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := GetErrorCode(NewStorageError("read", nil)); got != "STORAGE_ERROR" {
		t.Errorf("GetErrorCode() = %v, want STORAGE_ERROR", got)
	}
	if got := GetErrorCode(errors.New("regular error")); got != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode() = %v, want UNKNOWN_ERROR", got)
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Validation error", NewValidationError("invalid", nil), false},
		{"Not found error", NewNotFoundError("task", "1"), false},
		{"Invalid input error", NewInvalidInputError("due", "x", "format"), false},
		{"Busy error", NewBusyError("create task"), false},
		{"Storage error", NewStorageError("write", errors.New("io")), true},
		{"Timeout error", NewTimeoutError("query", "5s"), true},
		{"Regular error", errors.New("regular error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldLogError(tt.err); got != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", got, tt.expected)
			}
		})
	}
}
