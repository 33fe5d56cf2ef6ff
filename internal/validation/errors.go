package validation

import (
	"errors"
	"strconv"
	"strings"
)

// Rule names the check a field failed
type Rule string

const (
	RuleRequired  Rule = "required"
	RuleMaxLength Rule = "max_length"
	RuleOneOf     Rule = "one_of"
	RuleNotPast   Rule = "not_past"
)

// FieldError is one failed rule on one form field. Message is written
// for the user and shown under the field.
type FieldError struct {
	Field   string
	Rule    Rule
	Message string
	Value   interface{}
}

func (fe *FieldError) Error() string {
	return fe.Field + ": " + fe.Message
}

// FieldErrors maps a form field name to the message shown under it.
// An empty map means the draft is valid.
type FieldErrors map[string]string

// ValidationError collects every FieldError found in one draft, in the
// order the fields were checked
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError returns an empty collection ready for Add calls
func NewValidationError() *ValidationError {
	return &ValidationError{Errors: []FieldError{}}
}

func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + ve.Errors[0].Error()
	}
	parts := make([]string, len(ve.Errors))
	for i := range ve.Errors {
		parts[i] = ve.Errors[i].Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err is, or wraps, a *ValidationError
func IsValidationError(err error) bool {
	_, ok := AsValidationError(err)
	return ok
}

// AsValidationError returns the *ValidationError in err's chain
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// HasErrors reports whether any rule failed
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// Add records a failed rule with a complete user message
func (ve *ValidationError) Add(field string, rule Rule, value interface{}, message string) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Rule: rule, Message: message, Value: value})
}

// AddRequiredError records a missing value. label is the field's display name.
func (ve *ValidationError) AddRequiredError(field, label string) {
	ve.Add(field, RuleRequired, nil, label+" is required")
}

// AddMaxLengthError records a value longer than max characters
func (ve *ValidationError) AddMaxLengthError(field, label string, value interface{}, max int) {
	ve.Add(field, RuleMaxLength, value, label+" must be "+strconv.Itoa(max)+" characters or less")
}

// FieldMap returns the first message recorded for each field
func (ve *ValidationError) FieldMap() FieldErrors {
	fields := make(FieldErrors, len(ve.Errors))
	for _, fe := range ve.Errors {
		if _, seen := fields[fe.Field]; !seen {
			fields[fe.Field] = fe.Message
		}
	}
	return fields
}

// GetUserFriendlyMessage joins the field messages for display outside a
// form. A single failure is returned as is.
func (ve *ValidationError) GetUserFriendlyMessage() string {
	switch len(ve.Errors) {
	case 0:
		return "Input validation failed"
	case 1:
		return ve.Errors[0].Message
	}
	var b strings.Builder
	b.WriteString("Please fix the following:")
	for _, fe := range ve.Errors {
		b.WriteString("\n- ")
		b.WriteString(fe.Message)
	}
	return b.String()
}
