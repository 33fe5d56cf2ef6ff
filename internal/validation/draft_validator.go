package validation

import (
	"fmt"
	"strings"
	"time"

	"task-board/internal/domain"
)

// Field names reported in FieldErrors.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPriority    = "priority"
	FieldDueDate     = "dueDate"
)

// Default limits used when no configuration overrides them.
const (
	DefaultTitleMaxLength       = 100
	DefaultDescriptionMaxLength = 500
)

// DraftValidator checks a task draft before it is created or saved
type DraftValidator struct {
	validator      *Validator
	titleMax       int
	descriptionMax int
}

// NewDraftValidator creates a draft validator with the given character limits.
// Non-positive limits fall back to the defaults.
func NewDraftValidator(titleMax, descriptionMax int) *DraftValidator {
	if titleMax <= 0 {
		titleMax = DefaultTitleMaxLength
	}
	if descriptionMax <= 0 {
		descriptionMax = DefaultDescriptionMaxLength
	}
	return &DraftValidator{
		validator:      NewValidator(),
		titleMax:       titleMax,
		descriptionMax: descriptionMax,
	}
}

// TitleMax returns the configured title limit
func (dv *DraftValidator) TitleMax() int {
	return dv.titleMax
}

// DescriptionMax returns the configured description limit
func (dv *DraftValidator) DescriptionMax() int {
	return dv.descriptionMax
}

// Validate returns a *ValidationError describing every invalid field, or nil.
// now supplies today's date for the due date rule.
func (dv *DraftValidator) Validate(draft domain.Draft, now time.Time) error {
	validationError := NewValidationError()

	title := dv.validator.TrimAndValidateString(draft.Title)
	if !dv.validator.IsNonEmptyString(title) {
		validationError.AddRequiredError(FieldTitle, "Title")
	} else if !dv.validator.IsWithinMaxLength(title, dv.titleMax) {
		validationError.AddMaxLengthError(FieldTitle, "Title", title, dv.titleMax)
	}

	if !dv.validator.IsWithinMaxLength(draft.Description, dv.descriptionMax) {
		validationError.AddMaxLengthError(FieldDescription, "Description", draft.Description, dv.descriptionMax)
	}

	if !draft.Priority.IsValid() {
		validationError.Add(FieldPriority, RuleOneOf, draft.Priority, fmt.Sprintf("Priority must be one of %s", priorityLabels()))
	}

	if draft.DueDate.IsZero() {
		validationError.AddRequiredError(FieldDueDate, "Due date")
	} else if !dv.validator.IsNotBeforeDay(draft.DueDate, now) {
		validationError.Add(FieldDueDate, RuleNotPast, draft.DueDate, "Due date cannot be in the past")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// Errors runs Validate and returns the result as a field map. An empty map
// means the draft is valid.
func (dv *DraftValidator) Errors(draft domain.Draft, now time.Time) FieldErrors {
	if ve, ok := AsValidationError(dv.Validate(draft, now)); ok {
		return ve.FieldMap()
	}
	return FieldErrors{}
}

func priorityLabels() string {
	labels := make([]string, 0, 3)
	for _, p := range domain.Priorities() {
		labels = append(labels, p.String())
	}
	return strings.Join(labels, ", ")
}
