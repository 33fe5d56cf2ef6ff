package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"task-board/internal/domain"
)

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// CharacterCount counts user-visible characters rather than bytes
func (v *Validator) CharacterCount(s string) int {
	return utf8.RuneCountInString(s)
}

// IsWithinMaxLength reports whether s has at most max characters.
// A non-positive max disables the check.
func (v *Validator) IsWithinMaxLength(s string, max int) bool {
	if max <= 0 {
		return true
	}
	return v.CharacterCount(s) <= max
}

// IsNotBeforeDay reports whether the calendar day of date is on or after the
// calendar day of now. Time of day is ignored on both sides.
func (v *Validator) IsNotBeforeDay(date, now time.Time) bool {
	return !domain.CalendarDay(date).Before(domain.CalendarDay(now))
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

