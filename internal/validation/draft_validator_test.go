package validation

import (
	"strings"
	"testing"
	"time"

	"task-board/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validatorNow = time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC)

func validDraft() domain.Draft {
	return domain.Draft{
		Title:       "Write report",
		Description: "Quarterly numbers",
		Priority:    domain.PriorityHigh,
		DueDate:     time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestDraftValidator_Valid(t *testing.T) {
	dv := NewDraftValidator(0, 0)

	assert.NoError(t, dv.Validate(validDraft(), validatorNow))
	assert.Empty(t, dv.Errors(validDraft(), validatorNow))
}

func TestDraftValidator_Rules(t *testing.T) {
	dv := NewDraftValidator(100, 500)

	tests := []struct {
		name     string
		mutate   func(*domain.Draft)
		expected FieldErrors
	}{
		{
			name:     "empty title",
			mutate:   func(d *domain.Draft) { d.Title = "" },
			expected: FieldErrors{FieldTitle: "Title is required"},
		},
		{
			name:     "whitespace title",
			mutate:   func(d *domain.Draft) { d.Title = "   \t" },
			expected: FieldErrors{FieldTitle: "Title is required"},
		},
		{
			name:     "title of exactly 100 characters",
			mutate:   func(d *domain.Draft) { d.Title = strings.Repeat("a", 100) },
			expected: FieldErrors{},
		},
		{
			name:     "title of 101 characters",
			mutate:   func(d *domain.Draft) { d.Title = strings.Repeat("a", 101) },
			expected: FieldErrors{FieldTitle: "Title must be 100 characters or less"},
		},
		{
			name:     "padding does not count toward title length",
			mutate:   func(d *domain.Draft) { d.Title = "  " + strings.Repeat("a", 100) + "  " },
			expected: FieldErrors{},
		},
		{
			name:     "description of 500 characters",
			mutate:   func(d *domain.Draft) { d.Description = strings.Repeat("d", 500) },
			expected: FieldErrors{},
		},
		{
			name:     "description of 501 characters",
			mutate:   func(d *domain.Draft) { d.Description = strings.Repeat("d", 501) },
			expected: FieldErrors{FieldDescription: "Description must be 500 characters or less"},
		},
		{
			name:     "empty description",
			mutate:   func(d *domain.Draft) { d.Description = "" },
			expected: FieldErrors{},
		},
		{
			name:     "due yesterday",
			mutate:   func(d *domain.Draft) { d.DueDate = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC) },
			expected: FieldErrors{FieldDueDate: "Due date cannot be in the past"},
		},
		{
			name:     "due today",
			mutate:   func(d *domain.Draft) { d.DueDate = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) },
			expected: FieldErrors{},
		},
		{
			name:     "missing due date",
			mutate:   func(d *domain.Draft) { d.DueDate = time.Time{} },
			expected: FieldErrors{FieldDueDate: "Due date is required"},
		},
		{
			name:     "unknown priority",
			mutate:   func(d *domain.Draft) { d.Priority = "Urgent" },
			expected: FieldErrors{FieldPriority: "Priority must be one of High, Medium, Low"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(&draft)
			assert.Equal(t, tt.expected, dv.Errors(draft, validatorNow))
		})
	}
}

func TestDraftValidator_MultipleErrors(t *testing.T) {
	dv := NewDraftValidator(0, 0)
	draft := domain.Draft{
		Title:       "",
		Description: strings.Repeat("x", 600),
		Priority:    domain.PriorityLow,
		DueDate:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	err := dv.Validate(draft, validatorNow)
	require.Error(t, err)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Errors, 3)
	assert.Equal(t, []string{FieldTitle, FieldDescription, FieldDueDate}, fieldNames(ve))
}

func TestDraftValidator_ConfiguredLimits(t *testing.T) {
	dv := NewDraftValidator(5, 10)
	assert.Equal(t, 5, dv.TitleMax())
	assert.Equal(t, 10, dv.DescriptionMax())

	draft := validDraft()
	draft.Title = "abcdef"
	draft.Description = ""
	assert.Equal(t, FieldErrors{FieldTitle: "Title must be 5 characters or less"}, dv.Errors(draft, validatorNow))

	draft.Title = "abcde"
	draft.Description = "0123456789x"
	assert.Equal(t, FieldErrors{FieldDescription: "Description must be 10 characters or less"}, dv.Errors(draft, validatorNow))
}

func fieldNames(ve *ValidationError) []string {
	names := make([]string, len(ve.Errors))
	for i, e := range ve.Errors {
		names[i] = e.Field
	}
	return names
}
