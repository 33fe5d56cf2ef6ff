package domain

import (
	"fmt"
	"strings"
	"time"
)

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists every priority from most to least urgent.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// ParsePriority accepts a priority label in any letter case.
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities() {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	return p.Rank() > 0
}

// Rank orders priorities: High=3, Medium=2, Low=1, unknown=0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// String returns the priority label.
func (p Priority) String() string {
	return string(p)
}

// Task represents a task in the domain model.
// This is a pure domain model without storage-specific concerns.
type Task struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	Completed   bool
	DueDate     time.Time
	CreatedAt   time.Time
}

// IsOverdue reports whether the task is incomplete and its due day lies
// before the day of now. A task due today is not overdue.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.Completed && CalendarDay(t.DueDate).Before(CalendarDay(now))
}

// Apply merges the editable fields of d into the task, keeping its
// identifier, completion flag and creation time.
func (t Task) Apply(d Draft) Task {
	t.Title = d.Title
	t.Description = d.Description
	t.Priority = d.Priority
	t.DueDate = d.DueDate
	return t
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// Draft is the editable subset of a task captured by a create or edit form.
type Draft struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     time.Time
}

// NewDraft returns an empty draft due today with medium priority.
func NewDraft(now time.Time) Draft {
	return Draft{
		Priority: PriorityMedium,
		DueDate:  DateOf(now),
	}
}

// DraftFromTask copies the editable fields of t.
func DraftFromTask(t Task) Draft {
	return Draft{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
	}
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CalendarDay maps t to midnight UTC of the date it shows in its own
// location, so days from different zones compare by their wall date.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a calendar date written with layout in the local zone.
func ParseDate(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, strings.TrimSpace(value), time.Local)
}
