package services

import (
	"context"
	"time"

	"task-board/internal/domain"
)

// TaskService owns the task collection and its persistence
type TaskService interface {
	// Mutations that pass through the simulated latency window
	Create(ctx context.Context, draft domain.Draft) (*domain.Task, error)
	Update(ctx context.Context, id string, draft domain.Draft) error

	// Immediate mutations; unknown ids are ignored
	Delete(ctx context.Context, id string) error
	ToggleComplete(ctx context.Context, id string) error
	Clear(ctx context.Context) error

	// Reads return copies in sorted order
	Get(ctx context.Context, id string) (*domain.Task, bool)
	List(ctx context.Context) []domain.Task

	// IsLoading reports whether a create or update is still in flight
	IsLoading() bool
}

// SearchService projects a task list through a free-text query
type SearchService interface {
	Filter(query string, tasks []domain.Task) []domain.Task
	Matches(query string, task domain.Task) bool
}

// ReportingService derives summaries from a task list
type ReportingService interface {
	Stats(tasks []domain.Task, now time.Time) domain.Stats
	CountLabel(total int) string
}

// DateService handles calendar-date parsing and display for due dates
type DateService interface {
	Today() time.Time
	IsToday(t time.Time) bool
	ParseDueDate(input string) (time.Time, error)
	FormatDate(t time.Time) string
	DueLabel(task domain.Task) string
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	DateService      DateService
	TaskService      TaskService
	SearchService    SearchService
	ReportingService ReportingService
}
