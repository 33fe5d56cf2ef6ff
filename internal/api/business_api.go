package api

import (
	"context"
	"strings"
	"time"

	"task-board/internal/clock"
	"task-board/internal/domain"
	"task-board/internal/errors"
	"task-board/internal/services"
	"task-board/internal/validation"
)

// BusinessAPI defines the operations available to the front ends
type BusinessAPI interface {
	// ========== Task Management Workflows ==========

	// CreateTask validates draft and adds a new task after the store latency
	CreateTask(ctx context.Context, draft domain.Draft) (*domain.Task, error)

	// UpdateTask validates draft and merges it into an existing task.
	// Unknown ids are ignored.
	UpdateTask(ctx context.Context, id string, draft domain.Draft) error

	// DeleteTask removes a task. Unknown ids are ignored.
	DeleteTask(ctx context.Context, id string) error

	// ToggleTask flips the completion flag of a task. Unknown ids are ignored.
	ToggleTask(ctx context.Context, id string) error

	// Reset removes every task
	Reset(ctx context.Context) error

	// ========== Query Operations ==========

	// GetTask returns a single task by ID
	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// ResolveID expands a unique ID prefix to the full task ID
	ResolveID(ctx context.Context, prefix string) (string, error)

	// ListTasks returns the sorted tasks matching query
	ListTasks(ctx context.Context, query string) []domain.Task

	// Stats summarizes every task as of now
	Stats(ctx context.Context) domain.Stats

	// CountLabel returns the heading for a list of total tasks
	CountLabel(total int) string

	// IsLoading reports whether a create or update is in flight
	IsLoading() bool

	// Now returns the current time of the facade's clock
	Now() time.Time

	// ========== Form Support ==========

	// NewDraft returns an empty draft due today
	NewDraft() domain.Draft

	// ValidateDraft returns the field errors for draft; empty means valid
	ValidateDraft(draft domain.Draft) validation.FieldErrors

	// ParseDueDate reads a due date typed by the user
	ParseDueDate(input string) (time.Time, error)

	// FormatDate renders a due date for display and editing
	FormatDate(t time.Time) string

	// DueLabel describes a task's due date relative to today
	DueLabel(task domain.Task) string
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services  *services.ServiceContainer
	validator *validation.DraftValidator
	clock     clock.Clock
}

// NewBusinessAPI creates a new BusinessAPI instance
func NewBusinessAPI(container *services.ServiceContainer, validator *validation.DraftValidator, clk clock.Clock) BusinessAPI {
	if validator == nil {
		validator = validation.NewDraftValidator(0, 0)
	}
	if clk == nil {
		clk = clock.New()
	}
	return &businessAPIImpl{
		services:  container,
		validator: validator,
		clock:     clk,
	}
}

// ========== Task Management Workflows ==========

func (b *businessAPIImpl) CreateTask(ctx context.Context, draft domain.Draft) (*domain.Task, error) {
	// 1. Reject overlapping submissions
	if b.services.TaskService.IsLoading() {
		return nil, errors.NewBusyError("create task")
	}

	// 2. Validate the draft
	draft, err := b.validate(draft)
	if err != nil {
		return nil, err
	}

	// 3. Hand off to the store, which also rejects a submission that raced past step 1
	return b.services.TaskService.Create(ctx, draft)
}

func (b *businessAPIImpl) UpdateTask(ctx context.Context, id string, draft domain.Draft) error {
	if b.services.TaskService.IsLoading() {
		return errors.NewBusyError("update task")
	}

	draft, err := b.validate(draft)
	if err != nil {
		return err
	}

	return b.services.TaskService.Update(ctx, id, draft)
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, id string) error {
	return b.services.TaskService.Delete(ctx, id)
}

func (b *businessAPIImpl) ToggleTask(ctx context.Context, id string) error {
	return b.services.TaskService.ToggleComplete(ctx, id)
}

func (b *businessAPIImpl) Reset(ctx context.Context) error {
	return b.services.TaskService.Clear(ctx)
}

// validate trims the title and returns a validation AppError wrapping the
// field errors when the draft is rejected
func (b *businessAPIImpl) validate(draft domain.Draft) (domain.Draft, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	if err := b.validator.Validate(draft, b.clock.Now()); err != nil {
		message := "invalid task"
		if ve, ok := validation.AsValidationError(err); ok {
			message = ve.GetUserFriendlyMessage()
		}
		return draft, errors.NewValidationError(message, err)
	}
	return draft, nil
}

// ========== Query Operations ==========

func (b *businessAPIImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, ok := b.services.TaskService.Get(ctx, id)
	if !ok {
		return nil, errors.NewNotFoundError("task", id)
	}
	return task, nil
}

func (b *businessAPIImpl) ResolveID(ctx context.Context, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", errors.NewInvalidInputError("id", prefix, "task ID cannot be empty")
	}

	var matches []string
	for _, task := range b.services.TaskService.List(ctx) {
		if task.ID == prefix {
			return task.ID, nil
		}
		if strings.HasPrefix(task.ID, prefix) {
			matches = append(matches, task.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", errors.NewNotFoundError("task", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", errors.NewInvalidInputError("id", prefix, "prefix matches more than one task").
			WithContext("matches", matches)
	}
}

func (b *businessAPIImpl) ListTasks(ctx context.Context, query string) []domain.Task {
	return b.services.SearchService.Filter(query, b.services.TaskService.List(ctx))
}

func (b *businessAPIImpl) Stats(ctx context.Context) domain.Stats {
	return b.services.ReportingService.Stats(b.services.TaskService.List(ctx), b.clock.Now())
}

func (b *businessAPIImpl) CountLabel(total int) string {
	return b.services.ReportingService.CountLabel(total)
}

func (b *businessAPIImpl) IsLoading() bool {
	return b.services.TaskService.IsLoading()
}

func (b *businessAPIImpl) Now() time.Time {
	return b.clock.Now()
}

// ========== Form Support ==========

func (b *businessAPIImpl) NewDraft() domain.Draft {
	return domain.NewDraft(b.clock.Now())
}

func (b *businessAPIImpl) ValidateDraft(draft domain.Draft) validation.FieldErrors {
	draft.Title = strings.TrimSpace(draft.Title)
	return b.validator.Errors(draft, b.clock.Now())
}

func (b *businessAPIImpl) ParseDueDate(input string) (time.Time, error) {
	return b.services.DateService.ParseDueDate(input)
}

func (b *businessAPIImpl) FormatDate(t time.Time) string {
	return b.services.DateService.FormatDate(t)
}

func (b *businessAPIImpl) DueLabel(task domain.Task) string {
	return b.services.DateService.DueLabel(task)
}
