package domain

import (
	"fmt"

	"task-board/internal/repository"
)

// TaskMapper handles conversion between domain tasks and stored task records.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToRecord converts a domain Task to its stored form.
func (m *TaskMapper) ToRecord(task Task) repository.TaskRecord {
	return repository.TaskRecord{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority.String(),
		IsCompleted: task.Completed,
		DueDate:     repository.FormatTimeForStore(task.DueDate),
		CreatedAt:   repository.FormatTimeForStore(task.CreatedAt),
	}
}

// FromRecord converts a stored record back into a domain Task.
// Both date fields are restored as time values.
func (m *TaskMapper) FromRecord(record repository.TaskRecord) (Task, error) {
	priority, err := ParsePriority(record.Priority)
	if err != nil {
		return Task{}, fmt.Errorf("task %s: %w", record.ID, err)
	}
	dueDate, err := repository.ParseTimeFromStore(record.DueDate)
	if err != nil {
		return Task{}, fmt.Errorf("task %s: invalid due date: %w", record.ID, err)
	}
	createdAt, err := repository.ParseTimeFromStore(record.CreatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("task %s: invalid creation time: %w", record.ID, err)
	}

	return Task{
		ID:          record.ID,
		Title:       record.Title,
		Description: record.Description,
		Priority:    priority,
		Completed:   record.IsCompleted,
		DueDate:     dueDate,
		CreatedAt:   createdAt,
	}, nil
}

// ToRecords converts a slice of domain Tasks to stored records.
func (m *TaskMapper) ToRecords(tasks []Task) []repository.TaskRecord {
	records := make([]repository.TaskRecord, len(tasks))
	for i, task := range tasks {
		records[i] = m.ToRecord(task)
	}
	return records
}

// FromRecords converts stored records to domain Tasks, stopping at the first
// malformed record.
func (m *TaskMapper) FromRecords(records []repository.TaskRecord) ([]Task, error) {
	tasks := make([]Task, len(records))
	for i, record := range records {
		task, err := m.FromRecord(record)
		if err != nil {
			return nil, err
		}
		tasks[i] = task
	}
	return tasks, nil
}
