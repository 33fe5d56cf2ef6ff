package services

import (
	"fmt"
	"time"

	"task-board/internal/domain"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct{}

// NewReportingService creates a new ReportingService instance
func NewReportingService() ReportingService {
	return &reportingServiceImpl{}
}

// Stats counts total, completed, pending and overdue tasks as of now
func (r *reportingServiceImpl) Stats(tasks []domain.Task, now time.Time) domain.Stats {
	stats := domain.Stats{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			stats.Completed++
		}
		if task.IsOverdue(now) {
			stats.Overdue++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats
}

// CountLabel returns the heading shown above the task list
func (r *reportingServiceImpl) CountLabel(total int) string {
	switch total {
	case 0:
		return "No tasks yet"
	case 1:
		return "1 task"
	default:
		return fmt.Sprintf("%d tasks", total)
	}
}
