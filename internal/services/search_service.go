package services

import (
	"strings"

	"task-board/internal/domain"
)

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct{}

// NewSearchService creates a new SearchService instance
func NewSearchService() SearchService {
	return &searchServiceImpl{}
}

// Filter keeps the tasks whose title, description or priority contains the
// query, ignoring case. Only the empty query returns tasks unchanged;
// whitespace is matched like any other text.
func (s *searchServiceImpl) Filter(query string, tasks []domain.Task) []domain.Task {
	if query == "" {
		return tasks
	}
	needle := strings.ToLower(query)

	filtered := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if s.matches(needle, task) {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

// Matches reports whether a single task passes the query
func (s *searchServiceImpl) Matches(query string, task domain.Task) bool {
	if query == "" {
		return true
	}
	return s.matches(strings.ToLower(query), task)
}

// matches expects an already lowered needle
func (s *searchServiceImpl) matches(needle string, task domain.Task) bool {
	return strings.Contains(strings.ToLower(task.Title), needle) ||
		strings.Contains(strings.ToLower(task.Description), needle) ||
		strings.Contains(strings.ToLower(task.Priority.String()), needle)
}
