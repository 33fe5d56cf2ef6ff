package domain

import "sort"

// Less orders incomplete tasks before completed ones, then by priority
// (High first), then by earliest due date.
func Less(a, b Task) bool {
	if a.Completed != b.Completed {
		return !a.Completed
	}
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra > rb
	}
	return a.DueDate.Before(b.DueDate)
}

// SortTasks returns a stably sorted copy of tasks.
func SortTasks(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(sorted[i], sorted[j])
	})
	return sorted
}
