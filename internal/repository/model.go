package repository

// TaskRecord is the persisted form of a task.
// Dates are kept as RFC3339 strings so the slot stays plain JSON.
type TaskRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority"`
	IsCompleted bool   `json:"isCompleted"`
	DueDate     string `json:"dueDate"`
	CreatedAt   string `json:"createdAt"`
}
