package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"task-board/internal/api"
	"task-board/internal/config"
	"task-board/internal/domain"
	"task-board/internal/errors"
	"task-board/internal/validation"
)

// mockBusinessAPI implements the BusinessAPI interface for testing
type mockBusinessAPI struct {
	tasks     []domain.Task
	nextID    int
	now       time.Time
	validator *validation.DraftValidator
	loading   bool

	// failWith makes every mutation return this error when set
	failWith error
}

// newMockBusinessAPI creates a new mock BusinessAPI instance
func newMockBusinessAPI() *mockBusinessAPI {
	return &mockBusinessAPI{
		nextID:    1,
		now:       time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local),
		validator: validation.NewDraftValidator(0, 0),
	}
}

// seed adds a task directly, bypassing validation
func (m *mockBusinessAPI) seed(title string, priority domain.Priority, dueInDays int, completed bool) domain.Task {
	task := domain.Task{
		ID:        fmt.Sprintf("%08d-feed-cafe", m.nextID),
		Title:     title,
		Priority:  priority,
		Completed: completed,
		DueDate:   domain.DateOf(m.now).AddDate(0, 0, dueInDays),
		CreatedAt: m.now,
	}
	m.nextID++
	m.tasks = append(m.tasks, task)
	return task
}

func (m *mockBusinessAPI) index(id string) int {
	for i, task := range m.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func (m *mockBusinessAPI) validate(draft domain.Draft) (domain.Draft, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	if err := m.validator.Validate(draft, m.now); err != nil {
		ve, _ := validation.AsValidationError(err)
		return draft, errors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
	}
	return draft, nil
}

func (m *mockBusinessAPI) CreateTask(ctx context.Context, draft domain.Draft) (*domain.Task, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if m.loading {
		return nil, errors.NewBusyError("create task")
	}
	draft, err := m.validate(draft)
	if err != nil {
		return nil, err
	}
	task := m.seed(draft.Title, draft.Priority, 0, false)
	task = task.Apply(draft)
	m.tasks[len(m.tasks)-1] = task
	return &task, nil
}

func (m *mockBusinessAPI) UpdateTask(ctx context.Context, id string, draft domain.Draft) error {
	if m.failWith != nil {
		return m.failWith
	}
	draft, err := m.validate(draft)
	if err != nil {
		return err
	}
	if i := m.index(id); i >= 0 {
		m.tasks[i] = m.tasks[i].Apply(draft)
	}
	return nil
}

func (m *mockBusinessAPI) DeleteTask(ctx context.Context, id string) error {
	if m.failWith != nil {
		return m.failWith
	}
	if i := m.index(id); i >= 0 {
		m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	}
	return nil
}

func (m *mockBusinessAPI) ToggleTask(ctx context.Context, id string) error {
	if m.failWith != nil {
		return m.failWith
	}
	if i := m.index(id); i >= 0 {
		m.tasks[i].Completed = !m.tasks[i].Completed
	}
	return nil
}

func (m *mockBusinessAPI) Reset(ctx context.Context) error {
	m.tasks = nil
	return nil
}

func (m *mockBusinessAPI) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if i := m.index(id); i >= 0 {
		task := m.tasks[i]
		return &task, nil
	}
	return nil, errors.NewNotFoundError("task", id)
}

func (m *mockBusinessAPI) ResolveID(ctx context.Context, prefix string) (string, error) {
	var matches []string
	for _, task := range m.tasks {
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
		return "", errors.NewInvalidInputError("id", prefix, "prefix matches more than one task")
	}
}

func (m *mockBusinessAPI) ListTasks(ctx context.Context, query string) []domain.Task {
	query = strings.ToLower(query)
	var out []domain.Task
	for _, task := range domain.SortTasks(m.tasks) {
		text := strings.ToLower(task.Title + "\x00" + task.Description + "\x00" + string(task.Priority))
		if query == "" || strings.Contains(text, query) {
			out = append(out, task)
		}
	}
	return out
}

func (m *mockBusinessAPI) Stats(ctx context.Context) domain.Stats {
	stats := domain.Stats{Total: len(m.tasks)}
	for _, task := range m.tasks {
		if task.Completed {
			stats.Completed++
		} else if task.IsOverdue(m.now) {
			stats.Overdue++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats
}

func (m *mockBusinessAPI) CountLabel(total int) string {
	switch total {
	case 0:
		return "No tasks yet"
	case 1:
		return "1 task"
	default:
		return fmt.Sprintf("%d tasks", total)
	}
}

func (m *mockBusinessAPI) IsLoading() bool { return m.loading }

func (m *mockBusinessAPI) Now() time.Time { return m.now }

func (m *mockBusinessAPI) NewDraft() domain.Draft {
	return domain.NewDraft(m.now)
}

func (m *mockBusinessAPI) ValidateDraft(draft domain.Draft) validation.FieldErrors {
	return m.validator.Errors(draft, m.now)
}

func (m *mockBusinessAPI) ParseDueDate(input string) (time.Time, error) {
	today := domain.DateOf(m.now)
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	due, err := domain.ParseDate("2006-01-02", input)
	if err != nil {
		return time.Time{}, errors.NewInvalidInputError("due", input, "expected a date like 2006-01-02, today, tomorrow or 3d")
	}
	return due, nil
}

func (m *mockBusinessAPI) FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func (m *mockBusinessAPI) DueLabel(task domain.Task) string {
	days := int(domain.DateOf(task.DueDate).Sub(domain.DateOf(m.now)).Hours() / 24)
	switch {
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	case days < 0 && !task.Completed:
		return "overdue"
	default:
		return fmt.Sprintf("due in %d days", days)
	}
}

var _ api.BusinessAPI = (*mockBusinessAPI)(nil)

// setupTestAppWithMockBusinessAPI returns an App over a mock API writing to
// a buffer, with input read from stdin
func setupTestAppWithMockBusinessAPI(t *testing.T, stdin string) (*App, *mockBusinessAPI, *strings.Builder) {
	t.Helper()
	mockAPI := newMockBusinessAPI()
	out := &strings.Builder{}
	app := NewApp(mockAPI, config.NewConfig(), WithIO(strings.NewReader(stdin), out))
	return app, mockAPI, out
}
