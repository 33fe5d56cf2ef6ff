package cli

import (
	"context"
	"strings"
	"time"

	"task-board/internal/domain"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	return c.app.errorHandler.Handle("list tasks", c.listTasks(ctx, args))
}

// listTasks prints the sorted tasks, filtered by the words in args
func (c *ListCommand) listTasks(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")
	tasks := c.app.businessAPI.ListTasks(ctx, query)

	if len(tasks) == 0 && query != "" {
		c.app.printf("No tasks match %q\n", query)
		return nil
	}

	c.app.printf("%s\n", c.app.businessAPI.CountLabel(len(tasks)))
	c.printTasks(tasks)
	return nil
}

// printTasks prints one line per task in the format:
// [status] id  priority  due date  title  (due label)
// followed by the description, indented, when there is one.
func (c *ListCommand) printTasks(tasks []domain.Task) {
	now := c.app.businessAPI.Now()
	businessAPI := c.app.businessAPI

	for _, task := range tasks {
		c.app.printf("%s %-8s  %-6s  %s  %s  (%s)\n",
			statusMarker(task, now),
			shortID(task.ID),
			task.Priority,
			businessAPI.FormatDate(task.DueDate),
			task.Title,
			businessAPI.DueLabel(task),
		)
		if task.Description != "" {
			c.app.printf("    %s\n", task.Description)
		}
	}
}

// statusMarker returns [x] for completed, [!] for overdue and [ ] otherwise
func statusMarker(task domain.Task, now time.Time) string {
	switch {
	case task.Completed:
		return "[x]"
	case task.IsOverdue(now):
		return "[!]"
	default:
		return "[ ]"
	}
}
