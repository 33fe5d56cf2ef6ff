package cli

import (
	"bufio"
	"context"
	"strings"

	"task-board/internal/errors"
)

// RemoveCommand handles the rm command
type RemoveCommand struct {
	app *App
}

// NewRemoveCommand creates a new rm command handler
func NewRemoveCommand(app *App) *RemoveCommand {
	return &RemoveCommand{app: app}
}

// Execute runs the rm command
func (c *RemoveCommand) Execute(ctx context.Context, args []string) error {
	return c.app.errorHandler.Handle("delete task", c.removeTask(ctx, args))
}

// removeTask deletes a task after an interactive y/N confirmation unless
// --yes was given
func (c *RemoveCommand) removeTask(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("id", args, "rm takes exactly one task ID")
	}

	businessAPI := c.app.businessAPI
	id, err := businessAPI.ResolveID(ctx, args[0])
	if err != nil {
		return err
	}
	task, err := businessAPI.GetTask(ctx, id)
	if err != nil {
		return err
	}

	if !c.app.flags.Yes {
		c.app.printf("Delete %q? [y/N]: ", task.Title)

		// Read user input; EOF counts as no
		input, _ := bufio.NewReader(c.app.in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "y", "yes":
		default:
			c.app.printf("Delete cancelled.\n")
			return nil
		}
	}

	if err := businessAPI.DeleteTask(ctx, id); err != nil {
		return err
	}

	c.app.printf("Deleted task: %s\n", task.Title)
	return nil
}
