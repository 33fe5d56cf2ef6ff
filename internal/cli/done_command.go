package cli

import (
	"context"

	"task-board/internal/errors"
)

// DoneCommand handles the done command, which toggles completion
type DoneCommand struct {
	app *App
}

// NewDoneCommand creates a new done command handler
func NewDoneCommand(app *App) *DoneCommand {
	return &DoneCommand{app: app}
}

// Execute runs the done command
func (c *DoneCommand) Execute(ctx context.Context, args []string) error {
	return c.app.errorHandler.Handle("toggle task", c.toggleTask(ctx, args))
}

func (c *DoneCommand) toggleTask(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("id", args, "done takes exactly one task ID")
	}

	businessAPI := c.app.businessAPI
	id, err := businessAPI.ResolveID(ctx, args[0])
	if err != nil {
		return err
	}
	if err := businessAPI.ToggleTask(ctx, id); err != nil {
		return err
	}

	task, err := businessAPI.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if task.Completed {
		c.app.printf("Completed: %s\n", task.Title)
	} else {
		c.app.printf("Reopened: %s\n", task.Title)
	}
	return nil
}
