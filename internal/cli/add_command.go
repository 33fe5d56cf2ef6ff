package cli

import (
	"context"
	"strings"

	"task-board/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	return c.app.errorHandler.Handle("add task", c.addTask(ctx, args))
}

// addTask builds a draft from the title words and field flags and submits it
func (c *AddCommand) addTask(ctx context.Context, args []string) error {
	businessAPI := c.app.businessAPI

	draft := businessAPI.NewDraft()
	draft.Title = strings.Join(args, " ")
	if draft.Title == "" && c.app.flags.Title != "" {
		draft.Title = c.app.flags.Title
	} else if draft.Title != "" && c.app.flags.Title != "" {
		return errors.NewInvalidInputError("title", c.app.flags.Title, "give the title either as arguments or with --title")
	}

	draft, err := c.app.applyTaskFields(draft)
	if err != nil {
		return err
	}

	task, err := businessAPI.CreateTask(ctx, draft)
	if err != nil {
		return err
	}

	c.app.printf("Added task %s: %s (%s)\n", shortID(task.ID), task.Title, businessAPI.DueLabel(*task))
	return nil
}
