package cli

import (
	"context"

	"task-board/internal/domain"
	"task-board/internal/errors"
)

// EditCommand handles the edit command
type EditCommand struct {
	app *App
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app}
}

// Execute runs the edit command
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	return c.app.errorHandler.Handle("edit task", c.editTask(ctx, args))
}

// editTask loads the task into a draft, overlays the given flags and
// submits the result
func (c *EditCommand) editTask(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("id", args, "edit takes exactly one task ID")
	}
	if !c.app.flags.hasTaskFields() {
		return errors.NewInvalidInputError("flags", nil, "nothing to change; use --title, --description, --priority or --due")
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

	draft, err := c.app.applyTaskFields(domain.DraftFromTask(*task))
	if err != nil {
		return err
	}

	if err := businessAPI.UpdateTask(ctx, id, draft); err != nil {
		return err
	}

	updated, err := businessAPI.GetTask(ctx, id)
	if err != nil {
		return err
	}
	c.app.printf("Updated task %s: %s (%s)\n", shortID(updated.ID), updated.Title, businessAPI.DueLabel(*updated))
	return nil
}
