package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"task-board/internal/clock"
	"task-board/internal/config"
	"task-board/internal/logging"
	"task-board/internal/timer"
	"task-board/internal/tui"
)

// UICommand opens the interactive board
type UICommand struct {
	app *App
}

// NewUICommand creates a new ui command handler
func NewUICommand(app *App) *UICommand {
	return &UICommand{app: app}
}

// Execute runs the full-screen board until the user quits
func (c *UICommand) Execute(ctx context.Context, args []string) error {
	// Log messages would corrupt the alternate screen
	logFile, err := c.openLogFile()
	if err != nil {
		return c.app.errorHandler.Handle("open board", err)
	}
	defer logFile.Close()
	prev := logging.SetOutput(logFile)
	defer logging.SetOutput(prev)

	countdown := timer.New(clock.New(), c.app.config.Timer.Budget)
	defer countdown.Close()

	if err := tui.Run(ctx, c.app.businessAPI, countdown); err != nil {
		return c.app.errorHandler.Handle("run board", err)
	}
	return nil
}

// openLogFile appends to taskboard.log next to the stored tasks, or in the
// temp directory when tasks live in memory
func (c *UICommand) openLogFile() (*os.File, error) {
	dir := c.app.config.Storage.Dir
	if c.app.config.Storage.Driver == config.DriverMemory || dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, os.FileMode(c.app.config.Storage.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return os.OpenFile(filepath.Join(dir, "taskboard.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
