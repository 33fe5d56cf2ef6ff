package cli

import (
	"context"
)

// StatsCommand handles the stats command
type StatsCommand struct {
	app *App
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{app: app}
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	stats := c.app.businessAPI.Stats(ctx)

	c.app.printf("%-10s %d\n", "Total:", stats.Total)
	c.app.printf("%-10s %d\n", "Completed:", stats.Completed)
	c.app.printf("%-10s %d\n", "Pending:", stats.Pending)
	c.app.printf("%-10s %d\n", "Overdue:", stats.Overdue)
	return nil
}
