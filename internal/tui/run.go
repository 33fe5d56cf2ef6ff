package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"task-board/internal/api"
	"task-board/internal/timer"
)

// Run shows the board until the user quits or ctx is cancelled. Countdown
// ticks are forwarded to the program as TimerMsg values.
func Run(ctx context.Context, businessAPI api.BusinessAPI, countdown *timer.Countdown, opts ...tea.ProgramOption) error {
	options := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(New(ctx, businessAPI, countdown), options...)

	countdown.OnChange(func(s timer.Snapshot) {
		program.Send(TimerMsg(s))
	})
	defer countdown.OnChange(nil)

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
