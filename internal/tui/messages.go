package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"task-board/internal/api"
	"task-board/internal/domain"
	"task-board/internal/timer"
)

// TimerMsg carries a countdown snapshot into the update loop
type TimerMsg timer.Snapshot

// savedMsg reports the end of a create or update
type savedMsg struct {
	task    *domain.Task
	created bool
	err     error
}

// changedMsg reports the end of a toggle or delete
type changedMsg struct {
	status string
	err    error
}

// resetMsg reports that the timer and the task list were cleared
type resetMsg struct {
	snapshot timer.Snapshot
	err      error
}

// startTimer starts the countdown off the update loop, since observers may
// send messages back into the program
func startTimer(countdown *timer.Countdown) tea.Cmd {
	return func() tea.Msg {
		countdown.Start()
		return TimerMsg(countdown.Snapshot())
	}
}

func resetBoard(ctx context.Context, businessAPI api.BusinessAPI, countdown *timer.Countdown) tea.Cmd {
	return func() tea.Msg {
		countdown.Reset()
		err := businessAPI.Reset(ctx)
		return resetMsg{snapshot: countdown.Snapshot(), err: err}
	}
}

func saveTask(ctx context.Context, businessAPI api.BusinessAPI, editID string, draft domain.Draft) tea.Cmd {
	return func() tea.Msg {
		if editID == "" {
			task, err := businessAPI.CreateTask(ctx, draft)
			return savedMsg{task: task, created: true, err: err}
		}
		if err := businessAPI.UpdateTask(ctx, editID, draft); err != nil {
			return savedMsg{err: err}
		}
		task, err := businessAPI.GetTask(ctx, editID)
		return savedMsg{task: task, err: err}
	}
}

func toggleTask(ctx context.Context, businessAPI api.BusinessAPI, task domain.Task) tea.Cmd {
	return func() tea.Msg {
		status := "Completed: " + task.Title
		if task.Completed {
			status = "Reopened: " + task.Title
		}
		return changedMsg{status: status, err: businessAPI.ToggleTask(ctx, task.ID)}
	}
}

func deleteTask(ctx context.Context, businessAPI api.BusinessAPI, task domain.Task) tea.Cmd {
	return func() tea.Msg {
		return changedMsg{status: "Deleted: " + task.Title, err: businessAPI.DeleteTask(ctx, task.ID)}
	}
}
