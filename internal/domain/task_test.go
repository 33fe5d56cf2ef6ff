package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input    string
		expected Priority
		wantErr  bool
	}{
		{"High", PriorityHigh, false},
		{"medium", PriorityMedium, false},
		{"  LOW ", PriorityLow, false},
		{"urgent", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPriority_Rank(t *testing.T) {
	assert.Greater(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.False(t, Priority("Urgent").IsValid())
	assert.True(t, PriorityLow.IsValid())
}

func TestTask_IsOverdue(t *testing.T) {
	due := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		task     Task
		now      time.Time
		expected bool
	}{
		{"day before due", Task{DueDate: due}, due.Add(-time.Hour), false},
		{"start of due day", Task{DueDate: due}, due, false},
		{"late on due day", Task{DueDate: due}, due.Add(23*time.Hour + 59*time.Minute), false},
		{"day after due", Task{DueDate: due}, due.Add(24 * time.Hour), true},
		{"several days late", Task{DueDate: due}, due.Add(72 * time.Hour), true},
		{"completed after due", Task{DueDate: due, Completed: true}, due.Add(48 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsOverdue(tt.now))
		})
	}
}

func TestTask_Apply(t *testing.T) {
	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	task := Task{ID: "x", Title: "old", Priority: PriorityLow, Completed: true, CreatedAt: created}
	due := time.Date(2026, 10, 30, 0, 0, 0, 0, time.UTC)

	got := task.Apply(Draft{Title: "new", Description: "d", Priority: PriorityHigh, DueDate: due})

	assert.Equal(t, Task{
		ID:          "x",
		Title:       "new",
		Description: "d",
		Priority:    PriorityHigh,
		Completed:   true,
		DueDate:     due,
		CreatedAt:   created,
	}, got)
	assert.Equal(t, "old", task.Title, "receiver is not modified")
}

func TestNewDraft(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)
	d := NewDraft(now)

	assert.Equal(t, PriorityMedium, d.Priority)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), d.DueDate)
	assert.Empty(t, d.Title)
}

func TestDraftFromTask(t *testing.T) {
	due := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)
	task := Task{ID: "1", Title: "Gifts", Description: "wrap", Priority: PriorityHigh, DueDate: due}

	assert.Equal(t, Draft{Title: "Gifts", Description: "wrap", Priority: PriorityHigh, DueDate: due}, DraftFromTask(task))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2006-01-02", " 2026-10-21 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 21, 0, 0, 0, 0, time.Local), got)

	_, err = ParseDate("2006-01-02", "21/10/2026")
	assert.Error(t, err)
}

func TestSortTasks(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC) }

	a := Task{ID: "A", Priority: PriorityHigh, DueDate: day(2)}
	b := Task{ID: "B", Priority: PriorityLow, DueDate: day(1)}
	c := Task{ID: "C", Priority: PriorityHigh, DueDate: day(1), Completed: true}

	got := SortTasks([]Task{c, b, a})
	assert.Equal(t, []string{"A", "B", "C"}, ids(got))
}

func TestSortTasks_TieBreaks(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC) }

	input := []Task{
		{ID: "late", Priority: PriorityMedium, DueDate: day(5)},
		{ID: "first-equal", Priority: PriorityMedium, DueDate: day(3)},
		{ID: "second-equal", Priority: PriorityMedium, DueDate: day(3)},
		{ID: "high", Priority: PriorityHigh, DueDate: day(9)},
	}

	got := SortTasks(input)
	assert.Equal(t, []string{"high", "first-equal", "second-equal", "late"}, ids(got))
	assert.Equal(t, "late", input[0].ID, "input slice is left untouched")
}

func TestSortTasks_Empty(t *testing.T) {
	assert.Empty(t, SortTasks(nil))
}

func ids(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestCalendarDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	evening := time.Date(2026, 10, 19, 23, 30, 0, 0, tokyo)

	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), CalendarDay(evening))
	assert.True(t, CalendarDay(evening).Equal(CalendarDay(time.Date(2026, 10, 19, 1, 0, 0, 0, time.UTC))))
}
