// Package tui is the full-screen board: a pre-start screen, the countdown
// header, stats tiles, the task cards and the task form.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"task-board/internal/api"
	"task-board/internal/domain"
	apperrors "task-board/internal/errors"
	"task-board/internal/logging"
	"task-board/internal/timer"
	"task-board/internal/validation"
)

// Model is the Bubble Tea model of the board
type Model struct {
	ctx       context.Context
	api       api.BusinessAPI
	countdown *timer.Countdown
	keys      keyMap
	help      help.Model

	started  bool
	snapshot timer.Snapshot

	tasks  []domain.Task
	stats  domain.Stats
	cursor int

	search    textinput.Model
	searching bool

	form   *taskForm
	saving bool

	confirmDelete *domain.Task
	status        string
	statusIsError bool

	width  int
	height int
}

// New creates the board over businessAPI, driven by countdown
func New(ctx context.Context, businessAPI api.BusinessAPI, countdown *timer.Countdown) Model {
	search := textinput.New()
	search.Placeholder = "Search title, description or priority"
	search.Prompt = "/ "
	search.Cursor.SetMode(cursor.CursorStatic)

	m := Model{
		ctx:       ctx,
		api:       businessAPI,
		countdown: countdown,
		keys:      defaultKeyMap(),
		help:      help.New(),
		snapshot:  countdown.Snapshot(),
		search:    search,
		width:     80,
	}
	// A countdown already in progress skips the start screen
	m.started = m.snapshot.State != timer.StateIdle
	m.refresh()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TimerMsg:
		m.applySnapshot(timer.Snapshot(msg))
		return m, nil

	case savedMsg:
		return m.handleSaved(msg), nil

	case changedMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus(msg.status)
		}
		m.refresh()
		return m, nil

	case resetMsg:
		m.snapshot = msg.snapshot
		if msg.err != nil {
			m.setError(msg.err)
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// applySnapshot keeps the newest countdown state. Within one run the
// remaining time only goes down, so a larger value is a stale delivery.
func (m *Model) applySnapshot(s timer.Snapshot) {
	current := m.snapshot
	if s.Running() && current.Running() && s.StartedAt.Equal(current.StartedAt) && s.Remaining > current.Remaining {
		return
	}
	if s.Expired() && !current.Expired() {
		logging.Debugln("board: time is up")
	}
	m.snapshot = s
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case !m.started:
		return m.handleStartKey(msg)
	case m.confirmDelete != nil:
		return m.handleConfirmKey(msg)
	case m.form != nil:
		return m.handleFormKey(msg)
	case m.searching:
		return m.handleSearchKey(msg)
	default:
		return m.handleBoardKey(msg)
	}
}

func (m Model) handleStartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Start):
		m.started = true
		m.status = ""
		return m, startTimer(m.countdown)
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Add):
		if m.snapshot.Expired() {
			m.setStatus("Time's up: adding tasks is disabled")
			return m, nil
		}
		m.form = newTaskForm(m.api, "", m.api.NewDraft())
		m.status = ""

	case key.Matches(msg, m.keys.Edit):
		if task, ok := m.selected(); ok {
			m.form = newTaskForm(m.api, task.ID, domain.DraftFromTask(task))
			m.status = ""
		}

	case key.Matches(msg, m.keys.Toggle):
		if task, ok := m.selected(); ok {
			return m, toggleTask(m.ctx, m.api, task)
		}

	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.selected(); ok {
			m.confirmDelete = &task
			m.setStatus("Delete \"" + task.Title + "\"? (y/n)")
		}

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.Focus()

	case key.Matches(msg, m.keys.Reset):
		return m.reset()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// reset returns to the start screen with the timer restored and no tasks
func (m Model) reset() (tea.Model, tea.Cmd) {
	m.started = false
	m.form = nil
	m.saving = false
	m.confirmDelete = nil
	m.searching = false
	m.search.Blur()
	m.search.SetValue("")
	m.cursor = 0
	m.status = ""
	return m, resetBoard(m.ctx, m.api, m.countdown)
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	task := *m.confirmDelete
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.confirmDelete = nil
		m.status = ""
		return m, deleteTask(m.ctx, m.api, task)
	case key.Matches(msg, m.keys.Deny):
		m.confirmDelete = nil
		m.setStatus("Delete cancelled")
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.refresh()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Inputs are disabled while a submission is in flight
	if m.saving {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.form = nil
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.form.nextField()
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.form.prevField()
		return m, nil
	case m.form.isSubmit(m.keys, msg):
		return m.submit()
	}

	return m, m.form.update(msg)
}

// submit validates the form and hands a valid draft to the store
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.form.creating() && m.snapshot.Expired() {
		m.setStatus("Time's up: adding tasks is disabled")
		return m, nil
	}
	if m.api.IsLoading() {
		return m, nil
	}

	draft, parseErrors := m.form.draft(m.api)
	fieldErrors := m.api.ValidateDraft(draft)
	if fieldErrors == nil {
		fieldErrors = validation.FieldErrors{}
	}
	for field, message := range parseErrors {
		fieldErrors[field] = message
	}
	if len(fieldErrors) > 0 {
		m.form.errors = fieldErrors
		return m, nil
	}

	m.form.errors = validation.FieldErrors{}
	m.saving = true
	return m, saveTask(m.ctx, m.api, m.form.editID, draft)
}

func (m Model) handleSaved(msg savedMsg) Model {
	m.saving = false
	if msg.err != nil {
		var ve *validation.ValidationError
		if m.form != nil && errors.As(msg.err, &ve) {
			m.form.errors = ve.FieldMap()
			return m
		}
		m.setError(msg.err)
		return m
	}

	m.form = nil
	if msg.task != nil {
		if msg.created {
			m.setStatus("Added: " + msg.task.Title)
		} else {
			m.setStatus("Updated: " + msg.task.Title)
		}
		m.refresh()
		m.selectTask(msg.task.ID)
	}
	return m
}

// refresh re-reads the sorted, filtered view and the stats
func (m *Model) refresh() {
	m.tasks = m.api.ListTasks(m.ctx, m.search.Value())
	m.stats = m.api.Stats(m.ctx)
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selectTask(id string) {
	for i, task := range m.tasks {
		if task.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m Model) selected() (domain.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return domain.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusIsError = false
}

func (m *Model) setError(err error) {
	if apperrors.ShouldLogError(err) {
		logging.Warnf("board: %v", err)
	}
	m.status = apperrors.GetUserMessage(err)
	m.statusIsError = true
}
