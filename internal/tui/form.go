package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"task-board/internal/api"
	"task-board/internal/domain"
	"task-board/internal/validation"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldPriority
	fieldDueDate
	numFields
)

// name returns the validation field key for f
func (f formField) name() string {
	switch f {
	case fieldTitle:
		return validation.FieldTitle
	case fieldDescription:
		return validation.FieldDescription
	case fieldPriority:
		return validation.FieldPriority
	default:
		return validation.FieldDueDate
	}
}

// taskForm captures a draft for create or edit
type taskForm struct {
	editID      string
	title       textinput.Model
	description textarea.Model
	priority    domain.Priority
	due         textinput.Model
	focus       formField
	errors      validation.FieldErrors
}

// newTaskForm fills a form from draft. editID is empty when creating.
func newTaskForm(businessAPI api.BusinessAPI, editID string, draft domain.Draft) *taskForm {
	title := textinput.New()
	title.Placeholder = "What needs doing?"
	title.CharLimit = 0
	title.Cursor.SetMode(cursor.CursorStatic)
	title.SetValue(draft.Title)

	description := textarea.New()
	description.Placeholder = "Optional details"
	description.ShowLineNumbers = false
	description.CharLimit = 0
	description.SetHeight(3)
	description.Cursor.SetMode(cursor.CursorStatic)
	description.SetValue(draft.Description)

	due := textinput.New()
	due.Placeholder = "today, tomorrow, 3d or " + businessAPI.FormatDate(businessAPI.NewDraft().DueDate)
	due.Cursor.SetMode(cursor.CursorStatic)
	if !draft.DueDate.IsZero() {
		due.SetValue(businessAPI.FormatDate(draft.DueDate))
	}

	priority := draft.Priority
	if !priority.IsValid() {
		priority = domain.PriorityMedium
	}

	f := &taskForm{
		editID:      editID,
		title:       title,
		description: description,
		priority:    priority,
		due:         due,
		errors:      validation.FieldErrors{},
	}
	f.setFocus(fieldTitle)
	return f
}

// creating reports whether the form adds a new task
func (f *taskForm) creating() bool {
	return f.editID == ""
}

func (f *taskForm) setFocus(field formField) {
	f.focus = field
	f.title.Blur()
	f.description.Blur()
	f.due.Blur()
	switch field {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.description.Focus()
	case fieldDueDate:
		f.due.Focus()
	}
}

func (f *taskForm) nextField() {
	f.setFocus((f.focus + 1) % numFields)
}

func (f *taskForm) prevField() {
	f.setFocus((f.focus + numFields - 1) % numFields)
}

// update routes a key to the focused field and clears that field's error
// once its value changes
func (f *taskForm) update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		before := f.title.Value()
		f.title, cmd = f.title.Update(msg)
		if f.title.Value() != before {
			f.clearError(fieldTitle)
		}
	case fieldDescription:
		before := f.description.Value()
		f.description, cmd = f.description.Update(msg)
		if f.description.Value() != before {
			f.clearError(fieldDescription)
		}
	case fieldPriority:
		if f.cyclePriority(msg) {
			f.clearError(fieldPriority)
		}
	case fieldDueDate:
		before := f.due.Value()
		f.due, cmd = f.due.Update(msg)
		if f.due.Value() != before {
			f.clearError(fieldDueDate)
		}
	}
	return cmd
}

// cyclePriority moves through High, Medium and Low with the arrow keys,
// space, or the first letter of a label
func (f *taskForm) cyclePriority(msg tea.KeyMsg) bool {
	priorities := domain.Priorities()
	index := 0
	for i, p := range priorities {
		if p == f.priority {
			index = i
		}
	}

	switch msg.String() {
	case "left", "h", "up":
		index = (index + len(priorities) - 1) % len(priorities)
	case "right", "l", "down", " ":
		index = (index + 1) % len(priorities)
	default:
		for i, p := range priorities {
			if strings.EqualFold(msg.String(), string(p)[:1]) {
				index = i
			}
		}
	}

	if priorities[index] == f.priority {
		return false
	}
	f.priority = priorities[index]
	return true
}

func (f *taskForm) clearError(field formField) {
	delete(f.errors, field.name())
}

// draft reads the fields back. A due date that cannot be parsed is
// reported as a field error.
func (f *taskForm) draft(businessAPI api.BusinessAPI) (domain.Draft, validation.FieldErrors) {
	draft := domain.Draft{
		Title:       f.title.Value(),
		Description: f.description.Value(),
		Priority:    f.priority,
	}

	parseErrors := validation.FieldErrors{}
	if input := strings.TrimSpace(f.due.Value()); input != "" {
		due, err := businessAPI.ParseDueDate(input)
		if err != nil {
			parseErrors[validation.FieldDueDate] = "Enter a date like " +
				businessAPI.FormatDate(businessAPI.NewDraft().DueDate) + ", today, tomorrow or 3d"
		} else {
			draft.DueDate = due
		}
	}
	return draft, parseErrors
}

// view renders the form. Inputs are shown dimmed while a save is in flight.
func (f *taskForm) view(width int, saving bool) string {
	var b strings.Builder

	heading := "Add New Task"
	if !f.creating() {
		heading = "Edit Task"
	}
	b.WriteString(headingStyle.Render(heading) + "\n\n")

	f.description.SetWidth(max(20, width-18))

	b.WriteString(f.row(fieldTitle, "Title", f.title.View()))
	b.WriteString(f.row(fieldDescription, "Description", f.description.View()))
	b.WriteString(f.row(fieldPriority, "Priority", f.priorityView()))
	b.WriteString(f.row(fieldDueDate, "Due date", f.due.View()))

	if saving {
		b.WriteString(statusStyle.Render("Saving..."))
	} else {
		b.WriteString(mutedStyle.Render("ctrl+s save · esc cancel · tab next field"))
	}

	style := panelStyle.Width(max(30, width-2))
	if saving {
		style = style.Faint(true)
	}
	return style.Render(b.String())
}

func (f *taskForm) row(field formField, label, input string) string {
	labelStyle := fieldLabelStyle
	if f.focus == field {
		labelStyle = focusedLabelStyle
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), input) + "\n"
	if msg, ok := f.errors[field.name()]; ok {
		row += fieldLabelStyle.Render("") + errorStyle.Render(msg) + "\n"
	}
	return row
}

func (f *taskForm) priorityView() string {
	var parts []string
	for _, p := range domain.Priorities() {
		label := string(p)
		if p == f.priority {
			parts = append(parts, priorityStyle(p).Render("["+label+"]"))
		} else {
			parts = append(parts, mutedStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

// isSubmit reports whether msg saves the form from the focused field.
// Enter inserts a newline in the description.
func (f *taskForm) isSubmit(keys keyMap, msg tea.KeyMsg) bool {
	if key.Matches(msg, keys.Submit) {
		return true
	}
	return msg.Type == tea.KeyEnter && f.focus != fieldDescription
}
