package cli

import (
	"task-board/internal/domain"
)

// CommandFlags holds the per-command flag values bound by the cobra root.
// add and edit share the task field flags.
type CommandFlags struct {
	Title       string
	Description string
	Priority    string
	Due         string
	Yes         bool

	set map[string]bool
}

// MarkSet records that a flag was given on the command line, even if empty
func (f *CommandFlags) MarkSet(name string) {
	if f.set == nil {
		f.set = make(map[string]bool)
	}
	f.set[name] = true
}

// IsSet reports whether a flag was given on the command line
func (f *CommandFlags) IsSet(name string) bool {
	return f.set[name]
}

// hasTaskFields reports whether any task field flag carries a change
func (f *CommandFlags) hasTaskFields() bool {
	return f.Title != "" || f.Description != "" || f.Priority != "" || f.Due != "" ||
		f.IsSet("title") || f.IsSet("description")
}

// applyTaskFields copies the given field flags onto draft. An explicitly
// empty --description clears the description.
func (a *App) applyTaskFields(draft domain.Draft) (domain.Draft, error) {
	f := a.flags
	if f.Title != "" || f.IsSet("title") {
		draft.Title = f.Title
	}
	if f.Description != "" || f.IsSet("description") {
		draft.Description = f.Description
	}
	if f.Priority != "" {
		if p, err := domain.ParsePriority(f.Priority); err == nil {
			draft.Priority = p
		} else {
			// Left as typed so the validator reports it against the field
			draft.Priority = domain.Priority(f.Priority)
		}
	}
	if f.Due != "" {
		due, err := a.businessAPI.ParseDueDate(f.Due)
		if err != nil {
			return draft, err
		}
		draft.DueDate = due
	}
	return draft, nil
}
