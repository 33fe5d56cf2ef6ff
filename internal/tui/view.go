package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"task-board/internal/domain"
	"task-board/internal/timer"
)

// View implements tea.Model
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.headerView())

	if m.snapshot.Expired() {
		sections = append(sections, bannerStyle.Render("Time's up! The countdown has ended. Adding tasks is disabled."))
	}

	if !m.started {
		sections = append(sections, m.introView())
	} else {
		sections = append(sections, m.statsView(), m.actionBarView())
		if m.searching || m.search.Value() != "" {
			sections = append(sections, m.search.View())
		}
		if m.form != nil {
			sections = append(sections, m.form.view(m.width, m.saving))
		}
		sections = append(sections, m.listView())
	}

	if m.status != "" {
		style := statusStyle
		if m.statusIsError {
			style = errorStyle
		}
		sections = append(sections, style.Render(m.status))
	}

	sections = append(sections, m.helpView())
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) headerView() string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Task Board"),
		subtitleStyle.Render(fmt.Sprintf("%s to plan and finish your tasks", timer.FormatTime(m.snapshot.Budget))),
	)
	if !m.started {
		return left
	}

	clock := timerStyle(m.snapshot.Urgency()).Render("Time Remaining: " + m.snapshot.Formatted())
	right := lipgloss.JoinHorizontal(lipgloss.Center, clock, mutedStyle.Render("[R] reset"))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		return lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), right)
}

func (m Model) introView() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		headingStyle.Render("Ready to start?"),
		"",
		fmt.Sprintf("The timer gives you %s once it starts.", timer.FormatTime(m.snapshot.Budget)),
		"Add, edit, complete and search tasks before it runs out.",
		"",
		titleStyle.Render("Press enter to start the timer"),
	)
	return panelStyle.Padding(1, 3).Render(body)
}

func (m Model) statsView() string {
	tile := func(label string, value int, color lipgloss.TerminalColor) string {
		number := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%d", value))
		return tileStyle.Render(number + "\n" + mutedStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		tile("Total Tasks", m.stats.Total, colorInfo),
		tile("Completed", m.stats.Completed, colorSuccess),
		tile("Pending", m.stats.Pending, colorWarning),
		tile("Overdue", m.stats.Overdue, colorDanger),
	)
}

func (m Model) actionBarView() string {
	line := headingStyle.Render("My Tasks") + "  " + mutedStyle.Render(m.api.CountLabel(m.stats.Total))
	if m.snapshot.Expired() {
		return line + "  " + mutedStyle.Render("(adding disabled)")
	}
	return line + "  " + mutedStyle.Render("[a] add task")
}

func (m Model) listView() string {
	if m.stats.Total == 0 {
		return emptyStyle.Width(max(30, m.width-2)).Render(
			headingStyle.Render("No tasks yet") + "\n\n" +
				mutedStyle.Render("Get started by creating your first task. Press a to add one."),
		)
	}
	if len(m.tasks) == 0 {
		return mutedStyle.Render(fmt.Sprintf("No tasks match %q", m.search.Value()))
	}

	now := m.api.Now()
	cards := make([]string, 0, len(m.tasks))
	for i, task := range m.tasks {
		cards = append(cards, m.cardView(task, i == m.cursor, now))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// cardView renders one task: status and title, the description, then
// priority, due date and overdue marker
func (m Model) cardView(task domain.Task, selected bool, now time.Time) string {
	check := "[ ]"
	title := headingStyle.Render(task.Title)
	if task.Completed {
		check = "[x]"
		title = completedTitleStyle.Render(task.Title)
	}

	lines := []string{check + " " + title}
	if task.Description != "" {
		lines = append(lines, mutedStyle.Render("    "+task.Description))
	}

	meta := priorityStyle(task.Priority).Render(task.Priority.String()) +
		mutedStyle.Render("  due "+m.api.FormatDate(task.DueDate)+" · "+m.api.DueLabel(task))
	if task.IsOverdue(now) {
		meta += "  " + errorStyle.Bold(true).Render("OVERDUE")
	}
	lines = append(lines, "    "+meta)

	style := cardStyle.Width(max(30, m.width-2)).BorderForeground(priorityColor(task.Priority))
	if selected {
		style = style.BorderStyle(lipgloss.ThickBorder()).BorderForeground(colorSelected)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) helpView() string {
	switch {
	case !m.started:
		return m.help.ShortHelpView([]key.Binding{m.keys.Start, m.keys.Quit})
	case m.confirmDelete != nil:
		return m.help.ShortHelpView([]key.Binding{m.keys.Confirm, m.keys.Deny})
	case m.form != nil:
		return m.help.View(formKeys(m.keys))
	default:
		return m.help.View(m.keys)
	}
}
