package tui

import (
	"github.com/charmbracelet/lipgloss"

	"task-board/internal/domain"
	"task-board/internal/timer"
)

var (
	colorMuted    = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	colorPrimary  = lipgloss.AdaptiveColor{Light: "#4f46e5", Dark: "#818cf8"}
	colorDanger   = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	colorWarning  = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#fbbf24"}
	colorSuccess  = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	colorInfo     = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}
	colorBorder   = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#4b5563"}
	colorSelected = colorPrimary
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(colorDanger)
	statusStyle   = lipgloss.NewStyle().Foreground(colorInfo)
	headingStyle  = lipgloss.NewStyle().Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorDanger).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDanger).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	emptyStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2).
			Align(lipgloss.Center)

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(16)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	completedTitleStyle = lipgloss.NewStyle().Strikethrough(true).Foreground(colorMuted)
	fieldLabelStyle     = lipgloss.NewStyle().Bold(true).Width(12)
	focusedLabelStyle   = fieldLabelStyle.Foreground(colorPrimary)
)

// priorityColor maps a priority to its card accent
func priorityColor(p domain.Priority) lipgloss.TerminalColor {
	switch p {
	case domain.PriorityHigh:
		return colorDanger
	case domain.PriorityMedium:
		return colorWarning
	case domain.PriorityLow:
		return colorSuccess
	default:
		return colorMuted
	}
}

func priorityStyle(p domain.Priority) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(priorityColor(p))
}

// timerStyle colours the header countdown by urgency
func timerStyle(u timer.Urgency) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	switch u {
	case timer.UrgencyCritical:
		return style.Foreground(colorDanger)
	case timer.UrgencyWarning:
		return style.Foreground(colorWarning)
	default:
		return style.Foreground(colorMuted)
	}
}
