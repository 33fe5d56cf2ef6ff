package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"task-board/internal/clock"
	"task-board/internal/domain"
	"task-board/internal/errors"
)

// DefaultDateLayout is used when no display format is configured
const DefaultDateLayout = "2006-01-02"

var relativeDayRegex = regexp.MustCompile(`^\+?(\d+)(d|w)$`)

// dateServiceImpl implements the DateService interface
type dateServiceImpl struct {
	clock  clock.Clock
	layout string
}

// NewDateService creates a new DateService instance
func NewDateService(clk clock.Clock, layout string) DateService {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return &dateServiceImpl{clock: clk, layout: layout}
}

// Today returns local midnight of the current day
func (d *dateServiceImpl) Today() time.Time {
	return domain.DateOf(d.clock.Now())
}

// IsToday checks if a given time falls on the current calendar day
func (d *dateServiceImpl) IsToday(timeValue time.Time) bool {
	year1, month1, day1 := timeValue.Date()
	year2, month2, day2 := d.clock.Now().Date()
	return year1 == year2 && month1 == month2 && day1 == day2
}

// ParseDueDate accepts a date in the display layout, "today", "tomorrow",
// or a day offset shorthand such as "3d", "+2d" or "1w"
func (d *dateServiceImpl) ParseDueDate(input string) (time.Time, error) {
	value := strings.ToLower(strings.TrimSpace(input))
	if value == "" {
		return time.Time{}, errors.NewInvalidInputError("due", input, "due date cannot be empty")
	}

	today := d.Today()
	switch value {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	if days, ok := d.parseDayShorthand(value); ok {
		return today.AddDate(0, 0, days), nil
	}

	parsed, err := time.ParseInLocation(d.layout, strings.TrimSpace(input), today.Location())
	if err != nil {
		return time.Time{}, errors.NewInvalidInputError("due", input,
			fmt.Sprintf("expected a date like %s, today, tomorrow or 3d", d.layout))
	}
	return domain.DateOf(parsed), nil
}

// parseDayShorthand converts "Nd" and "Nw" to a number of days
func (d *dateServiceImpl) parseDayShorthand(value string) (int, bool) {
	matches := relativeDayRegex.FindStringSubmatch(value)
	if matches == nil {
		return 0, false
	}
	n, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, false
	}
	if matches[2] == "w" {
		n *= 7
	}
	return n, true
}

// FormatDate renders t in the configured layout
func (d *dateServiceImpl) FormatDate(t time.Time) string {
	return t.Format(d.layout)
}

// DueLabel describes the due date relative to today
func (d *dateServiceImpl) DueLabel(task domain.Task) string {
	days := d.daysBetween(d.Today(), task.DueDate)

	switch {
	case days < 0 && !task.Completed:
		return "overdue by " + pluralDays(-days)
	case days < 0:
		return "was due " + pluralDays(-days) + " ago"
	case d.IsToday(task.DueDate):
		return "due today"
	case days == 1:
		return "due tomorrow"
	default:
		return "due in " + pluralDays(days)
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// daysBetween counts calendar days from a to b
func (d *dateServiceImpl) daysBetween(a, b time.Time) int {
	return int(domain.CalendarDay(b).Sub(domain.CalendarDay(a)).Hours() / 24)
}
