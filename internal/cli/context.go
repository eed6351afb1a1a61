// Package cli holds the kong commands of the momentum binary.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/comitanigiacomo/momentum/internal/app"
	"github.com/comitanigiacomo/momentum/internal/core/domain"
)

// Context is handed to every command's Run method.
type Context struct {
	Ctx context.Context
	App *app.App
	Out io.Writer
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	missStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	streakStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

// habitStyle colors a habit name with its palette or hex color.
func habitStyle(color string) lipgloss.Style {
	if hex, ok := domain.PaletteColors[color]; ok {
		color = hex
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
}

func mark(done bool) string {
	if done {
		return doneStyle.Render("✓")
	}
	return missStyle.Render("✗")
}

// resolveHabit finds a habit by exact id, then by case-insensitive name.
func (c *Context) resolveHabit(ref string) (*domain.Habit, error) {
	habits, err := c.App.Habits.List(c.Ctx, "")
	if err != nil {
		return nil, err
	}

	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}

	var match *domain.Habit
	for _, h := range habits {
		if strings.EqualFold(h.Name, strings.TrimSpace(ref)) {
			if match != nil {
				return nil, fmt.Errorf("habit name %q is ambiguous, use its id", ref)
			}
			match = h
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrHabitNotFound, ref)
	}
	return match, nil
}

// resolveCategory finds a category by exact id, then by case-insensitive name.
func (c *Context) resolveCategory(ref string) (*domain.Category, error) {
	categories, err := c.App.Categories.List(c.Ctx)
	if err != nil {
		return nil, err
	}

	for _, cat := range categories {
		if cat.ID == ref {
			return cat, nil
		}
	}
	for _, cat := range categories {
		if strings.EqualFold(cat.Name, strings.TrimSpace(ref)) {
			return cat, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, ref)
}

var weekdayNames = map[string]int{
	"sun": 0, "sunday": 0,
	"mon": 1, "monday": 1,
	"tue": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers
// (0=Sunday .. 6=Saturday).
func ParseWeekdays(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if d, ok := weekdayNames[part]; ok {
			days = append(days, d)
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, n)
	}
	return days, nil
}

func formatFrequency(h *domain.Habit) string {
	if h.Frequency != domain.FrequencySpecificDays {
		return string(h.Frequency)
	}

	labels := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	names := make([]string, 0, len(h.SpecificDays))
	for _, d := range h.SpecificDays {
		names = append(names, labels[d])
	}
	return "on " + strings.Join(names, ",")
}
