package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
)

var _ domain.ReportRenderer = (*TextRenderer)(nil)

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// TextRenderer lays the weekly report out as a plain-text table.
type TextRenderer struct{}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

func (r *TextRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *TextRenderer) Extension() string {
	return "txt"
}

func statusMark(done bool) string {
	if done {
		return "✓"
	}
	return "✗"
}

func (r *TextRenderer) Render(ctx context.Context, w io.Writer, report *domain.WeeklyReport) error {
	if report == nil {
		return fmt.Errorf("nil report")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Habit Tracker - Weekly Report\n")
	fmt.Fprintf(&b, "Generated on %s\n", report.GeneratedOn)
	fmt.Fprintf(&b, "Week %s to %s\n\n", report.WeekStart, report.WeekEnd)
	fmt.Fprintf(&b, "Weekly completion:   %d%%\n", report.AverageWeeklyRate)
	fmt.Fprintf(&b, "Overall consistency: %d%%\n\n", report.AverageOverallConsistency)

	if len(report.Habits) == 0 {
		b.WriteString("No habits tracked yet.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Habit\tYear\tStreak\tBest\t%s\tGoal end\n", strings.Join(weekdayLabels[:], "\t"))

	for _, h := range report.Habits {
		if err := ctx.Err(); err != nil {
			return err
		}

		marks := make([]string, 0, 7)
		for _, done := range h.WeekStatus {
			marks = append(marks, statusMark(done))
		}

		goal := h.GoalEndDate
		if goal == "" {
			goal = "-"
		}

		fmt.Fprintf(tw, "%s\t%d%%\t%d\t%d\t%s\t%s\n",
			h.Name, h.YearlyRate, h.CurrentStreak, h.LongestStreak, strings.Join(marks, "\t"), goal)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := io.WriteString(w, b.String())
	return err
}
