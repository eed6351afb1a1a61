package cli

import (
	"fmt"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
	"github.com/comitanigiacomo/momentum/internal/core/services"
	"github.com/comitanigiacomo/momentum/internal/core/streaks"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with their streaks."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit permanently."`
	Toggle HabitToggleCmd `cmd:"" help:"Mark or unmark a habit for a day."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `help:"Optional description."`
	Frequency   string `help:"daily, weekly, monthly or specific_days." enum:"daily,weekly,monthly,specific_days" default:"daily"`
	Days        string `help:"Weekdays for specific_days, e.g. mon,wed,fri."`
	Goal        string `help:"Free-text goal."`
	GoalEnd     string `help:"Goal end date (YYYY-MM-DD)."`
	Category    string `help:"Category id or name."`
	Color       string `help:"Palette name or #RRGGBB."`
	Icon        string `help:"Icon name."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	days, err := ParseWeekdays(c.Days)
	if err != nil {
		return err
	}

	categoryID := ""
	if c.Category != "" {
		cat, err := ctx.resolveCategory(c.Category)
		if err != nil {
			return err
		}
		categoryID = cat.ID
	}

	habit, err := ctx.App.Habits.Create(ctx.Ctx, services.CreateHabitInput{
		Name:         c.Name,
		Description:  c.Description,
		Frequency:    c.Frequency,
		SpecificDays: days,
		Goal:         c.Goal,
		GoalEndDate:  c.GoalEnd,
		CategoryID:   categoryID,
		Color:        c.Color,
		Icon:         c.Icon,
	})
	if err != nil {
		return err
	}

	ctx.printf("Added habit: %s %s\n", habitStyle(habit.Color).Render(habit.Name), mutedStyle.Render(habit.ID))
	return nil
}

type HabitListCmd struct {
	Category string `help:"Only habits in this category (id or name)."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	categoryID := ""
	if c.Category != "" {
		cat, err := ctx.resolveCategory(c.Category)
		if err != nil {
			return err
		}
		categoryID = cat.ID
	}

	habits, err := ctx.App.Habits.List(ctx.Ctx, categoryID)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		ctx.println("No habits found.")
		return nil
	}

	today := ctx.App.Clock.Now()
	for _, h := range habits {
		ctx.printf("%s %s  %s  %s  %s\n",
			mark(streaks.IsComplete(h, today)),
			habitStyle(h.Color).Render(h.Name),
			mutedStyle.Render(formatFrequency(h)),
			streakStyle.Render(fmt.Sprintf("streak %d", h.Streak)),
			mutedStyle.Render(fmt.Sprintf("best %d  %s", h.LongestStreak, h.ID)),
		)
	}

	return nil
}

type HabitEditCmd struct {
	Habit       string `arg:"" help:"Habit id or name."`
	Name        string `help:"New name."`
	Description string `help:"New description."`
	Frequency   string `help:"daily, weekly, monthly or specific_days."`
	Days        string `help:"Weekdays for specific_days, e.g. mon,wed,fri."`
	Goal        string `help:"New goal."`
	GoalEnd     string `help:"New goal end date (YYYY-MM-DD)."`
	Category    string `help:"Move to this category (id or name)."`
	NoCategory  bool   `help:"Remove the habit from its category."`
	Color       string `help:"Palette name or #RRGGBB."`
	Icon        string `help:"Icon name."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}

	days, err := ParseWeekdays(c.Days)
	if err != nil {
		return err
	}

	input := services.UpdateHabitInput{
		ID:           habit.ID,
		Name:         c.Name,
		Description:  c.Description,
		Frequency:    c.Frequency,
		SpecificDays: days,
		Goal:         c.Goal,
		GoalEndDate:  c.GoalEnd,
		Color:        c.Color,
		Icon:         c.Icon,
	}

	switch {
	case c.NoCategory:
		none := ""
		input.CategoryID = &none
	case c.Category != "":
		cat, err := ctx.resolveCategory(c.Category)
		if err != nil {
			return err
		}
		input.CategoryID = &cat.ID
	}

	updated, err := ctx.App.Habits.Update(ctx.Ctx, input)
	if err != nil {
		return err
	}

	ctx.printf("Updated habit: %s\n", habitStyle(updated.Color).Render(updated.Name))
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}

	if err := ctx.App.Habits.Delete(ctx.Ctx, habit.ID); err != nil {
		return err
	}

	ctx.printf("Deleted habit: %s\n", habit.Name)
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}

	updated, done, err := ctx.App.Habits.ToggleCompletion(ctx.Ctx, habit.ID, c.Date)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = domain.DateKey(ctx.App.Clock.Now())
	}

	verb := "Unmarked"
	if done {
		verb = "Marked"
	}
	ctx.printf("%s %s %q for %s  %s\n", mark(done), verb, updated.Name, day,
		streakStyle.Render(fmt.Sprintf("streak %d (best %d)", updated.Streak, updated.LongestStreak)))
	return nil
}
