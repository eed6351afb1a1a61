package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/momentum/internal/app"
	"github.com/comitanigiacomo/momentum/internal/config"
	"github.com/comitanigiacomo/momentum/internal/core/domain"
)

type testCLI struct {
	Habit    HabitCmd    `cmd:""`
	Category CategoryCmd `cmd:""`
	Stats    StatsCmd    `cmd:""`
	Badges   BadgesCmd   `cmd:""`
	Report   ReportCmd   `cmd:""`
	Import   ImportCmd   `cmd:""`
	Refresh  RefreshCmd  `cmd:""`
}

func newTestApp(t *testing.T) *app.App {
	t.Helper()

	a, err := app.New(context.Background(), config.Config{
		StoreDriver: config.DriverMemory,
		Location:    time.UTC,
		RefreshCron: "0 5 0 * * *",
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func run(t *testing.T, a *app.App, args ...string) (string, error) {
	t.Helper()

	var cli testCLI
	parser, err := kong.New(&cli, kong.Name("momentum"), kong.Exit(func(int) {}))
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	err = kctx.Run(&Context{Ctx: context.Background(), App: a, Out: &out})
	return out.String(), err
}

func mustRun(t *testing.T, a *app.App, args ...string) string {
	t.Helper()
	out, err := run(t, a, args...)
	require.NoError(t, err, out)
	return out
}

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "mon,wed,fri", want: []int{1, 3, 5}},
		{in: "Sunday, saturday", want: []int{0, 6}},
		{in: "0,6", want: []int{0, 6}},
		{in: "7", wantErr: true},
		{in: "someday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekdays(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHabitCommands(t *testing.T) {
	a := newTestApp(t)
	yesterday := domain.DateKey(time.Now().UTC().AddDate(0, 0, -1))

	out := mustRun(t, a, "habit", "add", "Read", "--color", "blue", "--goal", "20 pages")
	assert.Contains(t, out, "Added habit: Read")

	out = mustRun(t, a, "habit", "list")
	assert.Contains(t, out, "Read")
	assert.Contains(t, out, "streak 0")

	out = mustRun(t, a, "habit", "toggle", "read")
	assert.Contains(t, out, "Marked")
	assert.Contains(t, out, "streak 1")

	out = mustRun(t, a, "habit", "toggle", "Read", "--date", yesterday)
	assert.Contains(t, out, "streak 2 (best 2)")

	out = mustRun(t, a, "habit", "add", "Gym", "--frequency", "specific_days", "--days", "mon,fri")
	assert.Contains(t, out, "Gym")

	out = mustRun(t, a, "habit", "list")
	assert.Contains(t, out, "on Mon,Fri")

	out = mustRun(t, a, "habit", "edit", "Gym", "--name", "Lift")
	assert.Contains(t, out, "Updated habit: Lift")

	out = mustRun(t, a, "habit", "delete", "Lift")
	assert.Contains(t, out, "Deleted habit: Lift")

	_, err := run(t, a, "habit", "delete", "Lift")
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)

	_, err = run(t, a, "habit", "add", "Swim", "--frequency", "specific_days", "--days", "someday")
	assert.Error(t, err)

	_, err = run(t, a, "habit", "toggle", "Read", "--date", "yesterday")
	assert.ErrorIs(t, err, domain.ErrInvalidCompletion)
}

func TestHabitCommands_AmbiguousName(t *testing.T) {
	a := newTestApp(t)

	mustRun(t, a, "habit", "add", "Read")
	mustRun(t, a, "habit", "add", "read")

	_, err := run(t, a, "habit", "toggle", "READ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestCategoryCommands(t *testing.T) {
	a := newTestApp(t)

	out := mustRun(t, a, "category", "add", "Health", "--color", "green")
	assert.Contains(t, out, "Added category: Health")

	mustRun(t, a, "habit", "add", "Run", "--category", "health")
	mustRun(t, a, "habit", "add", "Read")
	mustRun(t, a, "habit", "toggle", "Run")

	out = mustRun(t, a, "habit", "list", "--category", "Health")
	assert.Contains(t, out, "Run")
	assert.NotContains(t, out, "Read")

	out = mustRun(t, a, "category", "list")
	assert.Contains(t, out, "Health")

	out = mustRun(t, a, "category", "delete", "Health")
	assert.Contains(t, out, "1 habits now uncategorized")

	out = mustRun(t, a, "category", "list")
	assert.Contains(t, out, "No categories found.")

	out = mustRun(t, a, "habit", "list")
	assert.Contains(t, out, "streak 1", "cascade keeps completions")

	_, err := run(t, a, "habit", "add", "Swim", "--category", "Health")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestStatsBadgesAndReport(t *testing.T) {
	a := newTestApp(t)
	yesterday := domain.DateKey(time.Now().UTC().AddDate(0, 0, -1))

	mustRun(t, a, "habit", "add", "Read")
	mustRun(t, a, "habit", "toggle", "Read")
	mustRun(t, a, "habit", "toggle", "Read", "--date", yesterday)

	out := mustRun(t, a, "stats")
	assert.Contains(t, out, "Statistics for")
	assert.Contains(t, out, "Habits:              1")

	out = mustRun(t, a, "stats", "Read")
	assert.Contains(t, out, "streak 2")
	assert.Contains(t, out, "total 2")

	out = mustRun(t, a, "badges", "Read")
	assert.Contains(t, out, "Badges for Read")
	assert.Contains(t, out, "Next: 1 Week")
	assert.Contains(t, out, "28%")

	out = mustRun(t, a, "report")
	assert.Contains(t, out, "Weekly Report")
	assert.Contains(t, out, "Read")

	out = mustRun(t, a, "report", "--json")
	assert.Contains(t, out, `"week_status"`)

	path := filepath.Join(t.TempDir(), "weekly.txt")
	out = mustRun(t, a, "report", "-o", path)
	assert.Contains(t, out, "Report written to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Read")
}

func TestImportAndRefresh(t *testing.T) {
	a := newTestApp(t)
	today := domain.DateKey(time.Now().UTC())

	path := filepath.Join(t.TempDir(), "export.json")
	export := `{"habits": [
  {"id": "legacy-1", "name": "Meditate", "frequency": "daily",
   "createdAt": "2024-01-01T08:00:00.000Z",
   "completionHistory": ["` + today + `", "not-a-date"],
   "streak": 99}
]}`
	require.NoError(t, os.WriteFile(path, []byte(export), 0600))

	out := mustRun(t, a, "import", path)
	assert.Contains(t, out, "Imported 1 habits (0 already present)")

	out = mustRun(t, a, "import", path)
	assert.Contains(t, out, "Imported 0 habits (1 already present)")

	out = mustRun(t, a, "stats", "legacy-1")
	assert.Contains(t, out, "streak 1")

	out = mustRun(t, a, "refresh")
	assert.Contains(t, out, "Refreshed streaks of 0 habits")
}
