package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/comitanigiacomo/momentum/internal/app"
	"github.com/comitanigiacomo/momentum/internal/cli"
	"github.com/comitanigiacomo/momentum/internal/config"
	"github.com/comitanigiacomo/momentum/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Env     string `help:"Optional .env file with STORE_DRIVER, STORE_PATH, TZ_NAME and friends." default:".env" type:"path"`
	Debug   bool   `help:"Log debug output to stderr."`

	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits and completions."`
	Category cli.CategoryCmd `cmd:"" help:"Manage categories."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show streaks and completion rates."`
	Badges   cli.BadgesCmd   `cmd:"" help:"Show badge progress for a habit."`
	Report   cli.ReportCmd   `cmd:"" help:"Render the weekly report."`
	Import   cli.ImportCmd   `cmd:"" help:"Import habits from an older export."`
	Refresh  cli.RefreshCmd  `cmd:"" help:"Recompute cached streaks of every habit."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("momentum"),
		kong.Description("Habit tracker with streaks, consistency and badges"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load(CLI.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug || CLI.Debug, Dir: cfg.LogDir, Quiet: true}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = kctx.Run(&cli.Context{Ctx: ctx, App: a, Out: os.Stdout})
	if closeErr := a.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
