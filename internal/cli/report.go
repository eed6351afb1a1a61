package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

type ReportCmd struct {
	Output string `short:"o" help:"Write the report to this file instead of stdout." type:"path"`
	JSON   bool   `help:"Print the report model as JSON."`
}

func (c *ReportCmd) Run(ctx *Context) error {
	report, err := ctx.App.Reports.Weekly(ctx.Ctx)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if c.Output == "" {
		return ctx.App.Reports.Render(ctx.Ctx, ctx.Out, report)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := ctx.App.Reports.Render(ctx.Ctx, f, report); err != nil {
		return err
	}

	ctx.printf("Report written to %s\n", c.Output)
	return nil
}
