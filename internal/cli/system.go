package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/comitanigiacomo/momentum/internal/adapters/repository"
)

type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"Exported habits: a JSON array or a document with a \"habits\" key."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var doc struct {
			Habits json.RawMessage `json:"habits"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return fmt.Errorf("failed to parse %s: %w", c.File, err)
		}
		data = doc.Habits
	}

	habits, err := repository.DecodeHabits(data, ctx.App.Config.Location)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", c.File, err)
	}

	added, skipped, err := ctx.App.Habits.Import(ctx.Ctx, habits)
	if err != nil {
		return err
	}

	ctx.printf("Imported %d habits (%d already present)\n", added, skipped)
	return nil
}

type RefreshCmd struct{}

func (c *RefreshCmd) Run(ctx *Context) error {
	changed, err := ctx.App.Worker.RefreshNow(ctx.Ctx)
	if err != nil {
		return err
	}

	ctx.printf("Refreshed streaks of %d habits\n", changed)
	return nil
}
