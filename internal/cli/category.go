package cli

type CategoryCmd struct {
	Add    CategoryAddCmd    `cmd:"" help:"Add a category."`
	List   CategoryListCmd   `cmd:"" help:"List categories."`
	Delete CategoryDeleteCmd `cmd:"" help:"Delete a category. Its habits are kept without a category."`
}

type CategoryAddCmd struct {
	Name  string `arg:"" help:"Category name."`
	Color string `help:"Palette name or #RRGGBB."`
	Icon  string `help:"Icon name."`
}

func (c *CategoryAddCmd) Run(ctx *Context) error {
	category, err := ctx.App.Categories.Create(ctx.Ctx, c.Name, c.Color, c.Icon)
	if err != nil {
		return err
	}

	ctx.printf("Added category: %s %s\n", titleStyle.Render(category.Name), mutedStyle.Render(category.ID))
	return nil
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *Context) error {
	categories, err := ctx.App.Categories.List(ctx.Ctx)
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		ctx.println("No categories found.")
		return nil
	}

	for _, cat := range categories {
		ctx.printf("%s  %s\n", habitStyle(cat.Color).Render(cat.Name), mutedStyle.Render(cat.ID))
	}
	return nil
}

type CategoryDeleteCmd struct {
	Category string `arg:"" help:"Category id or name."`
}

func (c *CategoryDeleteCmd) Run(ctx *Context) error {
	category, err := ctx.resolveCategory(c.Category)
	if err != nil {
		return err
	}

	detached, err := ctx.App.Categories.Delete(ctx.Ctx, category.ID)
	if err != nil {
		return err
	}

	ctx.printf("Deleted category: %s (%d habits now uncategorized)\n", category.Name, detached)
	return nil
}
