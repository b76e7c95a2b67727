package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/todoq/internal/printer"
)

type TagsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewTagsCommand returns the tags command.
func NewTagsCommand(rootCmd *RootCommand, app *kingpin.Application) *TagsCommand {
	c := &TagsCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("tags", "List the known tags.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c TagsCommand) Name() string { return c.Cmd.FullCommand() }

func (c TagsCommand) Run(ctx context.Context) error {
	app, err := bootstrap(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Store.LoadTags(ctx); err != nil {
		return syncError(c.rootCmd, app, err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintTags(app.Store.Tags()); err != nil {
		return fmt.Errorf("could not print tags: %w", err)
	}

	return nil
}
