package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/todoq/internal/model"
	"github.com/slok/todoq/internal/printer"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	status   string
	priority string
	tags     []string
	search   string
	format   string
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "List tasks using the persisted filter, filter flags change and persist it.")
	c.Cmd.Flag("status", "Filter by status (all, pending, completed).").EnumVar(&c.status, "all", "pending", "completed")
	c.Cmd.Flag("priority", "Filter by priority (high, medium, low).").EnumVar(&c.priority, "high", "medium", "low")
	c.Cmd.Flag("tag", "Filter by tag, tasks must have all of them (repeatable).").StringsVar(&c.tags)
	c.Cmd.Flag("search", "Filter by title substring, case-insensitive.").StringVar(&c.search)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
	app, err := bootstrap(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer app.Close()

	patch := c.filterPatch()
	if patch != (model.FilterPatch{}) {
		err = app.Store.SetFilter(ctx, patch)
	} else {
		err = app.Store.Load(ctx)
	}
	if err != nil {
		return syncError(c.rootCmd, app, err)
	}

	// Print output.
	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if summary := app.Store.Filter().Summary(); len(summary) > 0 && c.format == "table" {
		fmt.Fprintf(c.rootCmd.Stdout, "Filters: %s\n\n", strings.Join(summary, " | "))
	}

	if err := p.PrintTasks(app.Store.Tasks()); err != nil {
		return fmt.Errorf("could not print tasks: %w", err)
	}

	return nil
}

func (c ListCommand) filterPatch() model.FilterPatch {
	patch := model.FilterPatch{}

	if c.status != "" {
		s := model.Status(c.status)
		patch.Status = &s
	}
	if c.priority != "" {
		p := model.Priority(c.priority)
		patch.Priority = &p
	}
	if len(c.tags) > 0 {
		tags := c.tags
		patch.Tags = &tags
	}
	if c.search != "" {
		s := c.search
		patch.Search = &s
	}

	return patch
}
