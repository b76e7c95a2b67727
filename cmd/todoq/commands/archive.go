package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/todoq/internal/printer"
)

type ArchiveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewArchiveCommand returns the archive command.
func NewArchiveCommand(rootCmd *RootCommand, app *kingpin.Application) *ArchiveCommand {
	c := &ArchiveCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("archive", "List completed tasks grouped by completion date.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ArchiveCommand) Name() string { return c.Cmd.FullCommand() }

func (c ArchiveCommand) Run(ctx context.Context) error {
	app, err := bootstrap(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Store.LoadArchive(ctx); err != nil {
		return syncError(c.rootCmd, app, err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintArchive(app.Store.Archive()); err != nil {
		return fmt.Errorf("could not print archive: %w", err)
	}

	return nil
}
