package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type RmCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id string
}

// NewRmCommand returns the rm command.
func NewRmCommand(rootCmd *RootCommand, app *kingpin.Application) *RmCommand {
	c := &RmCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("rm", "Delete a task.")
	c.Cmd.Arg("id", "ID of the task.").Required().StringVar(&c.id)

	return c
}

func (c RmCommand) Name() string { return c.Cmd.FullCommand() }

func (c RmCommand) Run(ctx context.Context) error {
	app, err := bootstrap(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Store.Load(ctx); err != nil {
		return syncError(c.rootCmd, app, err)
	}

	if err := app.Store.Delete(ctx, c.id); err != nil {
		return syncError(c.rootCmd, app, err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Task %s deleted\n", c.id)

	return nil
}
