package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type ToggleCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id string
}

// NewToggleCommand returns the toggle command.
func NewToggleCommand(rootCmd *RootCommand, app *kingpin.Application) *ToggleCommand {
	c := &ToggleCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("toggle", "Flip the completed state of a task.")
	c.Cmd.Arg("id", "ID of the task.").Required().StringVar(&c.id)

	return c
}

func (c ToggleCommand) Name() string { return c.Cmd.FullCommand() }

func (c ToggleCommand) Run(ctx context.Context) error {
	app, err := bootstrap(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Store.Load(ctx); err != nil {
		return syncError(c.rootCmd, app, err)
	}

	task, err := app.Store.ToggleCompletion(ctx, c.id)
	if err != nil {
		return syncError(c.rootCmd, app, err)
	}

	state := "pending"
	if task.Completed {
		state = "completed"
	}
	fmt.Fprintf(c.rootCmd.Stdout, "Task %s is now %s\n", task.ID, state)

	return nil
}
