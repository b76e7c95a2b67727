package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/todoq/internal/model"
	"github.com/slok/todoq/internal/printer"
)

type AddCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	title    string
	priority string
	tags     []string
	memo     string
}

// NewAddCommand returns the add command.
func NewAddCommand(rootCmd *RootCommand, app *kingpin.Application) *AddCommand {
	c := &AddCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("add", "Create a new task.")
	c.Cmd.Arg("title", "Title of the task.").Required().StringVar(&c.title)
	c.Cmd.Flag("priority", "Priority of the task (high, medium, low).").EnumVar(&c.priority, "high", "medium", "low")
	c.Cmd.Flag("tag", "Tag for the task (repeatable).").StringsVar(&c.tags)
	c.Cmd.Flag("memo", "Free text memo.").StringVar(&c.memo)

	return c
}

func (c AddCommand) Name() string { return c.Cmd.FullCommand() }

func (c AddCommand) Run(ctx context.Context) error {
	app, err := bootstrap(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer app.Close()

	task, err := app.Store.Create(ctx, model.TaskCreate{
		Title:    c.title,
		Priority: model.Priority(c.priority),
		Tags:     c.tags,
		Memo:     c.memo,
	})
	if err != nil {
		return syncError(c.rootCmd, app, err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Task %s created\n", task.ID)
	return printer.NewTablePrinter(c.rootCmd.Stdout).PrintTask(*task)
}
