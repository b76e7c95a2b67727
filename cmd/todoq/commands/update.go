package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/todoq/internal/model"
	"github.com/slok/todoq/internal/printer"
)

type UpdateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id        string
	title     string
	priority  string
	tags      []string
	clearTags bool
	memo      string
	clearMemo bool
}

// NewUpdateCommand returns the update command.
func NewUpdateCommand(rootCmd *RootCommand, app *kingpin.Application) *UpdateCommand {
	c := &UpdateCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("update", "Update fields of a task, unset flags leave the field untouched.")
	c.Cmd.Arg("id", "ID of the task.").Required().StringVar(&c.id)
	c.Cmd.Flag("title", "New title.").StringVar(&c.title)
	c.Cmd.Flag("priority", "New priority (high, medium, low).").EnumVar(&c.priority, "high", "medium", "low")
	c.Cmd.Flag("tag", "Replace the tags with these (repeatable).").StringsVar(&c.tags)
	c.Cmd.Flag("clear-tags", "Remove all tags.").BoolVar(&c.clearTags)
	c.Cmd.Flag("memo", "New memo.").StringVar(&c.memo)
	c.Cmd.Flag("clear-memo", "Remove the memo.").BoolVar(&c.clearMemo)

	return c
}

func (c UpdateCommand) Name() string { return c.Cmd.FullCommand() }

func (c UpdateCommand) Run(ctx context.Context) error {
	patch := model.TaskUpdate{}
	if c.title != "" {
		patch.Title = &c.title
	}
	if c.priority != "" {
		p := model.Priority(c.priority)
		patch.Priority = &p
	}
	switch {
	case c.clearTags:
		empty := []string{}
		patch.Tags = &empty
	case len(c.tags) > 0:
		patch.Tags = &c.tags
	}
	switch {
	case c.clearMemo:
		empty := ""
		patch.Memo = &empty
	case c.memo != "":
		patch.Memo = &c.memo
	}

	if patch.IsZero() {
		return fmt.Errorf("nothing to update, at least one field flag is required")
	}

	app, err := bootstrap(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer app.Close()

	// The list must hold the task before the store can patch it.
	if err := app.Store.Load(ctx); err != nil {
		return syncError(c.rootCmd, app, err)
	}

	task, err := app.Store.Update(ctx, c.id, patch)
	if err != nil {
		return syncError(c.rootCmd, app, err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Task %s updated\n", task.ID)
	return printer.NewTablePrinter(c.rootCmd.Stdout).PrintTask(*task)
}
