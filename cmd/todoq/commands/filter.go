package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/todoq/internal/model"
)

type FilterShowCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewFilterShowCommand returns the filter show command.
func NewFilterShowCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *FilterShowCommand {
	c := &FilterShowCommand{rootCmd: rootCmd}
	c.Cmd = parent.Command("show", "Show the persisted filter.")
	return c
}

func (c FilterShowCommand) Name() string { return c.Cmd.FullCommand() }

func (c FilterShowCommand) Run(ctx context.Context) error {
	app, err := bootstrap(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer app.Close()

	summary := app.Store.Filter().Summary()
	if len(summary) == 0 {
		fmt.Fprintln(c.rootCmd.Stdout, "No active filters")
		return nil
	}

	for _, line := range summary {
		fmt.Fprintln(c.rootCmd.Stdout, line)
	}

	return nil
}

type FilterSetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	status   string
	priority string
	tags     []string
	search   string
}

// NewFilterSetCommand returns the filter set command.
func NewFilterSetCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *FilterSetCommand {
	c := &FilterSetCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("set", "Merge fields into the persisted filter, unset flags keep their value.")
	c.Cmd.Flag("status", "Status constraint (all, pending, completed).").EnumVar(&c.status, "all", "pending", "completed")
	c.Cmd.Flag("priority", "Priority constraint (high, medium, low).").EnumVar(&c.priority, "high", "medium", "low")
	c.Cmd.Flag("tag", "Required tag (repeatable).").StringsVar(&c.tags)
	c.Cmd.Flag("search", "Title substring constraint.").StringVar(&c.search)

	return c
}

func (c FilterSetCommand) Name() string { return c.Cmd.FullCommand() }

func (c FilterSetCommand) Run(ctx context.Context) error {
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
		patch.Tags = &c.tags
	}
	if c.search != "" {
		patch.Search = &c.search
	}

	if patch == (model.FilterPatch{}) {
		return fmt.Errorf("nothing to set, at least one filter flag is required")
	}

	app, err := bootstrap(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Store.SetFilter(ctx, patch); err != nil {
		return syncError(c.rootCmd, app, err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Filter saved: %s\n", strings.Join(app.Store.Filter().Summary(), " | "))

	return nil
}

type FilterClearCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewFilterClearCommand returns the filter clear command.
func NewFilterClearCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *FilterClearCommand {
	c := &FilterClearCommand{rootCmd: rootCmd}
	c.Cmd = parent.Command("clear", "Reset the persisted filter to the default.")
	return c
}

func (c FilterClearCommand) Name() string { return c.Cmd.FullCommand() }

func (c FilterClearCommand) Run(ctx context.Context) error {
	app, err := bootstrap(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer app.Close()

	def := model.DefaultFilter()
	empty := []string{}
	noSearch := ""
	noPriority := model.Priority("")
	err = app.Store.SetFilter(ctx, model.FilterPatch{
		Status:   &def.Status,
		Priority: &noPriority,
		Tags:     &empty,
		Search:   &noSearch,
	})
	if err != nil {
		return syncError(c.rootCmd, app, err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, "Filter reset to default")

	return nil
}
