package commands

import (
	"context"
	"fmt"
	"net/http/httptest"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/todoq/internal/apitest"
	"github.com/slok/todoq/internal/client"
	"github.com/slok/todoq/internal/model"
	"github.com/slok/todoq/internal/printer"
	"github.com/slok/todoq/internal/storage/memory"
	"github.com/slok/todoq/internal/store"
)

type DemoCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewDemoCommand returns the demo command.
func NewDemoCommand(rootCmd *RootCommand, app *kingpin.Application) *DemoCommand {
	c := &DemoCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("demo", "Run an optimistic sync walkthrough against an embedded fake API.")

	return c
}

func (c DemoCommand) Name() string { return c.Cmd.FullCommand() }

// Run walks through a create/create/toggle/delete session against an
// in-process server, printing the reconciled list at every step.
func (c DemoCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger
	out := c.rootCmd.Stdout

	srv := httptest.NewServer(apitest.NewServer().Router())
	defer srv.Close()

	gateway, err := client.NewClient(client.ClientConfig{
		BaseURL: srv.URL + "/api",
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create API client: %w", err)
	}

	filters, err := memory.NewRepository(memory.RepositoryConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create filter repository: %w", err)
	}

	st, err := store.NewStore(ctx, store.Config{
		Gateway: gateway,
		Filters: filters,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create task store: %w", err)
	}

	p := printer.NewTablePrinter(out)
	printList := func(step string) error {
		fmt.Fprintf(out, "\n== %s\n", step)
		return p.PrintTasks(st.Tasks())
	}

	first, err := st.Create(ctx, model.TaskCreate{Title: "Task 1"})
	if err != nil {
		return err
	}
	if err := printList(`created "Task 1"`); err != nil {
		return err
	}

	second, err := st.Create(ctx, model.TaskCreate{Title: "Task 2", Priority: model.PriorityHigh})
	if err != nil {
		return err
	}
	if err := printList(`created "Task 2"`); err != nil {
		return err
	}

	if _, err := st.ToggleCompletion(ctx, first.ID); err != nil {
		return err
	}
	if err := printList(`toggled "Task 1"`); err != nil {
		return err
	}

	if err := st.Delete(ctx, second.ID); err != nil {
		return err
	}
	if err := printList(`deleted "Task 2"`); err != nil {
		return err
	}

	if err := st.SetFilter(ctx, model.FilterPatch{Status: statusPtr(model.StatusCompleted)}); err != nil {
		return err
	}
	if err := printList("filter status=completed"); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nDemo finished")

	return nil
}

func statusPtr(s model.Status) *model.Status { return &s }
