package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/todoq/internal/health"
	"github.com/slok/todoq/internal/model"
)

type DoctorCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewDoctorCommand returns the doctor command.
func NewDoctorCommand(rootCmd *RootCommand, app *kingpin.Application) *DoctorCommand {
	c := &DoctorCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("doctor", "Run connectivity preflight checks against the API.")

	return c
}

func (c DoctorCommand) Name() string { return c.Cmd.FullCommand() }

func (c DoctorCommand) Run(ctx context.Context) error {
	app, err := bootstrap(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer app.Close()

	out := c.rootCmd.Stdout

	var results []model.CheckResult

	// The tags listing is the cheapest call the API has, use it as probe.
	monitor := app.Monitor
	probe := func(ctx context.Context) error {
		_, err := app.Gateway.ListTags(ctx)
		return err
	}

	probeMonitor, err := health.NewMonitor(health.MonitorConfig{
		Probe:  probe,
		Logger: c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create probe monitor: %w", err)
	}

	start := time.Now()
	probeErr := probeMonitor.Check(ctx)
	latency := time.Since(start)

	switch {
	case probeErr != nil:
		results = append(results, model.CheckResult{
			ID:      "api_reachable",
			Status:  model.CheckStatusError,
			Message: fmt.Sprintf("API is not reachable: %s", probeErr),
		})
	case probeMonitor.State() == health.StateDegraded:
		results = append(results, model.CheckResult{
			ID:      "api_reachable",
			Status:  model.CheckStatusWarning,
			Message: fmt.Sprintf("API answers but slowly (%s)", latency.Round(time.Millisecond)),
		})
	default:
		results = append(results, model.CheckResult{
			ID:      "api_reachable",
			Status:  model.CheckStatusOK,
			Message: fmt.Sprintf("API answered in %s", latency.Round(time.Millisecond)),
		})
	}

	// The transport also fed the main monitor through the probe call.
	stateResult := model.CheckResult{ID: "connection_state", Status: model.CheckStatusOK, Message: string(monitor.State())}
	if monitor.State() == health.StateOffline {
		stateResult.Status = model.CheckStatusError
		if since, ok := monitor.SinceOnline(); ok {
			stateResult.Message = fmt.Sprintf("offline, last online %s ago", since.Round(time.Second))
		} else {
			stateResult.Message = "offline, never reached the API this session"
		}
	}
	results = append(results, stateResult)

	fmt.Fprintf(out, "Checking API at %s...\n", apiURLForDisplay(c.rootCmd))
	for _, r := range results {
		fmt.Fprintf(out, "  %s %-18s %s\n", statusIcon(r.Status), r.ID, r.Message)
	}

	ok, warnings, errs := model.CountByStatus(results)
	fmt.Fprintln(out)
	if errs == 0 && warnings == 0 {
		fmt.Fprintf(out, "All %d checks passed!\n", ok)
		return nil
	}

	fmt.Fprintf(out, "%d ok, %d warning(s), %d error(s)\n", ok, warnings, errs)
	if errs > 0 {
		return fmt.Errorf("preflight checks failed with %d error(s)", errs)
	}

	return nil
}

func statusIcon(status model.CheckStatus) string {
	switch status {
	case model.CheckStatusOK:
		return "OK"
	case model.CheckStatusWarning:
		return "!!"
	case model.CheckStatusError:
		return "XX"
	default:
		return "??"
	}
}

func apiURLForDisplay(rootCmd *RootCommand) string {
	if rootCmd.APIURL != "" {
		return rootCmd.APIURL
	}
	return DefaultAPIURL
}
