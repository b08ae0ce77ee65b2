package main

import (
	"fmt"

	"innermotion/cmd/innermotion/ui"
	"innermotion/internal/logging"
	"innermotion/internal/report"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var watchBatch int

// watchCmd runs a simulation in a live terminal view
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a simulation run live",
	Long: `Steps the configured simulation in an interactive terminal view showing
self-strength, sync and the conscious state as they evolve.

Keys: [space] pause/resume, [q] quit.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	// The alt screen owns the terminal; logs would corrupt it.
	logging.Reset()

	sim, _, err := newSimulation()
	if err != nil {
		return err
	}

	model := ui.NewWatchModel(sim, cfg.Simulation.Steps, watchBatch)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	m, ok := final.(ui.WatchModel)
	if !ok {
		return nil
	}
	out := cmd.OutOrStdout()
	if m.Aborted() {
		fmt.Fprintf(out, "stopped at step %d\n", m.Simulation().Steps())
	}
	fmt.Fprint(out, report.Summary(m.Simulation().Summary(), report.DefaultStyles()))
	return nil
}
