package main

import (
	"context"
	"errors"
	"fmt"

	"innermotion/internal/qualia"

	"github.com/spf13/cobra"
)

// feelCmd runs a simulation and asks how stimuli feel
var feelCmd = &cobra.Command{
	Use:   "feel [stimulus...]",
	Short: "Run a simulation, then ask the agent how stimuli feel",
	Long: `Runs the configured simulation and asks for a feeling report per stimulus.
Before the agent acquires language every answer is the same refusal.

Defaults to pain, sweet and red when no stimulus is given.

Example:
  innermotion feel pain sweet -n 50     # too early: no language yet
  innermotion feel pain sweet -n 5000`,
	RunE: runFeel,
}

func runFeel(cmd *cobra.Command, args []string) error {
	sim, _, err := newSimulation()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	if _, err := sim.Run(ctx, cfg.Simulation.Steps); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	tags := demoTags(sim)
	if len(args) > 0 {
		tags = make([]qualia.Tag, len(args))
		for i, a := range args {
			tags[i] = qualia.Tag(a)
		}
	}

	out := cmd.OutOrStdout()
	if at, ok := sim.LanguageAcquiredAt(); ok {
		fmt.Fprintf(out, "language acquired at step %d of %d\n", at, sim.Steps())
	} else {
		fmt.Fprintf(out, "no language after %d steps (self-strength %.3f)\n", sim.Steps(), sim.SelfStrength())
	}
	return printFeelings(out, sim, tags)
}
