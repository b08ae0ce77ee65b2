package main

import (
	"fmt"

	"innermotion/internal/experiment"
	"innermotion/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var parallelism int

// compareCmd runs a built-in comparison in parallel
var compareCmd = &cobra.Command{
	Use:   "compare [complexity|focus|memory]",
	Short: "Run a comparison of independent simulations",
	Long: `Runs several independent simulations side by side and tabulates them.

Comparisons:
  complexity  expansion variant in simple, medium and complex environments
  focus       consciousness variant in focused and varied environments
  memory      memory variant with and without its memory store

All runs of a comparison share one seed, so they differ only in the
compared setting.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"complexity", "focus", "memory"},
	RunE:      runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	s := cfg.ResolveSeed()
	cases, err := experiment.Lookup(args[0], s)
	if err != nil {
		return err
	}

	runner := experiment.Runner{
		Steps:       cfg.Experiment.StepsOr(cfg.Simulation.Steps),
		Parallelism: cfg.Experiment.Parallelism,
	}
	if parallelism > 0 {
		runner.Parallelism = parallelism
	}
	logger.Info("starting comparison",
		zap.String("name", args[0]),
		zap.Int("cases", len(cases)),
		zap.Int64("seed", s),
		zap.Int("steps", runner.Steps))

	ctx, cancel := signalContext()
	defer cancel()

	result, err := runner.Run(ctx, args[0], cases)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return writeJSON(out, result)
	case "yaml":
		return writeYAML(out, result)
	}
	fmt.Fprint(out, report.Comparison(result, report.DefaultStyles()))
	return printMarkdown(out, report.Findings(result))
}
