package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"innermotion/internal/engine"
	"innermotion/internal/logging"
	"innermotion/internal/qualia"
	"innermotion/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// mixedDisplayLimit caps the mixed-state rows printed by run.
const mixedDisplayLimit = 10

// demoStimuli are the tags asked about after a run.
var demoStimuli = []qualia.Tag{"pain", "sweet", "red"}

// runCmd runs one simulation and prints its summary
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation and print its summary",
	Long: `Runs the configured variant for the configured number of steps.

Examples:
  innermotion run --variant consciousness -e focused -n 10000
  innermotion run --variant dna --dna pain=100 -n 1000
  innermotion run --variant memory --no-memory -o json`,
	Args: cobra.NoArgs,
	RunE: runSimulation,
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// newSimulation builds the configured simulation with its own seeded source.
func newSimulation() (*engine.Simulation, int64, error) {
	s := cfg.ResolveSeed()
	src := rand.New(rand.NewSource(s))
	p, err := cfg.Params(src)
	if err != nil {
		return nil, 0, err
	}
	sim, err := engine.NewSimulation(p, src)
	if err != nil {
		return nil, 0, err
	}
	return sim, s, nil
}

// checkFormat rejects output formats other than text, json and yaml.
func checkFormat() error {
	switch format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("invalid --format %q (valid: text, json, yaml)", format)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	sim, s, err := newSimulation()
	if err != nil {
		return err
	}
	logger.Info("starting run",
		zap.String("run", sim.ID()),
		zap.String("variant", cfg.Simulation.Variant),
		zap.Int64("seed", s),
		zap.Int("steps", cfg.Simulation.Steps))

	ctx, cancel := signalContext()
	defer cancel()

	if _, err := sim.Run(ctx, cfg.Simulation.Steps); err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Warn("run interrupted", zap.Int("step", sim.Steps()))
	}

	out := cmd.OutOrStdout()
	summary := sim.Summary()
	switch format {
	case "json":
		return writeJSON(out, summary)
	case "yaml":
		return writeYAML(out, summary)
	}

	styles := report.DefaultStyles()
	fmt.Fprint(out, report.Summary(summary, styles))
	fmt.Fprintln(out)
	fmt.Fprint(out, report.History(sim.History(), 60, styles))
	if ms := sim.MixedStates(); len(ms) > 0 {
		fmt.Fprintln(out)
		fmt.Fprint(out, report.MixedStates(ms, mixedDisplayLimit, styles))
	}
	fmt.Fprintln(out)
	if err := printFeelings(out, sim, demoTags(sim)); err != nil {
		return err
	}
	return printMarkdown(out, report.RunFindings(summary))
}

// demoTags keeps the demo stimuli the run's catalog knows.
func demoTags(sim *engine.Simulation) []qualia.Tag {
	cat := sim.Engine().Catalog()
	tags := make([]qualia.Tag, 0, len(demoStimuli))
	for _, t := range demoStimuli {
		if cat.Contains(t) {
			tags = append(tags, t)
		}
	}
	return tags
}

func printFeelings(w io.Writer, sim *engine.Simulation, tags []qualia.Tag) error {
	for _, t := range tags {
		msg, err := sim.ReportFeeling(t)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-8s %s\n", t+":", msg)
	}
	return nil
}

func printMarkdown(w io.Writer, md string) error {
	fmt.Fprintln(w)
	if plain {
		_, err := fmt.Fprint(w, md)
		return err
	}
	rendered, err := report.RenderMarkdown(md, "", 80)
	if err != nil {
		logging.ReportDebug("markdown rendering failed, printing raw: %v", err)
		rendered = md
	}
	_, err = fmt.Fprint(w, rendered)
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
