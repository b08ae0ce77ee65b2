package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"innermotion/internal/config"
	"innermotion/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Simulation flags, applied over the config file when set
	variant     string
	environment string
	steps       int
	seed        int64
	noMemory    bool
	dnaFlags    []string
	learning    bool

	// Output flags
	format string
	plain  bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "innermotion",
	Short: "innermotion - qualia, self-strength and consciousness simulator",
	Long: `innermotion runs a discrete-time agent that receives stimuli, predicts
the next one, remembers what it saw and grows a "self" out of repetition.

A step is conscious when both self-strength and prediction-error sync reach
0.3. Five presets cover the stages of the model: minimal, expansion, dna,
memory and consciousness.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := applyFlags(cmd, loaded); err != nil {
			return err
		}
		if verbose {
			loaded.Logging.Level = "debug"
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if err := logging.Initialize(loaded.Logging.Logging()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg = loaded
		logger = logging.Get(logging.CategoryBoot).Zap()
		logging.ConfigDebug("configuration resolved: path=%q variant=%s environment=%s steps=%d seed=%d memory=%t",
			configPath, cfg.Simulation.Variant, cfg.Simulation.Environment,
			cfg.Simulation.Steps, cfg.Simulation.Seed, cfg.Simulation.Memory.Enabled)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync()
	},
}

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("variant") {
		c.Simulation.Variant = variant
	}
	if flags.Changed("environment") {
		c.Simulation.Environment = environment
	}
	if flags.Changed("steps") {
		c.Simulation.Steps = steps
		c.Experiment.Steps = steps
	}
	if flags.Changed("seed") {
		c.Simulation.Seed = seed
	}
	if flags.Changed("no-memory") && noMemory {
		c.Simulation.Memory.Enabled = false
	}
	if flags.Changed("learning") {
		c.Simulation.Learning.Enabled = learning
	}
	if flags.Changed("dna") {
		dna, err := parseDNA(dnaFlags)
		if err != nil {
			return err
		}
		if c.Simulation.DNA == nil {
			c.Simulation.DNA = make(map[string]float64, len(dna))
		}
		for tag, v := range dna {
			c.Simulation.DNA[tag] = v
		}
	}
	return nil
}

// parseDNA parses "tag=value" pairs.
func parseDNA(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		tag, raw, ok := strings.Cut(pair, "=")
		tag = strings.TrimSpace(tag)
		if !ok || tag == "" {
			return nil, fmt.Errorf("invalid --dna %q: want tag=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --dna %q: %w", pair, err)
		}
		out[tag] = v
	}
	return out, nil
}

func addSimulationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&variant, "variant", "", "Preset: minimal, expansion, dna, memory, consciousness")
	cmd.Flags().StringVarP(&environment, "environment", "e", "", "Environment: simple, medium, complex, focused, varied, all")
	cmd.Flags().IntVarP(&steps, "steps", "n", 0, "Number of steps")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = time-based)")
	cmd.Flags().BoolVar(&noMemory, "no-memory", false, "Disable the memory store")
	cmd.Flags().StringSliceVar(&dnaFlags, "dna", nil, "DNA override tag=value (repeatable), e.g. --dna pain=100")
	cmd.Flags().BoolVar(&learning, "learning", false, "Enable the learned-adjustment update")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&format, "format", "o", "text", "Output format: text, json, yaml")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print findings as raw markdown")
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "innermotion.yaml", "Config file path")

	addSimulationFlags(runCmd)
	addOutputFlags(runCmd)
	addSimulationFlags(feelCmd)
	addSimulationFlags(watchCmd)
	watchCmd.Flags().IntVar(&watchBatch, "batch", 0, "Steps per frame (0 = auto)")
	compareCmd.Flags().IntVarP(&steps, "steps", "n", 0, "Number of steps per run")
	compareCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed shared by all runs (0 = time-based)")
	compareCmd.Flags().IntVarP(&parallelism, "parallel", "p", 0, "Concurrent runs (0 = config)")
	addOutputFlags(compareCmd)
	configInitCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(feelCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
