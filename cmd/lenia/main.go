package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"lenia-ca/internal/config"
	"lenia-ca/internal/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lenia",
		Short: "Headless Game of Life and Lenia runner",
		Long: `lenia runs the generalized cellular automaton without a window.

Game of Life (discrete mode) and Lenia (continuous mode) share one update
rule: convolve the grid with a kernel, map the result through a growth
function and integrate with a time step.

Configuration comes from defaults, an optional YAML file (--config) and
LENIA_* environment variables, in that order; command flags win last.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug or trace")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newKernelCmd(),
		newGrowthCmd(),
		newSweepCmd(),
		newPatternsCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// addSimFlags registers the overrides shared by commands that build an
// automaton.
func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", "", "discrete (life) or continuous (lenia)")
	cmd.Flags().String("pattern", "", "initial pattern (see 'lenia patterns')")
	cmd.Flags().Int64("seed", 0, "random seed")
	cmd.Flags().Int("width", 0, "grid width")
	cmd.Flags().Int("height", 0, "grid height")
	cmd.Flags().String("conv", "", "convolver: auto, direct or fft")
}

// addRuleFlags registers the kernel and growth parameter overrides.
func addRuleFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("mu", 0, "kernel ring position")
	cmd.Flags().Float64("sigma", 0, "kernel ring width")
	cmd.Flags().Int("radius", 0, "kernel radius in cells")
	cmd.Flags().Float64("growth-mu", 0, "growth center")
	cmd.Flags().Float64("growth-sigma", 0, "growth width")
	cmd.Flags().Float64("dt", 0, "time step (0 selects the mode default)")
}

// loadConfig resolves the configuration for cmd: file and environment first,
// then any sim flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("mode") {
		mode, _ := flags.GetString("mode")
		if mode != cfg.Simulation.Mode {
			cfg.Simulation.Mode = mode
			// a mode switch without an explicit time step takes the mode's own
			cfg.Simulation.TimeStep = 0
		}
	}
	if flags.Changed("pattern") {
		cfg.Simulation.Pattern, _ = flags.GetString("pattern")
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("width") {
		cfg.Grid.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		cfg.Grid.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("conv") {
		cfg.Simulation.Convolver, _ = flags.GetString("conv")
	}
	floatFlags := []struct {
		name string
		dst  *float64
	}{
		{"mu", &cfg.Simulation.Mu},
		{"sigma", &cfg.Simulation.Sigma},
		{"growth-mu", &cfg.Simulation.GrowthMu},
		{"growth-sigma", &cfg.Simulation.GrowthSigma},
		{"dt", &cfg.Simulation.TimeStep},
	}
	for _, f := range floatFlags {
		if flags.Changed(f.name) {
			*f.dst, _ = flags.GetFloat64(f.name)
		}
	}
	if flags.Changed("radius") {
		cfg.Simulation.Radius, _ = flags.GetInt("radius")
	}
	if lvl, _ := flags.GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
}
