package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"lenia-ca/internal/core"
	"lenia-ca/internal/logging"
	"lenia-ca/internal/render"
	"lenia-ca/internal/sched"
	"lenia-ca/pkg/lenia"
	"lenia-ca/pkg/sims/automaton"
)

type runSummary struct {
	RunID      string  `json:"run_id"`
	Sim        string  `json:"sim"`
	Generation int     `json:"generation"`
	Mass       float64 `json:"mass"`
	Mean       float64 `json:"mean"`
	Max        float64 `json:"max"`
	Live       int     `json:"live"`
	Extinct    bool    `json:"extinct"`
	Elapsed    string  `json:"elapsed"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Advance the automaton and report statistics",
		Long: `Run the automaton for a fixed number of generations and print a summary.

By default generations run back to back. With --realtime the configured
generations_per_second and min_delay pace the run the same way the GUI does.

Examples:
  lenia run --steps 200 --png out/final.png
  lenia run --mode discrete --pattern glider-gun --steps 60 --ascii
  LENIA_GROWTH_SIGMA=0.02 lenia run --stats runs/stats.jsonl --every 10`,
		RunE: runAutomaton,
	}
	addSimFlags(cmd)
	addRuleFlags(cmd)
	cmd.Flags().Int("steps", 100, "generations to run")
	cmd.Flags().Int("every", 0, "log statistics every N generations (0 disables)")
	cmd.Flags().Bool("realtime", false, "pace the run at the configured rate")
	cmd.Flags().String("png", "", "write the final grid to this PNG file")
	cmd.Flags().Int("scale", 2, "pixel scale for --png")
	cmd.Flags().String("palette", "mono", "PNG palette: mono, heat or ocean")
	cmd.Flags().Bool("ascii", false, "print the final grid as ASCII art")
	cmd.Flags().String("stats", "", "append per-report statistics to this JSONL file")
	return cmd
}

func runAutomaton(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	steps, _ := cmd.Flags().GetInt("steps")
	if steps < 1 {
		return fmt.Errorf("--steps must be positive, got %d", steps)
	}
	every, _ := cmd.Flags().GetInt("every")
	realtime, _ := cmd.Flags().GetBool("realtime")
	paletteName, _ := cmd.Flags().GetString("palette")
	palette, ok := render.PaletteByName(paletteName)
	if !ok {
		return fmt.Errorf("unknown palette %q", paletteName)
	}

	acfg, err := cfg.Automaton()
	if err != nil {
		return err
	}
	sim, err := automaton.New(acfg)
	if err != nil {
		return fmt.Errorf("create automaton: %w", err)
	}

	var recorder *logging.StatsRecorder
	if path, _ := cmd.Flags().GetString("stats"); path != "" {
		recorder, err = logging.OpenStatsRecorder(path)
		if err != nil {
			return fmt.Errorf("open stats file: %w", err)
		}
		defer recorder.Close()
	}

	runID := uuid.New().String()
	logger = logger.With("run_id", runID)
	p := sim.Params()
	logger.Info("run started",
		"sim", sim.Name(),
		"size", fmt.Sprintf("%dx%d", acfg.Width, acfg.Height),
		"pattern", acfg.Pattern,
		"seed", acfg.Seed,
		"mu", p.Mu, "sigma", p.Sigma,
		"growth_mu", p.GrowthMu, "growth_sigma", p.GrowthSigma,
		"radius", p.Radius, "dt", p.TimeStep,
		"steps", steps)

	plan := core.Plan{Generations: 1}
	if realtime {
		plan = core.PlanFor(cfg.Schedule.GenerationsPerSecond, cfg.Schedule.MinDelay)
	} else if every > 0 {
		plan.Generations = every
	}

	nextReport := every
	report := func(f sched.Frame) error {
		if every <= 0 || f.Generation < nextReport {
			return nil
		}
		for nextReport <= f.Generation {
			nextReport += every
		}
		st := sim.Stats()
		logger.Debug("generation", "generation", f.Generation, "mass", st.Mass, "live", st.Live, "max", st.Max)
		return recorder.Record(statsEvent(runID, f.Generation, st))
	}

	s := sched.New(sim,
		sched.WithLogger(logger),
		sched.WithLimit(steps),
		sched.WithPlan(plan),
		sched.WithRenderer(report),
	)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := s.Run(ctx); err != nil {
		logger.Error("run failed", "generation", s.Generation(), "err", err)
		return err
	}
	if ctx.Err() != nil {
		logger.Info("run interrupted", "generation", s.Generation())
	}

	st := sim.Stats()
	summary := runSummary{
		RunID:      runID,
		Sim:        sim.Name(),
		Generation: s.Generation(),
		Mass:       st.Mass,
		Mean:       st.Mean,
		Max:        st.Max,
		Live:       st.Live,
		Extinct:    st.Extinct(),
		Elapsed:    time.Since(start).Round(time.Millisecond).String(),
	}
	logger.Info("run finished", "generation", summary.Generation, "mass", st.Mass, "live", st.Live, "elapsed", summary.Elapsed)
	if err := recorder.Record(statsEvent(runID, summary.Generation, st)); err != nil {
		return fmt.Errorf("record stats: %w", err)
	}

	if path, _ := cmd.Flags().GetString("png"); path != "" {
		scale, _ := cmd.Flags().GetInt("scale")
		if err := render.SavePNG(path, sim.Cells(), acfg.Width, acfg.Height, palette, scale); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
		logger.Info("snapshot written", "path", path)
	}

	out := cmd.OutOrStdout()
	if ascii, _ := cmd.Flags().GetBool("ascii"); ascii {
		if err := render.WriteASCII(out, sim.Cells(), acfg.Width, acfg.Height); err != nil {
			return err
		}
	}
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return json.NewEncoder(out).Encode(summary)
	}
	fmt.Fprintf(out, "%s: generation %d, mass %.3f, mean %.4f, max %.3f, live %d\n",
		summary.Sim, summary.Generation, summary.Mass, summary.Mean, summary.Max, summary.Live)
	if summary.Extinct {
		fmt.Fprintln(out, "all cells are dead")
	}
	return nil
}

func statsEvent(runID string, generation int, st lenia.Stats) map[string]any {
	return map[string]any{
		"run_id":     runID,
		"generation": generation,
		"mass":       st.Mass,
		"mean":       st.Mean,
		"min":        st.Min,
		"max":        st.Max,
		"live":       st.Live,
		"saturated":  st.Saturated,
	}
}
