package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"lenia-ca/internal/sweep"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Search growth parameters for long-lived patterns",
		Long: `Run one simulation per (growth_mu, growth_sigma) pair in parallel and rank
the pairs by how much of the initial mass survives. Runs that die out or
fill the grid rank last.

Examples:
  lenia sweep --pattern orbium --width 64 --height 64 --steps 100
  lenia sweep --mu-min 0.1 --mu-max 0.2 --mu-n 5 --sigma-min 0.01 --sigma-max 0.03 --sigma-n 5`,
		RunE: runSweep,
	}
	addSimFlags(cmd)
	addRuleFlags(cmd)
	cmd.Flags().Float64("mu-min", 0.10, "lowest growth_mu")
	cmd.Flags().Float64("mu-max", 0.20, "highest growth_mu")
	cmd.Flags().Int("mu-n", 5, "growth_mu samples")
	cmd.Flags().Float64("sigma-min", 0.01, "lowest growth_sigma")
	cmd.Flags().Float64("sigma-max", 0.03, "highest growth_sigma")
	cmd.Flags().Int("sigma-n", 5, "growth_sigma samples")
	cmd.Flags().Int("steps", 100, "generations per scenario")
	cmd.Flags().Int("workers", 0, "parallel scenarios (0 uses all CPUs)")
	cmd.Flags().Int("top", 10, "results to print (0 prints all)")
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)
	base, err := cfg.Automaton()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	muMin, _ := flags.GetFloat64("mu-min")
	muMax, _ := flags.GetFloat64("mu-max")
	muN, _ := flags.GetInt("mu-n")
	sigmaMin, _ := flags.GetFloat64("sigma-min")
	sigmaMax, _ := flags.GetFloat64("sigma-max")
	sigmaN, _ := flags.GetInt("sigma-n")
	steps, _ := flags.GetInt("steps")
	workers, _ := flags.GetInt("workers")
	top, _ := flags.GetInt("top")

	points := sweep.Grid(sweep.Linspace(muMin, muMax, muN), sweep.Linspace(sigmaMin, sigmaMax, sigmaN))
	if len(points) == 0 {
		return fmt.Errorf("empty sweep: --mu-n and --sigma-n must be positive")
	}

	results, err := sweep.Run(cmd.Context(), sweep.Options{
		Base:    base,
		Steps:   steps,
		Workers: workers,
		Logger:  logger,
	}, points)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}
	if top > 0 && len(results) > top {
		results = results[:top]
	}
	cells := base.Width * base.Height

	out := cmd.OutOrStdout()
	if jsonOut, _ := flags.GetBool("json"); jsonOut {
		type entry struct {
			GrowthMu    float64 `json:"growth_mu"`
			GrowthSigma float64 `json:"growth_sigma"`
			MassRatio   float64 `json:"mass_ratio"`
			Live        int     `json:"live"`
			Steps       int     `json:"steps"`
			Survived    bool    `json:"survived"`
		}
		entries := make([]entry, 0, len(results))
		for _, r := range results {
			entries = append(entries, entry{
				GrowthMu:    r.GrowthMu,
				GrowthSigma: r.GrowthSigma,
				MassRatio:   r.MassRatio,
				Live:        r.Final.Live,
				Steps:       r.Steps,
				Survived:    r.Survived(cells),
			})
		}
		return json.NewEncoder(out).Encode(entries)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tGROWTH_MU\tGROWTH_SIGMA\tMASS_RATIO\tLIVE\tSTEPS\tSTATUS")
	for i, r := range results {
		status := "alive"
		switch {
		case r.Final.Extinct():
			status = "extinct"
		case r.Final.Saturating(cells):
			status = "saturated"
		}
		fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.3f\t%d\t%d\t%s\n",
			i+1, r.GrowthMu, r.GrowthSigma, r.MassRatio, r.Final.Live, r.Steps, status)
	}
	return tw.Flush()
}
