package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lenia-ca/internal/plot"
	"lenia-ca/pkg/lenia"
)

func newKernelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kernel",
		Short: "Plot or print the kernel's radial profile",
		Long: `Print the kernel weights along its radius, or write them as a PNG chart
with --out. In discrete mode the kernel is the 3x3 Moore mask.

Examples:
  lenia kernel
  lenia kernel --mu 0.4 --sigma 0.1 --radius 20 --out kernel.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ruleParams(cmd)
			if err != nil {
				return err
			}
			k, err := lenia.KernelFor(p.Mode, p.Mu, p.Sigma, p.Radius)
			if err != nil {
				return err
			}
			return emitSeries(cmd, plot.KernelSeries(k), "offset", "weight", func(w io.Writer) error {
				return plot.Kernel(w, p)
			})
		},
	}
	addSimFlags(cmd)
	addRuleFlags(cmd)
	cmd.Flags().String("out", "", "write a PNG chart to this file")
	return cmd
}

func newGrowthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "growth",
		Short: "Plot or print the growth function",
		Long: `Print the growth function sampled over its plotting range, or write it as
a PNG chart with --out. Continuous mode samples [0, 0.3) in steps of 0.001;
discrete mode samples the neighbor counts 0 to 8.

Examples:
  lenia growth --mode discrete
  lenia growth --growth-mu 0.14 --growth-sigma 0.02 --out growth.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ruleParams(cmd)
			if err != nil {
				return err
			}
			return emitSeries(cmd, plot.GrowthSeries(p), "potential", "growth", func(w io.Writer) error {
				return plot.Growth(w, p)
			})
		},
	}
	addSimFlags(cmd)
	addRuleFlags(cmd)
	cmd.Flags().String("out", "", "write a PNG chart to this file")
	return cmd
}

func ruleParams(cmd *cobra.Command) (lenia.Params, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return lenia.Params{}, err
	}
	return cfg.Params()
}

// emitSeries writes a chart when --out is set and a table (or JSON) otherwise.
func emitSeries(cmd *cobra.Command, s plot.Series, xName, yName string, chart func(io.Writer) error) error {
	out, _ := cmd.Flags().GetString("out")
	if out != "" {
		if dir := filepath.Dir(out); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := chart(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
		return nil
	}
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
			"name": s.Name,
			xName:  s.X,
			yName:  s.Y,
		})
	}
	return plot.Table(cmd.OutOrStdout(), s, xName, yName)
}
