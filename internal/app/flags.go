package app

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lenia-ca/internal/core"
)

// Config represents the command-line parameters for the GUI.
type Config struct {
	Sim      string
	Scale    int
	Seed     int64
	GPS      float64
	MinDelay time.Duration
	Palette  string
	HUDWidth int

	// Params holds sim-specific key=value overrides passed to the factory.
	Params paramFlag
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:      "lenia",
		Scale:    3,
		Seed:     42,
		GPS:      core.DefaultGenerationsPerSecond,
		MinDelay: core.DefaultMinDelay,
		Palette:  "ocean",
		HUDWidth: 260,
		Params:   paramFlag{},
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run (life, lenia)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.Float64Var(&c.GPS, "gps", c.GPS, "target generations per second")
	fs.DurationVar(&c.MinDelay, "min-delay", c.MinDelay, "minimum delay between display refreshes")
	fs.StringVar(&c.Palette, "palette", c.Palette, "color palette (mono, heat, ocean)")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "control panel width in pixels, 0 to hide")
	fs.Var(c.Params, "set", "sim parameter as key=value (repeatable), e.g. -set pattern=orbium")
}

// SimConfig returns the factory map, with the seed filled in unless set
// explicitly.
func (c *Config) SimConfig() map[string]string {
	out := map[string]string{}
	for k, v := range c.Params {
		out[k] = v
	}
	if _, ok := out["seed"]; !ok {
		out["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	return out
}

type paramFlag map[string]string

func (p paramFlag) String() string {
	parts := make([]string, 0, len(p))
	for k, v := range p {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (p paramFlag) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	p[strings.TrimSpace(k)] = strings.TrimSpace(v)
	return nil
}
