package automaton

import (
	"fmt"
	"strconv"

	"lenia-ca/pkg/lenia"
)

// Config controls the automaton dimensions, initial pattern and rule
// parameters.
type Config struct {
	Width  int
	Height int

	Seed int64

	// Pattern names the initial state; empty selects the mode default.
	Pattern          string
	AliveProbability float64

	// Convolver is "auto", "direct" or "fft".
	Convolver string

	Params lenia.Params
}

// DefaultConfig returns the standard configuration for mode.
func DefaultConfig(mode lenia.Mode) Config {
	return Config{
		Width:            256,
		Height:           256,
		Seed:             1337,
		AliveProbability: lenia.DefaultAliveProbability,
		Convolver:        "auto",
		Params:           lenia.DefaultParams(mode),
	}
}

func (c Config) validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: grid %dx%d must be at least 1x1", lenia.ErrInvalidParameter, c.Width, c.Height)
	}
	if p := c.AliveProbability; !(p >= 0 && p <= 1) {
		return fmt.Errorf("%w: alive_probability %v must be within [0, 1]", lenia.ErrInvalidParameter, p)
	}
	return nil
}

// Init returns the initialization request described by the config.
func (c Config) Init() lenia.Init {
	return lenia.Init{Pattern: c.Pattern, AliveProbability: c.AliveProbability, Seed: c.Seed}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(mode lenia.Mode, cfg map[string]string) Config {
	c := DefaultConfig(mode)
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["pattern"]; ok {
		c.Pattern = v
	}
	if v, ok := cfg["conv"]; ok {
		c.Convolver = v
	}
	if v, ok := cfg["p"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.AliveProbability = parsed
		}
	}
	if v, ok := cfg["mu"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.Mu = parsed
		}
	}
	if v, ok := cfg["sigma"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.Sigma = parsed
		}
	}
	if v, ok := cfg["growth_mu"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.GrowthMu = parsed
		}
	}
	if v, ok := cfg["growth_sigma"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.GrowthSigma = parsed
		}
	}
	if v, ok := cfg["radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 {
			c.Params.Radius = parsed
		}
	}
	if v, ok := cfg["dt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.TimeStep = parsed
		}
	}
	return c
}
