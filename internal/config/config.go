// Package config loads run configuration for the lenia command-line tool
// from defaults, an optional YAML file and LENIA_* environment variables.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"lenia-ca/internal/core"
	"lenia-ca/pkg/lenia"
	"lenia-ca/pkg/sims/automaton"
)

// Config is the complete run configuration.
type Config struct {
	Grid       GridConfig       `json:"grid" yaml:"grid"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Schedule   ScheduleConfig   `json:"schedule" yaml:"schedule"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging"`
}

// GridConfig sets the board dimensions.
type GridConfig struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// SimulationConfig holds the rule parameters and initial state.
type SimulationConfig struct {
	// Mode is "discrete" or "continuous".
	Mode        string  `json:"mode" yaml:"mode"`
	Mu          float64 `json:"mu" yaml:"mu"`
	Sigma       float64 `json:"sigma" yaml:"sigma"`
	GrowthMu    float64 `json:"growth_mu" yaml:"growth_mu"`
	GrowthSigma float64 `json:"growth_sigma" yaml:"growth_sigma"`
	Radius      int     `json:"radius" yaml:"radius"`

	// TimeStep of zero selects the mode's canonical value.
	TimeStep float64 `json:"time_step,omitempty" yaml:"time_step,omitempty"`

	Pattern          string  `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	AliveProbability float64 `json:"alive_probability" yaml:"alive_probability"`
	Seed             int64   `json:"seed" yaml:"seed"`
	Convolver        string  `json:"convolver" yaml:"convolver"`
}

// ScheduleConfig controls the stepping rate.
type ScheduleConfig struct {
	GenerationsPerSecond float64       `json:"generations_per_second" yaml:"generations_per_second"`
	MinDelay             time.Duration `json:"min_delay" yaml:"min_delay"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is "info" (default), "debug" or "trace".
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with the canonical continuous parameters.
func Default() *Config {
	return &Config{
		Grid: GridConfig{Width: 256, Height: 256},
		Simulation: SimulationConfig{
			Mode:             lenia.Continuous.String(),
			Mu:               lenia.DefaultMu,
			Sigma:            lenia.DefaultSigma,
			GrowthMu:         lenia.DefaultGrowthMu,
			GrowthSigma:      lenia.DefaultGrowthSigma,
			Radius:           lenia.DefaultRadius,
			AliveProbability: lenia.DefaultAliveProbability,
			Seed:             1337,
			Convolver:        "auto",
		},
		Schedule: ScheduleConfig{
			GenerationsPerSecond: 60,
			MinDelay:             20 * time.Millisecond,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds the configuration in order: defaults, then the YAML file at
// path when path is non-empty, then environment variables. The result is
// validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		cfg = fileCfg
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Mode returns the parsed simulation mode.
func (c *Config) Mode() (lenia.Mode, error) {
	return lenia.ParseMode(c.Simulation.Mode)
}

// Params converts the simulation section into engine parameters.
func (c *Config) Params() (lenia.Params, error) {
	mode, err := c.Mode()
	if err != nil {
		return lenia.Params{}, err
	}
	dt := c.Simulation.TimeStep
	if dt == 0 {
		dt = lenia.TimeStepFor(mode)
	}
	return lenia.Params{
		Mu:          c.Simulation.Mu,
		Sigma:       c.Simulation.Sigma,
		GrowthMu:    c.Simulation.GrowthMu,
		GrowthSigma: c.Simulation.GrowthSigma,
		Radius:      c.Simulation.Radius,
		TimeStep:    dt,
		Mode:        mode,
	}, nil
}

// Automaton converts the configuration into an automaton config.
func (c *Config) Automaton() (automaton.Config, error) {
	params, err := c.Params()
	if err != nil {
		return automaton.Config{}, err
	}
	return automaton.Config{
		Width:            c.Grid.Width,
		Height:           c.Grid.Height,
		Seed:             c.Simulation.Seed,
		Pattern:          c.Simulation.Pattern,
		AliveProbability: c.Simulation.AliveProbability,
		Convolver:        c.Simulation.Convolver,
		Params:           params,
	}, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Grid.Width < 1 || c.Grid.Height < 1 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	params, err := c.Params()
	if err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}
	p := c.Simulation.AliveProbability
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("alive_probability must be between 0 and 1, got %f", p)
	}
	if name := c.Simulation.Pattern; name != "" && name != lenia.RandomPattern {
		if _, err := lenia.LookupPattern(name); err != nil {
			return err
		}
	}
	if _, err := lenia.ParseConvolver(c.Simulation.Convolver); err != nil {
		return err
	}
	if gps := c.Schedule.GenerationsPerSecond; !(gps > 0) || gps > core.MaxGenerationsPerSecond {
		return fmt.Errorf("generations_per_second must be in (0, %g], got %g", float64(core.MaxGenerationsPerSecond), gps)
	}
	if c.Schedule.MinDelay < 0 {
		return fmt.Errorf("min_delay must be non-negative, got %v", c.Schedule.MinDelay)
	}
	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}
	return nil
}

// applyEnvOverrides applies LENIA_* environment variables. Malformed numeric
// values are reported rather than ignored.
func applyEnvOverrides(c *Config) error {
	if v := os.Getenv("LENIA_MODE"); v != "" {
		c.Simulation.Mode = v
	}
	if v := os.Getenv("LENIA_PATTERN"); v != "" {
		c.Simulation.Pattern = v
	}
	if v := os.Getenv("LENIA_CONVOLVER"); v != "" {
		c.Simulation.Convolver = v
	}
	if v := os.Getenv("LENIA_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	floats := []struct {
		env string
		dst *float64
	}{
		{"LENIA_MU", &c.Simulation.Mu},
		{"LENIA_SIGMA", &c.Simulation.Sigma},
		{"LENIA_GROWTH_MU", &c.Simulation.GrowthMu},
		{"LENIA_GROWTH_SIGMA", &c.Simulation.GrowthSigma},
		{"LENIA_TIME_STEP", &c.Simulation.TimeStep},
		{"LENIA_ALIVE_PROBABILITY", &c.Simulation.AliveProbability},
		{"LENIA_GPS", &c.Schedule.GenerationsPerSecond},
	}
	for _, f := range floats {
		if v := os.Getenv(f.env); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", f.env, err)
			}
			*f.dst = parsed
		}
	}
	ints := []struct {
		env string
		dst *int
	}{
		{"LENIA_WIDTH", &c.Grid.Width},
		{"LENIA_HEIGHT", &c.Grid.Height},
		{"LENIA_RADIUS", &c.Simulation.Radius},
	}
	for _, i := range ints {
		if v := os.Getenv(i.env); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", i.env, err)
			}
			*i.dst = parsed
		}
	}
	if v := os.Getenv("LENIA_SEED"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("LENIA_SEED: %w", err)
		}
		c.Simulation.Seed = parsed
	}
	if v := os.Getenv("LENIA_MIN_DELAY"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LENIA_MIN_DELAY: %w", err)
		}
		c.Schedule.MinDelay = parsed
	}
	return nil
}
