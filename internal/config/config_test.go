package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"lenia-ca/pkg/lenia"
)

func writeConfig(c *qt.C, content string) string {
	path := filepath.Join(c.TempDir(), "lenia.yaml")
	c.Assert(os.WriteFile(path, []byte(content), 0o600), qt.IsNil)
	return path
}

func TestDefault(t *testing.T) {
	c := qt.New(t)
	cfg := Default()
	c.Assert(cfg.Validate(), qt.IsNil)
	params, err := cfg.Params()
	c.Assert(err, qt.IsNil)
	c.Assert(params, qt.Equals, lenia.DefaultParams(lenia.Continuous))
	c.Assert(cfg.Schedule.MinDelay, qt.Equals, 20*time.Millisecond)
	c.Assert(cfg.Logging.Level, qt.Equals, "info")
}

func TestLoadFromFile(t *testing.T) {
	c := qt.New(t)
	path := writeConfig(c, `
grid:
  width: 64
  height: 32
simulation:
  mode: discrete
  pattern: glider-gun
  seed: 7
schedule:
  generations_per_second: 120
  min_delay: 25ms
logging:
  level: debug
`)
	cfg, err := LoadFromFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Grid, qt.Equals, GridConfig{Width: 64, Height: 32})
	c.Assert(cfg.Simulation.Pattern, qt.Equals, "glider-gun")
	c.Assert(cfg.Simulation.Seed, qt.Equals, int64(7))
	c.Assert(cfg.Schedule.MinDelay, qt.Equals, 25*time.Millisecond)
	// Unset keys keep their defaults.
	c.Assert(cfg.Simulation.GrowthSigma, qt.Equals, lenia.DefaultGrowthSigma)

	params, err := cfg.Params()
	c.Assert(err, qt.IsNil)
	c.Assert(params.Mode, qt.Equals, lenia.Discrete)
	c.Assert(params.TimeStep, qt.Equals, lenia.DiscreteTimeStep)

	ac, err := cfg.Automaton()
	c.Assert(err, qt.IsNil)
	c.Assert(ac.Width, qt.Equals, 64)
	c.Assert(ac.Pattern, qt.Equals, "glider-gun")
}

func TestLoadFromFileErrors(t *testing.T) {
	c := qt.New(t)
	_, err := LoadFromFile(filepath.Join(c.TempDir(), "missing.yaml"))
	c.Assert(err, qt.ErrorMatches, "reading config file: .*")

	_, err = LoadFromFile(writeConfig(c, "grid: [not, a, map"))
	c.Assert(err, qt.ErrorMatches, "parsing config file: .*")
}

func TestEnvOverrides(t *testing.T) {
	c := qt.New(t)
	c.Setenv("LENIA_MODE", "life")
	c.Setenv("LENIA_GROWTH_SIGMA", "0.03")
	c.Setenv("LENIA_WIDTH", "48")
	c.Setenv("LENIA_SEED", "99")
	c.Setenv("LENIA_MIN_DELAY", "5ms")
	c.Setenv("LENIA_LOG_LEVEL", "trace")

	cfg, err := Load("")
	c.Assert(err, qt.IsNil)
	mode, err := cfg.Mode()
	c.Assert(err, qt.IsNil)
	c.Assert(mode, qt.Equals, lenia.Discrete)
	c.Assert(cfg.Simulation.GrowthSigma, qt.Equals, 0.03)
	c.Assert(cfg.Grid.Width, qt.Equals, 48)
	c.Assert(cfg.Simulation.Seed, qt.Equals, int64(99))
	c.Assert(cfg.Schedule.MinDelay, qt.Equals, 5*time.Millisecond)
	c.Assert(cfg.Logging.Level, qt.Equals, "trace")
}

func TestEnvOverridesRejectMalformedNumbers(t *testing.T) {
	c := qt.New(t)
	c.Setenv("LENIA_MU", "half")
	_, err := Load("")
	c.Assert(err, qt.ErrorMatches, "LENIA_MU: .*")
}

func TestEnvOverridesFile(t *testing.T) {
	c := qt.New(t)
	path := writeConfig(c, "simulation:\n  mu: 0.3\n")
	c.Setenv("LENIA_MU", "0.45")
	cfg, err := Load(path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Simulation.Mu, qt.Equals, 0.45)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		check  func(*qt.C, error)
	}{{
		name:   "zero width",
		mutate: func(cfg *Config) { cfg.Grid.Width = 0 },
		check:  func(c *qt.C, err error) { c.Assert(err, qt.ErrorMatches, "grid dimensions must be positive.*") },
	}, {
		name:   "bad mode",
		mutate: func(cfg *Config) { cfg.Simulation.Mode = "quantum" },
		check:  func(c *qt.C, err error) { c.Assert(errors.Is(err, lenia.ErrInvalidParameter), qt.IsTrue) },
	}, {
		name:   "zero sigma",
		mutate: func(cfg *Config) { cfg.Simulation.Sigma = 0 },
		check:  func(c *qt.C, err error) { c.Assert(errors.Is(err, lenia.ErrInvalidParameter), qt.IsTrue) },
	}, {
		name:   "probability above one",
		mutate: func(cfg *Config) { cfg.Simulation.AliveProbability = 1.5 },
		check:  func(c *qt.C, err error) { c.Assert(err, qt.ErrorMatches, "alive_probability .*") },
	}, {
		name:   "unknown pattern",
		mutate: func(cfg *Config) { cfg.Simulation.Pattern = "spaceship-9000" },
		check:  func(c *qt.C, err error) { c.Assert(errors.Is(err, lenia.ErrUnknownPattern), qt.IsTrue) },
	}, {
		name:   "unknown convolver",
		mutate: func(cfg *Config) { cfg.Simulation.Convolver = "gpu" },
		check:  func(c *qt.C, err error) { c.Assert(errors.Is(err, lenia.ErrInvalidParameter), qt.IsTrue) },
	}, {
		name:   "zero rate",
		mutate: func(cfg *Config) { cfg.Schedule.GenerationsPerSecond = 0 },
		check:  func(c *qt.C, err error) { c.Assert(err, qt.ErrorMatches, "generations_per_second .*") },
	}, {
		name:   "rate above maximum",
		mutate: func(cfg *Config) { cfg.Schedule.GenerationsPerSecond = 2e9 },
		check: func(c *qt.C, err error) {
			c.Assert(err, qt.ErrorMatches, "generations_per_second must be in .*, got 2e\\+09")
		},
	}, {
		name:   "bad log level",
		mutate: func(cfg *Config) { cfg.Logging.Level = "loud" },
		check:  func(c *qt.C, err error) { c.Assert(err, qt.ErrorMatches, "invalid log level: loud.*") },
	}}
	c := qt.New(t)
	for _, test := range tests {
		c.Run(test.name, func(c *qt.C) {
			cfg := Default()
			test.mutate(cfg)
			test.check(c, cfg.Validate())
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	c := qt.New(t)
	cfg := Default()
	cfg.Simulation.Pattern = "orbium"
	data, err := cfg.Marshal()
	c.Assert(err, qt.IsNil)
	path := writeConfig(c, string(data))
	loaded, err := LoadFromFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(loaded, qt.DeepEquals, cfg)
}
