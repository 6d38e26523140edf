// Package config loads simulator settings. Precedence, highest first:
// explicit Set calls (the shell's `set` command), command-line flags,
// COUNTSIM_ environment variables, an optional countsim.yaml file,
// then flag defaults.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	v    *viper.Viper
	args []string
}

// Load parses args and initializes the underlying viper instance.
// Non-flag arguments are kept around for one-shot command execution.
func (c *Config) Load(args []string) error {
	c.v = viper.New()

	fs := pflag.NewFlagSet("countsim", pflag.ContinueOnError)
	fs.Bool("debug", false, "debug logging on")
	fs.Int("threads", 0, "number of sim threads; 0 uses one per CPU")
	fs.Float64("initial-bankroll", 1000000, "starting bankroll in dollars")
	fs.Float64("min-bet", 100, "minimum bet in dollars")
	fs.Int("spread", 10, "maximum bet spread multiplier")
	fs.Int("sims", 100, "number of simulated trajectories")
	fs.Int("hands", 10000, "hands per trajectory")
	fs.Int("decks", 8, "number of decks in the shoe (1-8)")
	fs.String("model", "counting", "outcome model: counting or flat")
	fs.String("seed-file", "", "file of per-trajectory seeds for exact replay")
	fs.String("sim-log", "", "write per-hand YAML rows to this file")
	fs.String("cpu-profile", "", "write cpu profile to file")
	fs.String("mem-profile", "", "write memory profile to file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()

	if err := c.v.BindPFlags(fs); err != nil {
		return err
	}
	c.v.SetEnvPrefix("countsim")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	c.v.SetConfigName("countsim")
	c.v.SetConfigType("yaml")
	c.v.AddConfigPath(".")
	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

// Args returns the leftover non-flag arguments from Load.
func (c *Config) Args() []string {
	return c.args
}

func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// Settings returns all current settings, for logging at startup.
func (c *Config) Settings() map[string]any {
	return c.v.AllSettings()
}
