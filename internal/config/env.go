// This file contains the environment variable and config file override table.

package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// override declares a single setting that can come from the environment or
// the config file. Each entry maps a key (without the GWINBAR_ prefix) to the
// CLI flag name(s) it corresponds to and a function that applies the value.
type override struct {
	key   string
	flags []string
	apply func(*AppConfig, string) error
}

func intSetter(field func(*AppConfig) *int) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*field(c) = parsed
		return nil
	}
}

func durationSetter(field func(*AppConfig) *time.Duration) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		parsed, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*field(c) = parsed
		return nil
	}
}

func stringSetter(field func(*AppConfig) *string) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		*field(c) = v
		return nil
	}
}

func boolSetter(field func(*AppConfig) *bool) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		parsed, ok := parseBool(v)
		if !ok {
			return fmt.Errorf("invalid boolean %q", v)
		}
		*field(c) = parsed
		return nil
	}
}

// overrides is the declarative table of every environment and file setting.
var overrides = []override{
	// Geometry and range
	{"WIDTH", []string{"width"}, intSetter(func(c *AppConfig) *int { return &c.Width })},
	{"HEIGHT", []string{"height"}, intSetter(func(c *AppConfig) *int { return &c.Height })},
	{"MIN", []string{"min"}, intSetter(func(c *AppConfig) *int { return &c.Min })},
	{"MAX", []string{"max"}, intSetter(func(c *AppConfig) *int { return &c.Max })},
	{"RESOLUTION", []string{"res"}, intSetter(func(c *AppConfig) *int { return &c.Resolution })},
	{"POSITION", []string{"pos"}, intSetter(func(c *AppConfig) *int { return &c.Position })},

	// Duration overrides
	{"DELAY", []string{"delay"}, durationSetter(func(c *AppConfig) *time.Duration { return &c.Delay })},
	{"DURATION", []string{"duration"}, durationSetter(func(c *AppConfig) *time.Duration { return &c.Duration })},

	// String overrides
	{"RENDERER", []string{"renderer"}, stringSetter(func(c *AppConfig) *string { return &c.Renderer })},
	{"IMAGE_PATH", []string{"image"}, stringSetter(func(c *AppConfig) *string { return &c.ImagePath })},
	{"LABEL", []string{"label"}, stringSetter(func(c *AppConfig) *string { return &c.Label })},
	{"MODE", []string{"mode"}, stringSetter(func(c *AppConfig) *string { return &c.Mode })},
	{"OUTPUT", []string{"output", "o"}, stringSetter(func(c *AppConfig) *string { return &c.OutputFile })},
	{"METRICS_ADDR", []string{"metrics-addr"}, stringSetter(func(c *AppConfig) *string { return &c.MetricsAddr })},
	{"LOG_LEVEL", []string{"log-level"}, stringSetter(func(c *AppConfig) *string { return &c.LogLevel })},
	{"COLOR", []string{"color"}, stringSetter(func(c *AppConfig) *string { return &c.Color })},
	{"BG_COLOR", []string{"bg-color"}, stringSetter(func(c *AppConfig) *string { return &c.BgColor })},
	{"EDGE_COLOR", []string{"edge-color"}, stringSetter(func(c *AppConfig) *string { return &c.EdgeColor })},
	{"TEXT_COLOR", []string{"text-color"}, stringSetter(func(c *AppConfig) *string { return &c.TextColor })},

	// Boolean overrides
	{"NO_COLOR", []string{"no-color"}, boolSetter(func(c *AppConfig) *bool { return &c.NoColor })},
}

func lookupOverride(key string) (override, bool) {
	for _, o := range overrides {
		if o.key == key {
			return o, true
		}
	}
	return override{}, false
}

// parseBool accepts "true", "1", "yes" as true and "false", "0", "no" as
// false (case-insensitive).
func parseBool(val string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line. Values that
// do not parse are ignored.
//
// Supported environment variables (all prefixed with GWINBAR_):
//   - WIDTH, HEIGHT, MIN, MAX, RESOLUTION, POSITION, DELAY, DURATION,
//     RENDERER, IMAGE_PATH, LABEL, MODE, OUTPUT, METRICS_ADDR, LOG_LEVEL,
//     COLOR, BG_COLOR, EDGE_COLOR, TEXT_COLOR, NO_COLOR, CONFIG
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range overrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.key); val != "" {
			_ = o.apply(config, val)
		}
	}
}
