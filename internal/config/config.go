// Package config resolves the demo binary's configuration from command-line
// flags, GWINBAR_* environment variables, an optional TOML file and
// built-in defaults, in that order of priority.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	apperrors "github.com/agbru/gwinbar/internal/errors"
	"github.com/agbru/gwinbar/internal/gdisp"
)

// EnvPrefix prefixes every environment variable the configuration reads.
const EnvPrefix = "GWINBAR_"

// Renderer names.
const (
	RendererStd   = "std"
	RendererImage = "image"
)

// Mode names.
const (
	ModeTUI      = "tui"
	ModePlain    = "plain"
	ModeSnapshot = "snapshot"
)

// AppConfig holds everything the demo binary needs to build and drive a
// progressbar.
type AppConfig struct {
	// ConfigFile is the optional TOML file the configuration was read from.
	ConfigFile string

	// Width and Height are the bar size in display units: cells for the
	// terminal modes, pixels for snapshots.
	Width, Height int
	// Min and Max are the initial range. Reversed bounds are swapped by the
	// widget.
	Min, Max   int
	Resolution int
	Position   int
	// Delay is the auto-advance period. Zero disables auto-advance.
	Delay time.Duration

	// Renderer selects the drawing strategy: "std" or "image".
	Renderer string
	// ImagePath is the PNG or BMP tiled by the image renderer. When empty the
	// image renderer uses a generated checkerboard.
	ImagePath string
	Label     string

	// Mode selects the front end: "tui", "plain" or "snapshot".
	Mode string
	// Duration bounds a plain run and is the virtual time simulated by a
	// snapshot. Zero lets a plain run continue until the bar is full.
	Duration time.Duration
	// OutputFile is where snapshot mode writes its PNG.
	OutputFile string

	// MetricsAddr, when set, serves Prometheus metrics on that address.
	MetricsAddr string
	NoColor     bool
	LogLevel    string

	Color     string
	BgColor   string
	EdgeColor string
	TextColor string
}

// Default returns the built-in configuration.
func Default() AppConfig {
	return AppConfig{
		Width:      40,
		Height:     3,
		Min:        0,
		Max:        100,
		Resolution: 1,
		Position:   0,
		Delay:      100 * time.Millisecond,
		Renderer:   RendererStd,
		Mode:       ModeTUI,
		OutputFile: "gwinbar.png",
		LogLevel:   "info",
		Color:      gdisp.Hex(gdisp.Green),
		BgColor:    gdisp.Hex(gdisp.Black),
		EdgeColor:  gdisp.Hex(gdisp.White),
		TextColor:  gdisp.Hex(gdisp.White),
	}
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Usage and flag errors are written to errWriter. A -h or -help flag yields
// flag.ErrHelp. Parse and file failures are apperrors.ConfigError; values
// rejected by Validate are apperrors.ValidationError.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := Default()
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&cfg.ConfigFile, "config", "", "TOML configuration file.")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Bar width.")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Bar height. A bar taller than wide fills from the bottom.")
	fs.IntVar(&cfg.Min, "min", cfg.Min, "Range minimum.")
	fs.IntVar(&cfg.Max, "max", cfg.Max, "Range maximum.")
	fs.IntVar(&cfg.Resolution, "res", cfg.Resolution, "Step added by each increment.")
	fs.IntVar(&cfg.Position, "pos", cfg.Position, "Initial position.")
	fs.DurationVar(&cfg.Delay, "delay", cfg.Delay, "Auto-advance period (0 disables auto-advance).")
	fs.StringVar(&cfg.Renderer, "renderer", cfg.Renderer, "Drawing strategy: std or image.")
	fs.StringVar(&cfg.ImagePath, "image", "", "PNG or BMP tiled by the image renderer.")
	fs.StringVar(&cfg.Label, "label", "", "Text drawn centered on the bar.")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "Front end: tui, plain or snapshot.")
	fs.DurationVar(&cfg.Duration, "duration", 0, "Run length (plain) or simulated time (snapshot).")
	fs.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "Snapshot PNG path.")
	fs.StringVar(&cfg.OutputFile, "o", cfg.OutputFile, "Snapshot PNG path (shorthand).")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored terminal output.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error.")
	fs.StringVar(&cfg.Color, "color", cfg.Color, "Active area color (#rrggbb).")
	fs.StringVar(&cfg.BgColor, "bg-color", cfg.BgColor, "Inactive area color (#rrggbb).")
	fs.StringVar(&cfg.EdgeColor, "edge-color", cfg.EdgeColor, "Border and divider color (#rrggbb).")
	fs.StringVar(&cfg.TextColor, "text-color", cfg.TextColor, "Label color (#rrggbb).")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return cfg, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv(EnvPrefix + "CONFIG")
	}
	if cfg.ConfigFile != "" {
		if err := applyFile(&cfg, fs, cfg.ConfigFile); err != nil {
			return cfg, err
		}
	}
	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyFile loads a flat TOML table and applies every key whose flag was not
// given on the command line. Keys are the environment keys in lower case,
// e.g. image_path or metrics_addr.
func applyFile(cfg *AppConfig, fs *flag.FlagSet, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewConfigError("reading config file: %v", err)
	}
	var table map[string]any
	if err := toml.Unmarshal(data, &table); err != nil {
		return apperrors.NewConfigError("parsing config file %s: %v", path, err)
	}
	for key, value := range table {
		o, ok := lookupOverride(strings.ToUpper(key))
		if !ok {
			return apperrors.NewConfigError("config file %s: unknown key %q", path, key)
		}
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if err := o.apply(cfg, fmt.Sprint(value)); err != nil {
			return apperrors.NewConfigError("config file %s: %s: %v", path, key, err)
		}
	}
	return nil
}

// Validate checks the configuration for values the demo cannot run with.
// Each failure is an apperrors.ValidationError naming the offending field.
func (c AppConfig) Validate() error {
	invalid := func(field, format string, a ...any) error {
		return apperrors.ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
	}
	if c.Width <= 0 {
		return invalid("width", "must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return invalid("height", "must be positive, got %d", c.Height)
	}
	if c.Delay < 0 {
		return invalid("delay", "must not be negative, got %v", c.Delay)
	}
	if c.Duration < 0 {
		return invalid("duration", "must not be negative, got %v", c.Duration)
	}
	switch c.Renderer {
	case RendererStd, RendererImage:
	default:
		return invalid("renderer", "unknown renderer %q (want std or image)", c.Renderer)
	}
	switch c.Mode {
	case ModeTUI, ModePlain:
	case ModeSnapshot:
		if c.OutputFile == "" {
			return invalid("output", "snapshot mode needs an output file")
		}
	default:
		return invalid("mode", "unknown mode %q (want tui, plain or snapshot)", c.Mode)
	}
	for _, f := range []struct{ name, value string }{
		{"color", c.Color},
		{"bg-color", c.BgColor},
		{"edge-color", c.EdgeColor},
		{"text-color", c.TextColor},
	} {
		if _, err := gdisp.ParseHex(f.value); err != nil {
			return invalid(f.name, "%q is not a #rrggbb color: %v", f.value, err)
		}
	}
	return nil
}
