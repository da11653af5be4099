package gwin

import (
	"image/color"

	"golang.org/x/image/font"

	"github.com/agbru/gwinbar/internal/gdisp"
	"github.com/agbru/gwinbar/internal/gtimer"
	"github.com/agbru/gwinbar/internal/logging"
	"github.com/agbru/gwinbar/internal/metrics"
)

// ColorSet holds the secondary colors of a widget.
type ColorSet struct {
	Edge color.RGBA
	Text color.RGBA
}

// Colors is the resolved color set handed to drawing functions.
type Colors struct {
	Fg   color.RGBA
	Bg   color.RGBA
	Edge color.RGBA
	Text color.RGBA
}

// Defaults are the ambient attributes a widget inherits at creation.
type Defaults struct {
	Color   color.RGBA
	BgColor color.RGBA
	Palette ColorSet
	Font    font.Face
}

// StandardDefaults returns the built-in defaults: green on black with a
// white edge and label in the built-in font.
func StandardDefaults() Defaults {
	return Defaults{
		Color:   gdisp.Green,
		BgColor: gdisp.Black,
		Palette: ColorSet{Edge: gdisp.White, Text: gdisp.White},
		Font:    gdisp.DefaultFont(),
	}
}

// Toolkit bundles the collaborators widgets need: the default display, the
// window manager, the timer facility, creation defaults, logging and metrics.
type Toolkit struct {
	Display  gdisp.Surface
	Defaults Defaults
	Manager  *Manager
	Timers   gtimer.Facility
	Logger   logging.Logger
	Metrics  metrics.Recorder
}

// ToolkitOption configures a Toolkit during construction.
type ToolkitOption func(*Toolkit)

// WithDefaults sets the creation defaults.
func WithDefaults(d Defaults) ToolkitOption {
	return func(t *Toolkit) { t.Defaults = d }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) ToolkitOption {
	return func(t *Toolkit) { t.Logger = l }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(r metrics.Recorder) ToolkitOption {
	return func(t *Toolkit) { t.Metrics = r }
}

// NewToolkit creates a toolkit drawing on display and scheduling on timers.
func NewToolkit(display gdisp.Surface, timers gtimer.Facility, opts ...ToolkitOption) *Toolkit {
	t := &Toolkit{
		Display:  display,
		Defaults: StandardDefaults(),
		Timers:   timers,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.Logger == nil {
		t.Logger = logging.Nop()
	}
	if t.Metrics == nil {
		t.Metrics = metrics.Nop{}
	}
	if t.Defaults.Font == nil {
		t.Defaults.Font = gdisp.DefaultFont()
	}
	t.Manager = newManager()
	return t
}
