package app

import (
	"image"
	"image/color"

	"github.com/agbru/gwinbar/internal/config"
	"github.com/agbru/gwinbar/internal/gdisp"
	"github.com/agbru/gwinbar/internal/gtimer"
	"github.com/agbru/gwinbar/internal/gwin"
	"github.com/agbru/gwinbar/internal/logging"
	"github.com/agbru/gwinbar/internal/metrics"
	"github.com/agbru/gwinbar/internal/progressbar"
)

// checkerSize is the square size of the generated tile used by the image
// renderer when no image file is configured.
const checkerSize = 2

// session is one configured bar on one display.
type session struct {
	toolkit *gwin.Toolkit
	sched   *gtimer.Scheduler
	bar     *progressbar.Progressbar
}

// newSession creates the toolkit and the bar described by cfg on display.
// Auto-advance is started when cfg.Delay is positive.
func newSession(cfg config.AppConfig, display gdisp.Surface, logger logging.Logger, rec metrics.Recorder) (*session, error) {
	defaults, err := defaultsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	sched := gtimer.NewScheduler(logger)
	tk := gwin.NewToolkit(display, sched,
		gwin.WithDefaults(defaults),
		gwin.WithLogger(logger),
		gwin.WithMetrics(rec))

	bar, err := progressbar.Create(tk, nil, gwin.WidgetInit{
		Width:  cfg.Width,
		Height: cfg.Height,
		Text:   cfg.Label,
	})
	if err != nil {
		return nil, err
	}
	bar.SetRange(cfg.Min, cfg.Max)
	bar.SetResolution(cfg.Resolution)
	bar.SetPosition(cfg.Position)

	if cfg.Renderer == config.RendererImage {
		img, err := tileImage(cfg, defaults)
		if err != nil {
			bar.Destroy()
			return nil, err
		}
		bar.SetRenderer(progressbar.Image, img)
	}

	bar.SetVisible(true)
	if cfg.Delay > 0 {
		bar.Start(cfg.Delay)
	}
	logger.Info("progressbar ready",
		logging.String("widget", bar.Name()),
		logging.Int("width", cfg.Width),
		logging.Int("height", cfg.Height),
		logging.String("renderer", cfg.Renderer),
		logging.Duration("delay", cfg.Delay))
	return &session{toolkit: tk, sched: sched, bar: bar}, nil
}

func defaultsFromConfig(cfg config.AppConfig) (gwin.Defaults, error) {
	d := gwin.StandardDefaults()
	for _, c := range []struct {
		hex string
		dst *color.RGBA
	}{
		{cfg.Color, &d.Color},
		{cfg.BgColor, &d.BgColor},
		{cfg.EdgeColor, &d.Palette.Edge},
		{cfg.TextColor, &d.Palette.Text},
	} {
		v, err := gdisp.ParseHex(c.hex)
		if err != nil {
			return d, err
		}
		*c.dst = v
	}
	return d, nil
}

// tileImage loads the configured image, or builds a checkerboard from the
// foreground color and a lighter tint of it.
func tileImage(cfg config.AppConfig, d gwin.Defaults) (image.Image, error) {
	if cfg.ImagePath != "" {
		return gdisp.LoadImage(cfg.ImagePath)
	}
	tint := gdisp.Blend(d.Color, gdisp.White, 0.4)
	return gdisp.CheckerImage(2*checkerSize, 2*checkerSize, checkerSize, d.Color, tint), nil
}
