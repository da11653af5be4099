package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/gwinbar/internal/cli"
	"github.com/agbru/gwinbar/internal/config"
	apperrors "github.com/agbru/gwinbar/internal/errors"
	"github.com/agbru/gwinbar/internal/gdisp"
	"github.com/agbru/gwinbar/internal/logging"
	"github.com/agbru/gwinbar/internal/metrics"
	"github.com/agbru/gwinbar/internal/tui"
	"github.com/agbru/gwinbar/internal/ui"
)

const tracerName = "github.com/agbru/gwinbar/internal/app"

// shutdownTimeout bounds the graceful stop of the metrics server.
const shutdownTimeout = 2 * time.Second

// Application represents the gwinbar application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// Configuration errors other than a help request are reported on errWriter.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "gwinbar"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		if !IsHelpError(err) {
			fmt.Fprintf(errWriter, "Error: %v\n", err)
		}
		return nil, err
	}
	return &Application{Config: cfg, ErrWriter: errWriter}, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)
	logger := a.newLogger()

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "gwinbar.run")
	span.SetAttributes(
		attribute.String("gwinbar.mode", a.Config.Mode),
		attribute.String("gwinbar.renderer", a.Config.Renderer),
		attribute.Int("gwinbar.width", a.Config.Width),
		attribute.Int("gwinbar.height", a.Config.Height),
		attribute.Int64("gwinbar.delay_ms", a.Config.Delay.Milliseconds()),
	)
	defer span.End()

	err := a.run(ctx, out, logger)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if !apperrors.IsContextError(err) {
			logger.Error("run failed", err, logging.String("mode", a.Config.Mode))
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		}
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return apperrors.ExitCodeFor(err)
}

// run starts the optional metrics server next to the selected front end.
// The server is shut down as soon as the front end returns.
func (a *Application) run(ctx context.Context, out io.Writer, logger logging.Logger) error {
	m := metrics.NewMetrics()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	if addr := a.Config.MetricsAddr; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		g.Go(func() error {
			logger.Info("metrics server listening", logging.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return apperrors.WrapError(err, "metrics server")
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
			defer done()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		defer cancel()
		return a.runMode(gctx, out, logger, m)
	})
	return g.Wait()
}

func (a *Application) runMode(ctx context.Context, out io.Writer, logger logging.Logger, m metrics.Recorder) error {
	switch a.Config.Mode {
	case config.ModeSnapshot:
		return a.runSnapshot(out, logger, m)
	case config.ModePlain:
		cells, s, err := a.cellSession(logger, m)
		if err != nil {
			return err
		}
		defer s.bar.Destroy()
		return cli.RunPlain(ctx, out, s.bar, s.sched, cells, cli.PlainOptions{
			Duration: a.Config.Duration,
			NoColor:  a.Config.NoColor,
		})
	default:
		cells, s, err := a.cellSession(logger, m)
		if err != nil {
			return err
		}
		defer s.bar.Destroy()
		return tui.Run(ctx, s.bar, s.sched, cells, tui.Options{
			Version: Version,
			NoColor: a.Config.NoColor,
			Delay:   a.Config.Delay,
		})
	}
}

func (a *Application) cellSession(logger logging.Logger, m metrics.Recorder) (*gdisp.CellSurface, *session, error) {
	cells := gdisp.NewCellSurface(a.Config.Width, a.Config.Height, a.background())
	s, err := newSession(a.Config, cells, logger, m)
	if err != nil {
		return nil, nil, err
	}
	return cells, s, nil
}

// runSnapshot simulates the configured duration of virtual time on a pixel
// surface and writes the result as a PNG.
func (a *Application) runSnapshot(out io.Writer, logger logging.Logger, m metrics.Recorder) error {
	surface := gdisp.NewRGBASurface(a.Config.Width, a.Config.Height, a.background())
	s, err := newSession(a.Config, surface, logger, m)
	if err != nil {
		return err
	}
	defer s.bar.Destroy()

	ticks := s.sched.Advance(a.Config.Duration)
	s.bar.Redraw()

	if err := writePNG(a.Config.OutputFile, surface); err != nil {
		return err
	}
	min, max := s.bar.Range()
	logger.Info("snapshot written",
		logging.String("file", a.Config.OutputFile),
		logging.Int("ticks", ticks),
		logging.Int("position", s.bar.Position()))
	fmt.Fprintf(out, "wrote %s position %d of [%d,%d]\n", a.Config.OutputFile, s.bar.Position(), min, max)
	return nil
}

func writePNG(path string, surface *gdisp.RGBASurface) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.WrapError(err, "creating snapshot")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = apperrors.WrapError(cerr, "closing snapshot")
		}
	}()
	if err := png.Encode(f, surface.Image()); err != nil {
		return apperrors.WrapError(err, "encoding snapshot")
	}
	return nil
}

// background is the configured inactive color. Validate has already
// accepted it.
func (a *Application) background() color.RGBA {
	bg, err := gdisp.ParseHex(a.Config.BgColor)
	if err != nil {
		return gdisp.Black
	}
	return bg
}

// newLogger writes human readable entries to ErrWriter. The TUI owns the
// terminal, so only errors are logged in that mode.
func (a *Application) newLogger() logging.Logger {
	level := logging.ParseLevel(a.Config.LogLevel)
	if a.Config.Mode == config.ModeTUI && level < zerolog.ErrorLevel {
		level = zerolog.ErrorLevel
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: a.ErrWriter, TimeFormat: time.Kitchen, NoColor: a.Config.NoColor}).
		Level(level).With().Timestamp().Logger()
	return logging.NewZerologAdapter(zl)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
