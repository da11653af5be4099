//go:generate mockgen -source=plain.go -destination=mocks/mock_spinner.go -package=mocks

// Package cli implements the plain terminal front end: a spinner whose
// suffix is the progressbar rendered as a line of text.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/gwinbar/internal/gdisp"
	"github.com/agbru/gwinbar/internal/gtimer"
	"github.com/agbru/gwinbar/internal/progressbar"
	"github.com/agbru/gwinbar/internal/ui"
)

// RefreshRate is how often the plain front end advances the timers and
// refreshes the spinner line.
const RefreshRate = 100 * time.Millisecond

// Spinner abstracts the terminal spinner so the run loop can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

// UpdateSuffix sets the text after the spinner. The spinner reads the
// suffix from its own goroutine, so the update goes through its lock.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], RefreshRate, options...)
	return &realSpinner{s}
}

// newTicker and now are swapped out by tests.
var (
	newTicker = func(d time.Duration) (<-chan time.Time, func()) {
		t := time.NewTicker(d)
		return t.C, t.Stop
	}
	now = time.Now
)

// PlainOptions configures RunPlain.
type PlainOptions struct {
	// Duration bounds the run. Zero runs until the bar is full, or stops
	// immediately if auto-advance is not running.
	Duration time.Duration
	// NoColor renders the bar with shade glyphs instead of colors.
	NoColor bool
}

// RunPlain drives the scheduler from wall-clock time and shows bar on a
// spinner line until the run ends or ctx is cancelled. The final state is
// printed to out.
func RunPlain(ctx context.Context, out io.Writer, bar *progressbar.Progressbar, sched *gtimer.Scheduler, cells *gdisp.CellSurface, opts PlainOptions) error {
	sp := newSpinner(spinner.WithWriter(out))
	sp.UpdateSuffix(" " + BarLine(bar, cells, opts.NoColor))
	sp.Start()

	ticks, stop := newTicker(RefreshRate)
	defer stop()

	start := now()
	last := start
	for !finished(bar, opts, 0) {
		select {
		case <-ctx.Done():
			sp.Stop()
			printFinal(out, bar, cells, opts.NoColor, false)
			return ctx.Err()
		case t := <-ticks:
			sched.Advance(t.Sub(last))
			last = t
			sp.UpdateSuffix(" " + BarLine(bar, cells, opts.NoColor))
			if finished(bar, opts, t.Sub(start)) {
				sp.Stop()
				printFinal(out, bar, cells, opts.NoColor, true)
				return nil
			}
		}
	}
	sp.Stop()
	printFinal(out, bar, cells, opts.NoColor, true)
	return nil
}

// finished reports whether a plain run is over after elapsed.
func finished(bar *progressbar.Progressbar, opts PlainOptions, elapsed time.Duration) bool {
	if opts.Duration > 0 {
		return elapsed >= opts.Duration
	}
	_, max := bar.Range()
	return bar.Position() >= max || !bar.Running()
}

// BarLine renders the middle row of the bar followed by its percentage.
func BarLine(bar *progressbar.Progressbar, cells *gdisp.CellSurface, noColor bool) string {
	lines := strings.Split(cells.Render(noColor), "\n")
	b := bar.Bounds()
	row := b.Min.Y + b.Dy()/2
	var line string
	if row >= 0 && row < len(lines) {
		line = lines[row]
	}
	return fmt.Sprintf("%s %3.0f%%", line, bar.Fraction()*100)
}

func printFinal(out io.Writer, bar *progressbar.Progressbar, cells *gdisp.CellSurface, noColor, complete bool) {
	t := ui.GetCurrentTheme()
	status, color := "done", t.Success
	if !complete {
		status, color = "interrupted", t.Warning
	}
	min, max := bar.Range()
	fmt.Fprintf(out, "%s %s%s%s position %d of [%d,%d]\n",
		BarLine(bar, cells, noColor), color, status, t.Reset, bar.Position(), min, max)
}
