package progressbar

import (
	"time"

	"github.com/agbru/gwinbar/internal/logging"
)

// Start begins auto-advance: every delay the bar increments from its current
// position, runs the tick hook and redraws. Calling Start while running
// replaces the schedule with the new delay. Reaching max does not stop the
// timer; the bar simply holds there until Stop.
func (pb *Progressbar) Start(delay time.Duration) {
	if pb.Destroyed() {
		return
	}
	tk := pb.Toolkit()
	if tk.Timers == nil {
		tk.Logger.Debug("progressbar auto-advance unavailable: no timer facility",
			logging.String("widget", pb.Name()))
		return
	}
	if pb.running {
		tk.Timers.Cancel(pb.timer)
		tk.Logger.Debug("progressbar auto-advance rescheduled",
			logging.String("widget", pb.Name()),
			logging.Duration("old_delay", pb.delay),
			logging.Duration("delay", delay))
	} else {
		tk.Logger.Debug("progressbar auto-advance started",
			logging.String("widget", pb.Name()),
			logging.Duration("delay", delay),
			logging.Int("position", pb.pos))
	}
	pb.delay = delay
	pb.running = true
	pb.timer = tk.Timers.Schedule(delay, pb.tick)
	tk.Metrics.AutoAdvance(pb.Name(), true)
}

// Stop cancels auto-advance, leaving the position where it is. It is a no-op
// when auto-advance is not running.
func (pb *Progressbar) Stop() {
	if !pb.running {
		return
	}
	tk := pb.Toolkit()
	tk.Timers.Cancel(pb.timer)
	pb.running = false
	pb.timer = 0
	tk.Metrics.AutoAdvance(pb.Name(), false)
	tk.Logger.Debug("progressbar auto-advance stopped",
		logging.String("widget", pb.Name()),
		logging.Int("position", pb.pos))
}

// Running reports whether auto-advance is active.
func (pb *Progressbar) Running() bool { return pb.running }

// Delay returns the period of the last Start, or zero if never started.
func (pb *Progressbar) Delay() time.Duration { return pb.delay }

// SetTickHook installs fn to run on every auto-advance tick, after the
// position has been advanced and clamped and before the redraw. A nil fn
// removes the hook.
func (pb *Progressbar) SetTickHook(fn func(*Progressbar)) {
	pb.hook = fn
}

func (pb *Progressbar) tick() {
	if !pb.running {
		return
	}
	pb.Increment()
	if pb.hook != nil {
		pb.hook(pb)
	}
	m := pb.Toolkit().Metrics
	m.Tick(pb.Name())
	m.Position(pb.Name(), pb.Fraction())
	pb.Redraw()
}
