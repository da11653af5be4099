//go:generate mockgen -source=timer.go -destination=mocks/mock_timer.go -package=mocks

// Package gtimer provides the cooperative software timers widgets use for
// periodic work. Timers never fire on their own: the owner of a Scheduler
// advances its virtual clock and every due callback runs synchronously on the
// caller's goroutine, in time order. Timing is therefore only as precise as
// the cadence at which the clock is advanced.
package gtimer

import (
	"time"

	"github.com/agbru/gwinbar/internal/logging"
)

// MinPeriod is the shortest period a periodic timer can have. Shorter or
// non-positive periods are raised to it so a single Advance always terminates.
const MinPeriod = time.Millisecond

// Handle identifies a scheduled timer. The zero Handle is never issued.
type Handle uint64

// Facility is the timer service consumed by widgets.
type Facility interface {
	// Schedule arranges for fn to run every period until cancelled.
	Schedule(period time.Duration, fn func()) Handle
	// Cancel stops the timer. Cancelling an unknown or zero handle is a no-op.
	Cancel(h Handle)
}

type entry struct {
	handle Handle
	period time.Duration
	next   time.Duration
	fn     func()
}

// Scheduler is a virtual-time Facility. It is not safe for concurrent use:
// all calls, including Advance, belong to one thread of control.
type Scheduler struct {
	now     time.Duration
	seq     Handle
	entries map[Handle]*entry
	logger  logging.Logger
}

// Verify interface compliance.
var _ Facility = (*Scheduler)(nil)

// NewScheduler creates a scheduler whose clock starts at zero.
func NewScheduler(logger logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Scheduler{
		entries: make(map[Handle]*entry),
		logger:  logger,
	}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration { return s.now }

// Pending returns the number of live timers.
func (s *Scheduler) Pending() int { return len(s.entries) }

// Schedule registers a periodic callback whose first tick is one period from now.
func (s *Scheduler) Schedule(period time.Duration, fn func()) Handle {
	if period < MinPeriod {
		period = MinPeriod
	}
	s.seq++
	e := &entry{handle: s.seq, period: period, next: s.now + period, fn: fn}
	s.entries[e.handle] = e
	s.logger.Debug("timer scheduled",
		logging.Uint64("handle", uint64(e.handle)),
		logging.Duration("period", period))
	return e.handle
}

// Cancel removes the timer. Safe to call from inside a callback.
func (s *Scheduler) Cancel(h Handle) {
	if _, ok := s.entries[h]; !ok {
		return
	}
	delete(s.entries, h)
	s.logger.Debug("timer cancelled", logging.Uint64("handle", uint64(h)))
}

// Advance moves the clock forward by d, running every callback that falls
// due on the way. Ticks are delivered in non-decreasing time order; ties run
// in scheduling order. It returns the number of callbacks run.
func (s *Scheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := s.now + d
	fired := 0
	for {
		e := s.nextDue(target)
		if e == nil {
			break
		}
		s.now = e.next
		e.next += e.period
		e.fn()
		fired++
	}
	s.now = target
	return fired
}

// nextDue returns the earliest timer due at or before target.
func (s *Scheduler) nextDue(target time.Duration) *entry {
	var best *entry
	for _, e := range s.entries {
		if e.next > target {
			continue
		}
		if best == nil || e.next < best.next || (e.next == best.next && e.handle < best.handle) {
			best = e
		}
	}
	return best
}
