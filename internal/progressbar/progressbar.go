package progressbar

import (
	"math/bits"
	"time"

	"github.com/agbru/gwinbar/internal/gdisp"
	"github.com/agbru/gwinbar/internal/gtimer"
	"github.com/agbru/gwinbar/internal/gwin"
	"github.com/agbru/gwinbar/internal/logging"
)

// Kind is the widget kind reported by the window manager.
const Kind = "progressbar"

// Defaults applied by Create.
const (
	DefaultMin        = 0
	DefaultMax        = 100
	DefaultResolution = 1
)

// Progressbar is a progress indicator. It embeds the generic widget, so
// visibility, movement, colors, Redraw and Destroy come from gwin.Widget.
type Progressbar struct {
	*gwin.Widget

	min, max int
	res      int
	pos      int
	dpos     int

	timer   gtimer.Handle
	delay   time.Duration
	running bool
	hook    func(*Progressbar)

	renderer Renderer
}

// Create allocates a progressbar on the toolkit's default display. See CreateOn.
func Create(tk *gwin.Toolkit, storage *Progressbar, init gwin.WidgetInit) (*Progressbar, error) {
	return CreateOn(tk, nil, storage, init)
}

// CreateOn allocates a progressbar on display. When storage is non-nil it is
// reset and used instead of a fresh allocation. The bar starts with range
// [0,100], position 0, resolution 1 and the standard renderer. On failure
// the returned bar is nil and the error is an apperrors.AllocationError.
func CreateOn(tk *gwin.Toolkit, display gdisp.Surface, storage *Progressbar, init gwin.WidgetInit) (*Progressbar, error) {
	w, err := gwin.NewWidget(tk, display, Kind, init)
	if err != nil {
		return nil, err
	}
	pb := storage
	if pb == nil {
		pb = &Progressbar{}
	}
	*pb = Progressbar{
		Widget: w,
		min:    DefaultMin,
		max:    DefaultMax,
		res:    DefaultResolution,
		pos:    DefaultMin,
	}
	w.SetOwner(pb)
	w.OnResize(pb.resetDisplayPos)
	w.OnTeardown(pb.Stop)
	pb.SetRenderer(Std, nil)
	pb.resetDisplayPos()
	if w.Visible() {
		pb.Redraw()
	}
	return pb, nil
}

// Of returns the progressbar embedding w, if any.
func Of(w *gwin.Widget) (*Progressbar, bool) {
	if w == nil {
		return nil, false
	}
	pb, ok := w.Owner().(*Progressbar)
	return pb, ok
}

// SetRange sets the inclusive range and moves the position to the new
// minimum. Reversed bounds are swapped; equal bounds give a degenerate bar
// pinned at min.
func (pb *Progressbar) SetRange(min, max int) {
	if min > max {
		pb.Toolkit().Logger.Debug("progressbar range reversed, swapping",
			logging.String("widget", pb.Name()),
			logging.Int("min", min),
			logging.Int("max", max))
		min, max = max, min
	}
	pb.min, pb.max = min, max
	pb.pos = min
	pb.resetDisplayPos()
}

// SetPosition moves to pos, clamped into the range.
func (pb *Progressbar) SetPosition(pos int) {
	pb.pos = pb.clamp(pos)
	pb.resetDisplayPos()
}

// SetResolution sets the step used by Increment, Decrement and auto-advance.
// The value is stored verbatim; the clamp on every move keeps the position
// in range whatever it is.
func (pb *Progressbar) SetResolution(res int) {
	pb.res = res
}

// Increment moves the position up by one resolution step, saturating at max.
func (pb *Progressbar) Increment() {
	pb.pos = pb.step(pb.res >= 0, magnitude(pb.res))
	pb.resetDisplayPos()
}

// Decrement moves the position down by one resolution step, saturating at min.
func (pb *Progressbar) Decrement() {
	pb.pos = pb.step(pb.res < 0, magnitude(pb.res))
	pb.resetDisplayPos()
}

// Position returns the current position.
func (pb *Progressbar) Position() int { return pb.pos }

// Range returns the inclusive bounds.
func (pb *Progressbar) Range() (min, max int) { return pb.min, pb.max }

// Resolution returns the step size.
func (pb *Progressbar) Resolution() int { return pb.res }

// DisplayPos returns the pixel offset of the divider between the active and
// inactive areas, relative to the widget origin. It is an x offset for
// horizontal bars and a y offset for vertical ones.
func (pb *Progressbar) DisplayPos() int { return pb.dpos }

// Fraction returns the position normalised to [0,1]. A degenerate range
// reports 0.
func (pb *Progressbar) Fraction() float64 {
	span := pb.span()
	if span == 0 {
		return 0
	}
	return float64(pb.offset()) / float64(span)
}

// Vertical reports whether the bar fills from the bottom, which it does when
// it is taller than wide.
func (pb *Progressbar) Vertical() bool {
	return pb.Width() < pb.Height()
}

func (pb *Progressbar) clamp(v int) int {
	switch {
	case v < pb.min:
		return pb.min
	case v > pb.max:
		return pb.max
	}
	return v
}

// span and offset are max-min and pos-min. Both are exact in uint64 for any
// int bounds because min <= pos <= max.
func (pb *Progressbar) span() uint64 { return uint64(pb.max) - uint64(pb.min) }
func (pb *Progressbar) offset() uint64 { return uint64(pb.pos) - uint64(pb.min) }

// step moves the position by mag towards max (up) or min, saturating at the
// bound. The arithmetic is done on the offset from min so it cannot wrap.
func (pb *Progressbar) step(up bool, mag uint64) int {
	off, span := pb.offset(), pb.span()
	switch {
	case up && mag > span-off:
		off = span
	case up:
		off += mag
	case mag > off:
		off = 0
	default:
		off -= mag
	}
	return int(uint64(pb.min) + off)
}

// magnitude returns |v| without overflowing on math.MinInt.
func magnitude(v int) uint64 {
	if v >= 0 {
		return uint64(v)
	}
	return uint64(-(v + 1)) + 1
}

// scale returns size*off/span rounded down, for off <= span and span > 0.
// The product is kept at 128 bits so wide ranges do not overflow.
func scale(size int, off, span uint64) int {
	hi, lo := bits.Mul64(uint64(size), off)
	q, _ := bits.Div64(hi, lo, span)
	return int(q)
}

// resetDisplayPos recomputes the divider from the position and the current
// geometry. The result always lies inside the widget.
func (pb *Progressbar) resetDisplayPos() {
	span := pb.span()
	if pb.Vertical() {
		h := max(pb.Height()-1, 0)
		if span == 0 {
			pb.dpos = h
			return
		}
		pb.dpos = h - min(scale(h, pb.offset(), span), h)
		return
	}
	if span == 0 {
		pb.dpos = 0
		return
	}
	w := max(pb.Width()-1, 0)
	pb.dpos = min(scale(w, pb.offset(), span), w)
}
