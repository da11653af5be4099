// Package gwin is the generic widget layer: widget creation on a display,
// visibility, movement, default colors and fonts, and dispatch to a
// replaceable drawing function. Concrete widgets (see package progressbar)
// embed a *Widget and install their own drawing strategy.
package gwin

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"

	apperrors "github.com/agbru/gwinbar/internal/errors"
	"github.com/agbru/gwinbar/internal/gdisp"
	"github.com/agbru/gwinbar/internal/logging"
)

// ID uniquely identifies a widget within a Manager.
type ID uint64

// DrawFunc paints a widget. The clip is already set to the widget bounds
// when it is called.
type DrawFunc func(w *Widget, param any)

// WidgetInit carries the creation parameters shared by all widgets.
type WidgetInit struct {
	X, Y          int
	Width, Height int
	// Show makes the widget visible (and drawn) immediately.
	Show bool
	// Text is the widget label.
	Text string
	// Disabled creates the widget in the disabled state.
	Disabled bool
}

// Widget is the state every widget shares.
type Widget struct {
	id      ID
	kind    string
	name    string
	tk      *Toolkit
	display gdisp.Surface
	bounds  image.Rectangle

	visible   bool
	enabled   bool
	destroyed bool

	color   color.RGBA
	bgColor color.RGBA
	palette ColorSet
	font    font.Face
	text    string

	draw       DrawFunc
	param      any
	owner      any
	onResize   func()
	onTeardown func()
}

// NewWidget allocates a widget of the given kind on display, inheriting the
// toolkit defaults. It fails when there is no display or the requested area
// does not intersect it.
func NewWidget(tk *Toolkit, display gdisp.Surface, kind string, init WidgetInit) (*Widget, error) {
	if tk == nil {
		return nil, apperrors.AllocationError{Widget: kind, Reason: "no toolkit"}
	}
	if display == nil {
		display = tk.Display
	}
	if display == nil {
		return nil, apperrors.AllocationError{Widget: kind, Reason: "no display"}
	}
	if init.Width <= 0 || init.Height <= 0 {
		return nil, apperrors.AllocationError{
			Widget: kind,
			Reason: fmt.Sprintf("degenerate drawing area %dx%d", init.Width, init.Height),
		}
	}
	bounds := image.Rect(init.X, init.Y, init.X+init.Width, init.Y+init.Height)
	if bounds.Intersect(display.Bounds()).Empty() {
		return nil, apperrors.AllocationError{Widget: kind, Reason: "drawing area outside display"}
	}

	d := tk.Defaults
	w := &Widget{
		kind:    kind,
		tk:      tk,
		display: display,
		bounds:  bounds,
		enabled: !init.Disabled,
		color:   d.Color,
		bgColor: d.BgColor,
		palette: d.Palette,
		font:    d.Font,
		text:    init.Text,
	}
	tk.Manager.register(w)
	w.name = fmt.Sprintf("%s-%d", kind, w.id)
	tk.Logger.Debug("widget created",
		logging.String("widget", w.name),
		logging.Int("width", init.Width),
		logging.Int("height", init.Height))
	if init.Show {
		w.visible = true
	}
	return w, nil
}

// ID returns the widget identifier.
func (w *Widget) ID() ID { return w.id }

// Kind returns the widget kind, e.g. "progressbar".
func (w *Widget) Kind() string { return w.kind }

// Name returns a stable label of the form kind-id.
func (w *Widget) Name() string { return w.name }

// Toolkit returns the toolkit the widget was created with.
func (w *Widget) Toolkit() *Toolkit { return w.tk }

// Display returns the surface the widget draws on.
func (w *Widget) Display() gdisp.Surface { return w.display }

// Bounds returns the widget area in display coordinates.
func (w *Widget) Bounds() image.Rectangle { return w.bounds }

// Width returns the widget width in pixels.
func (w *Widget) Width() int { return w.bounds.Dx() }

// Height returns the widget height in pixels.
func (w *Widget) Height() int { return w.bounds.Dy() }

// Visible reports whether the widget is shown.
func (w *Widget) Visible() bool { return w.visible }

// Enabled reports whether the widget is enabled.
func (w *Widget) Enabled() bool { return w.enabled }

// Destroyed reports whether Destroy has been called.
func (w *Widget) Destroyed() bool { return w.destroyed }

// Text returns the label.
func (w *Widget) Text() string { return w.text }

// Font returns the label font.
func (w *Widget) Font() font.Face { return w.font }

// Owner returns the concrete widget embedding w, if one registered itself.
func (w *Widget) Owner() any { return w.owner }

// SetOwner records the concrete widget embedding w.
func (w *Widget) SetOwner(owner any) { w.owner = owner }

// OnResize installs a hook run after every bounds change, before redrawing.
func (w *Widget) OnResize(fn func()) { w.onResize = fn }

// OnTeardown installs a hook run once by Destroy.
func (w *Widget) OnTeardown(fn func()) { w.onTeardown = fn }

// SetText changes the label. It does not redraw.
func (w *Widget) SetText(text string) { w.text = text }

// SetFont changes the label font. It does not redraw.
func (w *Widget) SetFont(f font.Face) { w.font = f }

// SetColor sets the foreground color. It does not redraw.
func (w *Widget) SetColor(c color.RGBA) { w.color = c }

// SetBgColor sets the background color. It does not redraw.
func (w *Widget) SetBgColor(c color.RGBA) { w.bgColor = c }

// SetPalette sets the edge and text colors. It does not redraw.
func (w *Widget) SetPalette(p ColorSet) { w.palette = p }

// Colors returns the colors a drawing function should use. Disabled widgets
// get every color blended halfway toward the background.
func (w *Widget) Colors() Colors {
	c := Colors{
		Fg:   w.color,
		Bg:   w.bgColor,
		Edge: w.palette.Edge,
		Text: w.palette.Text,
	}
	if !w.enabled {
		c.Fg = gdisp.Blend(c.Fg, c.Bg, 0.5)
		c.Edge = gdisp.Blend(c.Edge, c.Bg, 0.5)
		c.Text = gdisp.Blend(c.Text, c.Bg, 0.5)
	}
	return c
}

// SetCustomDraw installs the drawing function and its opaque parameter.
// A nil fn leaves the widget undrawable until another is installed.
func (w *Widget) SetCustomDraw(fn DrawFunc, param any) {
	w.draw = fn
	w.param = param
}

// CustomParam returns the parameter passed to the drawing function.
func (w *Widget) CustomParam() any { return w.param }

// Redraw invokes the drawing function with the clip set to the widget
// bounds. Hidden or destroyed widgets are not drawn.
func (w *Widget) Redraw() {
	if w.destroyed || !w.visible || w.draw == nil {
		return
	}
	prev := w.display.Clip()
	w.display.SetClip(w.bounds)
	w.draw(w, w.param)
	w.display.SetClip(prev)
	w.tk.Metrics.Redraw(w.name)
}

// SetVisible shows or hides the widget. Showing redraws it; hiding erases
// its area with the background color.
func (w *Widget) SetVisible(visible bool) {
	if w.destroyed || w.visible == visible {
		return
	}
	w.visible = visible
	if visible {
		w.Redraw()
		return
	}
	w.erase()
}

// SetEnabled changes the enabled state and redraws.
func (w *Widget) SetEnabled(enabled bool) {
	if w.destroyed || w.enabled == enabled {
		return
	}
	w.enabled = enabled
	w.Redraw()
}

// Move repositions the widget, erasing the old area and redrawing.
func (w *Widget) Move(x, y int) {
	w.setBounds(image.Rect(x, y, x+w.bounds.Dx(), y+w.bounds.Dy()))
}

// Resize changes the widget size. Non-positive sizes are ignored.
func (w *Widget) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w.setBounds(image.Rect(w.bounds.Min.X, w.bounds.Min.Y, w.bounds.Min.X+width, w.bounds.Min.Y+height))
}

func (w *Widget) setBounds(r image.Rectangle) {
	if w.destroyed || r == w.bounds {
		return
	}
	if w.visible {
		w.erase()
	}
	w.bounds = r
	if w.onResize != nil {
		w.onResize()
	}
	w.Redraw()
}

func (w *Widget) erase() {
	prev := w.display.Clip()
	w.display.SetClip(w.bounds)
	w.display.FillArea(w.bounds, w.bgColor)
	w.display.SetClip(prev)
}

// Destroy runs the teardown hook, hides the widget and unregisters it.
// Further calls are no-ops.
func (w *Widget) Destroy() {
	if w.destroyed {
		return
	}
	if w.onTeardown != nil {
		w.onTeardown()
	}
	if w.visible {
		w.erase()
	}
	w.visible = false
	w.destroyed = true
	w.tk.Manager.unregister(w)
	w.tk.Logger.Debug("widget destroyed", logging.String("widget", w.name))
}
