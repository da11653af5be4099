package progressbar

import (
	"image"

	"github.com/agbru/gwinbar/internal/gdisp"
	"github.com/agbru/gwinbar/internal/gwin"
)

// Renderer paints a progressbar. The clip is set to the widget bounds before
// Render is called. param is the opaque value given to SetRenderer.
type Renderer interface {
	Render(pb *Progressbar, param any)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(pb *Progressbar, param any)

// Render calls f(pb, param).
func (f RendererFunc) Render(pb *Progressbar, param any) { f(pb, param) }

// Built-in renderers.
var (
	Std   Renderer = RendererFunc(DrawStd)
	Image Renderer = RendererFunc(DrawImage)
)

// SetRenderer replaces the drawing strategy. A nil r restores the standard
// one. It does not redraw.
func (pb *Progressbar) SetRenderer(r Renderer, param any) {
	if r == nil {
		r = Std
	}
	pb.renderer = r
	pb.SetCustomDraw(func(_ *gwin.Widget, p any) { r.Render(pb, p) }, param)
}

// Renderer returns the installed drawing strategy.
func (pb *Progressbar) Renderer() Renderer { return pb.renderer }

// ActiveArea returns the part of the bar representing completed progress, in
// display coordinates. It is empty at min.
func (pb *Progressbar) ActiveArea() image.Rectangle {
	b := pb.Bounds()
	if pb.Vertical() {
		return image.Rect(b.Min.X, b.Min.Y+pb.dpos+1, b.Max.X, b.Max.Y)
	}
	return image.Rect(b.Min.X, b.Min.Y, b.Min.X+pb.dpos, b.Max.Y)
}

// InactiveArea returns the remainder of the bar, divider included.
func (pb *Progressbar) InactiveArea() image.Rectangle {
	b := pb.Bounds()
	if pb.Vertical() {
		return image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+pb.dpos+1)
	}
	return image.Rect(b.Min.X+pb.dpos, b.Min.Y, b.Max.X, b.Max.Y)
}

// DrawStd fills the active area with the foreground color and the rest with
// the background color. param is ignored.
func DrawStd(pb *Progressbar, _ any) {
	c := pb.Colors()
	d := pb.Display()
	if a := pb.ActiveArea(); !a.Empty() {
		d.FillArea(a, c.Fg)
	}
	d.FillArea(pb.InactiveArea(), c.Bg)
	drawDecorations(pb)
}

// DrawImage tiles the image passed as param over the active area, inside the
// border. The inactive area, border, divider and label use the normal
// colors. A param that is not an image.Image falls back to DrawStd.
func DrawImage(pb *Progressbar, param any) {
	img, ok := param.(image.Image)
	if !ok || img == nil || img.Bounds().Empty() {
		DrawStd(pb, param)
		return
	}
	c := pb.Colors()
	d := pb.Display()
	d.FillArea(pb.Bounds(), c.Bg)
	tileImage(d, pb.ActiveArea().Intersect(pb.Bounds().Inset(1)), img)
	drawDecorations(pb)
}

// tileImage repeats img over r starting at its top-left corner.
func tileImage(d gdisp.Surface, r image.Rectangle, img image.Image) {
	if r.Empty() {
		return
	}
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	for y := r.Min.Y; y < r.Max.Y; y += ih {
		for x := r.Min.X; x < r.Max.X; x += iw {
			tile := image.Rect(x, y, x+iw, y+ih).Intersect(r)
			d.DrawImage(tile, img, image.Point{})
		}
	}
}

// drawDecorations draws the border, the divider and the centered label.
func drawDecorations(pb *Progressbar) {
	c := pb.Colors()
	d := pb.Display()
	b := pb.Bounds()
	d.DrawBox(b, c.Edge)
	if pb.Vertical() {
		y := b.Min.Y + pb.dpos
		d.DrawLine(image.Pt(b.Min.X, y), image.Pt(b.Max.X-1, y), c.Edge)
	} else {
		x := b.Min.X + pb.dpos
		d.DrawLine(image.Pt(x, b.Min.Y), image.Pt(x, b.Max.Y-1), c.Edge)
	}
	if text := pb.Text(); text != "" {
		d.DrawStringBox(b, text, pb.Font(), c.Text, gdisp.JustifyCenter)
	}
}
