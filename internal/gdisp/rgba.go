package gdisp

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// RGBASurface draws into an in-memory RGBA framebuffer.
type RGBASurface struct {
	img  *image.RGBA
	clip image.Rectangle
}

// Verify interface compliance.
var _ Surface = (*RGBASurface)(nil)

// NewRGBASurface allocates a width x height framebuffer cleared to bg.
func NewRGBASurface(width, height int, bg color.RGBA) *RGBASurface {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &RGBASurface{img: img, clip: img.Bounds()}
}

// Image exposes the framebuffer.
func (s *RGBASurface) Image() *image.RGBA { return s.img }

// Bounds returns the framebuffer extent.
func (s *RGBASurface) Bounds() image.Rectangle { return s.img.Bounds() }

// SetClip restricts drawing to r.
func (s *RGBASurface) SetClip(r image.Rectangle) { s.clip = r.Intersect(s.img.Bounds()) }

// Clip returns the active clip.
func (s *RGBASurface) Clip() image.Rectangle { return s.clip }

// FillArea paints r with c.
func (s *RGBASurface) FillArea(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(s.clip)
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// DrawLine draws a line between p0 and p1.
func (s *RGBASurface) DrawLine(p0, p1 image.Point, c color.RGBA) {
	plotLine(p0, p1, func(x, y int) {
		if image.Pt(x, y).In(s.clip) {
			s.img.SetRGBA(x, y, c)
		}
	})
}

// DrawBox outlines r.
func (s *RGBASurface) DrawBox(r image.Rectangle, c color.RGBA) {
	if r.Empty() {
		return
	}
	tl, tr, bl, br := boxEdges(r)
	s.DrawLine(tl, tr, c)
	s.DrawLine(bl, br, c)
	s.DrawLine(tl, bl, c)
	s.DrawLine(tr, br, c)
}

// DrawStringBox renders text with face, justified inside r.
func (s *RGBASurface) DrawStringBox(r image.Rectangle, text string, face font.Face, c color.RGBA, j Justify) {
	if text == "" || face == nil {
		return
	}
	area := r.Intersect(s.clip)
	if area.Empty() {
		return
	}
	dst, ok := s.img.SubImage(area).(*image.RGBA)
	if !ok {
		return
	}

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	width := d.MeasureString(text).Ceil()
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()

	x := r.Min.X
	switch j {
	case JustifyCenter:
		x += (r.Dx() - width) / 2
	case JustifyRight:
		x += r.Dx() - width
	}
	y := r.Min.Y + (r.Dy()+ascent-descent)/2
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}

// DrawImage copies img from sp into r. Source pixels replace the surface
// pixels, alpha included, as on the cell surface.
func (s *RGBASurface) DrawImage(r image.Rectangle, img image.Image, sp image.Point) {
	if img == nil {
		return
	}
	clipped := r.Intersect(s.clip)
	if clipped.Empty() {
		return
	}
	sp = sp.Add(clipped.Min.Sub(r.Min))
	draw.Draw(s.img, clipped, img, img.Bounds().Min.Add(sp), draw.Src)
}
