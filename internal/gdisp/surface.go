// Package gdisp is the display abstraction the widgets draw through. A Surface
// offers the handful of primitives a small display driver provides (area
// fill, lines, boxes, justified text and image blits), all honouring a single
// clip rectangle.
package gdisp

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Justify controls horizontal text placement inside a box.
type Justify int

const (
	JustifyLeft Justify = iota
	JustifyCenter
	JustifyRight
)

// Well known colors.
var (
	White = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	Black = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	Gray  = color.RGBA{0x80, 0x80, 0x80, 0xFF}
	Green = color.RGBA{0x40, 0xC0, 0x40, 0xFF}
)

// Surface is a drawable display. Every primitive is clipped to Clip().
type Surface interface {
	// Bounds returns the full extent of the display.
	Bounds() image.Rectangle
	// SetClip restricts drawing to r intersected with Bounds.
	SetClip(r image.Rectangle)
	// Clip returns the active clip rectangle.
	Clip() image.Rectangle
	// FillArea paints r with c.
	FillArea(r image.Rectangle, c color.RGBA)
	// DrawLine draws a one pixel line between p0 and p1 inclusive.
	DrawLine(p0, p1 image.Point, c color.RGBA)
	// DrawBox draws the one pixel outline of r.
	DrawBox(r image.Rectangle, c color.RGBA)
	// DrawStringBox draws text inside r, vertically centered.
	DrawStringBox(r image.Rectangle, text string, face font.Face, c color.RGBA, j Justify)
	// DrawImage copies img starting at source point sp into r.
	DrawImage(r image.Rectangle, img image.Image, sp image.Point)
}

// DefaultFont returns the built-in fixed width font.
func DefaultFont() font.Face {
	return basicfont.Face7x13
}

// Blend mixes a toward b by t in [0,1].
func Blend(a, b color.RGBA, t float64) color.RGBA {
	ca, _ := colorful.MakeColor(a)
	cb, _ := colorful.MakeColor(b)
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 0xFF}
}

// Hex returns the #rrggbb form of c.
func Hex(c color.RGBA) string {
	cc, _ := colorful.MakeColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})
	return cc.Hex()
}

// ParseHex parses a #rrggbb or #rgb color.
func ParseHex(s string) (color.RGBA, error) {
	cc, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := cc.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

// Lightness returns the perceptual lightness of c in [0,1].
func Lightness(c color.RGBA) float64 {
	cc, _ := colorful.MakeColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})
	l, _, _ := cc.Lab()
	return l
}

// boxEdges returns the four corner points of the inclusive outline of r.
func boxEdges(r image.Rectangle) (tl, tr, bl, br image.Point) {
	return r.Min,
		image.Pt(r.Max.X-1, r.Min.Y),
		image.Pt(r.Min.X, r.Max.Y-1),
		image.Pt(r.Max.X-1, r.Max.Y-1)
}

// plotLine walks the Bresenham line from p0 to p1 calling plot for each point.
func plotLine(p0, p1 image.Point, plot func(x, y int)) {
	dx := abs(p1.X - p0.X)
	dy := -abs(p1.Y - p0.Y)
	sx, sy := 1, 1
	if p0.X > p1.X {
		sx = -1
	}
	if p0.Y > p1.Y {
		sy = -1
	}
	e := dx + dy
	x, y := p0.X, p0.Y
	for {
		plot(x, y)
		if x == p1.X && y == p1.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
