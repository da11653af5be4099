package gdisp

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/font"
)

// Cell is one character position of a terminal display. The background color
// is the cell's "pixel"; a non-zero Rune is drawn on top in Fg.
type Cell struct {
	Rune rune
	Fg   color.RGBA
	Bg   color.RGBA
}

// CellSurface is a terminal backed display where every cell is one pixel.
type CellSurface struct {
	cells [][]Cell
	clip  image.Rectangle
	bg    color.RGBA
}

// Verify interface compliance.
var _ Surface = (*CellSurface)(nil)

// shadeRunes maps lightness (dark to light) onto block glyphs for
// monochrome output.
var shadeRunes = [5]rune{' ', '░', '▒', '▓', '█'}

// NewCellSurface allocates a width x height cell grid cleared to bg.
func NewCellSurface(width, height int, bg color.RGBA) *CellSurface {
	s := &CellSurface{bg: bg}
	s.Resize(width, height)
	return s
}

// Resize reallocates the grid, clearing it to the background color.
func (s *CellSurface) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.cells = make([][]Cell, height)
	for y := range s.cells {
		row := make([]Cell, width)
		for x := range row {
			row[x] = Cell{Bg: s.bg, Fg: s.bg}
		}
		s.cells[y] = row
	}
	s.clip = s.Bounds()
}

// Bounds returns the grid extent.
func (s *CellSurface) Bounds() image.Rectangle {
	if len(s.cells) == 0 {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, len(s.cells[0]), len(s.cells))
}

// SetClip restricts drawing to r.
func (s *CellSurface) SetClip(r image.Rectangle) { s.clip = r.Intersect(s.Bounds()) }

// Clip returns the active clip.
func (s *CellSurface) Clip() image.Rectangle { return s.clip }

// At returns the cell at (x, y). Out of range positions return the zero Cell.
func (s *CellSurface) At(x, y int) Cell {
	if !image.Pt(x, y).In(s.Bounds()) {
		return Cell{}
	}
	return s.cells[y][x]
}

func (s *CellSurface) paint(x, y int, c color.RGBA) {
	if image.Pt(x, y).In(s.clip) {
		s.cells[y][x] = Cell{Bg: c, Fg: c}
	}
}

// FillArea paints r with c, erasing any text.
func (s *CellSurface) FillArea(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(s.clip)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s.cells[y][x] = Cell{Bg: c, Fg: c}
		}
	}
}

// DrawLine draws a line between p0 and p1.
func (s *CellSurface) DrawLine(p0, p1 image.Point, c color.RGBA) {
	plotLine(p0, p1, func(x, y int) { s.paint(x, y, c) })
}

// DrawBox outlines r.
func (s *CellSurface) DrawBox(r image.Rectangle, c color.RGBA) {
	if r.Empty() {
		return
	}
	tl, tr, bl, br := boxEdges(r)
	s.DrawLine(tl, tr, c)
	s.DrawLine(bl, br, c)
	s.DrawLine(tl, bl, c)
	s.DrawLine(tr, br, c)
}

// DrawStringBox writes text on the middle row of r, one rune per cell. The
// face is ignored: a terminal has a single fixed font.
func (s *CellSurface) DrawStringBox(r image.Rectangle, text string, _ font.Face, c color.RGBA, j Justify) {
	runes := []rune(text)
	if len(runes) == 0 || r.Empty() {
		return
	}
	x := r.Min.X
	switch j {
	case JustifyCenter:
		x += (r.Dx() - len(runes)) / 2
	case JustifyRight:
		x += r.Dx() - len(runes)
	}
	y := r.Min.Y + (r.Dy()-1)/2
	for i, ch := range runes {
		p := image.Pt(x+i, y)
		if !p.In(s.clip) || !p.In(r) {
			continue
		}
		cell := &s.cells[p.Y][p.X]
		cell.Rune = ch
		cell.Fg = c
	}
}

// DrawImage samples img from sp, one pixel per cell.
func (s *CellSurface) DrawImage(r image.Rectangle, img image.Image, sp image.Point) {
	if img == nil {
		return
	}
	origin := img.Bounds().Min.Add(sp)
	clipped := r.Intersect(s.clip)
	for y := clipped.Min.Y; y < clipped.Max.Y; y++ {
		for x := clipped.Min.X; x < clipped.Max.X; x++ {
			src := origin.Add(image.Pt(x-r.Min.X, y-r.Min.Y))
			if !src.In(img.Bounds()) {
				continue
			}
			c := color.RGBAModel.Convert(img.At(src.X, src.Y)).(color.RGBA)
			s.cells[y][x] = Cell{Bg: c, Fg: c}
		}
	}
}

// Render converts the grid into a printable string. In color mode each run
// of identically styled cells is rendered through lipgloss; in monochrome
// mode cell backgrounds become shade glyphs.
func (s *CellSurface) Render(noColor bool) string {
	lines := make([]string, len(s.cells))
	for y, row := range s.cells {
		if noColor {
			lines[y] = renderMono(row)
		} else {
			lines[y] = renderColor(row)
		}
	}
	return strings.Join(lines, "\n")
}

func renderMono(row []Cell) string {
	var b strings.Builder
	for _, c := range row {
		if c.Rune != 0 {
			b.WriteRune(c.Rune)
			continue
		}
		idx := int(math.Round(Lightness(c.Bg) * float64(len(shadeRunes)-1)))
		idx = max(0, min(idx, len(shadeRunes)-1))
		b.WriteRune(shadeRunes[idx])
	}
	return b.String()
}

func renderColor(row []Cell) string {
	var b strings.Builder
	for start := 0; start < len(row); {
		end := start + 1
		for end < len(row) && sameStyle(row[start], row[end]) {
			end++
		}
		var text strings.Builder
		for _, c := range row[start:end] {
			if c.Rune == 0 {
				text.WriteRune(' ')
			} else {
				text.WriteRune(c.Rune)
			}
		}
		style := lipgloss.NewStyle().
			Background(lipgloss.Color(Hex(row[start].Bg))).
			Foreground(lipgloss.Color(Hex(row[start].Fg)))
		b.WriteString(style.Render(text.String()))
		start = end
	}
	return b.String()
}

func sameStyle(a, b Cell) bool {
	return a.Bg == b.Bg && a.Fg == b.Fg
}
