// Package cp437 draws the code page 437 glyphs used on the text display.
//
// Printable ASCII comes from the proggy bitmap font; box drawing, arrow and
// card-suit glyphs are drawn as line art sized to the character cell.
package cp437

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Character cell geometry in pixels.
const (
	CellWidth  = 8
	CellHeight = 14
	Ascent     = 11
)

// Font implements tinyfont.Fonter over a fixed character cell.
// Concurrent access is not safe due to internal glyph reuse.
var Font tinyfont.Fonter = &font{}

var ascii tinyfont.Fonter = &proggy.TinySZ8pt7b

type font struct {
	g glyph
}

type glyph struct {
	r rune
}

func (f *font) GetYAdvance() uint8 { return CellHeight }

func (f *font) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    CellWidth,
		Height:   CellHeight,
		XAdvance: CellWidth,
		YOffset:  -Ascent,
	}
}

// Draw renders the glyph with its baseline at y.
func (g *glyph) Draw(d drivers.Displayer, x, y int16, c color.RGBA) {
	top := y - Ascent
	midX := x + CellWidth/2 - 1
	midY := top + CellHeight/2

	switch g.r {
	case ' ', 0:
	case '─':
		hline(d, x, x+CellWidth-1, midY, c)
	case '│':
		vline(d, midX, top, top+CellHeight-1, c)
	case '┌':
		hline(d, midX, x+CellWidth-1, midY, c)
		vline(d, midX, midY, top+CellHeight-1, c)
	case '┐':
		hline(d, x, midX, midY, c)
		vline(d, midX, midY, top+CellHeight-1, c)
	case '└':
		hline(d, midX, x+CellWidth-1, midY, c)
		vline(d, midX, top, midY, c)
	case '┘':
		hline(d, x, midX, midY, c)
		vline(d, midX, top, midY, c)
	case '►':
		for i := int16(0); i < 6; i++ {
			vline(d, x+1+i, midY-(5-i), midY+(5-i), c)
		}
	case '◄':
		for i := int16(0); i < 6; i++ {
			vline(d, x+6-i, midY-(5-i), midY+(5-i), c)
		}
	case '▲':
		for i := int16(0); i < 4; i++ {
			hline(d, midX-i, midX+i, top+4+i, c)
		}
	case '▼':
		for i := int16(0); i < 4; i++ {
			hline(d, midX-(3-i), midX+(3-i), top+5+i, c)
		}
	case '♥':
		for row, bits := range heart {
			for col := 0; col < 7; col++ {
				if bits&(0x40>>col) != 0 {
					d.SetPixel(x+int16(col), top+3+int16(row), c)
				}
			}
		}
	default:
		r := g.r
		if r < 0x20 || r > 0x7e {
			r = '?'
		}
		ascii.GetGlyph(r).Draw(d, x+1, y, c)
	}
}

var heart = [6]uint8{
	0b0110110,
	0b1111111,
	0b1111111,
	0b0111110,
	0b0011100,
	0b0001000,
}

func hline(d drivers.Displayer, x0, x1, y int16, c color.RGBA) {
	for x := x0; x <= x1; x++ {
		d.SetPixel(x, y, c)
	}
}

func vline(d drivers.Displayer, x, y0, y1 int16, c color.RGBA) {
	for y := y0; y <= y1; y++ {
		d.SetPixel(x, y, c)
	}
}
