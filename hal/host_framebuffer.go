//go:build !tinygo

package hal

import (
	"image/color"
	"sync"

	"snakeos/fonts/cp437"

	"tinygo.org/x/tinyfont"
)

// hostFramebuffer is an RGB565 little-endian pixel buffer the text display
// is rasterised into.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte

	cells []uint16
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

// renderText rasterises the text memory, one character cell per glyph.
func (f *hostFramebuffer) renderText(text *TextMemory) {
	f.cells = text.Snapshot(f.cells)

	f.mu.Lock()
	defer f.mu.Unlock()

	d := fbDisplayer{fb: f}
	cols := text.Cols()
	for i, cell := range f.cells {
		row, col := i/cols, i%cols
		x := int16(col * cp437.CellWidth)
		y := int16(row * cp437.CellHeight)
		code, fg, bg := CellColors(cell)
		f.fillLocked(int(x), int(y), cp437.CellWidth, cp437.CellHeight, rgb565(bg.R, bg.G, bg.B))
		tinyfont.DrawChar(d, cp437.Font, x, y+cp437.Ascent, CellRune(code), fg)
	}
}

func (f *hostFramebuffer) fillLocked(x0, y0, w, h int, pixel uint16) {
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for y := y0; y < y0+h && y < f.height; y++ {
		row := y * f.stride
		for x := x0; x < x0+w && x < f.width; x++ {
			off := row + x*2
			f.buf[off] = lo
			f.buf[off+1] = hi
		}
	}
}

func (f *hostFramebuffer) snapshotRGB565(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

// fbDisplayer adapts the framebuffer to drivers.Displayer; the caller holds fb.mu.
type fbDisplayer struct {
	fb *hostFramebuffer
}

func (d fbDisplayer) Size() (x, y int16) {
	return int16(d.fb.width), int16(d.fb.height)
}

func (d fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.width || iy < 0 || iy >= d.fb.height {
		return
	}
	pixel := rgb565(c.R, c.G, c.B)
	off := iy*d.fb.stride + ix*2
	d.fb.buf[off] = byte(pixel)
	d.fb.buf[off+1] = byte(pixel >> 8)
}

func (d fbDisplayer) Display() error { return nil }
