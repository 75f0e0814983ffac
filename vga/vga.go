// Package vga drives the 80x25 colour text display.
package vga

import "snakeos/hal"

const (
	Height = hal.TextRows
	Width  = hal.TextCols
)

// Color is one of the 16 VGA text colours.
type Color uint8

const (
	Black Color = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGray
	DarkGray
	LightBlue
	LightGreen
	LightCyan
	LightRed
	Pink
	Yellow
	White
)

// ColorCode packs a foreground and background colour as bg<<4 | fg.
type ColorCode uint8

func NewColorCode(fg, bg Color) ColorCode {
	return ColorCode(uint8(bg)<<4 | uint8(fg))
}

func (c ColorCode) Foreground() Color { return Color(c & 0x0F) }
func (c ColorCode) Background() Color { return Color(c >> 4) }

// ScreenChar is one display cell: a CP437 code point and its colours.
type ScreenChar struct {
	Code  byte
	Color ColorCode
}

// Equal compares code points only.
func (c ScreenChar) Equal(o ScreenChar) bool { return c.Code == o.Code }

// Rune returns the Unicode rendering of the code point.
func (c ScreenChar) Rune() rune { return hal.CellRune(c.Code) }

func (c ScreenChar) cell() uint16 { return uint16(c.Code) | uint16(c.Color)<<8 }

func charFromCell(v uint16) ScreenChar {
	return ScreenChar{Code: byte(v), Color: ColorCode(v >> 8)}
}

// Display is the cell-level surface the game draws on.
type Display interface {
	Rows() int
	Cols() int
	ReadCharAt(row, col int) ScreenChar
	WriteCharAt(row, col int, c ScreenChar)
}

// PutString writes s starting at (row, col), dropping whatever does not
// fit on the row.
func PutString(d Display, row, col int, s string, color ColorCode) {
	for i := 0; i < len(s) && col+i < d.Cols(); i++ {
		d.WriteCharAt(row, col+i, ScreenChar{Code: printable(rune(s[i])), Color: color})
	}
}

// printable maps runes outside printable ASCII to the CP437 block glyph.
func printable(r rune) byte {
	if r >= 0x20 && r <= 0x7E {
		return byte(r)
	}
	return 0xFE
}
