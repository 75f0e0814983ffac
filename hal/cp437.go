package hal

import (
	"image/color"

	"golang.org/x/text/encoding/charmap"
)

// lowGlyphs are the graphic glyphs the VGA character ROM shows for code
// points 0x00-0x1F, which charmap decodes as control characters.
var lowGlyphs = [32]rune{
	' ', '☺', '☻', '♥', '♦', '♣', '♠', '•', '◘', '○', '◙', '♂', '♀', '♪', '♫', '☼',
	'►', '◄', '↕', '‼', '¶', '§', '▬', '↨', '↑', '↓', '→', '←', '∟', '↔', '▲', '▼',
}

// CellRune returns the Unicode rune for a code page 437 code point.
func CellRune(code byte) rune {
	if code < 0x20 {
		return lowGlyphs[code]
	}
	if code == 0x7F {
		return '⌂'
	}
	return charmap.CodePage437.DecodeByte(code)
}

// Palette is the 16-colour VGA text palette, indexed by attribute nibble.
var Palette = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0xFF}, // black
	{0x00, 0x00, 0xAA, 0xFF}, // blue
	{0x00, 0xAA, 0x00, 0xFF}, // green
	{0x00, 0xAA, 0xAA, 0xFF}, // cyan
	{0xAA, 0x00, 0x00, 0xFF}, // red
	{0xAA, 0x00, 0xAA, 0xFF}, // magenta
	{0xAA, 0x55, 0x00, 0xFF}, // brown
	{0xAA, 0xAA, 0xAA, 0xFF}, // light gray
	{0x55, 0x55, 0x55, 0xFF}, // dark gray
	{0x55, 0x55, 0xFF, 0xFF}, // light blue
	{0x55, 0xFF, 0x55, 0xFF}, // light green
	{0x55, 0xFF, 0xFF, 0xFF}, // light cyan
	{0xFF, 0x55, 0x55, 0xFF}, // light red
	{0xFF, 0x55, 0xFF, 0xFF}, // pink
	{0xFF, 0xFF, 0x55, 0xFF}, // yellow
	{0xFF, 0xFF, 0xFF, 0xFF}, // white
}

// CellColors splits a text cell into its code point and colours.
func CellColors(cell uint16) (code byte, fg, bg color.RGBA) {
	attr := uint8(cell >> 8)
	return byte(cell), Palette[attr&0x0F], Palette[(attr>>4)&0x0F]
}
