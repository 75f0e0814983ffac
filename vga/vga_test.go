package vga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snakeos/hal"
)

func newTestWriter() (*Writer, *hal.TextMemory) {
	mem := hal.NewTextMemory(Height, Width)
	return NewWriter(mem, NewColorCode(White, Black)), mem
}

func rowText(w *Writer, row int) string {
	b := make([]byte, w.Cols())
	for col := range b {
		b[col] = w.ReadCharAt(row, col).Code
	}
	return string(b)
}

func TestColorCodePacking(t *testing.T) {
	c := NewColorCode(Red, Blue)
	assert.Equal(t, ColorCode(0x14), c)
	assert.Equal(t, Red, c.Foreground())
	assert.Equal(t, Blue, c.Background())
}

func TestScreenCharEqualityIgnoresColor(t *testing.T) {
	a := ScreenChar{Code: 3, Color: NewColorCode(Red, Black)}
	b := ScreenChar{Code: 3, Color: NewColorCode(White, Blue)}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(ScreenChar{Code: 4, Color: a.Color}))
	assert.Equal(t, '♥', a.Rune())
}

func TestWriteReadCell(t *testing.T) {
	w, mem := newTestWriter()
	c := ScreenChar{Code: 'x', Color: NewColorCode(Yellow, Green)}
	w.WriteCharAt(24, 79, c)

	assert.Equal(t, c, w.ReadCharAt(24, 79))
	assert.Equal(t, uint16(0x2E78), mem.ReadCell(24, 79))
	assert.Panics(t, func() { w.WriteCharAt(25, 0, c) })
	assert.Panics(t, func() { w.ReadCharAt(0, -1) })
}

func TestClear(t *testing.T) {
	w, _ := newTestWriter()
	w.WriteCharAt(3, 4, ScreenChar{Code: 'q'})
	w.Clear()
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			require.Equal(t, byte(' '), w.ReadCharAt(row, col).Code)
		}
	}
}

func TestConsoleScrolls(t *testing.T) {
	w, _ := newTestWriter()
	w.Clear()
	_, err := w.WriteString("first\nsecond")
	require.NoError(t, err)

	assert.Equal(t, "first", rowText(w, Height-2)[:5])
	assert.Equal(t, "second", rowText(w, Height-1)[:6])
}

func TestConsoleWrapsLongLines(t *testing.T) {
	w, _ := newTestWriter()
	w.Clear()
	for i := 0; i < Width+2; i++ {
		w.WriteByte('a')
	}
	assert.Equal(t, byte('a'), w.ReadCharAt(Height-2, Width-1).Code)
	assert.Equal(t, "aa ", rowText(w, Height-1)[:3])
}

func TestNonASCIIBecomesBlock(t *testing.T) {
	w, _ := newTestWriter()
	w.Clear()
	w.WriteString("é!")
	assert.Equal(t, byte(0xFE), w.ReadCharAt(Height-1, 0).Code)
	assert.Equal(t, byte('!'), w.ReadCharAt(Height-1, 1).Code)
}

func TestWriteStringAtTruncates(t *testing.T) {
	w, _ := newTestWriter()
	w.Clear()
	w.WriteStringAt(0, 76, "SCORE")
	assert.Equal(t, "SCOR", rowText(w, 0)[76:])
	assert.Equal(t, byte(' '), w.ReadCharAt(1, 0).Code)
}

type fakeMasker struct {
	enabled bool
	masked  int
}

func (m *fakeMasker) WithoutInterrupts(fn func()) {
	saved := m.enabled
	m.enabled = false
	m.masked++
	fn()
	m.enabled = saved
}

func TestScreenMasksInterrupts(t *testing.T) {
	w, _ := newTestWriter()
	m := &fakeMasker{enabled: true}
	s := NewScreen(w, m)

	s.Do(func(w *Writer) {
		assert.False(t, m.enabled)
		w.WriteCharAt(0, 0, ScreenChar{Code: 'z'})
	})
	assert.True(t, m.enabled)
	assert.Equal(t, 1, m.masked)
	assert.Equal(t, byte('z'), w.ReadCharAt(0, 0).Code)
}

func TestScreenTryDoSkipsWhenLocked(t *testing.T) {
	w, _ := newTestWriter()
	s := NewScreen(w, &fakeMasker{})

	s.Do(func(*Writer) {
		assert.False(t, s.TryDo(func(*Writer) { t.Error("ran while locked") }))
	})
	assert.True(t, s.TryDo(func(*Writer) {}))
}

func TestScreenUnlocksAfterPanic(t *testing.T) {
	w, _ := newTestWriter()
	s := NewScreen(w, &fakeMasker{})
	assert.Panics(t, func() { s.Do(func(*Writer) { panic("draw") }) })
	assert.True(t, s.TryDo(func(*Writer) {}))
}
