package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// Ports is the x86 I/O port address space.
//
// Reads from unmapped ports return 0xFF; writes to unmapped ports are dropped.
type Ports interface {
	In8(port uint16) uint8
	Out8(port uint16, v uint8)
}

// InterruptController is the CPU-facing side of the interrupt controller:
// the INTR line and the interrupt acknowledge cycle.
type InterruptController interface {
	// Wake is signalled whenever a new request may be pending.
	Wake() <-chan struct{}
	// Pending reports whether INTR is asserted.
	Pending() bool
	// Acknowledge runs the INTA cycle and returns the vector to dispatch.
	Acknowledge() (vector uint8, ok bool)
}

// TextBuffer is the memory-mapped character display.
//
// Each cell holds the code point in the low byte and the colour attribute in
// the high byte, matching the VGA text mode layout at 0xb8000.
type TextBuffer interface {
	Rows() int
	Cols() int
	ReadCell(row, col int) uint16
	WriteCell(row, col int, v uint16)
}

// KeyCode is a minimal host key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyDelete
	KeyHome
	KeyEnd
	KeySpace
)

// KeyEvent is a host keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// HAL provides the only contact point between the machine and the outside world.
type HAL interface {
	Logger() Logger
	Ports() Ports
	Interrupts() InterruptController
	Text() TextBuffer
}
