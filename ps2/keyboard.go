// Package ps2 decodes PS/2 keyboard scancodes (set 1, US layout).
package ps2

// KeyCode identifies a physical key.
type KeyCode uint8

const (
	KeyUnknown KeyCode = iota
	KeyEscape
	KeyBackspace
	KeyTab
	KeyEnter
	KeySpace
	KeyControlLeft
	KeyControlRight
	KeyShiftLeft
	KeyShiftRight
	KeyAltLeft
	KeyAltRight
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyHome
	KeyEnd
	KeyDelete
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

// KeyState is the transition a scancode reports.
type KeyState uint8

const (
	KeyDown KeyState = iota
	KeyUp
)

// KeyEvent is one decoded make or break code.
type KeyEvent struct {
	Code  KeyCode
	State KeyState
}

// DecodedKey is a key press after modifiers are applied.
// Rune is zero for keys with no character.
type DecodedKey struct {
	Code KeyCode
	Rune rune
}

const (
	prefixExtended = 0xE0
	breakBit       = 0x80
)

var set1 = [0x80]KeyCode{
	0x01: KeyEscape,
	0x02: Key1, 0x03: Key2, 0x04: Key3, 0x05: Key4, 0x06: Key5,
	0x07: Key6, 0x08: Key7, 0x09: Key8, 0x0A: Key9, 0x0B: Key0,
	0x0E: KeyBackspace,
	0x0F: KeyTab,
	0x10: KeyQ, 0x11: KeyW, 0x12: KeyE, 0x13: KeyR, 0x14: KeyT,
	0x15: KeyY, 0x16: KeyU, 0x17: KeyI, 0x18: KeyO, 0x19: KeyP,
	0x1C: KeyEnter,
	0x1D: KeyControlLeft,
	0x1E: KeyA, 0x1F: KeyS, 0x20: KeyD, 0x21: KeyF, 0x22: KeyG,
	0x23: KeyH, 0x24: KeyJ, 0x25: KeyK, 0x26: KeyL,
	0x2A: KeyShiftLeft,
	0x2C: KeyZ, 0x2D: KeyX, 0x2E: KeyC, 0x2F: KeyV, 0x30: KeyB,
	0x31: KeyN, 0x32: KeyM,
	0x36: KeyShiftRight,
	0x38: KeyAltLeft,
	0x39: KeySpace,
}

var set1Extended = [0x80]KeyCode{
	0x1C: KeyEnter,
	0x1D: KeyControlRight,
	0x38: KeyAltRight,
	0x47: KeyHome,
	0x48: KeyArrowUp,
	0x4B: KeyArrowLeft,
	0x4D: KeyArrowRight,
	0x4F: KeyEnd,
	0x50: KeyArrowDown,
	0x53: KeyDelete,
}

// Keyboard is a scancode set 1 decoder. The zero value is ready to use.
type Keyboard struct {
	extended bool
	lshift   bool
	rshift   bool
}

// AddByte feeds one byte from the controller data port. It reports an
// event once a complete, recognised scancode has been received.
func (k *Keyboard) AddByte(b byte) (KeyEvent, bool) {
	if b == prefixExtended {
		k.extended = true
		return KeyEvent{}, false
	}

	table := &set1
	if k.extended {
		table = &set1Extended
		k.extended = false
	}

	code := table[b&^breakBit]
	if code == KeyUnknown {
		return KeyEvent{}, false
	}
	state := KeyDown
	if b&breakBit != 0 {
		state = KeyUp
	}
	return KeyEvent{Code: code, State: state}, true
}

// ProcessEvent tracks modifiers and returns a decoded key for presses.
func (k *Keyboard) ProcessEvent(ev KeyEvent) (DecodedKey, bool) {
	down := ev.State == KeyDown
	switch ev.Code {
	case KeyShiftLeft:
		k.lshift = down
		return DecodedKey{}, false
	case KeyShiftRight:
		k.rshift = down
		return DecodedKey{}, false
	case KeyControlLeft, KeyControlRight, KeyAltLeft, KeyAltRight:
		return DecodedKey{}, false
	}
	if !down {
		return DecodedKey{}, false
	}
	return DecodedKey{Code: ev.Code, Rune: k.runeFor(ev.Code)}, true
}

func (k *Keyboard) runeFor(code KeyCode) rune {
	shift := k.lshift || k.rshift
	switch {
	case code >= KeyA && code <= KeyZ:
		if shift {
			return 'A' + rune(code-KeyA)
		}
		return 'a' + rune(code-KeyA)
	case code >= Key0 && code <= Key9:
		if shift {
			return rune(")!@#$%^&*("[code-Key0])
		}
		return '0' + rune(code-Key0)
	case code == KeySpace:
		return ' '
	case code == KeyEnter:
		return '\n'
	case code == KeyTab:
		return '\t'
	case code == KeyBackspace:
		return '\b'
	}
	return 0
}
