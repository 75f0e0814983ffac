package hal

// Scancode set 1 make codes for the keys the host backends can produce.
// Extended keys are preceded by 0xE0; break codes set bit 7.
var keyScancodes = map[KeyCode][]byte{
	KeyUp:        {0xE0, 0x48},
	KeyDown:      {0xE0, 0x50},
	KeyLeft:      {0xE0, 0x4B},
	KeyRight:     {0xE0, 0x4D},
	KeyHome:      {0xE0, 0x47},
	KeyEnd:       {0xE0, 0x4F},
	KeyDelete:    {0xE0, 0x53},
	KeyEnter:     {0x1C},
	KeyEscape:    {0x01},
	KeyBackspace: {0x0E},
	KeyTab:       {0x0F},
	KeySpace:     {0x39},
}

var runeScancodes = map[rune]byte{
	'1': 0x02, '2': 0x03, '3': 0x04, '4': 0x05, '5': 0x06,
	'6': 0x07, '7': 0x08, '8': 0x09, '9': 0x0A, '0': 0x0B,
	'q': 0x10, 'w': 0x11, 'e': 0x12, 'r': 0x13, 't': 0x14,
	'y': 0x15, 'u': 0x16, 'i': 0x17, 'o': 0x18, 'p': 0x19,
	'a': 0x1E, 's': 0x1F, 'd': 0x20, 'f': 0x21, 'g': 0x22,
	'h': 0x23, 'j': 0x24, 'k': 0x25, 'l': 0x26,
	'z': 0x2C, 'x': 0x2D, 'c': 0x2E, 'v': 0x2F, 'b': 0x30,
	'n': 0x31, 'm': 0x32, ' ': 0x39,
}

// Scancodes returns the set 1 byte sequence for a host key event, or nil
// if the key has no mapping.
func Scancodes(ev KeyEvent) []byte {
	var seq []byte
	if s, ok := keyScancodes[ev.Code]; ok && ev.Code != KeyUnknown {
		seq = s
	} else if b, ok := runeScancodes[ev.Rune]; ok {
		seq = []byte{b}
	} else {
		return nil
	}

	out := make([]byte, len(seq))
	copy(out, seq)
	if !ev.Press {
		out[len(out)-1] |= 0x80
	}
	return out
}

// Keystroke returns make followed by break codes, for backends that only
// report presses.
func Keystroke(ev KeyEvent) []byte {
	ev.Press = true
	down := Scancodes(ev)
	if down == nil {
		return nil
	}
	ev.Press = false
	return append(down, Scancodes(ev)...)
}
