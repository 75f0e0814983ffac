package hal

import "time"

type ps2Controller struct {
	queue []byte
	out   byte
	full  bool
}

// loadScancodeLocked moves the next queued byte into the output buffer and
// raises IRQ1, as the controller does when its output buffer fills.
func (c *Chipset) loadScancodeLocked() {
	if len(c.kbd.queue) == 0 {
		return
	}
	c.kbd.out = c.kbd.queue[0]
	c.kbd.queue = c.kbd.queue[1:]
	c.kbd.full = true
	c.raiseLocked(IRQKeyboard)
}

func (c *Chipset) readScancodeLocked() uint8 {
	v := c.kbd.out
	c.kbd.full = false
	c.loadScancodeLocked()
	return v
}

// CMOS register indices.
const (
	cmosSecond  = 0x00
	cmosMinute  = 0x02
	cmosHour    = 0x04
	cmosDay     = 0x07
	cmosMonth   = 0x08
	cmosYear    = 0x09
	cmosStatusA = 0x0A
	cmosStatusB = 0x0B
)

// cmosRTC reports wall-clock time in BCD, 24-hour mode.
type cmosRTC struct {
	index uint8
	clock func() time.Time
}

func (r *cmosRTC) read() uint8 {
	now := r.clock()
	switch r.index {
	case cmosSecond:
		return bcd(now.Second())
	case cmosMinute:
		return bcd(now.Minute())
	case cmosHour:
		return bcd(now.Hour())
	case cmosDay:
		return bcd(now.Day())
	case cmosMonth:
		return bcd(int(now.Month()))
	case cmosYear:
		return bcd(now.Year() % 100)
	case cmosStatusA:
		return 0x26
	case cmosStatusB:
		return 0x02
	}
	return 0
}

func bcd(v int) uint8 {
	return uint8((v/10)<<4 | v%10)
}

// uart16550 forwards transmitted bytes to a Logger, one line at a time.
type uart16550 struct {
	log  Logger
	lcr  uint8
	line []byte
}

const (
	uartData = 0
	uartLCR  = 3
	uartLSR  = 5

	uartLCRDLAB = 0x80
	uartLSRTHRE = 0x20
	uartLSRTEMT = 0x40
)

func (u *uart16550) in(reg uint16) uint8 {
	switch reg {
	case uartLCR:
		return u.lcr
	case uartLSR:
		return uartLSRTHRE | uartLSRTEMT
	}
	return 0
}

func (u *uart16550) out(reg uint16, v uint8) {
	switch reg {
	case uartLCR:
		u.lcr = v
	case uartData:
		if u.lcr&uartLCRDLAB != 0 {
			return
		}
		u.transmit(v)
	}
}

func (u *uart16550) transmit(b byte) {
	switch b {
	case '\r':
		return
	case '\n':
		if u.log != nil {
			u.log.WriteLineBytes(u.line)
		}
		u.line = u.line[:0]
		return
	}
	u.line = append(u.line, b)
}
