// Package serial drives a 16550 UART. It is the kernel's debug log.
package serial

import (
	"errors"

	"snakeos/hal"
	"snakeos/kernel"
)

// ErrTimeout is returned when the transmitter never becomes ready.
var ErrTimeout = errors.New("serial: transmitter timeout")

// Register offsets from the base port.
const (
	regData      = 0
	regIntEnable = 1
	regFIFO      = 2
	regLineCtrl  = 3
	regModemCtrl = 4
	regLineStat  = 5

	lineDLAB      = 0x80
	line8N1       = 0x03
	lineStatTHRE  = 0x20
	fifoEnable    = 0xC7
	modemDTRRTS   = 0x0B
	intReceived   = 0x01
	divisor38400  = 3
	maxReadyPolls = 1 << 16
)

// Port is a UART at a fixed base port. Writes are serialized by a spin
// lock taken with interrupts masked.
type Port struct {
	ports  hal.Ports
	base   uint16
	masker kernel.InterruptMasker
	lock   kernel.SpinLock
}

var _ hal.Logger = (*Port)(nil)

// New returns a driver for the UART at base. masker may be nil before
// interrupts are set up.
func New(ports hal.Ports, base uint16, masker kernel.InterruptMasker) *Port {
	return &Port{ports: ports, base: base, masker: masker}
}

// Init programs 38400 baud, 8N1, FIFOs on.
func (p *Port) Init() {
	p.out(regIntEnable, 0x00)
	p.out(regLineCtrl, lineDLAB)
	p.out(regData, divisor38400)
	p.out(regIntEnable, 0x00)
	p.out(regLineCtrl, line8N1)
	p.out(regFIFO, fifoEnable)
	p.out(regModemCtrl, modemDTRRTS)
	p.out(regIntEnable, intReceived)
}

func (p *Port) out(reg uint16, v uint8) { p.ports.Out8(p.base+reg, v) }
func (p *Port) in(reg uint16) uint8     { return p.ports.In8(p.base + reg) }

func (p *Port) send(b byte) error {
	for i := 0; p.in(regLineStat)&lineStatTHRE == 0; i++ {
		if i == maxReadyPolls {
			return ErrTimeout
		}
	}
	p.out(regData, b)
	return nil
}

func (p *Port) sendByte(b byte) error {
	switch b {
	case 0x08, 0x7F:
		for _, c := range []byte{0x08, ' ', 0x08} {
			if err := p.send(c); err != nil {
				return err
			}
		}
		return nil
	}
	return p.send(b)
}

func (p *Port) locked(fn func()) {
	run := func() {
		p.lock.Lock()
		defer p.lock.Unlock()
		fn()
	}
	if p.masker == nil {
		run()
		return
	}
	p.masker.WithoutInterrupts(run)
}

// WriteByte transmits one byte.
func (p *Port) WriteByte(b byte) error {
	var err error
	p.locked(func() { err = p.sendByte(b) })
	return err
}

func (p *Port) Write(b []byte) (n int, err error) {
	p.locked(func() {
		for ; n < len(b); n++ {
			if err = p.sendByte(b[n]); err != nil {
				return
			}
		}
	})
	return n, err
}

func (p *Port) WriteString(s string) (int, error) {
	return p.Write([]byte(s))
}

func (p *Port) WriteLineString(s string) {
	p.Write(append([]byte(s), '\n'))
}

func (p *Port) WriteLineBytes(b []byte) {
	line := make([]byte, 0, len(b)+1)
	p.Write(append(append(line, b...), '\n'))
}
