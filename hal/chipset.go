package hal

import (
	"sync"
	"time"
)

// I/O port assignments of the emulated PC.
const (
	PortPIC1Command uint16 = 0x20
	PortPIC1Data    uint16 = 0x21
	PortPIC2Command uint16 = 0xA0
	PortPIC2Data    uint16 = 0xA1
	PortPIT0        uint16 = 0x40
	PortPITCommand  uint16 = 0x43
	PortPS2Data     uint16 = 0x60
	PortPS2Status   uint16 = 0x64
	PortCMOSIndex   uint16 = 0x70
	PortCMOSData    uint16 = 0x71
	PortPOST        uint16 = 0x80
	PortCOM1        uint16 = 0x3F8
)

// IRQ lines wired on the emulated board.
const (
	IRQTimer    = 0
	IRQKeyboard = 1
	IRQCascade  = 2
)

// Chipset emulates the PC devices the kernel drives through port I/O:
// two cascaded 8259A interrupt controllers, the PS/2 keyboard controller,
// the CMOS real-time clock, the PIT and a 16550 UART on COM1.
//
// It is safe for concurrent use: "hardware" goroutines raise interrupt
// lines while the CPU goroutine performs port I/O.
type Chipset struct {
	mu sync.Mutex

	master pic8259
	slave  pic8259

	kbd  ps2Controller
	rtc  cmosRTC
	uart uart16550
	pit  pit8253

	wake chan struct{}
}

// NewChipset returns a chipset in its power-on state.
//
// Power-on PIC offsets are the BIOS defaults (0x08 and 0x70), which collide
// with the CPU exception range until the kernel remaps them.
func NewChipset(log Logger, clock func() time.Time) *Chipset {
	if clock == nil {
		clock = time.Now
	}
	return &Chipset{
		master: pic8259{offset: 0x08},
		slave:  pic8259{offset: 0x70},
		rtc:    cmosRTC{clock: clock},
		uart:   uart16550{log: log},
		wake:   make(chan struct{}, 1),
	}
}

// RaiseIRQ asserts an interrupt request line (edge triggered).
func (c *Chipset) RaiseIRQ(irq int) {
	c.mu.Lock()
	c.raiseLocked(irq)
	c.mu.Unlock()
}

// Tick raises the timer interrupt line once.
func (c *Chipset) Tick() { c.RaiseIRQ(IRQTimer) }

// PushScancodes queues bytes in the keyboard controller output buffer.
func (c *Chipset) PushScancodes(b ...byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kbd.queue = append(c.kbd.queue, b...)
	if !c.kbd.full {
		c.loadScancodeLocked()
	}
}

// TimerHz returns the current PIT channel 0 rate.
func (c *Chipset) TimerHz() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pit.hz()
}

func (c *Chipset) Wake() <-chan struct{} { return c.wake }

func (c *Chipset) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.master.highest(c.cascadeLocked()) >= 0
}

func (c *Chipset) Acknowledge() (uint8, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	irq := c.master.highest(c.cascadeLocked())
	if irq < 0 {
		return 0, false
	}
	c.master.isr |= 1 << irq
	if irq == IRQCascade {
		s := c.slave.highest(0)
		if s >= 0 {
			c.slave.irr &^= 1 << s
			c.slave.isr |= 1 << s
			return c.slave.offset + uint8(s), true
		}
	}
	c.master.irr &^= 1 << irq
	return c.master.offset + uint8(irq), true
}

func (c *Chipset) In8(port uint16) uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case port == PortPIC1Command:
		return c.master.readCommand()
	case port == PortPIC1Data:
		return c.master.imr
	case port == PortPIC2Command:
		return c.slave.readCommand()
	case port == PortPIC2Data:
		return c.slave.imr
	case port == PortPS2Data:
		return c.readScancodeLocked()
	case port == PortPS2Status:
		if c.kbd.full {
			return 0x01
		}
		return 0x00
	case port == PortCMOSData:
		return c.rtc.read()
	case port >= PortCOM1 && port < PortCOM1+8:
		return c.uart.in(port - PortCOM1)
	}
	return 0xFF
}

func (c *Chipset) Out8(port uint16, v uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case port == PortPIC1Command:
		c.master.writeCommand(v)
		c.signalLocked()
	case port == PortPIC1Data:
		c.master.writeData(v)
		c.signalLocked()
	case port == PortPIC2Command:
		c.slave.writeCommand(v)
		c.signalLocked()
	case port == PortPIC2Data:
		c.slave.writeData(v)
		c.signalLocked()
	case port == PortPIT0:
		c.pit.writeCounter(v)
	case port == PortPITCommand:
		c.pit.writeCommand(v)
	case port == PortCMOSIndex:
		c.rtc.index = v & 0x7F
	case port >= PortCOM1 && port < PortCOM1+8:
		c.uart.out(port-PortCOM1, v)
	}
}

func (c *Chipset) raiseLocked(irq int) {
	switch {
	case irq >= 0 && irq < 8:
		c.master.irr |= 1 << irq
	case irq >= 8 && irq < 16:
		c.slave.irr |= 1 << (irq - 8)
	default:
		return
	}
	c.signalLocked()
}

// cascadeLocked returns the slave INT output as a request on master IR2.
func (c *Chipset) cascadeLocked() uint8 {
	if c.slave.highest(0) >= 0 {
		return 1 << IRQCascade
	}
	return 0
}

func (c *Chipset) signalLocked() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

type pic8259 struct {
	offset uint8
	imr    uint8
	irr    uint8
	isr    uint8

	// initStep is the next expected ICW (2..4), 0 when operational.
	initStep int
	icw4     bool
	single   bool
	readISR  bool
}

// highest returns the highest-priority unmasked request not blocked by an
// in-service interrupt of equal or higher priority, or -1.
func (p *pic8259) highest(extra uint8) int {
	req := (p.irr | extra) &^ p.imr
	for i := 0; i < 8; i++ {
		if p.isr&(1<<i) != 0 {
			return -1
		}
		if req&(1<<i) != 0 {
			return i
		}
	}
	return -1
}

func (p *pic8259) writeCommand(v uint8) {
	switch {
	case v&0x10 != 0: // ICW1
		p.initStep = 2
		p.icw4 = v&0x01 != 0
		p.single = v&0x02 != 0
		p.imr = 0
		p.isr = 0
		p.irr = 0
		p.readISR = false
	case v&0x08 != 0: // OCW3
		switch v & 0x03 {
		case 0x02:
			p.readISR = false
		case 0x03:
			p.readISR = true
		}
	default: // OCW2
		switch v & 0xE0 {
		case 0x20: // non-specific EOI
			for i := 0; i < 8; i++ {
				if p.isr&(1<<i) != 0 {
					p.isr &^= 1 << i
					break
				}
			}
		case 0x60: // specific EOI
			p.isr &^= 1 << (v & 0x07)
		}
	}
}

func (p *pic8259) writeData(v uint8) {
	switch p.initStep {
	case 2:
		p.offset = v &^ 0x07
		switch {
		case !p.single:
			p.initStep = 3
		case p.icw4:
			p.initStep = 4
		default:
			p.initStep = 0
		}
	case 3:
		if p.icw4 {
			p.initStep = 4
		} else {
			p.initStep = 0
		}
	case 4:
		p.initStep = 0
	default:
		p.imr = v
	}
}

func (p *pic8259) readCommand() uint8 {
	if p.readISR {
		return p.isr
	}
	return p.irr
}

// pit8253 keeps only the channel 0 reload value.
type pit8253 struct {
	divisor uint16
	lowNext bool
	pending uint8
}

const pitBaseHz = 1193182

func (p *pit8253) writeCommand(v uint8) {
	// Only channel 0, lobyte/hibyte access is modelled.
	if v>>6 == 0 {
		p.lowNext = true
	}
}

func (p *pit8253) writeCounter(v uint8) {
	if p.lowNext {
		p.pending = v
		p.lowNext = false
		return
	}
	p.divisor = uint16(p.pending) | uint16(v)<<8
	p.lowNext = true
}

func (p *pit8253) hz() float64 {
	d := float64(p.divisor)
	if p.divisor == 0 {
		d = 65536
	}
	return pitBaseHz / d
}
