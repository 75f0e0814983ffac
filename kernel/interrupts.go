package kernel

import (
	"fmt"
	"strings"

	"snakeos/hal"
	"snakeos/ps2"
)

// Handlers receive hardware interrupt events. Either may be nil.
type Handlers struct {
	Timer func()
	Key   func(ps2.DecodedKey)
}

// Interrupts owns the descriptor tables, the PIC pair and the keyboard
// decoder, and installs the kernel's exception and IRQ handlers.
type Interrupts struct {
	cpu   *CPU
	ports hal.Ports
	log   hal.Logger

	gdt  *GDT
	idt  *Table
	pics *ChainedPICs

	kbdLock SpinLock
	kbd     ps2.Keyboard

	handlers Handlers
}

// NewInterrupts builds the GDT, TSS and IDT. Nothing is loaded until Init.
func NewInterrupts(cpu *CPU, ports hal.Ports, log hal.Logger, h Handlers) *Interrupts {
	in := &Interrupts{
		cpu:      cpu,
		ports:    ports,
		log:      log,
		gdt:      NewGDT(NewTSS()),
		pics:     NewChainedPICs(ports, PIC1Offset, PIC2Offset),
		handlers: h,
	}
	in.idt = in.buildIDT()
	return in
}

func (in *Interrupts) buildIDT() *Table {
	t := NewTable()
	t.SetHandler(DivideByZero, Handler(in.divideByZero))
	t.SetHandler(Breakpoint, Handler(in.breakpoint))
	t.SetHandler(InvalidOpcode, Handler(in.invalidOpcode))
	t.SetHandler(DoubleFault, HandlerWithErrorCode(in.doubleFault)).
		SetStackIndex(DoubleFaultISTIndex)
	t.SetHandler(PageFault, HandlerWithErrorCode(in.pageFault))
	t.SetHandler(TimerVector, in.hardware(TimerVector, in.timer))
	t.SetHandler(KeyboardVector, in.hardware(KeyboardVector, in.keyboard))
	return t
}

// Init loads the GDT and IDT, remaps the PICs and enables interrupts, in
// that order.
func (in *Interrupts) Init() {
	in.cpu.LoadGDT(in.gdt)
	in.cpu.LoadIDT(in.idt)
	in.pics.Initialize()
	in.cpu.EnableInterrupts()
}

func (in *Interrupts) GDT() *GDT          { return in.gdt }
func (in *Interrupts) IDT() *Table        { return in.idt }
func (in *Interrupts) PICs() *ChainedPICs { return in.pics }

// hardware wraps fn so the PICs are acknowledged once it completes.
func (in *Interrupts) hardware(v Vector, fn func()) RawEntry {
	return Handler(func(TrapFrame) {
		fn()
		in.pics.NotifyEndOfInterrupt(uint8(v))
	})
}

func (in *Interrupts) timer() {
	if in.handlers.Timer != nil {
		in.handlers.Timer()
	}
}

func (in *Interrupts) keyboard() {
	sc := in.ports.In8(hal.PortPS2Data)

	in.kbdLock.Lock()
	var (
		key ps2.DecodedKey
		ok  bool
	)
	if ev, complete := in.kbd.AddByte(sc); complete {
		key, ok = in.kbd.ProcessEvent(ev)
	}
	in.kbdLock.Unlock()

	if ok && in.handlers.Key != nil {
		in.handlers.Key(key)
	}
}

func (in *Interrupts) logf(format string, args ...any) {
	if in.log == nil {
		return
	}
	for _, line := range strings.Split(fmt.Sprintf(format, args...), "\n") {
		in.log.WriteLineString(line)
	}
}

func (in *Interrupts) breakpoint(f TrapFrame) {
	in.logf("EXCEPTION: BREAKPOINT\n%s", f)
}

// invalidOpcode returns to the faulting instruction.
func (in *Interrupts) invalidOpcode(f TrapFrame) {
	in.logf("EXCEPTION: INVALID OPCODE at %#x\n%s", f.InstructionPointer, f)
}

func (in *Interrupts) divideByZero(f TrapFrame) {
	in.cpu.Fatal(Fault{
		Kind:    FaultException,
		Vector:  DivideByZero,
		Frame:   &f,
		Message: "EXCEPTION: DIVIDE BY ZERO",
	})
}

func (in *Interrupts) doubleFault(f TrapFrame, code uint64) {
	in.cpu.Fatal(Fault{
		Kind:      FaultException,
		Vector:    DoubleFault,
		Frame:     &f,
		ErrorCode: code,
		Message:   "EXCEPTION: DOUBLE FAULT",
	})
}

func (in *Interrupts) pageFault(f TrapFrame, code uint64) {
	in.cpu.Fatal(Fault{
		Kind:      FaultException,
		Vector:    PageFault,
		Frame:     &f,
		ErrorCode: code,
		Message: fmt.Sprintf("EXCEPTION: PAGE FAULT\nAccessed Address: %#x\nError Code: %s",
			in.cpu.CR2(), PageFaultErrorCode(code)),
	})
}
