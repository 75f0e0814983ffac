package kernel

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"snakeos/hal"
)

// ErrHalted is returned by Run once a fatal fault has stopped the CPU.
var ErrHalted = errors.New("kernel: machine halted")

const (
	flagReserved  = 1 << 1
	flagInterrupt = 1 << 9
)

// Code addresses reported in trap frames.
const (
	bootAddress     = 0x0010_0000
	haltLoopAddress = 0x0010_0040
	handlerBase     = 0x0010_4000
)

// Registers are the caller-saved general purpose registers. Entry stubs
// preserve them across handlers.
type Registers struct {
	RAX, RCX, RDX, RSI, RDI uint64
	R8, R9, R10, R11        uint64
}

// CPU models the single core that executes the kernel: the interrupt
// flag, the active stack, trap delivery through the loaded IDT and the
// halt loop.
//
// All methods except Halted and Fault must be called from the goroutine
// that runs the kernel.
type CPU struct {
	ic  hal.InterruptController
	idt *Table
	gdt *GDT

	rip    uint64
	rflags uint64
	cs     SegmentSelector
	ss     SegmentSelector
	cr2    uint64
	regs   Registers

	kernelStack *Stack
	stack       *Stack
	delivering  []Vector

	halted  atomic.Bool
	fault   atomic.Pointer[Fault]
	onFatal func(Fault)
}

// NewCPU returns a CPU in its boot state: interrupts disabled, no tables
// loaded, running on the kernel stack.
func NewCPU(ic hal.InterruptController) *CPU {
	ks := NewStack("kernel", kernelStackBottom, KernelStackSize)
	return &CPU{
		ic:          ic,
		rip:         bootAddress,
		rflags:      flagReserved,
		kernelStack: ks,
		stack:       ks,
	}
}

// LoadGDT makes g the active descriptor table and loads its code segment
// and TSS.
func (c *CPU) LoadGDT(g *GDT) {
	c.gdt = g
	c.cs = g.CodeSelector()
}

// LoadIDT makes t the active interrupt table. t becomes read-only.
func (c *CPU) LoadIDT(t *Table) {
	t.loaded = true
	c.idt = t
}

// EnableInterrupts sets IF and services anything already pending.
func (c *CPU) EnableInterrupts() {
	c.rflags |= flagInterrupt
	c.service()
}

// DisableInterrupts clears IF.
func (c *CPU) DisableInterrupts() { c.rflags &^= flagInterrupt }

// InterruptsEnabled reports the IF flag.
func (c *CPU) InterruptsEnabled() bool { return c.rflags&flagInterrupt != 0 }

// WithoutInterrupts runs fn with IF cleared and restores the previous
// state afterwards.
func (c *CPU) WithoutInterrupts(fn func()) {
	saved := c.InterruptsEnabled()
	c.DisableInterrupts()
	fn()
	if saved {
		c.EnableInterrupts()
	}
}

// CR2 returns the last faulting address.
func (c *CPU) CR2() uint64 { return c.cr2 }

// Registers returns the live scratch registers.
func (c *CPU) Registers() *Registers { return &c.regs }

// InstructionPointer returns the current RIP.
func (c *CPU) InstructionPointer() uint64 { return c.rip }

// ActiveStack returns the stack currently in use.
func (c *CPU) ActiveStack() *Stack { return c.stack }

// KernelStack returns the boot stack.
func (c *CPU) KernelStack() *Stack { return c.kernelStack }

// Raise delivers exception v synchronously, as a faulting instruction
// would. After a fatal fault it returns with the CPU halted.
func (c *CPU) Raise(v Vector) { c.dispatch(v, 0, false) }

// RaiseWithErrorCode delivers v with an error code pushed.
func (c *CPU) RaiseWithErrorCode(v Vector, code uint64) { c.dispatch(v, code, true) }

// PageFault records addr in CR2 and raises a page fault.
func (c *CPU) PageFault(addr uint64, code PageFaultErrorCode) {
	c.cr2 = addr
	c.RaiseWithErrorCode(PageFault, uint64(code))
}

// Run is the halt loop: it sleeps until the interrupt controller signals
// and then services pending interrupts while IF is set.
func (c *CPU) Run(ctx context.Context) error {
	for {
		c.rip = haltLoopAddress
		c.service()
		if c.halted.Load() {
			return c.haltError()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.ic.Wake():
		}
	}
}

func (c *CPU) haltError() error {
	if f := c.fault.Load(); f != nil {
		return fmt.Errorf("%w: %s", ErrHalted, f.Message)
	}
	return ErrHalted
}

func (c *CPU) service() {
	for c.InterruptsEnabled() && !c.halted.Load() {
		v, ok := c.ic.Acknowledge()
		if !ok {
			return
		}
		c.dispatch(Vector(v), 0, false)
	}
}

// dispatch is the outermost delivery. Panics escaping a handler halt the
// machine.
func (c *CPU) dispatch(v Vector, code uint64, hasCode bool) {
	if c.halted.Load() {
		return
	}
	if len(c.delivering) > 0 {
		c.deliver(v, code, hasCode)
		return
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		c.delivering = c.delivering[:0]
		if _, ok := r.(haltSignal); ok {
			return
		}
		c.halt(Fault{
			Kind:    FaultPanic,
			Vector:  v,
			Message: fmt.Sprintf("panic in %s handler: %v", v, r),
			Stack:   captureStack(),
		})
	}()
	c.deliver(v, code, hasCode)
}

func (c *CPU) deliver(v Vector, code uint64, hasCode bool) {
	if c.idt == nil {
		c.tripleFault(fmt.Sprintf("%s with no IDT loaded", v))
	}
	entry := c.idt.entries[v]
	if !entry.Present() {
		c.escalate(v, fmt.Sprintf("no handler for %s", v))
	}

	previous := c.stack
	target := previous
	if i, ok := entry.options.StackIndex(); ok {
		if c.gdt == nil || c.gdt.tss.InterruptStackTable[i] == nil {
			c.escalate(v, fmt.Sprintf("IST slot %d empty for %s", i, v))
		}
		target = c.gdt.tss.InterruptStackTable[i]
		target.SP = target.Top
	}

	need := uint64(frameBytes)
	if hasCode {
		need += 8
	}
	hw := &hardwareFrame{
		frame: TrapFrame{
			InstructionPointer: c.rip,
			CodeSegment:        uint64(c.cs),
			CPUFlags:           c.rflags,
			StackPointer:       previous.SP,
			StackSegment:       uint64(c.ss),
		},
		errorCode: code,
		hasCode:   hasCode,
		stack:     target,
		previous:  previous,
	}
	if !target.push(need) {
		c.cr2 = target.Bottom - 8
		c.escalate(v, fmt.Sprintf("stack overflow delivering %s", v))
	}

	c.stack = target
	c.rflags &^= flagInterrupt
	c.rip = handlerBase + uint64(v)*16

	c.delivering = append(c.delivering, v)
	entry.raw.enter(c, hw)
	c.delivering = c.delivering[:len(c.delivering)-1]

	if v == DoubleFault {
		c.Fatal(Fault{Kind: FaultException, Vector: v, Frame: &hw.frame, Message: "double fault handler returned"})
	}
}

// escalate turns a failed delivery into a double fault, or a triple fault
// if the double fault itself could not be delivered. It does not return.
func (c *CPU) escalate(v Vector, reason string) {
	if v == DoubleFault {
		c.tripleFault(reason)
	}
	c.deliver(DoubleFault, 0, true)
	panic(haltSignal{})
}

func (c *CPU) tripleFault(reason string) {
	c.Fatal(Fault{Kind: FaultTriple, Vector: DoubleFault, Message: "triple fault: " + reason})
}

func (c *CPU) current() Vector {
	if n := len(c.delivering); n > 0 {
		return c.delivering[n-1]
	}
	return DoubleFault
}

func (c *CPU) saveScratch() Registers {
	if !c.stack.push(scratchBytes) {
		c.cr2 = c.stack.Bottom - 8
		c.escalate(c.current(), fmt.Sprintf("stack overflow saving registers for %s", c.current()))
	}
	return c.regs
}

func (c *CPU) restoreScratch(saved Registers) {
	c.stack.pop(scratchBytes)
	c.regs = saved
}

func (c *CPU) popErrorCode(hw *hardwareFrame) {
	c.stack.pop(8)
	hw.popped = true
}

func (c *CPU) iret(hw *hardwareFrame) {
	if hw.hasCode != hw.popped {
		c.Fatal(Fault{
			Kind:    FaultException,
			Vector:  GeneralProtectionFault,
			Frame:   &hw.frame,
			Message: fmt.Sprintf("iretq with misaligned stack in %s handler", c.current()),
		})
	}
	hw.stack.pop(frameBytes)
	c.stack = hw.previous
	c.stack.SP = hw.frame.StackPointer
	c.rip = hw.frame.InstructionPointer
	c.cs = SegmentSelector(hw.frame.CodeSegment)
	c.rflags = hw.frame.CPUFlags
}
