package kernel

import "runtime/debug"

// FaultKind classifies what stopped the machine.
type FaultKind uint8

const (
	// FaultException is an unrecoverable CPU exception reported by its handler.
	FaultException FaultKind = iota
	// FaultTriple is a failure to deliver a double fault.
	FaultTriple
	// FaultPanic is a Go panic that escaped a handler.
	FaultPanic
)

func (k FaultKind) String() string {
	switch k {
	case FaultException:
		return "exception"
	case FaultTriple:
		return "triple fault"
	case FaultPanic:
		return "panic"
	}
	return "unknown"
}

// Fault describes the event that halted the CPU.
type Fault struct {
	Kind      FaultKind
	Vector    Vector
	Frame     *TrapFrame
	ErrorCode uint64
	Message   string

	// StackName is the stack active when the fault was raised.
	StackName string
	Stack     []byte
}

func (f Fault) Error() string { return f.Message }

type haltSignal struct{}

// SetFatalHandler installs the function called once, on the CPU goroutine,
// when the machine halts. It must not panic.
func (c *CPU) SetFatalHandler(fn func(Fault)) {
	c.onFatal = fn
}

// Fatal halts the machine and unwinds the running handler. It must be
// called from code running under trap delivery.
func (c *CPU) Fatal(f Fault) {
	c.halt(f)
	panic(haltSignal{})
}

func (c *CPU) halt(f Fault) {
	if !c.halted.CompareAndSwap(false, true) {
		return
	}
	c.rflags &^= flagInterrupt
	if f.StackName == "" {
		f.StackName = c.stack.Name
	}
	if f.Stack == nil {
		f.Stack = captureStack()
	}
	c.fault.Store(&f)
	if c.onFatal != nil {
		c.onFatal(f)
	}
}

// Halted reports whether a fatal fault has stopped the CPU.
func (c *CPU) Halted() bool { return c.halted.Load() }

// Fault returns the fault that halted the CPU.
func (c *CPU) Fault() (Fault, bool) {
	f := c.fault.Load()
	if f == nil {
		return Fault{}, false
	}
	return *f, true
}

func captureStack() []byte {
	return debug.Stack()
}
