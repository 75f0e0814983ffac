package kernel

// RawEntry is a low-level entry point. Only the CPU's trap delivery can
// invoke it; build one with Handler or HandlerWithErrorCode.
type RawEntry struct {
	errorCode bool
	enter     func(c *CPU, hw *hardwareFrame)
}

// hardwareFrame is what the CPU pushed for the current delivery.
type hardwareFrame struct {
	frame     TrapFrame
	errorCode uint64
	hasCode   bool
	popped    bool

	stack    *Stack
	previous *Stack
}

// scratchBytes is the space used to save rax, rcx, rdx, rsi, rdi, r8-r11.
const scratchBytes = 9 * 8

// Handler wraps fn as an entry for vectors without an error code.
func Handler(fn func(TrapFrame)) RawEntry {
	return RawEntry{enter: func(c *CPU, hw *hardwareFrame) {
		saved := c.saveScratch()
		fn(hw.frame)
		c.restoreScratch(saved)
		c.iret(hw)
	}}
}

// HandlerWithErrorCode wraps fn as an entry for vectors that push an
// error code. The code is removed from the stack before returning.
func HandlerWithErrorCode(fn func(TrapFrame, uint64)) RawEntry {
	return RawEntry{errorCode: true, enter: func(c *CPU, hw *hardwareFrame) {
		saved := c.saveScratch()
		fn(hw.frame, hw.errorCode)
		c.restoreScratch(saved)
		c.popErrorCode(hw)
		c.iret(hw)
	}}
}
