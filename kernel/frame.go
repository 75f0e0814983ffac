package kernel

import (
	"fmt"
	"strings"
)

// TrapFrame is the state the CPU pushes on interrupt or exception entry.
// Handlers receive it by value.
type TrapFrame struct {
	InstructionPointer uint64
	CodeSegment        uint64
	CPUFlags           uint64
	StackPointer       uint64
	StackSegment       uint64
}

// frameBytes is the size of the hardware-pushed frame, without error code.
const frameBytes = 5 * 8

func (f TrapFrame) String() string {
	return fmt.Sprintf(
		"TrapFrame {\n    instruction_pointer: %#x,\n    code_segment: %#x,\n    cpu_flags: %#x,\n    stack_pointer: %#x,\n    stack_segment: %#x,\n}",
		f.InstructionPointer, f.CodeSegment, f.CPUFlags, f.StackPointer, f.StackSegment,
	)
}

// PageFaultErrorCode is the reason mask pushed with a page fault.
type PageFaultErrorCode uint64

const (
	ProtectionViolation PageFaultErrorCode = 1 << iota
	CausedByWrite
	UserMode
	MalformedTable
	InstructionFetch

	pageFaultKnownBits = ProtectionViolation | CausedByWrite | UserMode | MalformedTable | InstructionFetch
)

var pageFaultNames = []struct {
	bit  PageFaultErrorCode
	name string
}{
	{ProtectionViolation, "PROTECTION_VIOLATION"},
	{CausedByWrite, "CAUSED_BY_WRITE"},
	{UserMode, "USER_MODE"},
	{MalformedTable, "MALFORMED_TABLE"},
	{InstructionFetch, "INSTRUCTION_FETCH"},
}

// Has reports whether every bit of flag is set.
func (c PageFaultErrorCode) Has(flag PageFaultErrorCode) bool { return c&flag == flag }

func (c PageFaultErrorCode) String() string {
	var parts []string
	for _, n := range pageFaultNames {
		if c.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	if rest := c &^ pageFaultKnownBits; rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint64(rest)))
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return strings.Join(parts, " | ")
}
