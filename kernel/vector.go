package kernel

import "fmt"

// Vector indexes the interrupt descriptor table.
type Vector uint8

// CPU exception vectors (0-31 are reserved by the architecture).
const (
	DivideByZero Vector = iota
	Debug
	NonMaskableInterrupt
	Breakpoint
	Overflow
	BoundRangeExceeded
	InvalidOpcode
	DeviceNotAvailable
	DoubleFault
	CoprocessorSegmentOverrun
	InvalidTSS
	SegmentNotPresent
	StackSegmentFault
	GeneralProtectionFault
	PageFault
	_
	X87FloatingPoint
	AlignmentCheck
	MachineCheck
	SIMDFloatingPoint
	Virtualization
)

// The chained PICs are remapped to start right after the exception range.
const (
	PIC1Offset uint8 = 32
	PIC2Offset uint8 = PIC1Offset + 8

	TimerVector    = Vector(PIC1Offset)
	KeyboardVector = Vector(PIC1Offset + 1)
)

const vectorCount = 256

var vectorNames = map[Vector]string{
	DivideByZero:              "DIVIDE_BY_ZERO",
	Debug:                     "DEBUG",
	NonMaskableInterrupt:      "NMI",
	Breakpoint:                "BREAKPOINT",
	Overflow:                  "OVERFLOW",
	BoundRangeExceeded:        "BOUND_RANGE_EXCEEDED",
	InvalidOpcode:             "INVALID_OPCODE",
	DeviceNotAvailable:        "DEVICE_NOT_AVAILABLE",
	DoubleFault:               "DOUBLE_FAULT",
	CoprocessorSegmentOverrun: "COPROCESSOR_SEGMENT_OVERRUN",
	InvalidTSS:                "INVALID_TSS",
	SegmentNotPresent:         "SEGMENT_NOT_PRESENT",
	StackSegmentFault:         "STACK_SEGMENT_FAULT",
	GeneralProtectionFault:    "GENERAL_PROTECTION_FAULT",
	PageFault:                 "PAGE_FAULT",
	X87FloatingPoint:          "X87_FLOATING_POINT",
	AlignmentCheck:            "ALIGNMENT_CHECK",
	MachineCheck:              "MACHINE_CHECK",
	SIMDFloatingPoint:         "SIMD_FLOATING_POINT",
	Virtualization:            "VIRTUALIZATION",
	TimerVector:               "TIMER",
	KeyboardVector:            "KEYBOARD",
}

func (v Vector) String() string {
	if name, ok := vectorNames[v]; ok {
		return name
	}
	return fmt.Sprintf("VECTOR_%d", uint8(v))
}

// IsException reports whether v is in the CPU-reserved range.
func (v Vector) IsException() bool { return v < 32 }

// PushesErrorCode reports whether the CPU pushes an error code for v.
func (v Vector) PushesErrorCode() bool {
	switch v {
	case DoubleFault, InvalidTSS, SegmentNotPresent, StackSegmentFault,
		GeneralProtectionFault, PageFault, AlignmentCheck:
		return true
	}
	return false
}
