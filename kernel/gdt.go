package kernel

import "fmt"

// SegmentSelector indexes the GDT (index<<3 | table | RPL).
type SegmentSelector uint16

// DoubleFaultISTIndex is the interrupt stack table slot reserved for the
// double fault handler.
const DoubleFaultISTIndex = 0

// Stack sizes. The double fault stack must be large enough to run the
// handler after the kernel stack has been exhausted.
const (
	KernelStackSize      = 64 * 1024
	DoubleFaultStackSize = 4096 * 5
)

// Address map of the statically reserved regions.
const (
	kernelStackBottom      = 0x0020_0000
	doubleFaultStackBottom = 0x0030_0000
	tssAddress             = 0x0010_8000
	tssLimit               = 0x67
)

// Stack is a downward-growing stack region. SP is the current top.
type Stack struct {
	Name   string
	Bottom uint64
	Top    uint64
	SP     uint64
}

// NewStack reserves size bytes starting at bottom.
func NewStack(name string, bottom, size uint64) *Stack {
	return &Stack{Name: name, Bottom: bottom, Top: bottom + size, SP: bottom + size}
}

// Used returns the bytes currently pushed.
func (s *Stack) Used() uint64 { return s.Top - s.SP }

// Free returns the bytes that can still be pushed.
func (s *Stack) Free() uint64 { return s.SP - s.Bottom }

func (s *Stack) push(n uint64) bool {
	if s.Free() < n {
		return false
	}
	s.SP -= n
	return true
}

func (s *Stack) pop(n uint64) {
	if s.Used() < n {
		panic(fmt.Sprintf("kernel: pop of %d bytes from %s stack holding %d", n, s.Name, s.Used()))
	}
	s.SP += n
}

func (s *Stack) String() string {
	return fmt.Sprintf("%s [%#x..%#x) sp=%#x", s.Name, s.Bottom, s.Top, s.SP)
}

// TSS is the 64-bit task state segment. Only the stack tables are used.
type TSS struct {
	PrivilegeStackTable [3]*Stack
	InterruptStackTable [7]*Stack
}

// NewTSS returns a TSS whose double fault IST slot points at a dedicated
// stack.
func NewTSS() *TSS {
	var tss TSS
	tss.InterruptStackTable[DoubleFaultISTIndex] = NewStack("double-fault", doubleFaultStackBottom, DoubleFaultStackSize)
	return &tss
}

// Descriptor bits.
const (
	descExecutable  = 1 << 43
	descUserSegment = 1 << 44
	descPresent     = 1 << 47
	descLongMode    = 1 << 53

	descTypeAvailableTSS = 0b1001 << 40
)

// GDT is a global descriptor table holding a kernel code segment and the
// TSS.
type GDT struct {
	entries []uint64
	tss     *TSS

	code SegmentSelector
	task SegmentSelector
}

// NewGDT builds the table: null, kernel code, TSS (two slots).
func NewGDT(tss *TSS) *GDT {
	g := &GDT{entries: []uint64{0}, tss: tss}
	g.code = g.add(descUserSegment | descPresent | descExecutable | descLongMode)
	low, high := tssDescriptor(tssAddress, tssLimit)
	g.task = g.add(low, high)
	return g
}

func (g *GDT) add(words ...uint64) SegmentSelector {
	idx := len(g.entries)
	g.entries = append(g.entries, words...)
	return SegmentSelector(idx << 3)
}

func tssDescriptor(base, limit uint64) (low, high uint64) {
	low = descPresent | descTypeAvailableTSS
	low |= limit & 0xFFFF
	low |= (base & 0xFF_FFFF) << 16
	low |= ((base >> 24) & 0xFF) << 56
	high = base >> 32
	return low, high
}

// CodeSelector returns the kernel code segment selector.
func (g *GDT) CodeSelector() SegmentSelector { return g.code }

// TSSSelector returns the TSS selector.
func (g *GDT) TSSSelector() SegmentSelector { return g.task }

// TSS returns the task state segment the GDT describes.
func (g *GDT) TSS() *TSS { return g.tss }

// Entry returns the raw descriptor word at index i.
func (g *GDT) Entry(i int) uint64 { return g.entries[i] }

// Len returns the number of descriptor words.
func (g *GDT) Len() int { return len(g.entries) }
