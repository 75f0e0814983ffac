package kernel

import "fmt"

// EntryOptions are the gate attributes of an IDT entry.
type EntryOptions struct {
	selector SegmentSelector
	present  bool
	ist      uint8 // 0 = no switch, n = InterruptStackTable[n-1]
}

// SetStackIndex makes the CPU switch to InterruptStackTable[index] before
// pushing the trap frame.
func (o *EntryOptions) SetStackIndex(index uint16) *EntryOptions {
	if index >= 7 {
		panic(fmt.Sprintf("kernel: IST index %d out of range", index))
	}
	o.ist = uint8(index) + 1
	return o
}

// StackIndex returns the IST slot, if one is set.
func (o EntryOptions) StackIndex() (uint16, bool) {
	if o.ist == 0 {
		return 0, false
	}
	return uint16(o.ist - 1), true
}

// Entry is one interrupt gate.
type Entry struct {
	raw     RawEntry
	options EntryOptions
}

// Present reports whether a handler is installed.
func (e Entry) Present() bool { return e.options.present }

// Options returns the gate attributes.
func (e Entry) Options() EntryOptions { return e.options }

// Table is an interrupt descriptor table. Once loaded into a CPU it must
// not be modified.
type Table struct {
	entries [vectorCount]Entry
	loaded  bool
}

// NewTable returns a table with every gate absent.
func NewTable() *Table { return &Table{} }

// SetHandler installs entry at v and returns its options for further
// configuration.
func (t *Table) SetHandler(v Vector, entry RawEntry) *EntryOptions {
	if t.loaded {
		panic("kernel: IDT modified after load")
	}
	t.entries[v] = Entry{
		raw: entry,
		options: EntryOptions{
			selector: kernelCodeSelector,
			present:  true,
		},
	}
	return &t.entries[v].options
}

// Entry returns the gate at v.
func (t *Table) Entry(v Vector) Entry { return t.entries[v] }

// kernelCodeSelector is the selector NewGDT assigns the code segment.
const kernelCodeSelector SegmentSelector = 1 << 3
