package kernel

import (
	"runtime"
	"sync/atomic"
)

// SpinLock is a busy-waiting mutual exclusion lock. The zero value is
// unlocked.
type SpinLock struct {
	held atomic.Bool
}

func (l *SpinLock) Lock() {
	for !l.held.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

// TryLock acquires the lock if it is free.
func (l *SpinLock) TryLock() bool {
	return l.held.CompareAndSwap(false, true)
}

func (l *SpinLock) Unlock() {
	if !l.held.Swap(false) {
		panic("kernel: unlock of unlocked SpinLock")
	}
}

// InterruptMasker runs a critical section with interrupts disabled.
type InterruptMasker interface {
	WithoutInterrupts(fn func())
}
