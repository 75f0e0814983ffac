package vga

import "snakeos/kernel"

// Screen is a Writer shared by interrupt handlers and foreground code.
// The lock is only taken with interrupts masked, so a handler can never
// spin on a lock held by the code it interrupted.
type Screen struct {
	lock   kernel.SpinLock
	masker kernel.InterruptMasker
	w      *Writer
}

func NewScreen(w *Writer, masker kernel.InterruptMasker) *Screen {
	return &Screen{w: w, masker: masker}
}

// Do runs fn with the writer locked and interrupts masked.
func (s *Screen) Do(fn func(w *Writer)) {
	s.masker.WithoutInterrupts(func() {
		s.lock.Lock()
		defer s.lock.Unlock()
		fn(s.w)
	})
}

// TryDo is Do for the fatal path: it skips fn rather than wait for a lock
// held by code that will never resume.
func (s *Screen) TryDo(fn func(w *Writer)) bool {
	ran := false
	s.masker.WithoutInterrupts(func() {
		if !s.lock.TryLock() {
			return
		}
		defer s.lock.Unlock()
		fn(s.w)
		ran = true
	})
	return ran
}
