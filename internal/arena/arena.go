// Package arena implements the toroidal memory shared by every process in
// a match: a fixed MemSize buffer with modular addressing and cursors that
// wrap automatically instead of bounds-checking.
package arena

import (
	"io"

	"github.com/corewar-vm/corewar/internal/core"
)

// Address is an index into the arena, always held in [0, core.MemSize).
type Address int

// Zero is the address at the start of the arena.
func Zero() Address { return 0 }

// FromRaw wraps an arbitrary (possibly out-of-range) int into a valid Address.
func FromRaw(raw int) Address {
	return Zero().AdvanceBy(raw)
}

// AdvanceBy performs an unsigned modular forward step.
func (a Address) AdvanceBy(value int) Address {
	v := (int(a) + value) % core.MemSize
	if v < 0 {
		v += core.MemSize
	}
	return Address(v)
}

// MoveBy performs a signed modular step in either direction. Negative steps
// are folded into the equivalent positive forward step before delegating to
// AdvanceBy, matching the exact reduction used by the reference arena: a
// negative value is reduced modulo MemSize, and the (non-positive) remainder
// is turned into a forward distance by subtracting its magnitude from MemSize.
func (a Address) MoveBy(value int) Address {
	if value >= 0 {
		return a.AdvanceBy(value)
	}
	rem := value % core.MemSize
	forward := core.MemSize - (-rem)
	return a.AdvanceBy(forward)
}

// Int returns the raw, already-wrapped index.
func (a Address) Int() int { return int(a) }

// Arena is MemSize bytes of mutable storage.
type Arena struct {
	memory [core.MemSize]byte
}

// New returns a zeroed arena.
func New() *Arena {
	return &Arena{}
}

// Load copies program into the arena starting at addr, wrapping as needed.
func (a *Arena) Load(addr Address, program []byte) {
	w := a.WriteTo(addr)
	// io.Writer.Write never errors for *Writer.
	_, _ = w.Write(program)
}

// Bytes exposes the raw backing storage, read-only.
func (a *Arena) Bytes() []byte { return a.memory[:] }

// ReadFrom returns a cursor that reads forward from addr, wrapping at MemSize.
func (a *Arena) ReadFrom(addr Address) *Reader {
	return &Reader{arena: a, index: addr.Int()}
}

// WriteTo returns a cursor that writes forward from addr, wrapping at MemSize.
func (a *Arena) WriteTo(addr Address) *Writer {
	return &Writer{arena: a, index: addr.Int()}
}

// Reader is a short-lived forward cursor into an Arena. It never bounds-checks
// the requested length; it simply wraps the index and returns however many
// bytes were requested.
type Reader struct {
	arena *Arena
	index int
}

var _ io.Reader = (*Reader)(nil)

func (r *Reader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.arena.memory[r.index]
		r.index++
		if r.index == core.MemSize {
			r.index = 0
		}
	}
	return len(p), nil
}

// Writer is a short-lived forward cursor into an Arena.
type Writer struct {
	arena *Arena
	index int
}

var _ io.Writer = (*Writer)(nil)

func (w *Writer) Write(p []byte) (int, error) {
	for _, b := range p {
		w.arena.memory[w.index] = b
		w.index++
		if w.index == core.MemSize {
			w.index = 0
		}
	}
	return len(p), nil
}
