package param

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/corewar-vm/corewar/internal/arena"
	"github.com/corewar-vm/corewar/internal/core"
)

// Indirect is a 2-byte (i16) offset dereferenced relative to the current
// process's PC. The modular (IdxMod) and long (unmodulated) forms share the
// same wire representation; callers pick GetValue/GetValueLong depending on
// which instruction family is decoding it.
type Indirect int16

// WireSize is the on-disk size of an Indirect operand.
func (Indirect) WireSize() int { return 2 }

// ReadIndirect decodes a big-endian i16 from r.
func ReadIndirect(r io.Reader) (Indirect, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return Indirect(int16(binary.BigEndian.Uint16(buf[:]))), nil
}

// WriteTo encodes the value big-endian.
func (i Indirect) WriteTo(w io.Writer) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(int16(i)))
	_, err := w.Write(buf[:])
	return err
}

func (i Indirect) modularAddr(ctx Context) int {
	return int(i) % core.IdxMod
}

// GetValue dereferences PC + (offset mod IdxMod) and reads a 32-bit value.
func (i Indirect) GetValue(ctx Context, a Arena) int32 {
	addr := ctx.PC().MoveBy(i.modularAddr(ctx))
	return read32(a, addr)
}

// SetValue writes a 32-bit value at PC + (offset mod IdxMod).
func (i Indirect) SetValue(ctx Context, a Arena, v int32) {
	addr := ctx.PC().MoveBy(i.modularAddr(ctx))
	write32(a, addr, v)
}

// GetValueLong dereferences PC + offset with no IdxMod reduction (used by
// the "long" load/store family: lld, lldi, lfork-adjacent addressing).
func (i Indirect) GetValueLong(ctx Context, a Arena) int32 {
	addr := ctx.PC().MoveBy(int(i))
	return read32(a, addr)
}

// SetValueLong writes a 32-bit value at PC + offset, no IdxMod reduction.
func (i Indirect) SetValueLong(ctx Context, a Arena, v int32) {
	addr := ctx.PC().MoveBy(int(i))
	write32(a, addr, v)
}

func read32(a Arena, addr arena.Address) int32 {
	var buf [4]byte
	_, _ = a.ReadFrom(addr).Read(buf[:])
	return int32(binary.BigEndian.Uint32(buf[:]))
}

func write32(a Arena, addr arena.Address, v int32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	_, _ = a.WriteTo(addr).Write(buf[:])
}

func (i Indirect) String() string { return fmt.Sprintf("%d", int16(i)) }
