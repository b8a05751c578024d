package param

import (
	"fmt"
	"io"

	"github.com/corewar-vm/corewar/internal/core"
)

// ErrInvalidRegister is returned when a decoded register byte falls outside
// 1..=core.RegCount.
type ErrInvalidRegister struct{ Number byte }

func (e ErrInvalidRegister) Error() string {
	return fmt.Sprintf("invalid register number %d", e.Number)
}

// Register names one of the sixteen general-purpose registers, numbered
// 1..=16 on the wire. The implementation stores that same 1-indexed number;
// process.Context is responsible for any 0-indexed internal storage.
type Register byte

// NewRegister validates n and returns the corresponding Register.
func NewRegister(n byte) (Register, error) {
	if n < 1 || n > core.RegCount {
		return 0, ErrInvalidRegister{Number: n}
	}
	return Register(n), nil
}

// WireSize is the on-disk size of a Register operand.
func (Register) WireSize() int { return 1 }

// ReadRegister decodes one register byte from r.
func ReadRegister(r io.Reader) (Register, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return NewRegister(buf[0])
}

// WriteTo encodes the register number as a single byte.
func (reg Register) WriteTo(w io.Writer) error {
	_, err := w.Write([]byte{byte(reg)})
	return err
}

// GetValue returns the current value stored in this register.
func (reg Register) GetValue(ctx Context) int32 {
	return ctx.Register(int(reg))
}

// SetValue stores v into this register.
func (reg Register) SetValue(ctx Context, v int32) {
	ctx.SetRegister(int(reg), v)
}

func (reg Register) String() string { return fmt.Sprintf("r%d", byte(reg)) }
