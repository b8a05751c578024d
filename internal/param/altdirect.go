package param

import (
	"encoding/binary"
	"fmt"
	"io"
)

// AltDirect is the 2-byte (i16) literal used by the branch/fork family
// (zjmp, fork, lfork) and by the index operands of ldi/sti/lldi, in
// contrast to the 4-byte Direct used elsewhere.
type AltDirect int16

// WireSize is the on-disk size of an AltDirect operand.
func (AltDirect) WireSize() int { return 2 }

// ReadAltDirect decodes a big-endian i16 from r.
func ReadAltDirect(r io.Reader) (AltDirect, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return AltDirect(int16(binary.BigEndian.Uint16(buf[:]))), nil
}

// WriteTo encodes the value big-endian.
func (a AltDirect) WriteTo(w io.Writer) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(int16(a)))
	_, err := w.Write(buf[:])
	return err
}

// GetValue returns the literal value widened to 32 bits.
func (a AltDirect) GetValue(Context) int32 { return int32(a) }

func (a AltDirect) String() string { return fmt.Sprintf("%%%d", int16(a)) }
