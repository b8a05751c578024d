package param

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Direct is a literal 32-bit signed value, used by operand positions that
// are not alt-direct (see AltDirect for the 16-bit family).
type Direct int32

// WireSize is the on-disk size of a Direct operand.
func (Direct) WireSize() int { return 4 }

// ReadDirect decodes a big-endian i32 from r.
func ReadDirect(r io.Reader) (Direct, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return Direct(int32(binary.BigEndian.Uint32(buf[:]))), nil
}

// WriteTo encodes the value big-endian.
func (d Direct) WriteTo(w io.Writer) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(int32(d)))
	_, err := w.Write(buf[:])
	return err
}

// GetValue returns the literal value; Direct never depends on machine state.
func (d Direct) GetValue(Context) int32 { return int32(d) }

func (d Direct) String() string { return fmt.Sprintf("%%%d", int32(d)) }
