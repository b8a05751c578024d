package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corewar-vm/corewar/internal/core"
)

func TestAddressMoveByIsInvertible(t *testing.T) {
	offsets := []int{0, 1, -1, 4095, -4095, 4096, 10000, -10000}
	for _, o := range offsets {
		a := FromRaw(0)
		got := a.MoveBy(o).MoveBy(-o)
		assert.Equalf(t, a, got, "move_by(%d).move_by(%d) should return to start", o, -o)
	}
}

func TestAddressMoveByNegativeWraps(t *testing.T) {
	assert.Equal(t, Address(4095), Zero().MoveBy(-1))
}

func TestArenaWrapsAtMemSize(t *testing.T) {
	a := New()
	payload := []byte{0xde, 0xad, 0xbe, 0xef}
	a.Load(FromRaw(4094), payload)

	buf := make([]byte, 4)
	n, err := a.ReadFrom(FromRaw(4094)).Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, payload, buf)
}

func TestArenaLoadThenReadFullSweepYieldsZerosAfterProgram(t *testing.T) {
	a := New()
	program := []byte{1, 2, 3, 4, 5}
	a.Load(FromRaw(0), program)

	buf := make([]byte, core.MemSize)
	_, err := a.ReadFrom(FromRaw(0)).Read(buf)
	assert.NoError(t, err)

	assert.Equal(t, program, buf[:len(program)])
	for _, b := range buf[len(program):] {
		assert.Equal(t, byte(0), b)
	}
}
