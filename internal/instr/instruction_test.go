package instr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corewar-vm/corewar/internal/param"
)

func mustRegister(t *testing.T, n byte) param.Register {
	t.Helper()
	reg, err := param.NewRegister(n)
	assert.NoError(t, err)
	return reg
}

func TestInstructionRoundTrip(t *testing.T) {
	r1 := mustRegister(t, 1)
	r2 := mustRegister(t, 2)
	r3 := mustRegister(t, 3)

	cases := []Instruction{
		{Op: OpLive, LiveChamp: param.Direct(1)},
		{Op: OpLd, LoadSrc: param.NewDirIndDirect(param.Direct(42)), LoadDst: r1},
		{Op: OpLd, LoadSrc: param.NewDirIndIndirect(param.Indirect(-7)), LoadDst: r1},
		{Op: OpSt, StoreSrc: r1, StoreDst: param.NewIndRegRegister(r2)},
		{Op: OpAdd, ArithA: r1, ArithB: r2, ArithDst: r3},
		{Op: OpSub, ArithA: r1, ArithB: r2, ArithDst: r3},
		{Op: OpAnd, LogicA: param.NewDirIndRegRegister(r1), LogicB: param.NewDirIndRegDirect(param.Direct(5)), LogicDst: r3},
		{Op: OpZJump, JumpOffset: param.AltDirect(-3)},
		{Op: OpLdi, IndexA: param.NewAltDirIndRegAltDirect(param.AltDirect(1)), IndexB: param.NewAltDirRegRegister(r2), IndexDst: r3},
		{Op: OpFork, ForkOffset: param.AltDirect(100)},
		{Op: OpLfork, ForkOffset: param.AltDirect(-100)},
		{Op: OpAff, DisplaySrc: r1},
	}

	for _, in := range cases {
		var buf bytes.Buffer
		assert.NoError(t, in.WriteTo(&buf))
		assert.Equal(t, in.MemSize(), buf.Len(), "mem_size must equal encoded length for %s", in)

		got, err := ReadFrom(&buf)
		assert.NoError(t, err)
		assert.Equal(t, in, got)
	}
}

func TestReadFromRejectsUnknownOpcode(t *testing.T) {
	for _, code := range []byte{0x00, 0xFF} {
		_, err := ReadFrom(bytes.NewReader([]byte{code}))
		assert.Error(t, err)
		assert.IsType(t, ErrInvalidCode{}, err)
	}
}

func TestCycleCostAndHasParamCodeMatchSpecTable(t *testing.T) {
	assert.Equal(t, 10, CycleCost(OpLive))
	assert.Equal(t, 800, CycleCost(OpFork))
	assert.Equal(t, 1000, CycleCost(OpLfork))
	assert.False(t, HasParamCode(OpLive))
	assert.True(t, HasParamCode(OpLd))
	assert.True(t, HasParamCode(OpAff))
	assert.False(t, HasParamCode(OpZJump))
}
