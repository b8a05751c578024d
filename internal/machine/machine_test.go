package machine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corewar-vm/corewar/internal/core"
	"github.com/corewar-vm/corewar/internal/instr"
)

// subR1R1R2 encodes `sub r1, r1, r2`: opcode 5, three plain register
// operands, no param-code byte (sub is typed).
func subR1R1R2() []byte {
	return []byte{5, 1, 1, 2}
}

func TestSubSetsCarryRegardlessOfPriorValue(t *testing.T) {
	m, err := New([]Champion{{ID: 1, Name: "x", Program: subR1R1R2()}}, &bytes.Buffer{})
	assert.NoError(t, err)

	m.Processes()[0].Context.SetRegister(1, 123)

	for i := 0; i < instr.CycleCost(instr.OpSub); i++ {
		_, ok := m.Step()
		assert.True(t, ok)
	}

	p := m.Processes()[0]
	assert.True(t, p.Context.Carry())
	assert.Equal(t, int32(0), p.Context.Register(2))
}

func TestInvalidOpcodeAdvancesPCByOneAsNoOp(t *testing.T) {
	program := []byte{0x00, 0xFF}
	m, err := New([]Champion{{ID: 1, Name: "x", Program: program}}, &bytes.Buffer{})
	assert.NoError(t, err)

	p := m.Processes()[0]
	startPC := p.Context.PC()
	before := p.Context.CycleSinceLastLive()

	_, ok := m.Step()
	assert.True(t, ok)

	p = m.Processes()[0]
	assert.Equal(t, startPC.AdvanceBy(1), p.Context.PC())
	assert.Equal(t, before+1, p.Context.CycleSinceLastLive())
}

func TestCyclesToDieIsMonotonicNonIncreasingAndSaturates(t *testing.T) {
	m, err := New([]Champion{{ID: 1, Name: "x", Program: subR1R1R2()}}, &bytes.Buffer{})
	assert.NoError(t, err)

	last := m.CyclesToDie()
	for i := 0; i < core.CycleToDieStart*20; i++ {
		_, ok := m.Step()
		if !ok {
			break
		}
		assert.LessOrEqual(t, m.CyclesToDie(), last)
		last = m.CyclesToDie()
	}
	assert.GreaterOrEqual(t, last, 0)
}

// liverProgram encodes: live %2 / ld %0, r1 / zjmp %-12. The ld always loads
// a literal zero, so it unconditionally sets carry, which the trailing zjmp
// uses to jump back to the start of the live every time it's decoded.
func liverProgram() []byte {
	return []byte{
		1, 0, 0, 0, 2, // live %2
		2, 0x90, 0, 0, 0, 0, 1, // ld %0, r1 (param code: Direct|Register)
		9, 0xFF, 0xF4, // zjmp %-12
	}
}

func TestSilentProcessIsRemovedAfterCyclesToDieWindow(t *testing.T) {
	silent := []byte{0x00} // invalid opcode: a permanent one-byte no-op

	m, err := New([]Champion{
		{ID: 1, Name: "silent", Program: silent},
		{ID: 2, Name: "liver", Program: liverProgram()},
	}, &bytes.Buffer{})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(m.Processes()))

	for i := 0; i < core.CycleToDieStart+10; i++ {
		_, ok := m.Step()
		if !ok {
			break
		}
	}

	assert.Equal(t, 1, len(m.Processes()))
	id, ok := m.LastLivingChampion()
	assert.True(t, ok)
	assert.Equal(t, int32(2), id)
}
