package process

import (
	"errors"
	"io"

	"github.com/corewar-vm/corewar/internal/arena"
	"github.com/corewar-vm/corewar/internal/instr"
)

// Process couples a context, the number of cycles remaining before its
// stored instruction executes, and that instruction (nil if the byte at PC
// could not be decoded).
type Process struct {
	Context         *Context
	RemainingCycles int
	Instruction     *instr.Instruction
}

// New constructs a process by decoding one instruction at ctx.PC() out of a.
// A non-I/O decode failure is not an error: the process is still created,
// with Instruction nil and RemainingCycles 1, matching the no-op recovery
// rule applied everywhere else an undecodable instruction is encountered.
func New(ctx *Context, a *arena.Arena) (*Process, error) {
	p := &Process{Context: ctx}
	in, err := instr.ReadFrom(a.ReadFrom(ctx.PC()))
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, err
		}
		p.RemainingCycles = 1
		return p, nil
	}
	p.Instruction = &in
	p.RemainingCycles = instr.CycleCost(in.Op)
	return p, nil
}
