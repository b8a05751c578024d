package instr

import (
	"fmt"
	"io"

	"github.com/corewar-vm/corewar/internal/arena"
	"github.com/corewar-vm/corewar/internal/param"
)

// Instruction is a decoded instruction: the Op discriminant plus whichever
// operand fields that opcode actually uses. Unused fields are left at their
// zero value — a plain product type standing in for the sum, matching the
// tagged-union-by-discriminant style used throughout param.
type Instruction struct {
	Op Op

	// live
	LiveChamp param.Direct

	// ld, lld: src -> dst
	LoadSrc param.DirInd
	LoadDst param.Register

	// st: src -> dst
	StoreSrc param.Register
	StoreDst param.IndReg

	// add, sub: a, b -> dst
	ArithA, ArithB, ArithDst param.Register

	// and, or, xor: a, b -> dst
	LogicA, LogicB param.DirIndReg
	LogicDst       param.Register

	// zjmp
	JumpOffset param.AltDirect

	// ldi, lldi: a, b -> dst
	IndexA   param.AltDirIndReg
	IndexB   param.AltDirReg
	IndexDst param.Register

	// sti: src -> a, b
	StoreIdxSrc param.Register
	StoreIdxA   param.AltDirIndReg
	StoreIdxB   param.AltDirReg

	// fork, lfork
	ForkOffset param.AltDirect

	// aff
	DisplaySrc param.Register
}

// OpCode returns the one-byte opcode.
func (in Instruction) OpCode() byte { return byte(in.Op) }

// MemSize is the total on-wire byte length of in: 1 (opcode) + (1 if
// polymorphic) + the sum of its operand sizes.
func (in Instruction) MemSize() int {
	size := 1
	if HasParamCode(in.Op) {
		size++
	}
	switch in.Op {
	case OpLive:
		size += in.LiveChamp.WireSize()
	case OpLd, OpLld:
		size += in.LoadSrc.WireSize() + in.LoadDst.WireSize()
	case OpSt:
		size += in.StoreSrc.WireSize() + in.StoreDst.WireSize()
	case OpAdd, OpSub:
		size += in.ArithA.WireSize() + in.ArithB.WireSize() + in.ArithDst.WireSize()
	case OpAnd, OpOr, OpXor:
		size += in.LogicA.WireSize() + in.LogicB.WireSize() + in.LogicDst.WireSize()
	case OpZJump:
		size += in.JumpOffset.WireSize()
	case OpLdi, OpLldi:
		size += in.IndexA.WireSize() + in.IndexB.WireSize() + in.IndexDst.WireSize()
	case OpSti:
		size += in.StoreIdxSrc.WireSize() + in.StoreIdxA.WireSize() + in.StoreIdxB.WireSize()
	case OpFork, OpLfork:
		size += in.ForkOffset.WireSize()
	case OpAff:
		size += in.DisplaySrc.WireSize()
	}
	return size
}

// ReadFrom decodes one instruction from r, matching exactly one of the
// sixteen opcode shapes in §6 of the specification.
func ReadFrom(r io.Reader) (Instruction, error) {
	var codeBuf [1]byte
	if _, err := io.ReadFull(r, codeBuf[:]); err != nil {
		return Instruction{}, err
	}
	op, ok := ValidOp(codeBuf[0])
	if !ok {
		return Instruction{}, ErrInvalidCode{Code: codeBuf[0]}
	}

	var pc param.Code
	if HasParamCode(op) {
		var pcBuf [1]byte
		if _, err := io.ReadFull(r, pcBuf[:]); err != nil {
			return Instruction{}, err
		}
		pc = param.Code(pcBuf[0])
	}

	in := Instruction{Op: op}
	var err error

	switch op {
	case OpLive:
		in.LiveChamp, err = param.ReadDirect(r)

	case OpLd, OpLld:
		t, terr := pc.TypeAt(1)
		if terr != nil {
			return Instruction{}, terr
		}
		if in.LoadSrc, err = param.ReadDirInd(r, 1, t); err != nil {
			return Instruction{}, err
		}
		in.LoadDst, err = param.ReadRegister(r)

	case OpSt:
		t, terr := pc.TypeAt(2)
		if terr != nil {
			return Instruction{}, terr
		}
		if in.StoreSrc, err = param.ReadRegister(r); err != nil {
			return Instruction{}, err
		}
		in.StoreDst, err = param.ReadIndReg(r, 2, t)

	case OpAdd, OpSub:
		if in.ArithA, err = param.ReadRegister(r); err != nil {
			return Instruction{}, err
		}
		if in.ArithB, err = param.ReadRegister(r); err != nil {
			return Instruction{}, err
		}
		in.ArithDst, err = param.ReadRegister(r)

	case OpAnd, OpOr, OpXor:
		t1, terr := pc.TypeAt(1)
		if terr != nil {
			return Instruction{}, terr
		}
		t2, terr := pc.TypeAt(2)
		if terr != nil {
			return Instruction{}, terr
		}
		if in.LogicA, err = param.ReadDirIndReg(r, 1, t1); err != nil {
			return Instruction{}, err
		}
		if in.LogicB, err = param.ReadDirIndReg(r, 2, t2); err != nil {
			return Instruction{}, err
		}
		in.LogicDst, err = param.ReadRegister(r)

	case OpZJump:
		in.JumpOffset, err = param.ReadAltDirect(r)

	case OpLdi, OpLldi:
		t1, terr := pc.TypeAt(1)
		if terr != nil {
			return Instruction{}, terr
		}
		t2, terr := pc.TypeAt(2)
		if terr != nil {
			return Instruction{}, terr
		}
		if in.IndexA, err = param.ReadAltDirIndReg(r, 1, t1); err != nil {
			return Instruction{}, err
		}
		if in.IndexB, err = param.ReadAltDirReg(r, 2, t2); err != nil {
			return Instruction{}, err
		}
		in.IndexDst, err = param.ReadRegister(r)

	case OpSti:
		t2, terr := pc.TypeAt(2)
		if terr != nil {
			return Instruction{}, terr
		}
		t3, terr := pc.TypeAt(3)
		if terr != nil {
			return Instruction{}, terr
		}
		if in.StoreIdxSrc, err = param.ReadRegister(r); err != nil {
			return Instruction{}, err
		}
		if in.StoreIdxA, err = param.ReadAltDirIndReg(r, 2, t2); err != nil {
			return Instruction{}, err
		}
		in.StoreIdxB, err = param.ReadAltDirReg(r, 3, t3)

	case OpFork, OpLfork:
		in.ForkOffset, err = param.ReadAltDirect(r)

	case OpAff:
		in.DisplaySrc, err = param.ReadRegister(r)
	}

	if err != nil {
		return Instruction{}, err
	}
	return in, nil
}

// WriteTo encodes in to w exactly as ReadFrom would decode it.
func (in Instruction) WriteTo(w io.Writer) error {
	if _, err := w.Write([]byte{in.OpCode()}); err != nil {
		return err
	}

	if HasParamCode(in.Op) {
		b := param.NewBuilder()
		switch in.Op {
		case OpLd, OpLld:
			b.First(in.LoadSrc.Kind()).Second(param.TypeRegister)
		case OpSt:
			b.First(param.TypeRegister).Second(in.StoreDst.Kind())
		case OpAnd, OpOr, OpXor:
			b.First(in.LogicA.Kind()).Second(in.LogicB.Kind()).Third(param.TypeRegister)
		case OpLdi, OpLldi:
			b.First(in.IndexA.Kind()).Second(in.IndexB.Kind()).Third(param.TypeRegister)
		case OpSti:
			b.First(param.TypeRegister).Second(in.StoreIdxA.Kind()).Third(in.StoreIdxB.Kind())
		case OpAff:
			b.First(param.TypeRegister)
		}
		if _, err := w.Write([]byte{byte(b.Build())}); err != nil {
			return err
		}
	}

	write := func(ws ...interface{ WriteTo(io.Writer) error }) error {
		for _, v := range ws {
			if err := v.WriteTo(w); err != nil {
				return err
			}
		}
		return nil
	}

	switch in.Op {
	case OpLive:
		return write(in.LiveChamp)
	case OpLd, OpLld:
		return write(in.LoadSrc, in.LoadDst)
	case OpSt:
		return write(in.StoreSrc, in.StoreDst)
	case OpAdd, OpSub:
		return write(in.ArithA, in.ArithB, in.ArithDst)
	case OpAnd, OpOr, OpXor:
		return write(in.LogicA, in.LogicB, in.LogicDst)
	case OpZJump:
		return write(in.JumpOffset)
	case OpLdi, OpLldi:
		return write(in.IndexA, in.IndexB, in.IndexDst)
	case OpSti:
		return write(in.StoreIdxSrc, in.StoreIdxA, in.StoreIdxB)
	case OpFork, OpLfork:
		return write(in.ForkOffset)
	case OpAff:
		return write(in.DisplaySrc)
	}
	return nil
}

// String renders in as one assembly-like line, for disassembly output.
func (in Instruction) String() string {
	name := MnemonicOf(in.Op)
	switch in.Op {
	case OpLive:
		return fmt.Sprintf("%s %s", name, in.LiveChamp)
	case OpLd, OpLld:
		return fmt.Sprintf("%s %s, %s", name, in.LoadSrc, in.LoadDst)
	case OpSt:
		return fmt.Sprintf("%s %s, %s", name, in.StoreSrc, in.StoreDst)
	case OpAdd, OpSub:
		return fmt.Sprintf("%s %s, %s, %s", name, in.ArithA, in.ArithB, in.ArithDst)
	case OpAnd, OpOr, OpXor:
		return fmt.Sprintf("%s %s, %s, %s", name, in.LogicA, in.LogicB, in.LogicDst)
	case OpZJump:
		return fmt.Sprintf("%s %s", name, in.JumpOffset)
	case OpLdi, OpLldi:
		return fmt.Sprintf("%s %s, %s, %s", name, in.IndexA, in.IndexB, in.IndexDst)
	case OpSti:
		return fmt.Sprintf("%s %s, %s, %s", name, in.StoreIdxSrc, in.StoreIdxA, in.StoreIdxB)
	case OpFork, OpLfork:
		return fmt.Sprintf("%s %s", name, in.ForkOffset)
	case OpAff:
		return fmt.Sprintf("%s %s", name, in.DisplaySrc)
	}
	return name
}

// NoOpSize is the PC advance and cost applied when a PC cannot be decoded
// into a legal instruction.
const NoOpSize = 1

// ExecuteNoOp advances ctx's PC by one byte, the recovery behaviour for any
// undecodable instruction.
func ExecuteNoOp(ctx Context) {
	ctx.SetPC(ctx.PC().AdvanceBy(NoOpSize))
}

// Context is the execution-time view of a process that instructions mutate.
type Context interface {
	param.Context
	PC() arena.Address
	SetPC(arena.Address)
	Carry() bool
	SetCarry(bool)
	ResetCycleSinceLastLive()
	CleanFork() Context
}

// Machine is the execution-time view of the owning machine that
// liveness-sensitive and process-spawning instructions need.
type Machine interface {
	LiveChampion(id int32)
	Spawn(ctx Context)
}
