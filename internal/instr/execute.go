package instr

import (
	"io"

	"github.com/corewar-vm/corewar/internal/core"
	"github.com/corewar-vm/corewar/internal/param"
)

// Execute applies in's side effects to ctx/machine/the arena and advances
// ctx's PC, exactly per §4.6 of the specification. a is the shared arena
// cast to the param.Arena surface; out is the sink aff/disp writes to.
func (in Instruction) Execute(m Machine, ctx Context, a param.Arena, out io.Writer) error {
	switch in.Op {
	case OpLive:
		// The liveness counter resets unconditionally on a live, whether or
		// not the argument names a loaded champion; only the number_of_lives
		// bump and last_living_champion update are gated on validity.
		ctx.ResetCycleSinceLastLive()
		m.LiveChampion(int32(in.LiveChamp))
		ctx.SetPC(ctx.PC().AdvanceBy(in.MemSize()))
		return nil

	case OpLd:
		v := in.LoadSrc.GetValue(ctx, a)
		in.LoadDst.SetValue(ctx, v)
		ctx.SetCarry(v == 0)
		ctx.SetPC(ctx.PC().AdvanceBy(in.MemSize()))
		return nil

	case OpLld:
		v := in.LoadSrc.GetValueLong(ctx, a)
		in.LoadDst.SetValue(ctx, v)
		// Unconditional carry: matches the reference implementation's
		// documented-oddity behaviour for the "long" load, see SPEC_FULL.md §2c.
		ctx.SetCarry(true)
		ctx.SetPC(ctx.PC().AdvanceBy(in.MemSize()))
		return nil

	case OpSt:
		v := in.StoreSrc.GetValue(ctx)
		in.StoreDst.SetValue(ctx, a, v)
		ctx.SetPC(ctx.PC().AdvanceBy(in.MemSize()))
		return nil

	case OpAdd:
		v := in.ArithA.GetValue(ctx) + in.ArithB.GetValue(ctx)
		in.ArithDst.SetValue(ctx, v)
		ctx.SetCarry(v == 0)
		ctx.SetPC(ctx.PC().AdvanceBy(in.MemSize()))
		return nil

	case OpSub:
		v := in.ArithA.GetValue(ctx) - in.ArithB.GetValue(ctx)
		in.ArithDst.SetValue(ctx, v)
		ctx.SetCarry(v == 0)
		ctx.SetPC(ctx.PC().AdvanceBy(in.MemSize()))
		return nil

	case OpAnd:
		v := in.LogicA.GetValue(ctx, a) & in.LogicB.GetValue(ctx, a)
		in.LogicDst.SetValue(ctx, v)
		ctx.SetCarry(v == 0)
		ctx.SetPC(ctx.PC().AdvanceBy(in.MemSize()))
		return nil

	case OpOr:
		v := in.LogicA.GetValue(ctx, a) | in.LogicB.GetValue(ctx, a)
		in.LogicDst.SetValue(ctx, v)
		ctx.SetCarry(v == 0)
		ctx.SetPC(ctx.PC().AdvanceBy(in.MemSize()))
		return nil

	case OpXor:
		v := in.LogicA.GetValue(ctx, a) ^ in.LogicB.GetValue(ctx, a)
		in.LogicDst.SetValue(ctx, v)
		ctx.SetCarry(v == 0)
		ctx.SetPC(ctx.PC().AdvanceBy(in.MemSize()))
		return nil

	case OpZJump:
		if ctx.Carry() {
			offset := int(in.JumpOffset) % core.IdxMod
			ctx.SetPC(ctx.PC().MoveBy(offset))
		} else {
			ctx.SetPC(ctx.PC().AdvanceBy(in.MemSize()))
		}
		return nil

	case OpLdi:
		sum := int16(in.IndexA.GetValue(ctx, a)) + int16(in.IndexB.GetValue(ctx))
		addr := param.Indirect(sum)
		in.IndexDst.SetValue(ctx, addr.GetValue(ctx, a))
		ctx.SetPC(ctx.PC().AdvanceBy(in.MemSize()))
		return nil

	case OpLldi:
		sum := int16(in.IndexA.GetValueLong(ctx, a)) + int16(in.IndexB.GetValue(ctx))
		addr := param.Indirect(sum)
		v := addr.GetValueLong(ctx, a)
		in.IndexDst.SetValue(ctx, v)
		ctx.SetCarry(v == 0)
		ctx.SetPC(ctx.PC().AdvanceBy(in.MemSize()))
		return nil

	case OpSti:
		sum := int16(in.StoreIdxA.GetValue(ctx, a)) + int16(in.StoreIdxB.GetValue(ctx))
		addr := param.Indirect(sum)
		addr.SetValue(ctx, a, in.StoreIdxSrc.GetValue(ctx))
		ctx.SetPC(ctx.PC().AdvanceBy(in.MemSize()))
		return nil

	case OpFork:
		child := ctx.CleanFork()
		offset := int(in.ForkOffset) % core.IdxMod
		child.SetPC(child.PC().MoveBy(offset))
		m.Spawn(child)
		ctx.SetPC(ctx.PC().AdvanceBy(in.MemSize()))
		return nil

	case OpLfork:
		child := ctx.CleanFork()
		child.SetPC(child.PC().MoveBy(int(in.ForkOffset)))
		m.Spawn(child)
		ctx.SetPC(ctx.PC().AdvanceBy(in.MemSize()))
		return nil

	case OpAff:
		v := in.DisplaySrc.GetValue(ctx)
		_, err := out.Write([]byte{byte(v)})
		ctx.SetPC(ctx.PC().AdvanceBy(in.MemSize()))
		return err
	}

	return ErrInvalidCode{Code: byte(in.Op)}
}
