package asm

import (
	"math"

	"github.com/corewar-vm/corewar/internal/instr"
	"github.com/corewar-vm/corewar/internal/param"
)

// posSpec describes what source syntaxes one operand position accepts, and
// (for the Direct family) whether that position's wire width is the 4-byte
// Direct or the 2-byte AltDirect.
type posSpec struct {
	allowRegister bool
	allowDirect   bool
	allowIndirect bool
	isAlt         bool
}

var (
	posRegisterOnly  = posSpec{allowRegister: true}
	posDirectOnly    = posSpec{allowDirect: true}
	posAltDirectOnly = posSpec{allowDirect: true, isAlt: true}
	posDirInd        = posSpec{allowDirect: true, allowIndirect: true}
	posIndReg        = posSpec{allowRegister: true, allowIndirect: true}
	posDirIndReg     = posSpec{allowRegister: true, allowDirect: true, allowIndirect: true}
	posAltDirReg     = posSpec{allowRegister: true, allowDirect: true, isAlt: true}
	posAltDirIndReg  = posSpec{allowRegister: true, allowDirect: true, allowIndirect: true, isAlt: true}
)

// opShape lists, in order, the posSpec for every operand of a mnemonic.
var opShape = map[instr.Op][]posSpec{
	instr.OpLive:  {posDirectOnly},
	instr.OpLd:    {posDirInd, posRegisterOnly},
	instr.OpSt:    {posRegisterOnly, posIndReg},
	instr.OpAdd:   {posRegisterOnly, posRegisterOnly, posRegisterOnly},
	instr.OpSub:   {posRegisterOnly, posRegisterOnly, posRegisterOnly},
	instr.OpAnd:   {posDirIndReg, posDirIndReg, posRegisterOnly},
	instr.OpOr:    {posDirIndReg, posDirIndReg, posRegisterOnly},
	instr.OpXor:   {posDirIndReg, posDirIndReg, posRegisterOnly},
	instr.OpZJump: {posAltDirectOnly},
	instr.OpLdi:   {posAltDirIndReg, posAltDirReg, posRegisterOnly},
	instr.OpSti:   {posRegisterOnly, posAltDirIndReg, posAltDirReg},
	instr.OpFork:  {posAltDirectOnly},
	instr.OpLld:   {posDirInd, posRegisterOnly},
	instr.OpLldi:  {posAltDirIndReg, posAltDirReg, posRegisterOnly},
	instr.OpLfork: {posAltDirectOnly},
	instr.OpAff:   {posRegisterOnly},
}

// varOperand is the IR form of one operand: fully typed (so its width, and
// therefore the enclosing instruction's mem size, is known before any label
// is resolved), but with its numeric value possibly deferred to a label.
type varOperand struct {
	kind     param.Type
	isAlt    bool
	register param.Register

	isLabel bool
	label   string
	literal int64
}

func (v varOperand) memSize() int {
	switch v.kind {
	case param.TypeRegister:
		return 1
	case param.TypeIndirect:
		return 2
	case param.TypeDirect:
		if v.isAlt {
			return 2
		}
		return 4
	}
	return 0
}

// varInstruction is the two-pass intermediate representation of one
// instruction: identical in shape (and therefore mem size) to the resolved
// instr.Instruction, but operands may still be pending label references.
type varInstruction struct {
	op       instr.Op
	operands []varOperand
	span     Span
}

func (vi varInstruction) memSize() int {
	size := 1
	if instr.HasParamCode(vi.op) {
		size++
	}
	for _, o := range vi.operands {
		size += o.memSize()
	}
	return size
}

// buildVarInstruction validates arity/types for one instruction statement
// and produces its IR form. This is pass-1 work: it never needs label
// offsets.
func buildVarInstruction(stmt statement) (varInstruction, error) {
	op, ok := instr.OpByMnemonic(stmt.mnemonic)
	if !ok {
		return varInstruction{}, SyntaxError{Span: stmt.span, Message: "unknown instruction " + stmt.mnemonic}
	}

	shape := opShape[op]
	if len(stmt.operands) != len(shape) {
		return varInstruction{}, SyntaxError{
			Span:    stmt.span,
			Message: "wrong number of operands for " + stmt.mnemonic,
		}
	}

	operands := make([]varOperand, len(shape))
	for i, spec := range shape {
		raw, err := parseOperand(stmt.span, stmt.operands[i])
		if err != nil {
			return varInstruction{}, err
		}

		vo, err := buildVarOperand(stmt.span, spec, raw)
		if err != nil {
			return varInstruction{}, err
		}
		operands[i] = vo
	}

	return varInstruction{op: op, operands: operands, span: stmt.span}, nil
}

func buildVarOperand(span Span, spec posSpec, raw rawOperand) (varOperand, error) {
	switch raw.syntax {
	case syntaxRegister:
		if !spec.allowRegister {
			return varOperand{}, SyntaxError{Span: span, Message: "register operand not allowed here"}
		}
		reg, err := param.NewRegister(raw.register)
		if err != nil {
			return varOperand{}, SyntaxError{Span: span, Message: err.Error()}
		}
		return varOperand{kind: param.TypeRegister, register: reg}, nil

	case syntaxDirect:
		if !spec.allowDirect {
			return varOperand{}, SyntaxError{Span: span, Message: "direct operand not allowed here"}
		}
		vo := varOperand{kind: param.TypeDirect, isAlt: spec.isAlt, isLabel: raw.isLabel, label: raw.label, literal: raw.literal}
		if !raw.isLabel {
			if err := checkLiteralRange(span, raw.literal, spec.isAlt); err != nil {
				return varOperand{}, err
			}
		}
		return vo, nil

	case syntaxIndirect:
		if !spec.allowIndirect {
			return varOperand{}, SyntaxError{Span: span, Message: "indirect operand not allowed here"}
		}
		vo := varOperand{kind: param.TypeIndirect, isLabel: raw.isLabel, label: raw.label, literal: raw.literal}
		if !raw.isLabel {
			if err := checkLiteralRange(span, raw.literal, true); err != nil {
				return varOperand{}, err
			}
		}
		return vo, nil
	}

	return varOperand{}, SyntaxError{Span: span, Message: "unrecognised operand syntax"}
}

func checkLiteralRange(span Span, v int64, narrow bool) error {
	if narrow {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return SyntaxError{Span: span, Message: "literal out of range for a 16-bit operand"}
		}
		return nil
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return SyntaxError{Span: span, Message: "literal out of range for a 32-bit operand"}
	}
	return nil
}

// resolve turns the IR form into the final instr.Instruction once every
// label is known, computing value = label_offset - current_offset for any
// pending label reference and truncating it (sign-preserving) to the
// operand's wire width.
func (vi varInstruction) resolve(curOffset int, labels map[string]int) (instr.Instruction, error) {
	values := make([]int64, len(vi.operands))
	for i, o := range vi.operands {
		if o.kind == param.TypeRegister {
			continue
		}
		if o.isLabel {
			off, ok := labels[o.label]
			if !ok {
				return instr.Instruction{}, LabelNotFound{Span: vi.span, Label: o.label}
			}
			values[i] = int64(off - curOffset)
		} else {
			values[i] = o.literal
		}
	}

	in := instr.Instruction{Op: vi.op}
	ops := vi.operands

	mkDirInd := func(i int) param.DirInd {
		if ops[i].kind == param.TypeIndirect {
			return param.NewDirIndIndirect(param.Indirect(int16(values[i])))
		}
		return param.NewDirIndDirect(param.Direct(int32(values[i])))
	}
	mkIndReg := func(i int) param.IndReg {
		if ops[i].kind == param.TypeRegister {
			return param.NewIndRegRegister(ops[i].register)
		}
		return param.NewIndRegIndirect(param.Indirect(int16(values[i])))
	}
	mkDirIndReg := func(i int) param.DirIndReg {
		switch ops[i].kind {
		case param.TypeRegister:
			return param.NewDirIndRegRegister(ops[i].register)
		case param.TypeIndirect:
			return param.NewDirIndRegIndirect(param.Indirect(int16(values[i])))
		default:
			return param.NewDirIndRegDirect(param.Direct(int32(values[i])))
		}
	}
	mkAltDirReg := func(i int) param.AltDirReg {
		if ops[i].kind == param.TypeRegister {
			return param.NewAltDirRegRegister(ops[i].register)
		}
		return param.NewAltDirRegAltDirect(param.AltDirect(int16(values[i])))
	}
	mkAltDirIndReg := func(i int) param.AltDirIndReg {
		switch ops[i].kind {
		case param.TypeRegister:
			return param.NewAltDirIndRegRegister(ops[i].register)
		case param.TypeIndirect:
			return param.NewAltDirIndRegIndirect(param.Indirect(int16(values[i])))
		default:
			return param.NewAltDirIndRegAltDirect(param.AltDirect(int16(values[i])))
		}
	}

	switch vi.op {
	case instr.OpLive:
		in.LiveChamp = param.Direct(int32(values[0]))
	case instr.OpLd, instr.OpLld:
		in.LoadSrc = mkDirInd(0)
		in.LoadDst = ops[1].register
	case instr.OpSt:
		in.StoreSrc = ops[0].register
		in.StoreDst = mkIndReg(1)
	case instr.OpAdd, instr.OpSub:
		in.ArithA, in.ArithB, in.ArithDst = ops[0].register, ops[1].register, ops[2].register
	case instr.OpAnd, instr.OpOr, instr.OpXor:
		in.LogicA = mkDirIndReg(0)
		in.LogicB = mkDirIndReg(1)
		in.LogicDst = ops[2].register
	case instr.OpZJump:
		in.JumpOffset = param.AltDirect(int16(values[0]))
	case instr.OpLdi, instr.OpLldi:
		in.IndexA = mkAltDirIndReg(0)
		in.IndexB = mkAltDirReg(1)
		in.IndexDst = ops[2].register
	case instr.OpSti:
		in.StoreIdxSrc = ops[0].register
		in.StoreIdxA = mkAltDirIndReg(1)
		in.StoreIdxB = mkAltDirReg(2)
	case instr.OpFork, instr.OpLfork:
		in.ForkOffset = param.AltDirect(int16(values[0]))
	case instr.OpAff:
		in.DisplaySrc = ops[0].register
	}

	return in, nil
}
