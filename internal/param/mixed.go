package param

import (
	"fmt"
	"io"
)

// ErrInvalidParamType is returned when a param-code bit pair names a type
// that the requested mixed operand does not accept at all (for example,
// requesting Register for a DirInd operand).
type ErrInvalidParamType struct {
	Position int
	Got      Type
}

func (e ErrInvalidParamType) Error() string {
	return fmt.Sprintf("invalid param type %02b at position %d", byte(e.Got), e.Position)
}

// DirInd is Direct or Indirect: ld's and lld's source operand.
type DirInd struct {
	isIndirect bool
	direct     Direct
	indirect   Indirect
}

func ReadDirInd(r io.Reader, pos int, t Type) (DirInd, error) {
	switch t {
	case TypeDirect:
		d, err := ReadDirect(r)
		return DirInd{direct: d}, err
	case TypeIndirect:
		i, err := ReadIndirect(r)
		return DirInd{isIndirect: true, indirect: i}, err
	default:
		return DirInd{}, ErrInvalidParamType{Position: pos, Got: t}
	}
}

func (v DirInd) Kind() Type {
	if v.isIndirect {
		return TypeIndirect
	}
	return TypeDirect
}

func (v DirInd) WireSize() int {
	if v.isIndirect {
		return v.indirect.WireSize()
	}
	return v.direct.WireSize()
}

func (v DirInd) WriteTo(w io.Writer) error {
	if v.isIndirect {
		return v.indirect.WriteTo(w)
	}
	return v.direct.WriteTo(w)
}

// GetValue resolves the operand for ld (modular indirect dereference).
func (v DirInd) GetValue(ctx Context, a Arena) int32 {
	if v.isIndirect {
		return v.indirect.GetValue(ctx, a)
	}
	return v.direct.GetValue(ctx)
}

// GetValueLong resolves the operand for lld (no modulus on the dereference).
func (v DirInd) GetValueLong(ctx Context, a Arena) int32 {
	if v.isIndirect {
		return v.indirect.GetValueLong(ctx, a)
	}
	return v.direct.GetValue(ctx)
}

func (v DirInd) String() string {
	if v.isIndirect {
		return v.indirect.String()
	}
	return v.direct.String()
}

// NewDirIndDirect builds a DirInd holding a resolved Direct value, for
// assemblers constructing an instruction rather than decoding one.
func NewDirIndDirect(d Direct) DirInd { return DirInd{direct: d} }

// NewDirIndIndirect builds a DirInd holding a resolved Indirect value.
func NewDirIndIndirect(i Indirect) DirInd { return DirInd{isIndirect: true, indirect: i} }

// IndReg is Indirect or Register: st's destination operand.
type IndReg struct {
	isRegister bool
	indirect   Indirect
	register   Register
}

func ReadIndReg(r io.Reader, pos int, t Type) (IndReg, error) {
	switch t {
	case TypeIndirect:
		i, err := ReadIndirect(r)
		return IndReg{indirect: i}, err
	case TypeRegister:
		reg, err := ReadRegister(r)
		return IndReg{isRegister: true, register: reg}, err
	default:
		return IndReg{}, ErrInvalidParamType{Position: pos, Got: t}
	}
}

func (v IndReg) Kind() Type {
	if v.isRegister {
		return TypeRegister
	}
	return TypeIndirect
}

func (v IndReg) WireSize() int {
	if v.isRegister {
		return v.register.WireSize()
	}
	return v.indirect.WireSize()
}

func (v IndReg) WriteTo(w io.Writer) error {
	if v.isRegister {
		return v.register.WriteTo(w)
	}
	return v.indirect.WriteTo(w)
}

// SetValue stores v either into the register or at the dereferenced address.
func (v IndReg) SetValue(ctx Context, a Arena, value int32) {
	if v.isRegister {
		v.register.SetValue(ctx, value)
		return
	}
	v.indirect.SetValue(ctx, a, value)
}

func (v IndReg) String() string {
	if v.isRegister {
		return v.register.String()
	}
	return v.indirect.String()
}

// NewIndRegRegister builds an IndReg holding a resolved Register.
func NewIndRegRegister(r Register) IndReg { return IndReg{isRegister: true, register: r} }

// NewIndRegIndirect builds an IndReg holding a resolved Indirect value.
func NewIndRegIndirect(i Indirect) IndReg { return IndReg{indirect: i} }

// DirIndReg is Direct, Indirect or Register: and/or/xor's first two operands.
type DirIndReg struct {
	kind     Type
	direct   Direct
	indirect Indirect
	register Register
}

func ReadDirIndReg(r io.Reader, pos int, t Type) (DirIndReg, error) {
	switch t {
	case TypeDirect:
		d, err := ReadDirect(r)
		return DirIndReg{kind: TypeDirect, direct: d}, err
	case TypeIndirect:
		i, err := ReadIndirect(r)
		return DirIndReg{kind: TypeIndirect, indirect: i}, err
	case TypeRegister:
		reg, err := ReadRegister(r)
		return DirIndReg{kind: TypeRegister, register: reg}, err
	default:
		return DirIndReg{}, ErrInvalidParamType{Position: pos, Got: t}
	}
}

func (v DirIndReg) Kind() Type { return v.kind }

func (v DirIndReg) WireSize() int {
	switch v.kind {
	case TypeDirect:
		return v.direct.WireSize()
	case TypeIndirect:
		return v.indirect.WireSize()
	default:
		return v.register.WireSize()
	}
}

func (v DirIndReg) WriteTo(w io.Writer) error {
	switch v.kind {
	case TypeDirect:
		return v.direct.WriteTo(w)
	case TypeIndirect:
		return v.indirect.WriteTo(w)
	default:
		return v.register.WriteTo(w)
	}
}

func (v DirIndReg) GetValue(ctx Context, a Arena) int32 {
	switch v.kind {
	case TypeDirect:
		return v.direct.GetValue(ctx)
	case TypeIndirect:
		return v.indirect.GetValue(ctx, a)
	default:
		return v.register.GetValue(ctx)
	}
}

func (v DirIndReg) String() string {
	switch v.kind {
	case TypeDirect:
		return v.direct.String()
	case TypeIndirect:
		return v.indirect.String()
	default:
		return v.register.String()
	}
}

// NewDirIndRegRegister builds a DirIndReg holding a resolved Register.
func NewDirIndRegRegister(r Register) DirIndReg { return DirIndReg{kind: TypeRegister, register: r} }

// NewDirIndRegIndirect builds a DirIndReg holding a resolved Indirect value.
func NewDirIndRegIndirect(i Indirect) DirIndReg {
	return DirIndReg{kind: TypeIndirect, indirect: i}
}

// NewDirIndRegDirect builds a DirIndReg holding a resolved Direct value.
func NewDirIndRegDirect(d Direct) DirIndReg { return DirIndReg{kind: TypeDirect, direct: d} }

// AltDirReg is AltDirect or Register: ldi's second operand, sti's third.
type AltDirReg struct {
	isRegister bool
	altDirect  AltDirect
	register   Register
}

func ReadAltDirReg(r io.Reader, pos int, t Type) (AltDirReg, error) {
	switch t {
	case TypeDirect:
		d, err := ReadAltDirect(r)
		return AltDirReg{altDirect: d}, err
	case TypeRegister:
		reg, err := ReadRegister(r)
		return AltDirReg{isRegister: true, register: reg}, err
	default:
		return AltDirReg{}, ErrInvalidParamType{Position: pos, Got: t}
	}
}

func (v AltDirReg) Kind() Type {
	if v.isRegister {
		return TypeRegister
	}
	return TypeDirect
}

func (v AltDirReg) WireSize() int {
	if v.isRegister {
		return v.register.WireSize()
	}
	return v.altDirect.WireSize()
}

func (v AltDirReg) WriteTo(w io.Writer) error {
	if v.isRegister {
		return v.register.WriteTo(w)
	}
	return v.altDirect.WriteTo(w)
}

func (v AltDirReg) GetValue(ctx Context) int32 {
	if v.isRegister {
		return v.register.GetValue(ctx)
	}
	return v.altDirect.GetValue(ctx)
}

func (v AltDirReg) String() string {
	if v.isRegister {
		return v.register.String()
	}
	return v.altDirect.String()
}

// NewAltDirRegRegister builds an AltDirReg holding a resolved Register.
func NewAltDirRegRegister(r Register) AltDirReg { return AltDirReg{isRegister: true, register: r} }

// NewAltDirRegAltDirect builds an AltDirReg holding a resolved AltDirect value.
func NewAltDirRegAltDirect(d AltDirect) AltDirReg { return AltDirReg{altDirect: d} }

// AltDirIndReg is AltDirect, Indirect or Register: ldi's first operand,
// sti's second.
type AltDirIndReg struct {
	kind      Type
	altDirect AltDirect
	indirect  Indirect
	register  Register
}

func ReadAltDirIndReg(r io.Reader, pos int, t Type) (AltDirIndReg, error) {
	switch t {
	case TypeDirect:
		d, err := ReadAltDirect(r)
		return AltDirIndReg{kind: TypeDirect, altDirect: d}, err
	case TypeIndirect:
		i, err := ReadIndirect(r)
		return AltDirIndReg{kind: TypeIndirect, indirect: i}, err
	case TypeRegister:
		reg, err := ReadRegister(r)
		return AltDirIndReg{kind: TypeRegister, register: reg}, err
	default:
		return AltDirIndReg{}, ErrInvalidParamType{Position: pos, Got: t}
	}
}

func (v AltDirIndReg) Kind() Type { return v.kind }

func (v AltDirIndReg) WireSize() int {
	switch v.kind {
	case TypeDirect:
		return v.altDirect.WireSize()
	case TypeIndirect:
		return v.indirect.WireSize()
	default:
		return v.register.WireSize()
	}
}

func (v AltDirIndReg) WriteTo(w io.Writer) error {
	switch v.kind {
	case TypeDirect:
		return v.altDirect.WriteTo(w)
	case TypeIndirect:
		return v.indirect.WriteTo(w)
	default:
		return v.register.WriteTo(w)
	}
}

// GetValue resolves the operand for ldi (modular indirect dereference).
func (v AltDirIndReg) GetValue(ctx Context, a Arena) int32 {
	switch v.kind {
	case TypeDirect:
		return v.altDirect.GetValue(ctx)
	case TypeIndirect:
		return v.indirect.GetValue(ctx, a)
	default:
		return v.register.GetValue(ctx)
	}
}

// GetValueLong resolves the operand for lldi (no modulus on the dereference).
func (v AltDirIndReg) GetValueLong(ctx Context, a Arena) int32 {
	switch v.kind {
	case TypeDirect:
		return v.altDirect.GetValue(ctx)
	case TypeIndirect:
		return v.indirect.GetValueLong(ctx, a)
	default:
		return v.register.GetValue(ctx)
	}
}

func (v AltDirIndReg) String() string {
	switch v.kind {
	case TypeDirect:
		return v.altDirect.String()
	case TypeIndirect:
		return v.indirect.String()
	default:
		return v.register.String()
	}
}

// NewAltDirIndRegRegister builds an AltDirIndReg holding a resolved Register.
func NewAltDirIndRegRegister(r Register) AltDirIndReg {
	return AltDirIndReg{kind: TypeRegister, register: r}
}

// NewAltDirIndRegIndirect builds an AltDirIndReg holding a resolved Indirect value.
func NewAltDirIndRegIndirect(i Indirect) AltDirIndReg {
	return AltDirIndReg{kind: TypeIndirect, indirect: i}
}

// NewAltDirIndRegAltDirect builds an AltDirIndReg holding a resolved AltDirect value.
func NewAltDirIndRegAltDirect(d AltDirect) AltDirIndReg {
	return AltDirIndReg{kind: TypeDirect, altDirect: d}
}
