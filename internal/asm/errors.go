// Package asm implements the champion assembler: a line-oriented parser,
// two-pass label resolution over a typed intermediate representation, and
// final header + instruction-stream emission.
package asm

import (
	"fmt"

	"github.com/corewar-vm/corewar/internal/core"
)

// Span locates a diagnostic in the source text.
type Span struct {
	Line int
	Text string
}

func (s Span) String() string { return fmt.Sprintf("line %d: %q", s.Line, s.Text) }

// SyntaxError covers malformed lines: bad property syntax, unterminated
// strings, unparsable operands, wrong arity, operand-type mismatches and
// out-of-range literals.
type SyntaxError struct {
	Span    Span
	Message string
}

func (e SyntaxError) Error() string { return fmt.Sprintf("%s: %s", e.Span, e.Message) }

// LabelAlreadyDeclared is returned by pass 1 on a duplicate label binding.
type LabelAlreadyDeclared struct {
	Span  Span
	Label string
}

func (e LabelAlreadyDeclared) Error() string {
	return fmt.Sprintf("%s: label %q already declared", e.Span, e.Label)
}

// LabelNotFound is returned by pass 2 when an operand references an
// undeclared label.
type LabelNotFound struct {
	Span  Span
	Label string
}

func (e LabelNotFound) Error() string {
	return fmt.Sprintf("%s: label %q not found", e.Span, e.Label)
}

// MissingName is returned when no .name property was given.
type MissingName struct{}

func (MissingName) Error() string { return "name property not found" }

// EmptyName is returned when .name was given an empty value.
type EmptyName struct{}

func (EmptyName) Error() string { return "name property's value can't be empty" }

// ValuelessProperty is returned when a .name/.comment line has no quoted value.
type ValuelessProperty struct {
	Span     Span
	Property string
}

func (e ValuelessProperty) Error() string {
	return fmt.Sprintf("%s: %s property needs a value", e.Span, e.Property)
}

// ProgramTooLarge is returned when the assembled instruction stream exceeds
// core.ProgMax bytes.
type ProgramTooLarge struct{ Size int }

func (e ProgramTooLarge) Error() string {
	return fmt.Sprintf("program size %d exceeds max %d", e.Size, core.ProgMax)
}
