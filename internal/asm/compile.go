package asm

import (
	"bytes"
	"fmt"
	"io"

	"github.com/corewar-vm/corewar/internal/core"
	"github.com/corewar-vm/corewar/internal/corfile"
)

// Compile assembles source text into a complete .cor file: two-pass label
// resolution over the statement stream, followed by header + instruction
// emission. warn receives non-fatal diagnostics (currently: name/comment
// truncation); it may be nil.
func Compile(source string, warn io.Writer) ([]byte, error) {
	stmts, err := lex(source)
	if err != nil {
		return nil, err
	}

	name, comment, hasName, instrs, err := passOne(stmts)
	if err != nil {
		return nil, err
	}
	if !hasName {
		return nil, MissingName{}
	}
	if name == "" {
		return nil, EmptyName{}
	}

	labels := labelOffsets(instrs)
	program, err := passTwo(instrs, labels)
	if err != nil {
		return nil, err
	}
	if len(program) > core.ProgMax {
		return nil, ProgramTooLarge{Size: len(program)}
	}

	if warn != nil {
		if len(name) > core.ProgNameLen {
			fmt.Fprintf(warn, "warning: name truncated to %d bytes\n", core.ProgNameLen)
		}
		if len(comment) > core.CommentLen {
			fmt.Fprintf(warn, "warning: comment truncated to %d bytes\n", core.CommentLen)
		}
	}

	return corfile.Encode(name, comment, program)
}

// labeledInstr pairs an instruction's IR with the labels that point at it
// and the byte offset passOne assigned it.
type labeledInstr struct {
	vi      varInstruction
	labels  []string
	offset  int
	// trailingOnly marks a synthetic entry for labels declared after the
	// last instruction, binding them to the end-of-program offset.
	trailingOnly bool
}

// passOne walks the statement stream once: it binds each pending label to
// the offset of the next instruction, builds that instruction's IR (which
// needs no label values, only its own operand syntax), and accumulates the
// running byte offset from each IR instruction's mem size. Property values
// use later-occurrence-wins semantics.
func passOne(stmts []statement) (name, comment string, hasName bool, instrs []labeledInstr, err error) {
	seenLabels := map[string]struct{}{}
	var pending []string
	var trailing []string
	offset := 0

	for _, s := range stmts {
		switch s.kind {
		case stmtProperty:
			if !s.hasValue {
				return "", "", false, nil, ValuelessProperty{Span: s.span, Property: s.property}
			}
			switch s.property {
			case "name":
				name, hasName = s.value, true
			case "comment":
				comment = s.value
			}

		case stmtLabel:
			if _, dup := seenLabels[s.label]; dup {
				return "", "", false, nil, LabelAlreadyDeclared{Span: s.span, Label: s.label}
			}
			seenLabels[s.label] = struct{}{}
			pending = append(pending, s.label)

		case stmtInstr:
			vi, buildErr := buildVarInstruction(s)
			if buildErr != nil {
				return "", "", false, nil, buildErr
			}
			instrs = append(instrs, labeledInstr{vi: vi, labels: pending, offset: offset})
			pending = nil
			offset += vi.memSize()
		}
	}

	trailing = pending
	if len(trailing) > 0 {
		instrs = append(instrs, labeledInstr{labels: trailing, offset: offset, trailingOnly: true})
	}

	return name, comment, hasName, instrs, nil
}

// labelOffsets maps every declared label to the byte offset of the
// instruction it precedes, read off the offsets passOne already assigned.
func labelOffsets(instrs []labeledInstr) map[string]int {
	offsets := map[string]int{}
	for _, li := range instrs {
		for _, l := range li.labels {
			offsets[l] = li.offset
		}
	}
	return offsets
}

// passTwo resolves every instruction's label references against their
// final offsets and serialises the resulting instruction stream.
func passTwo(instrs []labeledInstr, labels map[string]int) ([]byte, error) {
	var program []byte
	for _, li := range instrs {
		if li.trailingOnly {
			continue
		}
		in, err := li.vi.resolve(li.offset, labels)
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := in.WriteTo(&buf); err != nil {
			return nil, err
		}
		if buf.Len() != li.vi.memSize() {
			return nil, fmt.Errorf("internal error: resolved instruction at offset %d changed size (%d -> %d)", li.offset, li.vi.memSize(), buf.Len())
		}
		program = append(program, buf.Bytes()...)
	}
	return program, nil
}
