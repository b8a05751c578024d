package asm

import (
	"bytes"
	"testing"

	"github.com/corewar-vm/corewar/internal/core"
)

func TestCompileRoundTrip(t *testing.T) {
	source := `.name "x"
.comment ""
live %1
`
	got, err := Compile(source, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	want := []byte{0x01, 0x00, 0x00, 0x00, 0x01}
	program := got[len(got)-5:]
	if !bytes.Equal(program, want) {
		t.Fatalf("program bytes = % x, want % x", program, want)
	}

	if len(got) != core.HeaderLen+5 {
		t.Fatalf("total file length = %d, want %d", len(got), core.HeaderLen+5)
	}
}

func TestCompileSelfReferentialLabel(t *testing.T) {
	source := `.name "loopy"
.comment ""
loop: zjmp %:loop
`
	got, err := Compile(source, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	want := []byte{0x09, 0x00, 0x00}
	program := got[len(got)-3:]
	if !bytes.Equal(program, want) {
		t.Fatalf("program bytes = % x, want % x", program, want)
	}
}

func TestCompileMissingName(t *testing.T) {
	source := `.comment "no name"
live %1
`
	if _, err := Compile(source, nil); err == nil {
		t.Fatal("expected MissingName error")
	} else if _, ok := err.(MissingName); !ok {
		t.Fatalf("got %T, want MissingName", err)
	}
}

func TestCompileEmptyName(t *testing.T) {
	source := `.name ""
live %1
`
	if _, err := Compile(source, nil); err == nil {
		t.Fatal("expected EmptyName error")
	} else if _, ok := err.(EmptyName); !ok {
		t.Fatalf("got %T, want EmptyName", err)
	}
}

func TestCompileUndeclaredLabel(t *testing.T) {
	source := `.name "x"
zjmp %:nowhere
`
	if _, err := Compile(source, nil); err == nil {
		t.Fatal("expected LabelNotFound error")
	} else if _, ok := err.(LabelNotFound); !ok {
		t.Fatalf("got %T, want LabelNotFound", err)
	}
}

func TestCompileDuplicateLabel(t *testing.T) {
	source := `.name "x"
loop:
loop:
live %1
`
	if _, err := Compile(source, nil); err == nil {
		t.Fatal("expected LabelAlreadyDeclared error")
	} else if _, ok := err.(LabelAlreadyDeclared); !ok {
		t.Fatalf("got %T, want LabelAlreadyDeclared", err)
	}
}

func TestCompileWrongArity(t *testing.T) {
	source := `.name "x"
live %1, %2
`
	if _, err := Compile(source, nil); err == nil {
		t.Fatal("expected a SyntaxError for wrong arity")
	}
}

func TestCompileLabelOffsetComputation(t *testing.T) {
	// live %1 (5 bytes) then a zjmp (3 bytes, no param code) back to the
	// start: offset of `start` is 0, the zjmp at offset 5 computes
	// 0 - 5 = -5.
	source := `.name "x"
start: live %1
zjmp %:start
`
	got, err := Compile(source, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	program := got[core.HeaderLen:]
	if len(program) != 5+3 {
		t.Fatalf("program length = %d, want 8", len(program))
	}
	zjmpBytes := program[5:]
	want := []byte{0x09, 0xff, 0xfb} // int16(-5) big-endian
	if !bytes.Equal(zjmpBytes, want) {
		t.Fatalf("zjmp bytes = % x, want % x", zjmpBytes, want)
	}
}
