package corfile

import (
	"testing"

	"github.com/corewar-vm/corewar/internal/core"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	program := []byte{0x01, 0x00, 0x00, 0x00, 0x01}
	data, err := Encode("x", "a comment", program)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(data) != core.HeaderLen+len(program) {
		t.Fatalf("len(data) = %d, want %d", len(data), core.HeaderLen+len(program))
	}

	exe, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if exe.Header.Name != "x" {
		t.Fatalf("Name = %q, want %q", exe.Header.Name, "x")
	}
	if exe.Header.Comment != "a comment" {
		t.Fatalf("Comment = %q, want %q", exe.Header.Comment, "a comment")
	}
	if exe.Header.Size != uint32(len(program)) {
		t.Fatalf("Size = %d, want %d", exe.Header.Size, len(program))
	}
	if string(exe.Program) != string(program) {
		t.Fatalf("Program = % x, want % x", exe.Program, program)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	data, _ := Encode("x", "", nil)
	data[0] ^= 0xFF

	_, err := Decode(data)
	if _, ok := err.(ErrBadMagic); !ok {
		t.Fatalf("got %T (%v), want ErrBadMagic", err, err)
	}
}

func TestDecodeRejectsTruncatedFile(t *testing.T) {
	data, _ := Encode("x", "", []byte{1, 2, 3})
	truncated := data[:len(data)-2]

	_, err := Decode(truncated)
	if _, ok := err.(ErrTruncated); !ok {
		t.Fatalf("got %T (%v), want ErrTruncated", err, err)
	}
}

func TestEncodeZeroPadsUnusedFieldBytes(t *testing.T) {
	data, err := Encode("x", "", nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	nameField := data[core.HeaderNameOffset : core.HeaderNameOffset+core.HeaderNameSize]
	for i := 1; i < len(nameField); i++ {
		if nameField[i] != 0 {
			t.Fatalf("name field byte %d = %d, want 0", i, nameField[i])
		}
	}
}
