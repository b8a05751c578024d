// Package corfile encodes and decodes the .cor executable format: the
// fixed big-endian header (magic, name, program size, comment) followed by
// the raw instruction-stream bytes.
package corfile

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/corewar-vm/corewar/internal/core"
)

// Header is the decoded form of a .cor file's fixed header.
type Header struct {
	Name    string
	Comment string
	Size    uint32
}

// ErrBadMagic is returned when a file's first four bytes do not match
// core.Magic.
type ErrBadMagic struct{ Got uint32 }

func (e ErrBadMagic) Error() string {
	return fmt.Sprintf("bad magic: got 0x%06X, want 0x%06X", e.Got, core.Magic)
}

// ErrTruncated is returned when a file is shorter than its own header or
// shorter than its declared program size demands.
type ErrTruncated struct{ Have, Want int }

func (e ErrTruncated) Error() string {
	return fmt.Sprintf("truncated file: have %d bytes, want at least %d", e.Have, e.Want)
}

// Executable is a fully decoded .cor file.
type Executable struct {
	Header  Header
	Program []byte
}

// Encode serialises an executable field-by-field, big-endian, with explicit
// NUL-padding. It never relies on struct layout: every field is written at
// its documented offset by hand, per the spec's explicit guidance against
// unsafe/native serialisation.
func Encode(name, comment string, program []byte) ([]byte, error) {
	if len(name) > core.ProgNameLen {
		name = truncateBytes(name, core.ProgNameLen)
	}
	if len(comment) > core.CommentLen {
		comment = truncateBytes(comment, core.CommentLen)
	}

	buf := make([]byte, core.HeaderLen+len(program))

	binary.BigEndian.PutUint32(buf[core.HeaderMagicOffset:], uint32(core.Magic))

	copy(buf[core.HeaderNameOffset:core.HeaderNameOffset+core.HeaderNameSize], name)
	// Remaining bytes, including the trailing NUL, are already zero from make().

	binary.BigEndian.PutUint32(buf[core.HeaderSizeOffset:], uint32(len(program)))

	copy(buf[core.HeaderCommentOffset:core.HeaderCommentOffset+core.HeaderCommentSize], comment)

	copy(buf[core.HeaderLen:], program)

	return buf, nil
}

// truncateBytes cuts s to at most n bytes, tolerating a severed trailing
// multi-byte UTF-8 sequence: the header field is a binary field, not a
// rendered string, so the cut bytes are kept as-is (SPEC_FULL.md §2c).
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Decode parses a complete .cor file.
func Decode(data []byte) (Executable, error) {
	if len(data) < core.HeaderLen {
		return Executable{}, ErrTruncated{Have: len(data), Want: core.HeaderLen}
	}

	magic := binary.BigEndian.Uint32(data[core.HeaderMagicOffset:])
	if magic != uint32(core.Magic) {
		return Executable{}, ErrBadMagic{Got: magic}
	}

	name := trimNUL(data[core.HeaderNameOffset : core.HeaderNameOffset+core.HeaderNameSize])
	size := binary.BigEndian.Uint32(data[core.HeaderSizeOffset:])
	comment := trimNUL(data[core.HeaderCommentOffset : core.HeaderCommentOffset+core.HeaderCommentSize])

	want := core.HeaderLen + int(size)
	if len(data) < want {
		return Executable{}, ErrTruncated{Have: len(data), Want: want}
	}

	program := make([]byte, size)
	copy(program, data[core.HeaderLen:want])

	return Executable{
		Header:  Header{Name: name, Comment: comment, Size: size},
		Program: program,
	}, nil
}

func trimNUL(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
