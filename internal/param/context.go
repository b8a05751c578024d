package param

import "github.com/corewar-vm/corewar/internal/arena"

// Context is the minimal view of a process's execution context that operand
// values need in order to resolve themselves. It is defined here (rather
// than imported from the process package) so that param has no dependency
// on process, while process.Context satisfies it structurally.
type Context interface {
	PC() arena.Address
	Register(n int) int32
	SetRegister(n int, v int32)
}

// Arena is the minimal arena surface an operand needs to dereference itself.
type Arena interface {
	ReadFrom(addr arena.Address) *arena.Reader
	WriteTo(addr arena.Address) *arena.Writer
}
