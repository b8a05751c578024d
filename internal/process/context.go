// Package process implements the per-process execution context and the
// process itself: a context plus its remaining-cycles counter and
// currently-decoded instruction.
package process

import (
	"github.com/corewar-vm/corewar/internal/arena"
	"github.com/corewar-vm/corewar/internal/core"
	"github.com/corewar-vm/corewar/internal/instr"
)

// Context is one process's registers, program counter, carry flag and
// liveness counter. Registers are numbered 1..=core.RegCount externally;
// internally they sit in a 0-indexed array.
type Context struct {
	pc                 arena.Address
	carry              bool
	registers          [core.RegCount]int32
	cycleSinceLastLive int
}

var _ instr.Context = (*Context)(nil)

// NewContext returns a zeroed context with its PC set to pc.
func NewContext(pc arena.Address) *Context {
	return &Context{pc: pc}
}

func (c *Context) PC() arena.Address { return c.pc }
func (c *Context) SetPC(a arena.Address) { c.pc = a }
func (c *Context) Carry() bool { return c.carry }
func (c *Context) SetCarry(carry bool) { c.carry = carry }

// Register returns register n's value (1-indexed).
func (c *Context) Register(n int) int32 { return c.registers[n-1] }

// SetRegister stores v into register n (1-indexed).
func (c *Context) SetRegister(n int, v int32) { c.registers[n-1] = v }

// CycleSinceLastLive is the number of cycles since this process (or its
// lineage, via fork) last executed a successful live.
func (c *Context) CycleSinceLastLive() int { return c.cycleSinceLastLive }

// ResetCycleSinceLastLive zeroes the liveness counter.
func (c *Context) ResetCycleSinceLastLive() { c.cycleSinceLastLive = 0 }

// TickCycleSinceLastLive increments the liveness counter by one cycle.
func (c *Context) TickCycleSinceLastLive() { c.cycleSinceLastLive++ }

// CleanFork returns a new context that copies pc, carry and registers but
// resets the liveness counter to 0 — the state a freshly-forked child
// inherits before its own PC is adjusted by the fork/lfork instruction.
func (c *Context) CleanFork() instr.Context {
	clone := *c
	clone.cycleSinceLastLive = 0
	return &clone
}
