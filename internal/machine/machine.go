package machine

import (
	"errors"
	"io"
	"sort"

	"github.com/corewar-vm/corewar/internal/arena"
	"github.com/corewar-vm/corewar/internal/core"
	"github.com/corewar-vm/corewar/internal/instr"
	"github.com/corewar-vm/corewar/internal/process"
)

// ErrNoChampions is returned by New when given an empty champion list.
var ErrNoChampions = errors.New("machine: at least one champion is required")

// Machine owns the arena and every process currently executing inside it,
// plus the liveness bookkeeping that drives the cycle-to-die rule.
type Machine struct {
	arena     *arena.Arena
	champions map[int32]Champion
	processes []*process.Process
	out       io.Writer

	lastLivingChampion    int32
	hasLastLivingChampion bool
	numberOfLives         int
	cyclesToDie           int
	cycles                int
	cycleChecks           int
}

// New loads champions into a fresh arena. Champions are placed in ascending
// ID order at evenly spaced offsets, each starting a single initial process.
func New(champions []Champion, out io.Writer) (*Machine, error) {
	if len(champions) == 0 {
		return nil, ErrNoChampions
	}

	sorted := make([]Champion, len(champions))
	copy(sorted, champions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, c := range sorted {
		if len(c.Program) > core.ProgMax {
			return nil, ErrProgramTooLarge{ID: c.ID, Size: len(c.Program)}
		}
	}

	m := &Machine{
		arena:       arena.New(),
		champions:   make(map[int32]Champion, len(sorted)),
		out:         out,
		cyclesToDie: core.CycleToDieStart,
	}

	step := core.MemSize / len(sorted)
	for k, c := range sorted {
		m.champions[c.ID] = c
		addr := arena.FromRaw(k * step)
		m.arena.Load(addr, c.Program)

		ctx := process.NewContext(addr)
		ctx.SetRegister(1, c.ID)

		p, err := process.New(ctx, m.arena)
		if err != nil {
			return nil, err
		}
		m.processes = append(m.processes, p)
	}

	return m, nil
}

// Arena exposes the underlying arena for inspection/debugging.
func (m *Machine) Arena() *arena.Arena { return m.arena }

// Processes exposes the currently-live process list for inspection; callers
// must not mutate it.
func (m *Machine) Processes() []*process.Process { return m.processes }

// CyclesToDie is the current length of the liveness window.
func (m *Machine) CyclesToDie() int { return m.cyclesToDie }

// LastLivingChampion returns the most recent champion id to execute a
// successful live, and whether any champion ever has.
func (m *Machine) LastLivingChampion() (int32, bool) {
	return m.lastLivingChampion, m.hasLastLivingChampion
}

// LiveChampion implements instr.Machine: marks id as alive this window if it
// names a real champion loaded into this match.
func (m *Machine) LiveChampion(id int32) {
	if _, ok := m.champions[id]; !ok {
		return
	}
	m.lastLivingChampion = id
	m.hasLastLivingChampion = true
	m.numberOfLives++
}

// Spawn implements instr.Machine: appends a newly-forked process. The
// process's first instruction is decoded immediately, exactly as it would be
// at match-load time.
func (m *Machine) Spawn(ctx instr.Context) {
	pc, ok := ctx.(*process.Context)
	if !ok {
		return
	}
	p, err := process.New(pc, m.arena)
	if err != nil {
		return
	}
	m.processes = append(m.processes, p)
}
