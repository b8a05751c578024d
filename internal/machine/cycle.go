package machine

import (
	"os"
	"runtime/debug"
	"strconv"

	"github.com/corewar-vm/corewar/internal/core"
	"github.com/corewar-vm/corewar/internal/instr"
	"github.com/corewar-vm/corewar/internal/process"
)

// CycleSummary reports the observable state after one Step call.
type CycleSummary struct {
	RemainingProcesses int
	CyclesToDie        int
	LiveCounts         map[int32]int
	LastLivingChampion int32
	HasLastLiving      bool
}

// Step runs exactly one cycle: the liveness sweep (with its possible
// cycles_to_die shrink), then one instruction slot per surviving process,
// stepped in reverse insertion order (newest first). It reports false once
// no processes remain, ending the match.
func (m *Machine) Step() (CycleSummary, bool) {
	m.cycles++
	if m.cycles >= m.cyclesToDie {
		m.cycleChecks++
		m.sweepSilentProcesses()
		if m.numberOfLives >= core.NbrLive || m.cycleChecks >= core.MaxChecks {
			m.cyclesToDie = saturatingSub(m.cyclesToDie, core.CycleDelta)
			m.cycleChecks = 0
		}
		m.cycles = 0
		m.numberOfLives = 0
	}

	liveCounts := make(map[int32]int)

	for i := len(m.processes) - 1; i >= 0; i-- {
		p := m.processes[i]
		p.RemainingCycles--
		p.Context.TickCycleSinceLastLive()

		if p.RemainingCycles > 0 {
			continue
		}

		wasLive := m.numberOfLives
		var liveArg int32
		isLiveInstr := p.Instruction != nil && p.Instruction.Op == instr.OpLive
		if isLiveInstr {
			liveArg = int32(p.Instruction.LiveChamp)
		}

		if p.Instruction != nil {
			// Execution errors here can only be I/O failures from the aff
			// sink; the caller-supplied writer is responsible for its own
			// blocking/error semantics, so they are simply ignored for the
			// purposes of the cycle summary.
			_ = p.Instruction.Execute(m, p.Context, m.arena, m.out)
		} else {
			instr.ExecuteNoOp(p.Context)
		}

		// The liveness counter itself is reset unconditionally inside
		// Instruction.Execute's OpLive case; only the live-count tally here
		// is gated on the argument naming a loaded champion.
		if isLiveInstr && m.numberOfLives > wasLive {
			liveCounts[liveArg]++
		}

		next, err := process.New(p.Context, m.arena)
		if err != nil {
			// Propagation point for a genuine I/O failure reading the
			// arena; the reference arena cursors never fail, so this is
			// unreachable in practice but kept as a safety net rather than
			// a silent process removal.
			m.processes = append(m.processes[:i], m.processes[i+1:]...)
			continue
		}
		m.processes[i] = next
	}

	if len(m.processes) == 0 {
		return CycleSummary{}, false
	}

	// CyclesToDie reports the current window length (spec §4.6: "current
	// cycles_to_die"), not the remaining cycles left in that window
	// (cyclesToDie - cycles); the spec wording is ambiguous between the two
	// and this module picks the window length itself.
	return CycleSummary{
		RemainingProcesses: len(m.processes),
		CyclesToDie:        m.cyclesToDie,
		LiveCounts:         liveCounts,
		LastLivingChampion: m.lastLivingChampion,
		HasLastLiving:      m.hasLastLivingChampion,
	}, true
}

// sweepSilentProcesses removes every process whose cycle_since_last_live has
// reached the current cycles_to_die window.
func (m *Machine) sweepSilentProcesses() {
	survivors := m.processes[:0]
	for _, p := range m.processes {
		if p.Context.CycleSinceLastLive() < m.cyclesToDie {
			survivors = append(survivors, p)
		}
	}
	m.processes = survivors
}

func saturatingSub(a, b int) int {
	if b > a {
		return 0
	}
	return a - b
}

// Run drives the match to completion (or until maxCycles Step calls have
// run, when maxCycles > 0). The GC is disabled for the duration of the loop
// and restored to its prior percentage (from GOGC, or 100) once the loop
// exits. Step still allocates while the GC is off: a live-count map every
// cycle and a new Process for every executed instruction.
func (m *Machine) Run(maxCycles int) CycleSummary {
	key, ok := os.LookupEnv("GOGC")
	if !ok {
		key = "100"
	}
	gcPercent, err := strconv.Atoi(key)
	if err != nil {
		gcPercent = 100
	}

	defer debug.SetGCPercent(gcPercent)
	debug.SetGCPercent(-1)

	var last CycleSummary
	for i := 0; maxCycles <= 0 || i < maxCycles; i++ {
		summary, stepOK := m.Step()
		if !stepOK {
			return last
		}
		last = summary
	}
	return last
}
