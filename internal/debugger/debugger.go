// Package debugger implements an interactive terminal UI for stepping a
// running match one cycle at a time: an arena page view, a per-process
// register/carry/PC panel, and the next instruction each process is about
// to execute.
package debugger

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/corewar-vm/corewar/internal/instr"
	"github.com/corewar-vm/corewar/internal/machine"
)

type model struct {
	m *machine.Machine

	page        int // arena page currently displayed, 16 bytes per row
	breakpoints map[int]bool
	running     bool
	lastSummary machine.CycleSummary
	ended       bool
	input       string
	err         error
}

const bytesPerRow = 16
const rowsShown = 12

// New builds the initial debugger model for m.
func New(m *machine.Machine) model {
	return model{m: m, breakpoints: map[int]bool{}}
}

// Run starts the interactive session.
func Run(m *machine.Machine) error {
	_, err := tea.NewProgram(New(m)).Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case " ", "n":
		if !m.ended {
			summary, more := m.m.Step()
			m.lastSummary = summary
			m.ended = !more
		}

	case "r":
		m.runUntilBreakpointOrEnd()

	case "b":
		m.input = "b "

	case "enter":
		m.applyPendingBreakpoint()

	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}

	case "pgup":
		if m.page > 0 {
			m.page--
		}

	case "pgdown":
		m.page++

	default:
		if strings.HasPrefix(m.input, "b ") && len(keyMsg.String()) == 1 {
			m.input += keyMsg.String()
		}
	}

	return m, nil
}

func (m *model) runUntilBreakpointOrEnd() {
	for !m.ended {
		summary, more := m.m.Step()
		m.lastSummary = summary
		m.ended = !more
		if m.atBreakpoint() {
			break
		}
	}
}

func (m *model) atBreakpoint() bool {
	for _, p := range m.m.Processes() {
		if m.breakpoints[int(p.Context.PC())] {
			return true
		}
	}
	return false
}

func (m *model) applyPendingBreakpoint() {
	if !strings.HasPrefix(m.input, "b ") {
		return
	}
	addr, err := strconv.Atoi(strings.TrimSpace(m.input[2:]))
	if err != nil {
		m.err = err
	} else {
		m.breakpoints[addr] = !m.breakpoints[addr]
	}
	m.input = ""
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderArena(),
		"",
		m.renderProcesses(),
		"",
		m.renderStatus(),
	)
}

func (m model) renderArena() string {
	bytes := m.m.Arena().Bytes()
	start := m.page * bytesPerRow * rowsShown

	var sb strings.Builder
	pcs := map[int]bool{}
	for _, p := range m.m.Processes() {
		pcs[int(p.Context.PC())] = true
	}

	for row := 0; row < rowsShown; row++ {
		offset := start + row*bytesPerRow
		if offset >= len(bytes) {
			break
		}
		fmt.Fprintf(&sb, "%04x | ", offset)
		for i := 0; i < bytesPerRow && offset+i < len(bytes); i++ {
			addr := offset + i
			if pcs[addr] {
				fmt.Fprintf(&sb, "[%02x]", bytes[addr])
			} else {
				fmt.Fprintf(&sb, " %02x ", bytes[addr])
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m model) renderProcesses() string {
	var sb strings.Builder
	sb.WriteString("pc       carry  registers                                next\n")
	for i, p := range m.m.Processes() {
		regs := make([]string, 8)
		for r := range regs {
			regs[r] = fmt.Sprintf("%d", p.Context.Register(r+1))
		}
		next := "-"
		if p.Instruction != nil {
			next = instr.MnemonicOf(p.Instruction.Op)
		}
		fmt.Fprintf(&sb, "%-2d %04d   %-5v  %s  %s\n", i, int(p.Context.PC()), p.Context.Carry(), strings.Join(regs, " "), next)
	}
	return sb.String()
}

func (m model) renderStatus() string {
	status := fmt.Sprintf("cycles_to_die=%d", m.lastSummary.CyclesToDie)
	if id, ok := m.m.LastLivingChampion(); ok {
		status += fmt.Sprintf(" last_living=%d", id)
	}
	if m.ended {
		status += " [match over]"
	}
	if m.input != "" {
		status += " :" + m.input
	}
	if m.err != nil {
		status += " error: " + m.err.Error()
	}
	return status + "\n(space/n step, r run-to-breakpoint, b<addr>+enter toggle breakpoint, pgup/pgdown scroll, q quit)"
}
