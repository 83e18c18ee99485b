package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"apex/isa"
)

// model is the interactive debugger's bubbletea state: the cpu it steps,
// plus the cycle budget it was launched with for the status line.
type model struct {
	cpu    *Cpu
	budget int
}

// Init returns no initial command; the cpu is already constructed and
// loaded by the caller of Debug.
func (m model) Init() tea.Cmd {
	return nil
}

// Update advances the pipeline by one tick on space/j, quits on q.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			if !m.cpu.Done() {
				m.cpu.Tick()
			}
		}
	}
	return m, nil
}

// latchTable renders the seven pipeline latches, one row per stage, the
// direct generalization of the teacher's byte-per-cell page table: here each
// row is a stage instead of 16 memory bytes, and the highlighted columns are
// opcode/pc/stall instead of a byte value.
func (m model) latchTable() string {
	header := fmt.Sprintf("%-10s %-6s %-16s %-6s %-6s", "stage", "pc", "instruction", "busy", "stalled")
	rows := []string{header}
	names := []string{"Fetch", "Decode/RF", "Execute1", "Execute2", "Memory1", "Memory2", "Writeback"}
	for i, name := range names {
		l := m.cpu.Stage[i]
		rows = append(rows, fmt.Sprintf("%-10s %-6d %-16s %-6t %-6t",
			name, l.PC, latchText(l), l.Busy, l.Stalled))
	}
	return strings.Join(rows, "\n")
}

// latchText renders one latch's instruction as a bare mnemonic, a terser
// sibling of trace.renderInstruction sized for a table cell rather than a
// full trace line; kept separate from the trace package to avoid an import
// cycle (trace imports cpu).
func latchText(l Latch) string {
	if l.Instruction.Opcode == isa.Bubble {
		return "EMPTY"
	}
	return l.Instruction.Opcode.String()
}

// status renders the register file and zero flag, the generalization of the
// teacher's accumulator/index-register/flag panel.
func (m model) status() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cycle: %d (budget %d)   retired: %d/%d   zero: %t\n\n", m.cpu.Cycle, m.budget, m.cpu.Retired, len(m.cpu.Code), m.cpu.Zero)
	for i := 0; i < 16; i++ {
		valid := "valid"
		if !m.cpu.RegsValid[i] {
			valid = "INVALID"
		}
		fmt.Fprintf(&b, "R%-2d = %-8d %s\n", i, m.cpu.Regs[i], valid)
	}
	return b.String()
}

// View renders the latch table and register panel side by side, with the
// instruction currently in Decode dumped below via spew, the generalization
// of the teacher's page-table-plus-status-panel-plus-opcode-dump layout.
func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.latchTable(),
			"   ",
			m.status(),
		),
		"",
		"j/space: tick    q: quit",
		spew.Sdump(m.cpu.Stage[DRF].Instruction),
	)
}

// Debug starts an interactive bubbletea TUI stepping c one tick at a time.
func Debug(c *Cpu, cycleBudget int) {
	_, err := tea.NewProgram(model{cpu: c, budget: cycleBudget}).Run()
	if err != nil {
		panic(err)
	}
}
