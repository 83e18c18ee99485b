// Package trace renders pipeline state for human consumption: the per-tick,
// per-stage line the original implementation printed from
// print_stage_content/print_instruction, and the final register/memory
// dump. Nothing here touches architectural state; it only reads a cpu.Cpu.
package trace

import (
	"fmt"
	"io"

	"apex/cpu"
	"apex/isa"
)

// Line renders one pipeline latch the way the original's print_instruction
// rendered a CPU_Stage: one switch keyed on the opcode, not a generic
// rd/rs1/rs2/imm formatter, so each opcode's operand order matches the
// table in spec.md section 3 exactly.
func Line(name string, l *cpu.Latch) string {
	return fmt.Sprintf("%-15s: pc(%d) %s", name, l.PC, renderInstruction(l.Instruction))
}

func renderInstruction(in isa.Instruction) string {
	switch in.Opcode {
	case isa.STORE:
		return fmt.Sprintf("%s,R%d,R%d,#%d", in.Opcode, in.Rs1, in.Rs2, in.Imm)
	case isa.STR, isa.LDR:
		return fmt.Sprintf("%s,R%d,R%d,R%d", in.Opcode, in.Rd, in.Rs1, in.Rs2)
	case isa.LOAD:
		return fmt.Sprintf("%s,R%d,R%d,#%d", in.Opcode, in.Rd, in.Rs1, in.Imm)
	case isa.MOVC:
		return fmt.Sprintf("%s,R%d,#%d", in.Opcode, in.Rd, in.Imm)
	case isa.ADD, isa.SUB, isa.AND, isa.OR, isa.XOR, isa.MUL:
		return fmt.Sprintf("%s,R%d,R%d,R%d", in.Opcode, in.Rd, in.Rs1, in.Rs2)
	case isa.ADDL:
		return fmt.Sprintf("%s,R%d,R%d,#%d", in.Opcode, in.Rd, in.Rs1, in.Imm)
	case isa.BZ, isa.BNZ:
		return fmt.Sprintf("%s,#%d", in.Opcode, in.Imm)
	case isa.JUMP:
		return fmt.Sprintf("%s,R%d,#%d", in.Opcode, in.Rs1, in.Imm)
	case isa.HALT:
		return "HALT"
	default:
		return "EMPTY"
	}
}

// CodeListing prints the loaded code image in the fixed-width
// opcode/rd/rs1/rs2/imm columns APEX_cpu_init prints at startup
// (original_source/cpu.c lines 56-65), before simulation begins.
func CodeListing(w io.Writer, code []isa.Instruction) {
	fmt.Fprintf(w, "APEX_CPU : Initialized APEX CPU, loaded %d instructions\n", len(code))
	fmt.Fprintln(w, "APEX_CPU : Printing Code Memory")
	fmt.Fprintf(w, "%-9s %-9s %-9s %-9s %-9s\n", "opcode", "rd", "rs1", "rs2", "imm")
	for _, in := range code {
		fmt.Fprintf(w, "%-9s %-9d %-9d %-9d %-9d\n", in.Opcode, in.Rd, in.Rs1, in.Rs2, in.Imm)
	}
}

// stageNames gives the display name for each stage index, in pipeline
// order, matching the names the original passed to print_stage_content.
var stageNames = []string{"Fetch", "Decode/RF", "Execute1", "Execute2", "Memory1", "Memory2", "Writeback"}

// Tick writes one line per stage for the cpu's current latch contents.
func Tick(w io.Writer, c *cpu.Cpu) {
	for i, name := range stageNames {
		fmt.Fprintln(w, Line(name, &c.Stage[i]))
	}
}

// Dump writes the final register file (0-15, value and validity) and the
// first 101 data memory words, matching spec.md section 6's termination
// output.
func Dump(w io.Writer, c *cpu.Cpu) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "----+++Register Value+++----")
	for i := 0; i < 16; i++ {
		status := "Invalid"
		if c.RegsValid[i] {
			status = "Valid"
		}
		fmt.Fprintf(w, "Register[%d] >> Value=%d >> status=%s\n", i, c.Regs[i], status)
	}

	fmt.Fprintln(w, "----+++DATA MEMORY+++----")
	for i := 0; i < 101; i++ {
		fmt.Fprintf(w, " DATA_MEM[%d] :- Value=%d\n", i, c.Read(i))
	}
}

// Writer gates trace output on a verbose flag, following the teacher's
// ENABLE_DEBUG_MESSAGES/verbose-bool convention rather than a logging
// library (SPEC_FULL.md section 8).
type Writer struct {
	Out     io.Writer
	Verbose bool
}

// Tick writes the per-stage trace for this cycle, if verbose.
func (tw Writer) Tick(c *cpu.Cpu) {
	if !tw.Verbose {
		return
	}
	fmt.Fprintf(tw.Out, "--------------------------------\nClock Cycle #: %d\n--------------------------------\n", c.Cycle+1)
	Tick(tw.Out, c)
}
