package asm

import (
	"fmt"
	"strconv"
	"strings"

	"apex/isa"
)

// fieldOrder gives, for each opcode, the order in which its declared
// operands appear after the mnemonic on a source line. It mirrors the
// operand columns of spec.md section 3's instruction table and the
// original implementation's print_instruction format strings exactly
// (e.g. STORE prints rs1, rs2, imm in that order; STR prints rd, rs1, rs2).
var fieldOrder = map[isa.Opcode][]string{
	isa.MOVC:  {"rd", "imm"},
	isa.ADD:   {"rd", "rs1", "rs2"},
	isa.SUB:   {"rd", "rs1", "rs2"},
	isa.MUL:   {"rd", "rs1", "rs2"},
	isa.AND:   {"rd", "rs1", "rs2"},
	isa.OR:    {"rd", "rs1", "rs2"},
	isa.XOR:   {"rd", "rs1", "rs2"},
	isa.ADDL:  {"rd", "rs1", "imm"},
	isa.LOAD:  {"rd", "rs1", "imm"},
	isa.LDR:   {"rd", "rs1", "rs2"},
	isa.STORE: {"rs1", "rs2", "imm"},
	isa.STR:   {"rd", "rs1", "rs2"},
	isa.BZ:    {"imm"},
	isa.BNZ:   {"imm"},
	isa.JUMP:  {"rs1", "imm"},
	isa.HALT:  {},
}

// parseLine parses one non-blank, non-comment source line into an
// Instruction. The PC field is left unset; the caller assigns it based on
// the instruction's position in the program.
func parseLine(line string) (isa.Instruction, error) {
	fields := strings.Split(line, ",")
	mnemonic := strings.ToUpper(strings.TrimSpace(fields[0]))

	op, ok := isa.Mnemonics[mnemonic]
	if !ok {
		return isa.Instruction{}, fmt.Errorf("unknown opcode %q", fields[0])
	}

	order := fieldOrder[op]
	operands := fields[1:]
	if len(operands) != len(order) {
		return isa.Instruction{}, fmt.Errorf(
			"%s expects %d operand(s), got %d", mnemonic, len(order), len(operands))
	}

	instr := isa.Instruction{Opcode: op}
	for i, kind := range order {
		v, err := parseOperand(kind, operands[i])
		if err != nil {
			return isa.Instruction{}, fmt.Errorf("%s operand %d: %w", mnemonic, i+1, err)
		}
		switch kind {
		case "rd":
			instr.Rd = v
		case "rs1":
			instr.Rs1 = v
		case "rs2":
			instr.Rs2 = v
		case "imm":
			instr.Imm = v
		}
	}
	return instr, nil
}

func parseOperand(kind, tok string) (int, error) {
	tok = strings.TrimSpace(tok)
	if kind == "imm" {
		if !strings.HasPrefix(tok, "#") {
			return 0, fmt.Errorf("expected immediate prefixed with '#', got %q", tok)
		}
		return strconv.Atoi(tok[1:])
	}
	if !strings.HasPrefix(tok, "R") && !strings.HasPrefix(tok, "r") {
		return 0, fmt.Errorf("expected register prefixed with 'R', got %q", tok)
	}
	return strconv.Atoi(tok[1:])
}
