// Package asm assembles an APEX program: a text file of comma-separated
// instruction lines into an ordered []isa.Instruction, the code loader
// spec.md treats as an external collaborator of the pipeline core.
//
// Modeled on the retrieval corpus's own RiSC-32 assembler
// (bassosimone/risc32's pkg/asm): parsing runs on a background goroutine
// that streams one InstructionOrError per source line over a channel, so a
// malformed line further down the file doesn't prevent earlier lines from
// being reported. APEX has no labels, so (unlike RiSC-32) there is no
// second pass to resolve symbolic offsets.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"apex/isa"
)

// InstructionOrError carries either a successfully parsed Instruction or
// the error (and its 1-based source line) that occurred while parsing it.
type InstructionOrError struct {
	Instruction isa.Instruction
	Err         error
	Line        int
}

// StartAssembler starts the line-by-line parser on a background goroutine
// and returns a channel of InstructionOrError, one value per non-blank,
// non-comment source line, in file order. Scanning stops after the first
// malformed line, whose error is the last value sent.
func StartAssembler(r io.Reader) <-chan InstructionOrError {
	out := make(chan InstructionOrError)
	go assembleAsync(r, out)
	return out
}

func assembleAsync(r io.Reader, out chan<- InstructionOrError) {
	defer close(out)

	scanner := bufio.NewScanner(r)
	lineno := 0
	idx := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		instr, err := parseLine(line)
		if err != nil {
			out <- InstructionOrError{Err: fmt.Errorf("line %d: %w", lineno, err), Line: lineno}
			return
		}
		instr.PC = isa.PCFor(idx)
		out <- InstructionOrError{Instruction: instr, Line: lineno}
		idx++
	}
	if err := scanner.Err(); err != nil {
		out <- InstructionOrError{Err: err, Line: lineno}
	}
}

// Load drains the assembler channel and returns the decoded program. The
// first malformed line stops assembly; Load returns that error, matching
// the fail-fast posture spec.md requires of Cpu initialisation.
func Load(r io.Reader) ([]isa.Instruction, error) {
	var program []isa.Instruction
	for ioe := range StartAssembler(r) {
		if ioe.Err != nil {
			return nil, ioe.Err
		}
		program = append(program, ioe.Instruction)
	}
	return program, nil
}
