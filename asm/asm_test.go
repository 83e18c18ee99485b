package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"apex/isa"
)

func TestLoadRAWProgram(t *testing.T) {
	src := strings.Join([]string{
		"MOVC,R1,#5",
		"MOVC,R2,#7",
		"ADD,R3,R1,R2",
		"HALT",
	}, "\n")

	program, err := Load(strings.NewReader(src))
	assert.NoError(t, err)
	assert.Len(t, program, 4)

	assert.Equal(t, isa.Instruction{Opcode: isa.MOVC, Rd: 1, Imm: 5, PC: 4000}, program[0])
	assert.Equal(t, isa.Instruction{Opcode: isa.MOVC, Rd: 2, Imm: 7, PC: 4004}, program[1])
	assert.Equal(t, isa.Instruction{Opcode: isa.ADD, Rd: 3, Rs1: 1, Rs2: 2, PC: 4008}, program[2])
	assert.Equal(t, isa.Instruction{Opcode: isa.HALT, PC: 4012}, program[3])
}

func TestLoadSkipsBlankAndCommentLines(t *testing.T) {
	src := strings.Join([]string{
		"# a comment",
		"",
		"MOVC,R1,#1",
		"   ",
		"HALT",
	}, "\n")

	program, err := Load(strings.NewReader(src))
	assert.NoError(t, err)
	assert.Len(t, program, 2)
	assert.Equal(t, 4000, program[0].PC)
	assert.Equal(t, 4004, program[1].PC)
}

func TestLoadNegativeImmediate(t *testing.T) {
	program, err := Load(strings.NewReader("BZ,#-8"))
	assert.NoError(t, err)
	assert.Equal(t, -8, program[0].Imm)
}

func TestLoadUnknownOpcode(t *testing.T) {
	_, err := Load(strings.NewReader("NOPE,R1,R2,R3"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestLoadWrongOperandCount(t *testing.T) {
	_, err := Load(strings.NewReader("ADD,R1,R2"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expects 3 operand(s), got 2")
}

func TestLoadMalformedOperand(t *testing.T) {
	_, err := Load(strings.NewReader("MOVC,R1,5"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "immediate")
}
