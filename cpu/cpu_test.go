package cpu_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apex/asm"
	"apex/cpu"
)

// load assembles program text into a fresh Cpu, failing the test on any
// parse error -- every scenario below is grounded in spec section 8's
// concrete-scenario programs, so a parse failure means the fixture itself
// is wrong.
func load(t *testing.T, program string) *cpu.Cpu {
	t.Helper()
	code, err := asm.Load(strings.NewReader(program))
	require.NoError(t, err)
	return cpu.New(code)
}

func TestRAWWithForwarding(t *testing.T) {
	c := load(t, `
		MOVC,R1,#5
		MOVC,R2,#7
		ADD,R3,R1,R2
		HALT
	`)

	c.Run(0)

	assert.True(t, c.Done())
	assert.Equal(t, 12, c.Regs[3])
	assert.Equal(t, 4, c.Retired)
	assert.False(t, c.Zero)
}

func TestLoadUseHazard(t *testing.T) {
	c := load(t, `
		MOVC,R1,#10
		STORE,R1,R1,#0
		LOAD,R2,R1,#0
		ADD,R3,R2,R1
		HALT
	`)

	c.Run(0)

	assert.True(t, c.Done())
	assert.Equal(t, 10, c.Read(10))
	assert.Equal(t, 10, c.Regs[2])
	assert.Equal(t, 20, c.Regs[3])
}

func TestTakenBranchFlush(t *testing.T) {
	// The zero flag is only ever defined by ADD/ADDL/SUB/MUL (section 4.6);
	// MOVC never touches it, so the flush is driven off a SUB that actually
	// produces zero rather than off MOVC alone.
	c := load(t, `
		MOVC,R1,#0
		SUB,R4,R1,R1
		BZ,#8
		MOVC,R2,#99
		MOVC,R3,#7
		HALT
	`)

	c.Run(0)

	assert.True(t, c.Done())
	assert.Equal(t, 0, c.Regs[2], "MOVC R2,#99 must be flushed by the taken branch")
	assert.Equal(t, 7, c.Regs[3])
}

func TestNotTakenBranch(t *testing.T) {
	c := load(t, `
		MOVC,R1,#1
		MOVC,R2,#0
		ADD,R4,R1,R2
		BZ,#8
		MOVC,R5,#99
		MOVC,R6,#7
		HALT
	`)

	c.Run(0)

	assert.True(t, c.Done())
	assert.Equal(t, 99, c.Regs[5])
	assert.Equal(t, 7, c.Regs[6])
}

func TestJumpAbsolute(t *testing.T) {
	// JUMP reads rs1 with no hazard check (section 9, open question): the
	// instruction immediately before it has not necessarily committed its
	// register write by the time JUMP decodes it, so the resolved target is
	// not asserted here -- the test only checks that a run bounded to 64
	// ticks completes without panicking.
	c := load(t, `
		MOVC,R1,#4016
		JUMP,R1,#0
		MOVC,R2,#1
		MOVC,R3,#2
		HALT
	`)

	c.Run(64)
}

func TestBranchAfterArithStalls(t *testing.T) {
	// BZ must stall in Decode while any of Execute-2/Memory-1/Memory-2/
	// Writeback still holds the ADD that defines the zero flag it reads,
	// so it sees the flag ADD actually set rather than a stale value.
	c := load(t, `
		MOVC,R2,#0
		MOVC,R3,#0
		ADD,R1,R2,R3
		BZ,#8
		MOVC,R4,#99
		MOVC,R5,#7
		HALT
	`)

	c.Run(0)

	assert.True(t, c.Done())
	assert.Equal(t, 0, c.Regs[1])
	assert.Equal(t, 0, c.Regs[4], "MOVC R4,#99 must be flushed by the taken branch")
	assert.Equal(t, 7, c.Regs[5])
}

func TestHaltRetiresEverything(t *testing.T) {
	c := load(t, `
		MOVC,R1,#1
		MOVC,R2,#2
		MOVC,R3,#3
		HALT
	`)

	c.Run(0)

	assert.True(t, c.Done())
	assert.Equal(t, len(c.Code), c.Retired)
	assert.Equal(t, 1, c.Regs[1])
	assert.Equal(t, 2, c.Regs[2])
	assert.Equal(t, 3, c.Regs[3])
}

func TestRunRespectsCycleBudget(t *testing.T) {
	c := load(t, `
		MOVC,R1,#1
		HALT
	`)

	ticks := c.Run(1)

	assert.Equal(t, 1, ticks)
	assert.False(t, c.Done())
}

func TestStoreThenLoadRoundTrip(t *testing.T) {
	c := load(t, `
		MOVC,R1,#40
		MOVC,R2,#99
		STORE,R2,R1,#0
		LOAD,R3,R1,#0
		HALT
	`)

	c.Run(0)

	assert.True(t, c.Done())
	assert.Equal(t, 99, c.Read(40))
	assert.Equal(t, 99, c.Regs[3])
}

func TestBooleanOpsLeaveZeroFlagUntouched(t *testing.T) {
	c := load(t, `
		MOVC,R1,#5
		MOVC,R2,#3
		ADD,R3,R1,R2
		AND,R4,R1,R2
		HALT
	`)

	c.Run(0)

	assert.True(t, c.Done())
	assert.Equal(t, 1, c.Regs[4])
	assert.False(t, c.Zero, "AND must not redefine the zero flag set by the preceding ADD")
}

func TestRegisterBankExtraSlotsAreUnused(t *testing.T) {
	c := load(t, `
		MOVC,R1,#1
		HALT
	`)

	c.Run(0)

	assert.True(t, c.Done())
	for i := 16; i < cpu.NumRegs; i++ {
		assert.Equal(t, 0, c.Regs[i])
		assert.True(t, c.RegsValid[i])
	}
}
