// Package cpu implements the APEX pipeline: a seven-stage, in-order,
// single-issue integer machine with per-register valid bits, a flat data
// memory, and a one-cycle operand-forwarding path.
package cpu

import (
	"apex/isa"
	"apex/mem"
)

// NumRegs is the physical size of the register file. Programs only ever
// use registers 0-15; 16-31 exist purely for ISA headroom (spec.md
// section 9), and no test relies on their contents.
const NumRegs = 32

// A Cpu holds all architectural and pipeline state: the register file and
// its valid-bit table, the zero flag, the program counter, the data
// memory, the loaded code image, the seven pipeline latches, and the
// retirement and tick counters that together decide termination.
type Cpu struct {
	Bus *mem.Bus // flat data memory; see package mem

	Regs      [NumRegs]int
	RegsValid [NumRegs]bool
	Zero      bool

	PC   int
	Code []isa.Instruction // the loaded code image

	Stage [numStages]Latch

	Retired int // retirement counter
	Cycle   int // tick counter
}

// New creates a Cpu with the given code image loaded, pc set to the first
// instruction, all registers valid, and every stage but Fetch marked busy
// so the pipeline fills one stage per tick at startup, mirroring the
// original implementation's init sequence.
func New(code []isa.Instruction) *Cpu {
	c := &Cpu{
		Bus:  &mem.Bus{},
		Code: code,
		PC:   isa.CodeBase,
	}
	for i := range c.RegsValid {
		c.RegsValid[i] = true
	}
	for s := F + 1; s < numStages; s++ {
		c.Stage[s].Busy = true
		c.Stage[s].bubble()
	}
	return c
}

// Read reads one word from the data memory.
func (c *Cpu) Read(addr int) int {
	return c.Bus.Read(addr)
}

// Write writes one word to the data memory.
func (c *Cpu) Write(addr int, data int) {
	c.Bus.Write(addr, data)
}

// Done reports whether the run loop's termination predicate has been
// reached: every loaded instruction has retired.
func (c *Cpu) Done() bool {
	return c.Retired == len(c.Code)
}

// Tick advances the pipeline by one clock cycle: the seven stage functions
// run in reverse pipeline order (Writeback first, Fetch last), so that a
// stage which overwrites a downstream latch this tick is observed by that
// latch's owner only on the *next* tick, while a stage which writes the
// register file is observed immediately by any stage called afterwards in
// the same tick -- this is what makes same-tick forwarding into Decode
// possible (spec.md section 5).
func (c *Cpu) Tick() {
	c.writeback()
	c.memory2()
	c.memory1()
	c.execute2()
	c.execute1()
	c.decode()
	c.fetch()
	c.Cycle++
}

// Run repeatedly ticks the pipeline until every instruction has retired or
// cycleBudget ticks have elapsed (a budget of 0 means unlimited). It
// returns the number of ticks actually executed.
func (c *Cpu) Run(cycleBudget int) int {
	ticks := 0
	for !c.Done() {
		if cycleBudget > 0 && ticks >= cycleBudget {
			break
		}
		c.Tick()
		ticks++
	}
	return ticks
}
