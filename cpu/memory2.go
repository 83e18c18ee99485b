package cpu

import "apex/isa"

// memory2 is the late commit for loaded values: the forwarding source for
// LOAD/LDR results one cycle earlier than Writeback. It adopts the corrected
// reading of the source's commit test -- "opcode is LOAD or LDR" -- per
// spec.md section 9. Like Memory-1, it always hands its latch to Writeback.
func (c *Cpu) memory2() {
	m := &c.Stage[MEM2]

	if m.Instruction.Opcode == isa.LOAD || m.Instruction.Opcode == isa.LDR {
		c.RegsValid[m.Instruction.Rd] = true
		c.Regs[m.Instruction.Rd] = m.Buffer
	}

	if !m.Busy && !m.Stalled {
		if m.Instruction.Opcode == isa.HALT {
			c.Stage[F].Stalled = true
			c.Stage[F].bubble()
			c.Stage[DRF].Stalled = true
			c.Stage[DRF].bubble()
			c.Stage[EX1].Stalled = true
			c.Stage[EX1].bubble()
			c.Stage[EX2].Stalled = true
			c.Stage[EX2].bubble()
			c.Stage[MEM1].Stalled = true
			c.Stage[MEM1].bubble()
		}

		c.supplyForward(m)
	}

	c.Stage[WB] = *m
}
