package cpu

import "apex/isa"

// memory1 performs the actual data-memory access for LOAD/STORE/LDR/STR,
// arms a forward if this stage's rd matches a waiting Decode consumer, and
// always hands its latch to Memory-2 -- even while busy or stalled (spec.md
// section 4.5).
func (c *Cpu) memory1() {
	m := &c.Stage[MEM1]
	if !m.Busy && !m.Stalled {
		c.armForward(m)

		switch m.Instruction.Opcode {
		case isa.STORE:
			c.Write(m.MemAddress, m.Rs1Value)
		case isa.STR:
			c.Write(m.MemAddress, m.Buffer)
		case isa.LOAD, isa.LDR:
			m.Buffer = c.Read(m.MemAddress)
		case isa.HALT:
			c.Stage[F].Stalled = true
			c.Stage[F].bubble()
			c.Stage[DRF].Stalled = true
			c.Stage[DRF].bubble()
			c.Stage[EX1].Stalled = true
			c.Stage[EX1].bubble()
			c.Stage[EX2].Stalled = true
			c.Stage[EX2].bubble()
		}
	}

	c.Stage[MEM2] = *m
}
