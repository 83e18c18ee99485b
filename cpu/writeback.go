package cpu

import "apex/isa"

// writeback is nominally the architectural commit point; because
// Execute-2 and Memory-2 already wrote results into the register file, this
// re-performs the write (idempotent) and releases the Decode/Fetch stall
// flags a HALT in flight asserted. Every non-bubble pass increments the
// retirement counter (spec.md section 4.6).
func (c *Cpu) writeback() {
	w := &c.Stage[WB]
	if w.Busy || w.Stalled {
		return
	}

	switch w.Instruction.Opcode {
	case isa.MOVC, isa.LOAD, isa.LDR:
		c.Regs[w.Instruction.Rd] = w.Buffer
		c.Stage[DRF].Stalled = false
		c.Stage[F].Stalled = false

	case isa.ADD, isa.ADDL, isa.SUB, isa.MUL:
		c.Regs[w.Instruction.Rd] = w.Buffer
		c.Stage[DRF].Stalled = false
		c.Stage[F].Stalled = false
		c.setZeroFlag(w.Buffer)

	case isa.AND, isa.OR, isa.XOR:
		c.Stage[DRF].Stalled = false
		c.Stage[F].Stalled = false

	case isa.HALT:
		c.Retired = len(c.Code) - 1
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
		c.Stage[MEM2].Stalled = true
		c.Stage[MEM2].bubble()
	}

	if !w.isBubble() {
		c.Retired++
	}
}
