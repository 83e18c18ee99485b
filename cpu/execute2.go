package cpu

import "apex/isa"

// execute2 performs the early architectural commit for every result except
// loaded values, resolves JUMP and BZ/BNZ, supplies a previously-armed
// forward, and always hands its latch to Memory-1 (spec.md section 4.4).
func (c *Cpu) execute2() {
	e := &c.Stage[EX2]

	// Early commit, unconditional: runs even while busy or stalled,
	// matching the source's placement ahead of its own busy/stalled gate.
	if e.Instruction.Opcode != isa.LOAD && e.Instruction.Opcode != isa.LDR {
		c.RegsValid[e.Instruction.Rd] = true
		c.Regs[e.Instruction.Rd] = e.Buffer
	}

	if !e.Busy && !e.Stalled {
		switch e.Instruction.Opcode {
		case isa.JUMP:
			c.PC = e.Rs1Value + e.Instruction.Imm
			// Upstream latches are not flushed here; this reproduces the
			// source's defect for non-trivial jumps (spec.md section 9).

		case isa.BZ, isa.BNZ:
			if e.MemAddress != 0 {
				c.PC = e.MemAddress
				c.Stage[F].bubble()
				c.Stage[DRF].bubble()
				c.Stage[EX1].bubble()
				if e.Instruction.Imm < 0 {
					c.Retired += e.Instruction.Imm/4 - 1
				} else {
					c.Retired -= e.Instruction.Imm / 4
				}
			}

		case isa.HALT:
			c.Stage[F].Stalled = true
			c.Stage[F].bubble()
			c.Stage[DRF].Stalled = true
			c.Stage[DRF].bubble()
			c.Stage[EX1].Stalled = true
			c.Stage[EX1].bubble()
		}

		c.supplyForward(e)
	}

	c.Stage[MEM1] = *e
}

// supplyForward is the second step of the forwarding protocol: once Decode
// has been armed (by either producer side, the previous tick), the current
// occupant of this stage hands over its own rd/buffer unconditionally -- the
// source does not re-check for a matching rd here, relying on there being
// only one genuine producer in flight at a time (spec.md section 4.7, 9).
func (c *Cpu) supplyForward(e *Latch) {
	dec := &c.Stage[DRF]
	if dec.ForwardEnable {
		dec.ForwardRegIndex = e.Instruction.Rd
		dec.ForwardValue = e.Buffer
	}
}
