package cpu

import "apex/isa"

// decode reads register operands, clears the destination's valid bit for
// writing instructions, and stalls Fetch and itself on a RAW hazard. It is
// the single match point for per-opcode decode semantics (spec.md section
// 9's redesign note), replacing the source's per-opcode string comparisons
// with one switch over isa.Opcode.
func (c *Cpu) decode() {
	d := &c.Stage[DRF]

	// Forwarding receive: always happens first, regardless of busy/stall,
	// mirroring the source's placement ahead of the hazard-check block.
	if d.ForwardEnable {
		c.Regs[d.ForwardRegIndex] = d.ForwardValue
		c.RegsValid[d.ForwardRegIndex] = true
		d.ForwardEnable = false
	}

	if d.Busy || d.isBubble() {
		return
	}

	in := d.Instruction

	if in.Opcode == isa.HALT {
		// Freeze fetch, but decode itself keeps propagating the HALT
		// onward into Execute-1 this same tick.
		c.Stage[F].Stalled = true
		c.Stage[F].bubble()
		d.Stalled = false
		c.Stage[EX1] = *d
		return
	}

	stalled := false

	switch in.Opcode {
	case isa.MOVC:
		c.RegsValid[in.Rd] = false

	case isa.ADDL, isa.LOAD:
		if c.RegsValid[in.Rs1] {
			d.Rs1Value = c.Regs[in.Rs1]
			c.RegsValid[in.Rd] = false
		} else {
			stalled = true
		}

	case isa.ADD, isa.SUB, isa.MUL, isa.AND, isa.OR, isa.XOR, isa.LDR:
		if c.RegsValid[in.Rs1] && c.RegsValid[in.Rs2] {
			d.Rs1Value = c.Regs[in.Rs1]
			d.Rs2Value = c.Regs[in.Rs2]
			c.RegsValid[in.Rd] = false
		} else {
			stalled = true
		}

	case isa.STORE:
		if c.RegsValid[in.Rs1] && c.RegsValid[in.Rs2] {
			d.Rs1Value = c.Regs[in.Rs1]
			d.Rs2Value = c.Regs[in.Rs2]
		} else {
			stalled = true
		}

	case isa.STR:
		if c.RegsValid[in.Rs1] && c.RegsValid[in.Rs2] && c.RegsValid[in.Rd] {
			d.Rs1Value = c.Regs[in.Rs1]
			d.Rs2Value = c.Regs[in.Rs2]
			d.Buffer = c.Regs[in.Rd] // stored value, captured now
		} else {
			stalled = true
		}

	case isa.JUMP:
		d.Rs1Value = c.Regs[in.Rs1] // no hazard check; spec.md section 9

	case isa.BZ, isa.BNZ:
		stalled = c.Stage[EX2].Instruction.Opcode.DefinesZero() ||
			c.Stage[MEM1].Instruction.Opcode.DefinesZero() ||
			c.Stage[MEM2].Instruction.Opcode.DefinesZero() ||
			c.Stage[WB].Instruction.Opcode.DefinesZero()
	}

	d.Stalled = stalled
	c.Stage[F].Stalled = stalled
	if stalled {
		// Execute-1 has already run this tick; leave it a bubble so the
		// instruction it just handed on is not executed a second time.
		c.Stage[EX1].bubble()
		return
	}

	c.Stage[EX1] = *d
}
