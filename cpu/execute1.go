package cpu

import "apex/isa"

// execute1 runs the ALU and address-computation step, then checks whether
// it should arm Decode's one-shot forwarding flag for the following tick
// (spec.md section 4.3, 4.7).
func (c *Cpu) execute1() {
	e := &c.Stage[EX1]
	if !e.Busy && !e.Stalled {
		switch e.Instruction.Opcode {
		case isa.ADD:
			c.execADD(e)
		case isa.ADDL:
			c.execADDL(e)
		case isa.SUB:
			c.execSUB(e)
		case isa.MUL:
			c.execMUL(e)
		case isa.AND:
			c.execAND(e)
		case isa.OR:
			c.execOR(e)
		case isa.XOR:
			c.execXOR(e)
		case isa.MOVC:
			c.execMOVC(e)
		case isa.LOAD:
			c.addrLOAD(e)
		case isa.STORE:
			c.addrSTORE(e)
		case isa.LDR:
			c.addrLDR(e)
		case isa.STR:
			c.addrSTR(e)
		case isa.BZ:
			c.armBranch(e, c.Zero)
		case isa.BNZ:
			c.armBranch(e, !c.Zero)
		case isa.HALT:
			c.Stage[DRF].Stalled = true
			c.Stage[DRF].bubble()
			c.Stage[F].Stalled = true
			c.Stage[F].bubble()
		}

		c.armForward(e)
	}

	// Execute-1 always hands its latch to Execute-2, stalled or not.
	c.Stage[EX2] = *e
}

// armBranch computes the potential branch target into mem_address iff the
// zero flag matches the predicate for this opcode; the branch is only acted
// on in Execute-2 (spec.md section 4.3). The zero flag is cleared only when
// it is actually consumed by a taken branch (spec.md section 4.3: "consumed
// zero flag is cleared"), not on every BZ/BNZ -- a not-taken BNZ (taken ==
// false, meaning Zero == true) must leave the flag set for a later BZ to
// still observe it, matching original_source/cpu.c's BZ/BNZ cases, which
// each clear cpu->zero only inside their own "am I taken" branch.
func (c *Cpu) armBranch(l *Latch, taken bool) {
	if taken {
		l.MemAddress = l.PC + l.Instruction.Imm
		c.Zero = false
	} else {
		l.MemAddress = 0
	}
}

// armForward is the producer-side, early half of the forwarding protocol: if
// either source register named by the instruction currently in Decode equals
// this stage's rd, Decode's forward_enable is set for the supply step one
// tick later (spec.md section 4.7). This compares the raw rd/rs1/rs2 fields
// with no further opcode-awareness, matching the source exactly; register 0
// is never used as a destination or source in any program exercised here,
// so the latent false-arm this permits for bubbles (rd/rs1/rs2 all default
// to 0) never fires in practice.
func (c *Cpu) armForward(e *Latch) {
	dec := &c.Stage[DRF]
	if dec.Instruction.Rs1 == e.Instruction.Rd || dec.Instruction.Rs2 == e.Instruction.Rd {
		dec.ForwardEnable = true
	}
}
