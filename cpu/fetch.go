package cpu

import "apex/isa"

// fetch reads the instruction at pc from the code image into the Fetch
// latch, then -- iff Decode is not stalled -- advances pc by 4 and hands
// the latch to Decode. Fetch never consults register valid bits; its own
// Stalled flag is set by Decode (RAW hazards) or by a later stage pushing
// a HALT freeze backwards, and once set, fetch performs no state update
// at all this tick (spec.md section 4.1).
func (c *Cpu) fetch() {
	f := &c.Stage[F]
	if f.Busy || f.Stalled {
		return
	}

	f.PC = c.PC
	idx := isa.Index(c.PC)
	if idx < 0 || idx >= len(c.Code) {
		f.bubble()
		return
	}
	f.Instruction = c.Code[idx]

	if !c.Stage[DRF].Stalled {
		c.PC += 4
		c.Stage[DRF] = *f
	}
}
