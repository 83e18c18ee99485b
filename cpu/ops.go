package cpu

// Per-opcode ALU and address-computation helpers invoked from Execute-1.
// Each operates on the latch passing through that stage; arithmetic ones
// also update the zero flag, mirroring which opcodes "define" it per
// isa.Opcode.DefinesZero.

func (c *Cpu) setZeroFlag(result int) {
	c.Zero = result == 0
}

func (c *Cpu) execMOVC(l *Latch) {
	l.Buffer = l.Instruction.Imm
}

func (c *Cpu) execADD(l *Latch) {
	l.Buffer = l.Rs1Value + l.Rs2Value
	c.setZeroFlag(l.Buffer)
}

func (c *Cpu) execADDL(l *Latch) {
	l.Buffer = l.Rs1Value + l.Instruction.Imm
	c.setZeroFlag(l.Buffer)
}

func (c *Cpu) execSUB(l *Latch) {
	l.Buffer = l.Rs1Value - l.Rs2Value
	c.setZeroFlag(l.Buffer)
}

func (c *Cpu) execMUL(l *Latch) {
	l.Buffer = l.Rs1Value * l.Rs2Value
	c.setZeroFlag(l.Buffer)
}

// execAND, execOR and execXOR deliberately do not touch the zero flag:
// boolean ops do not define it (spec.md section 3).

func (c *Cpu) execAND(l *Latch) {
	l.Buffer = l.Rs1Value & l.Rs2Value
}

func (c *Cpu) execOR(l *Latch) {
	l.Buffer = l.Rs1Value | l.Rs2Value
}

func (c *Cpu) execXOR(l *Latch) {
	l.Buffer = l.Rs1Value ^ l.Rs2Value
}

func (c *Cpu) addrLOAD(l *Latch) {
	l.MemAddress = l.Rs1Value + l.Instruction.Imm
}

func (c *Cpu) addrSTORE(l *Latch) {
	l.MemAddress = l.Rs2Value + l.Instruction.Imm
}

func (c *Cpu) addrLDR(l *Latch) {
	l.MemAddress = l.Rs1Value + l.Rs2Value
}

func (c *Cpu) addrSTR(l *Latch) {
	l.MemAddress = l.Rs1Value + l.Rs2Value
}
