package cpu

import "apex/isa"

// A stage indexes one of the seven pipeline latches, in pipeline order.
type stage int

const (
	F stage = iota
	DRF
	EX1
	EX2
	MEM1
	MEM2
	WB
	numStages
)

func (s stage) String() string {
	switch s {
	case F:
		return "Fetch"
	case DRF:
		return "Decode/RF"
	case EX1:
		return "Execute1"
	case EX2:
		return "Execute2"
	case MEM1:
		return "Memory1"
	case MEM2:
		return "Memory2"
	case WB:
		return "Writeback"
	default:
		return "?"
	}
}

// A Latch is the per-stage record holding the instruction currently in
// flight at that stage, plus the transient fields a later stage needs: the
// operand values Decode read, the computed result Execute produces, the
// address Memory uses, the stall/busy flags Fetch and Decode consult, and
// the one-shot forwarding scratch fields only Decode's latch ever uses.
type Latch struct {
	Instruction isa.Instruction
	PC          int

	Rs1Value   int
	Rs2Value   int
	Buffer     int
	MemAddress int

	Busy    bool
	Stalled bool

	// Forwarding fields. Only ever read/written on the Decode latch; see
	// the forwarding protocol in execute1.go, execute2.go, memory1.go and
	// memory2.go.
	ForwardEnable   bool
	ForwardRegIndex int
	ForwardValue    int
}

// bubble resets the latch to hold no instruction: its opcode becomes the
// distinguished Bubble tag and its pc is zeroed, per spec.md's latch
// invariants. Stall/busy/forwarding scratch fields are left untouched,
// since a flush is a content overwrite, not a full latch reset.
func (l *Latch) bubble() {
	l.Instruction = isa.BubbleInstruction
	l.PC = 0
}

func (l *Latch) isBubble() bool {
	return l.Instruction.Opcode == isa.Bubble
}
