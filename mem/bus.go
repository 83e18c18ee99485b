// Package mem provides the flat data memory the APEX Cpu's Memory-1 stage
// reads and writes through.
package mem

// DataWords is the size of the APEX data memory, in words. The code image
// lives separately, indexed from pc 4000 upward (see package isa); this Bus
// only ever sees the addresses computed by LOAD/STORE/LDR/STR.
const DataWords = 4000

// A Bus is the flat, zero-initialised data memory shared by the pipeline.
// Unlike a byte-addressable machine, the Bus is word-addressed:
// LOAD/STORE/LDR/STR operate on whole ints, not bytes, so there is no
// endianness or addressing-mode machinery here.
type Bus struct {
	Words [DataWords]int // zeroed on init
}

// Read returns the word at addr. An addr outside [0, DataWords) is
// implementation-defined behaviour (spec: callers are expected to
// assemble correct programs); this Bus lets such an access panic with an
// index-out-of-range rather than silently wrapping or truncating it.
func (b *Bus) Read(addr int) int {
	return b.Words[addr]
}

// Write stores data at addr.
func (b *Bus) Write(addr int, data int) {
	b.Words[addr] = data
}
