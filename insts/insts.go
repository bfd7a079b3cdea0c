// Package insts provides AltairX opcode definitions, the bitfield view
// over encoded 32-bit words, word builders, and the disassembler.
//
// An AltairX instruction stream is a sequence of little-endian 32-bit
// words. Words issue in bundles of one or two slots; the slot-1 word
// carries a bundle bit announcing the second slot, and a slot-2 MOVEIX
// word widens the slot-1 immediate by 24 bits instead of executing.
//
// Usage:
//
//	op := insts.Opcode(word)
//	fmt.Printf("unit %d op %d rA %d\n", op.Unit(), op.Operation(), op.RegA())
package insts
