package emu

// Register indices with architectural roles.
const (
	RegSP   uint32 = 0
	RegLR   uint32 = 31
	RegAcc  uint32 = 56 // bypass pseudo-register, never stored
	RegBA1  uint32 = 57 // ALU slot-1 bypass cell
	RegBA2  uint32 = 58 // ALU slot-2 bypass cell
	RegBF1  uint32 = 59 // FPU slot-1 bypass cell
	RegBF2  uint32 = 60 // FPU slot-2 bypass cell
	RegBL1  uint32 = 61 // LSU slot-1 bypass cell
	RegBL2  uint32 = 62 // LSU slot-2 bypass cell
	RegZero uint32 = 63 // reads as 0, writes discarded
)

// Flag-register bit masks.
const (
	ZMask uint32 = 0x01 // zero / equal
	CMask uint32 = 0x02 // carry / unsigned borrow
	NMask uint32 = 0x04 // negative
	OMask uint32 = 0x08 // signed overflow
	UMask uint32 = 0x10 // unordered (FP operand neither normal nor zero)
)

// MDU register selectors.
const (
	MduQ  uint32 = 0 // division quotient
	MduQR uint32 = 1 // division remainder
	MduPL uint32 = 2 // product low
	MduPH uint32 = 3 // product high
)

// RegisterSet is the architectural register file. The PC counts 32-bit
// instruction slots, not bytes.
type RegisterSet struct {
	Lr uint32 // link register
	Br uint32 // branch register
	Lc uint32 // loop counter
	Fr uint32 // flag register
	Pc uint32 // program counter, in instruction slots
	Ir uint32 // interrupt return
	Cc uint32 // cycle counter
	Ic uint32 // instruction counter

	// Gpi holds the general-purpose integer registers. Index 63 is the
	// zero register; indices 57..62 are the unit bypass cells.
	Gpi [64]uint64

	// Gpf holds the FP registers as raw 64-bit patterns. The operation
	// size decides how a pattern is interpreted.
	Gpf [64]uint64

	// Mdu holds Q, QR, PL, PH.
	Mdu [4]uint64

	// EfuQ is the extended-float unit's single output register.
	EfuQ uint64
}
