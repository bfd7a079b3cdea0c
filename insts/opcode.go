package insts

// Opcode is a zero-copy view over one encoded 32-bit instruction word.
// Every accessor is pure bit masking; fields that do not apply to the
// word's unit/operation read as garbage and are simply ignored by the
// consumer, never an error.
//
// Word layout (LSB-indexed):
//
//	bit  0        bundle flag (slot 1: second slot follows;
//	              slot 2: word is a MOVEIX immediate extension)
//	bits 1..3     unit (ALU occupies unit codes 0 and 1)
//	bits 4..7     operation (ALU operation adds (unit&1)<<4)
//	bits 8..13    reg A
//	bits 14..15   size
//	bits 16..17   MDU PQ selector (overlaps reg B)
//	bits 16..21   reg B
//	bit  22       ALU immediate flag
//	bits 23..28   reg C                 (register form)
//	bits 29..31   ALU/LSU shift amount  (register form)
//	bits 23..31   ALU 9-bit immediate   (immediate form)
//	bits 22..31   LSU 10-bit immediate
//	bits 14..31   MOVEI 18-bit immediate
//	bits 22..27   EXT/INS imm1
//	bits 28..31 + 14..15  EXT/INS imm2 (split field)
//	bits 9..31    BRU 23-bit displacement
//	bits 8..31    BRU 24-bit displacement / target, MOVEIX payload
type Opcode uint32

// Functional-unit codes (bits 1..3).
const (
	UnitALUA uint32 = 0 // ALU, operation group A
	UnitALUB uint32 = 1 // ALU, operation group B
	UnitLSU  uint32 = 2
	UnitFPU  uint32 = 3
	UnitEFU  uint32 = 5 // CU when issued in slot 2
	UnitMDU  uint32 = 6 // VU when issued in slot 2
	UnitBRU  uint32 = 7
)

// Unit returns the functional-unit selector.
func (o Opcode) Unit() uint32 { return (uint32(o) >> 1) & 0x7 }

// Operation returns the 4-bit opcode within the unit.
func (o Opcode) Operation() uint32 { return (uint32(o) >> 4) & 0xF }

// AluOperation returns the 5-bit ALU opcode. The ALU spans two unit
// codes; the unit's low bit selects the operation group.
func (o Opcode) AluOperation() uint32 { return (o.Unit()&1)<<4 | o.Operation() }

// Size returns the 2-bit operand size code.
// Integer: 0=byte 1=half 2=word 3=dword. Float: 0=f32 1=f64 3=conversion.
func (o Opcode) Size() uint32 { return (uint32(o) >> 14) & 0x3 }

// RegA returns the destination / first-operand register index.
func (o Opcode) RegA() uint32 { return (uint32(o) >> 8) & 0x3F }

// RegB returns the left-operand register index.
func (o Opcode) RegB() uint32 { return (uint32(o) >> 16) & 0x3F }

// RegC returns the right-operand register index (register form).
func (o Opcode) RegC() uint32 { return (uint32(o) >> 23) & 0x3F }

// AluHasImm reports whether the right operand is an immediate.
func (o Opcode) AluHasImm() bool { return uint32(o)>>22&1 != 0 }

// AluImm9 returns the 9-bit immediate of the ALU/MDU immediate form.
func (o Opcode) AluImm9() uint32 { return (uint32(o) >> 23) & 0x1FF }

// AluShift returns the register-form left-shift amount.
func (o Opcode) AluShift() uint32 { return (uint32(o) >> 29) & 0x7 }

// AluMoveImm returns the 18-bit MOVEI immediate.
func (o Opcode) AluMoveImm() uint32 { return (uint32(o) >> 14) & 0x3FFFF }

// ExtInsImm1 returns the bitfield start position for EXT/INS.
func (o Opcode) ExtInsImm1() uint32 { return (uint32(o) >> 22) & 0x3F }

// ExtInsImm2 returns the bitfield length for EXT/INS. The field is
// split: low four bits live at 28..31, the top two reuse the size bits.
func (o Opcode) ExtInsImm2() uint32 {
	return (uint32(o)>>28)&0xF | (uint32(o)>>14&0x3)<<4
}

// LsuImm10 returns the 10-bit LSU address offset.
func (o Opcode) LsuImm10() uint32 { return (uint32(o) >> 22) & 0x3FF }

// LsuShift returns the LSU register-form index shift.
func (o Opcode) LsuShift() uint32 { return (uint32(o) >> 29) & 0x7 }

// BruImm23 returns the 23-bit conditional-branch displacement.
func (o Opcode) BruImm23() uint32 { return (uint32(o) >> 9) & 0x7FFFFF }

// BruImm24 returns the 24-bit branch displacement / absolute target.
func (o Opcode) BruImm24() uint32 { return (uint32(o) >> 8) & 0xFFFFFF }

// MduPQ returns the MDU register selector (Q, QR, PL, PH).
func (o Opcode) MduPQ() uint32 { return (uint32(o) >> 16) & 0x3 }

// MoveixImm24 returns the 24-bit payload of a slot-2 MOVEIX word.
func (o Opcode) MoveixImm24() uint32 { return (uint32(o) >> 8) & 0xFFFFFF }

// IsBundle reports the slot-1 reading of the bundle flag: a second
// slot follows this word.
func (o Opcode) IsBundle() bool { return uint32(o)&1 != 0 }

// IsMoveix reports the slot-2 reading of the bundle flag: this word is
// an immediate extension, consumed during decode and never dispatched.
func (o Opcode) IsMoveix() bool { return uint32(o)&1 != 0 }

// ALU operations (5-bit composed codes; group A is unit 0, group B unit 1).
const (
	AluMoveix uint32 = 0 // slot-1 reading is the canonical no-op
	AluMovei  uint32 = 1
	AluExt    uint32 = 2
	AluIns    uint32 = 3
	AluMax    uint32 = 4 // reserved
	AluUmax   uint32 = 5 // reserved
	AluMin    uint32 = 6 // reserved
	AluUmin   uint32 = 7 // reserved
	AluAdds   uint32 = 8
	AluSubs   uint32 = 9
	AluCmp    uint32 = 10
	AluBit    uint32 = 11 // reserved
	AluTest   uint32 = 12 // reserved
	AluTestfr uint32 = 13 // reserved

	AluAdd    uint32 = 16
	AluSub    uint32 = 17
	AluXor    uint32 = 18
	AluOr     uint32 = 19
	AluAnd    uint32 = 20
	AluLsl    uint32 = 21
	AluAsr    uint32 = 22
	AluLsr    uint32 = 23
	AluSe     uint32 = 24
	AluSen    uint32 = 25
	AluSlts   uint32 = 26
	AluSltu   uint32 = 27
	AluSand   uint32 = 28
	AluSbit   uint32 = 29
	AluCmoven uint32 = 30
	AluCmove  uint32 = 31
)

// MDU operations.
const (
	MduDiv uint32 = iota
	MduDivu
	MduMul
	MduMulu
	MduGetmd
	MduSetmd
)

// LSU operations.
const (
	LsuLd uint32 = iota
	LsuLds
	LsuFld
	LsuSt
	LsuFst
	LsuLdi
	LsuLdis
	LsuFldi
	LsuSti
	LsuFsti
)

// FPU operations. Size 3 overloads the arithmetic codes with the
// conversion variants; both names of each pair must share a code.
const (
	FpuFadd uint32 = iota
	FpuFsub
	FpuFmul
	FpuFnmul
	FpuFmin
	FpuFmax
	FpuFneg
	FpuFabs
	FpuFcmove
	FpuFe
	FpuFen
	FpuFslt
	FpuFmove
	FpuFcmp

	FpuHtof = FpuFadd  // half -> float
	FpuFtoh = FpuFsub  // float -> half
	FpuItof = FpuFmul  // int -> float
	FpuFtoi = FpuFnmul // float -> int
	FpuFtod = FpuFmin  // float -> double
	FpuDtof = FpuFmax  // double -> float
	FpuItod = FpuFneg  // int -> double
	FpuDtoi = FpuFabs  // double -> int
)

// EFU operations.
const (
	EfuFdiv uint32 = iota
	EfuFatan2
	EfuFsqrt
	EfuFsin
	EfuFatan
	EfuFexp
	EfuInvsqrt
	EfuSetef
	EfuGetef
)

// BRU operations.
const (
	BruBeq uint32 = iota
	BruBne
	BruBlt
	BruBge
	BruBltu
	BruBgeu
	BruBequ
	BruBneu
	BruBra
	BruCallr
	BruJump
	BruCall
	BruIndirectCallr
	BruIndirectCall
)

// CU operations.
const (
	CuGetir uint32 = iota // reserved
	CuSetfr               // reserved
	CuMmu                 // reserved
	CuSync                // reserved
	CuSyscall
	CuReti
)
