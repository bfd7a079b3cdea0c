package insts

import "fmt"

// Disassembler: a read-only mirror of the decode/dispatch taxonomy.
// Operand rendering follows the assembler conventions: integer
// registers by role name, FP registers as v<n>, sizes as .b/.w/.d/.q
// for integers and .s/.d for floats.

func regName(reg uint32) string {
	switch {
	case reg == 0:
		return "sp"
	case 1 <= reg && reg <= 8:
		return fmt.Sprintf("a%d", reg-1)
	case 9 <= reg && reg <= 19:
		return fmt.Sprintf("s%d", reg-9)
	case 20 <= reg && reg <= 30:
		return fmt.Sprintf("t%d", reg-20)
	case reg == 31:
		return "lr"
	case 32 <= reg && reg <= 55:
		return fmt.Sprintf("n%d", reg-32)
	case reg == 56:
		return "acc"
	case reg == 63:
		return "zero"
	}
	return fmt.Sprintf("r%d", reg)
}

func fregName(reg uint32) string { return fmt.Sprintf("v%d", reg) }

func mduRegName(pq uint32) string {
	switch pq {
	case 0:
		return "Q"
	case 1:
		return "QR"
	case 2:
		return "PL"
	case 3:
		return "PH"
	}
	return "?"
}

func sizeSuffix(size uint32) string {
	switch size {
	case 0:
		return ".b"
	case 1:
		return ".w"
	case 2:
		return ".d"
	case 3:
		return ".q"
	}
	return ".?"
}

func fsizeSuffix(size uint32) string {
	switch size {
	case 0:
		return ".s"
	case 1:
		return ".d"
	}
	return ".?"
}

func shiftedReg(reg, shift uint32) string {
	if shift > 0 {
		return fmt.Sprintf("%s << %d", regName(reg), shift)
	}
	return regName(reg)
}

// aluRight renders the right operand: shifted reg C or widened imm9.
func aluRight(op Opcode, imm24 uint64) string {
	if !op.AluHasImm() {
		return shiftedReg(op.RegC(), op.AluShift())
	}
	imm := signExtend(uint64(op.AluImm9()), 9) ^ (imm24 << 8)
	return fmt.Sprintf("%d", int64(imm))
}

func aluToString(op Opcode, imm24 uint64, second bool) string {
	size := sizeSuffix(op.Size())
	out := regName(op.RegA())
	left := regName(op.RegB())

	formatDefault := func(name string) string {
		return fmt.Sprintf("%s%s\t%s, %s, %s", name, size, out, left, aluRight(op, imm24))
	}

	switch op.AluOperation() {
	case AluMoveix:
		if second {
			return "moveix"
		}
		return "nop"
	case AluMovei:
		imm := signExtend(uint64(op.AluMoveImm()), 18) ^ (imm24 << 18)
		return fmt.Sprintf("movei\t%s, %d", out, int64(imm))
	case AluExt:
		return fmt.Sprintf("ext\t%s, %s, %d, %d", out, left, op.ExtInsImm1(), op.ExtInsImm2())
	case AluIns:
		return fmt.Sprintf("ins\t%s, %s, %d, %d", out, left, op.ExtInsImm1(), op.ExtInsImm2())
	case AluMax:
		return formatDefault("max")
	case AluUmax:
		return formatDefault("umax")
	case AluMin:
		return formatDefault("min")
	case AluUmin:
		return formatDefault("umin")
	case AluAdds:
		return formatDefault("adds")
	case AluSubs:
		return formatDefault("subs")
	case AluCmp:
		return fmt.Sprintf("cmp%s\t%s, %s", size, left, aluRight(op, imm24))
	case AluBit:
		return fmt.Sprintf("bit%s\t%s, %s", size, left, aluRight(op, imm24))
	case AluTest:
		return fmt.Sprintf("test%s\t%s, %s", size, left, aluRight(op, imm24))
	case AluTestfr:
		return fmt.Sprintf("testfr%s\t%s", size, aluRight(op, imm24))
	case AluAdd:
		return formatDefault("add")
	case AluSub:
		return formatDefault("sub")
	case AluXor:
		return formatDefault("xor")
	case AluOr:
		return formatDefault("or")
	case AluAnd:
		return formatDefault("and")
	case AluLsl:
		return formatDefault("lsl")
	case AluAsr:
		return formatDefault("asr")
	case AluLsr:
		return formatDefault("lsr")
	case AluSe:
		return formatDefault("se")
	case AluSen:
		return formatDefault("sen")
	case AluSlts:
		return formatDefault("slts")
	case AluSltu:
		return formatDefault("sltu")
	case AluSand:
		return formatDefault("sand")
	case AluSbit:
		return formatDefault("sbit")
	case AluCmoven:
		return formatDefault("cmoven")
	case AluCmove:
		return formatDefault("cmove")
	}
	return ""
}

func mduToString(op Opcode, imm24 uint64) string {
	size := sizeSuffix(op.Size())
	left := regName(op.RegB())

	switch op.Operation() {
	case MduDiv:
		return fmt.Sprintf("div%s\t%s, %s", size, left, aluRight(op, imm24))
	case MduDivu:
		return fmt.Sprintf("divu%s\t%s, %s", size, left, aluRight(op, imm24))
	case MduMul:
		return fmt.Sprintf("mul%s\t%s, %s", size, left, aluRight(op, imm24))
	case MduMulu:
		return fmt.Sprintf("mulu%s\t%s, %s", size, left, aluRight(op, imm24))
	case MduGetmd:
		return fmt.Sprintf("move%s\t%s, %s", size, regName(op.RegA()), mduRegName(op.MduPQ()))
	case MduSetmd:
		return fmt.Sprintf("move%s\t%s, %s", size, mduRegName(op.MduPQ()), regName(op.RegA()))
	}
	return ""
}

func lsuToString(op Opcode, imm24 uint64) string {
	size := sizeSuffix(op.Size())
	fsize := fsizeSuffix(op.Size())
	out := regName(op.RegA())
	fout := fregName(op.RegA())
	base := regName(op.RegB())

	regIndex := func() string { return shiftedReg(op.RegC(), op.LsuShift()) }
	immIndex := func() string {
		imm := signExtend(uint64(op.LsuImm10()), 10) ^ (imm24 << 9)
		return fmt.Sprintf("%d", int64(imm))
	}

	switch op.Operation() {
	case LsuLd:
		return fmt.Sprintf("ld%s\t%s, %s[%s]", size, out, base, regIndex())
	case LsuLds:
		return fmt.Sprintf("lds%s\t%s, %s[%s]", size, out, base, regIndex())
	case LsuFld:
		return fmt.Sprintf("fld%s\t%s, %s[%s]", fsize, fout, base, regIndex())
	case LsuSt:
		return fmt.Sprintf("st%s\t%s, %s[%s]", size, out, base, regIndex())
	case LsuFst:
		return fmt.Sprintf("fst%s\t%s, %s[%s]", fsize, fout, base, regIndex())
	case LsuLdi:
		return fmt.Sprintf("ld%s\t%s, %s[%s]", size, out, base, immIndex())
	case LsuLdis:
		return fmt.Sprintf("lds%s\t%s, %s[%s]", size, out, base, immIndex())
	case LsuFldi:
		return fmt.Sprintf("fld%s\t%s, %s[%s]", fsize, fout, base, immIndex())
	case LsuSti:
		return fmt.Sprintf("st%s\t%s, %s[%s]", size, out, base, immIndex())
	case LsuFsti:
		return fmt.Sprintf("fst%s\t%s, %s[%s]", fsize, fout, base, immIndex())
	}
	return ""
}

func fpuToString(op Opcode) string {
	size := fsizeSuffix(op.Size())
	out := fregName(op.RegA())
	left := fregName(op.RegB())
	right := fregName(op.RegC())

	formatDefault := func(name string, unary bool) string {
		if unary {
			return fmt.Sprintf("%s%s\t%s, %s", name, size, out, left)
		}
		return fmt.Sprintf("%s%s\t%s, %s, %s", name, size, out, left, right)
	}
	formatOverlapped := func(base, conv string, unary bool) string {
		if op.Size() == 3 {
			return fmt.Sprintf("%s\t%s, %s", conv, out, left)
		}
		return formatDefault(base, unary)
	}

	switch op.Operation() {
	case FpuFadd:
		return formatOverlapped("fadd", "htof", false)
	case FpuFsub:
		return formatOverlapped("fsub", "ftoh", false)
	case FpuFmul:
		return formatOverlapped("fmul", "itof", false)
	case FpuFnmul:
		return formatOverlapped("fnmul", "ftoi", false)
	case FpuFmin:
		return formatOverlapped("fmin", "ftod", false)
	case FpuFmax:
		return formatOverlapped("fmax", "dtof", false)
	case FpuFneg:
		return formatOverlapped("fneg", "itod", true)
	case FpuFabs:
		return formatOverlapped("fabs", "dtoi", true)
	case FpuFcmove:
		return formatDefault("fcmove", false)
	case FpuFe:
		return formatDefault("fe", false)
	case FpuFen:
		return formatDefault("fen", false)
	case FpuFslt:
		return formatDefault("fslt", false)
	case FpuFmove:
		return formatDefault("fmove", true)
	case FpuFcmp:
		return fmt.Sprintf("fcmp%s\t%s, %s", size, left, right)
	}
	return ""
}

func efuToString(op Opcode) string {
	size := fsizeSuffix(op.Size())
	left := fregName(op.RegB())
	right := fregName(op.RegC())

	formatDefault := func(name string, unary bool) string {
		if unary {
			return fmt.Sprintf("%s%s\t%s", name, size, left)
		}
		return fmt.Sprintf("%s%s\t%s, %s", name, size, left, right)
	}

	switch op.Operation() {
	case EfuFdiv:
		return formatDefault("fdiv", false)
	case EfuFatan2:
		return formatDefault("fatan2", false)
	case EfuFsqrt:
		return formatDefault("fsqrt", true)
	case EfuFsin:
		return formatDefault("fsin", true)
	case EfuFatan:
		return formatDefault("fatan", true)
	case EfuFexp:
		return formatDefault("fexp", true)
	case EfuInvsqrt:
		return formatDefault("finvsqrt", true)
	case EfuSetef:
		return fmt.Sprintf("setef\t%s", fregName(op.RegA()))
	case EfuGetef:
		return fmt.Sprintf("getef\t%s", fregName(op.RegA()))
	}
	return ""
}

func bruToString(op Opcode, imm24 uint64) string {
	relative23 := func() int64 {
		return int64(signExtend(uint64(op.BruImm23()), 23) ^ (imm24 << 22))
	}
	relative24 := func() int64 {
		return int64(signExtend(uint64(op.BruImm24()), 24) ^ (imm24 << 23))
	}
	absolute24 := func() uint64 {
		return uint64(op.BruImm24()) | (imm24 << 24)
	}

	switch op.Operation() {
	case BruBeq:
		return fmt.Sprintf("beq\t%d", relative23())
	case BruBne:
		return fmt.Sprintf("bne\t%d", relative23())
	case BruBlt:
		return fmt.Sprintf("blt\t%d", relative23())
	case BruBge:
		return fmt.Sprintf("bge\t%d", relative23())
	case BruBltu:
		return fmt.Sprintf("bltu\t%d", relative23())
	case BruBgeu:
		return fmt.Sprintf("bgeu\t%d", relative23())
	case BruBequ:
		return fmt.Sprintf("bequ\t%d", relative23())
	case BruBneu:
		return fmt.Sprintf("bneu\t%d", relative23())
	case BruBra:
		return fmt.Sprintf("bra\t%d", relative24())
	case BruCallr:
		return fmt.Sprintf("callr\t%d", relative24())
	case BruJump:
		return fmt.Sprintf("jump\t%d", absolute24())
	case BruCall:
		return fmt.Sprintf("call\t%d", absolute24())
	case BruIndirectCallr:
		return fmt.Sprintf("callr\t%s, %s", regName(op.RegB()), regName(op.RegA()))
	case BruIndirectCall:
		return fmt.Sprintf("call\t%s, %s", regName(op.RegB()), regName(op.RegA()))
	}
	return ""
}

func cuToString(op Opcode) string {
	switch op.Operation() {
	case CuGetir:
		return "getir"
	case CuSetfr:
		return "setfr"
	case CuMmu:
		return "mmu"
	case CuSync:
		return "sync"
	case CuSyscall:
		return "syscall"
	case CuReti:
		return "reti"
	}
	return ""
}

// Disassemble renders one opcode word for the given slot, with imm24
// the bundle's MOVEIX payload (0 when absent). Unknown issue keys and
// operations render as the empty string.
func Disassemble(op Opcode, slot uint32, imm24 uint64) string {
	issue := slot<<3 | op.Unit()
	switch issue {
	case 0, 1:
		return aluToString(op, imm24, false)
	case 8, 9:
		return aluToString(op, imm24, true)
	case 2, 10:
		return lsuToString(op, imm24)
	case 3, 11:
		return fpuToString(op)
	case 5:
		return efuToString(op)
	case 6:
		return mduToString(op, imm24)
	case 7:
		return bruToString(op, imm24)
	case 13:
		return cuToString(op)
	}
	return ""
}

// DisassembleBundle renders a fetched word pair the way the dispatcher
// consumes it: the second string is empty for single-slot bundles.
func DisassembleBundle(first, second Opcode) (string, string) {
	if first.IsBundle() {
		var imm24 uint64
		if second.IsMoveix() {
			imm24 = uint64(second.MoveixImm24())
		}
		return Disassemble(first, 0, imm24), Disassemble(second, 1, imm24)
	}
	return Disassemble(first, 0, 0), ""
}
