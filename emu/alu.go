package emu

import (
	"fmt"

	"github.com/altairx-project/altairx-vm/insts"
)

func boolToReg(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// executeALU runs one ALU opcode in the given slot. A write to the acc
// pseudo-register lands only in the slot's own BA bypass cell; a
// regular destination is written together with that cell. A read of
// acc takes the other slot's BA cell (see readReg).
func (c *Core) executeALU(op insts.Opcode, slot uint32, imm24 uint64) error {
	writeback := func(value uint64) {
		c.regs.Gpi[RegBA1+slot] = value
		if op.RegA() != RegAcc {
			c.regs.Gpi[op.RegA()] = value
		}
	}

	// INS accumulates by OR instead of overwriting.
	orback := func(value uint64) {
		if op.RegA() == RegAcc {
			c.regs.Gpi[RegBA1+slot] |= c.regs.Gpi[op.RegA()]
		} else {
			c.regs.Gpi[op.RegA()] |= value
			c.regs.Gpi[RegBA1+slot] = c.regs.Gpi[op.RegA()]
		}
	}

	// Bypass forwarding runs from the previous instruction: slot 2
	// reads the slot-1 cell of its own bundle, slot 1 the slot-2 cell
	// of the bundle before.
	readReg := func(reg uint32) uint64 {
		if reg == RegAcc {
			return c.regs.Gpi[RegBA1+(1-slot)]
		}
		return c.regs.Gpi[reg]
	}

	left := func() uint64 { return readReg(op.RegB()) }

	// Immediate form: 9-bit signed immediate widened by the MOVEIX
	// payload. Register form: reg C shifted left.
	right := func() uint64 {
		if !op.AluHasImm() {
			return readReg(op.RegC()) << op.AluShift()
		}
		return SextBitsize(uint64(op.AluImm9()), 9) ^ (imm24 << 8)
	}

	trunc := func(value uint64) uint64 { return value & SizeMask[op.Size()] }
	sext := func(value uint64) uint64 { return SextBytesize(value, 1<<op.Size()) }

	switch aluOp := op.AluOperation(); aluOp {
	case insts.AluMoveix: // data-only, a no-op when dispatched
	case insts.AluMovei:
		writeback(SextBitsize(uint64(op.AluMoveImm()), 18) ^ (imm24 << 18))
	case insts.AluExt:
		writeback((left() >> op.ExtInsImm1()) & (1<<op.ExtInsImm2() - 1))
	case insts.AluIns:
		orback((left() << op.ExtInsImm1()) & (1<<op.ExtInsImm2() - 1))
	case insts.AluMax, insts.AluUmax, insts.AluMin, insts.AluUmin,
		insts.AluBit, insts.AluTest, insts.AluTestfr:
		return fmt.Errorf("%w: ALU operation %d", ErrNotImplemented, aluOp)
	case insts.AluAdds:
		writeback(sext(trunc(trunc(left()) + trunc(right()))))
	case insts.AluSubs:
		writeback(sext(trunc(trunc(left()) - trunc(right()))))
	case insts.AluCmp:
		compareInts(&c.regs.Fr, left(), right(), op.Size())
	case insts.AluAdd:
		writeback(trunc(trunc(left()) + trunc(right())))
	case insts.AluSub:
		writeback(trunc(trunc(left()) - trunc(right())))
	case insts.AluXor:
		writeback(trunc(left()) ^ trunc(right()))
	case insts.AluOr:
		writeback(trunc(left()) | trunc(right()))
	case insts.AluAnd:
		writeback(trunc(left()) & trunc(right()))
	case insts.AluLsl:
		writeback(trunc(trunc(left()) << trunc(right())))
	case insts.AluAsr:
		writeback(trunc(uint64(int64(sext(trunc(left()))) >> trunc(right()))))
	case insts.AluLsr:
		writeback(trunc(trunc(left()) >> trunc(right())))
	case insts.AluSe:
		writeback(boolToReg(trunc(left()) == trunc(right())))
	case insts.AluSen:
		writeback(boolToReg(trunc(left()) != trunc(right())))
	case insts.AluSlts:
		writeback(boolToReg(int64(sext(trunc(left()))) < int64(sext(trunc(right())))))
	case insts.AluSltu:
		writeback(boolToReg(trunc(left()) < trunc(right())))
	case insts.AluSand:
		writeback(boolToReg(trunc(left())&trunc(right()) != 0))
	case insts.AluSbit:
		writeback(boolToReg(trunc(left())&trunc(right()) == trunc(right())))
	case insts.AluCmoven:
		if trunc(left()) == 0 {
			writeback(trunc(right()))
		}
	case insts.AluCmove:
		if trunc(left()) != 0 {
			writeback(trunc(right()))
		}
	default:
		return fmt.Errorf("%w: ALU operation %d", ErrOpInvalid, aluOp)
	}

	return nil
}
