package emu

import (
	"fmt"
	"math"

	"github.com/altairx-project/altairx-vm/insts"
)

// executeMDU runs one multiply/divide opcode. Results land in the MDU
// registers: Q/QR for divisions, PL for products; GETMD/SETMD move
// between them and the integer file.
//
// Division by zero does not trap: the quotient saturates to zero and
// the remainder keeps the left operand. INT_MIN / -1 wraps.
func (c *Core) executeMDU(op insts.Opcode, imm24 uint64) error {
	left := func() uint64 { return c.regs.Gpi[op.RegB()] }

	right := func() uint64 {
		if !op.AluHasImm() {
			return c.regs.Gpi[op.RegC()] << op.AluShift()
		}
		return SextBitsize(uint64(op.AluImm9()), 9) ^ (imm24 << 8)
	}

	trunc := func(value uint64) uint64 { return value & SizeMask[op.Size()] }
	sext := func(value uint64) int64 {
		return int64(SextBytesize(value&SizeMask[op.Size()], 1<<op.Size()))
	}

	switch op.Operation() {
	case insts.MduDiv:
		l := sext(left())
		r := sext(right())
		q, rem := divSigned(l, r)
		c.regs.Mdu[MduQ] = trunc(uint64(q))
		c.regs.Mdu[MduQR] = trunc(uint64(rem))
	case insts.MduDivu:
		l := trunc(left())
		r := trunc(right())
		if r == 0 {
			c.regs.Mdu[MduQ] = 0
			c.regs.Mdu[MduQR] = l
		} else {
			c.regs.Mdu[MduQ] = trunc(l / r)
			c.regs.Mdu[MduQR] = trunc(l % r)
		}
	case insts.MduMul:
		c.regs.Mdu[MduPL] = trunc(uint64(sext(left()) * sext(right())))
	case insts.MduMulu:
		c.regs.Mdu[MduPL] = trunc(trunc(left()) * trunc(right()))
	case insts.MduGetmd:
		c.regs.Gpi[op.RegA()] = c.regs.Mdu[op.MduPQ()]
	case insts.MduSetmd:
		c.regs.Mdu[op.MduPQ()] = c.regs.Gpi[op.RegA()]
	default:
		return fmt.Errorf("%w: MDU operation %d", ErrOpInvalid, op.Operation())
	}

	return nil
}

func divSigned(l, r int64) (q, rem int64) {
	switch {
	case r == 0:
		return 0, l
	case l == math.MinInt64 && r == -1:
		return math.MinInt64, 0
	default:
		return l / r, l % r
	}
}
