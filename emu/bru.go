package emu

import (
	"fmt"

	"github.com/altairx-project/altairx-vm/insts"
)

// executeBRU runs one branch opcode. Displacements count instruction
// slots, never bytes. Conditional branches consume the flag register;
// the unordered bit U makes the signed tests fail and the unsigned and
// *U tests succeed.
func (c *Core) executeBRU(op insts.Opcode, imm24 uint64) error {
	relative23 := func() int64 {
		return int64(SextBitsize(uint64(op.BruImm23()), 23) ^ (imm24 << 22))
	}

	relative24 := func() int64 {
		return int64(SextBitsize(uint64(op.BruImm24()), 24) ^ (imm24 << 23))
	}

	absolute24 := func() uint64 {
		return uint64(op.BruImm24()) | (imm24 << 24)
	}

	// The return PC is the slot past the whole bundle.
	linkValue := func() uint64 {
		next := c.regs.Pc + 1
		if op.IsBundle() {
			next++
		}
		return uint64(next)
	}

	addPC := func(disp int64) {
		c.regs.Pc = uint32(int64(c.regs.Pc) + disp)
	}

	z := c.regs.Fr&ZMask != 0
	cf := c.regs.Fr&CMask != 0
	n := c.regs.Fr&NMask != 0
	o := c.regs.Fr&OMask != 0
	u := c.regs.Fr&UMask != 0

	branchIf := func(taken bool) {
		if taken {
			addPC(relative23())
		}
	}

	switch op.Operation() {
	case insts.BruBeq:
		branchIf(z && !u)
	case insts.BruBne:
		branchIf(!z && !u)
	case insts.BruBlt:
		branchIf(n != o && !u)
	case insts.BruBge:
		branchIf((z || n == o) && !u)
	case insts.BruBltu:
		branchIf(cf || u)
	case insts.BruBgeu:
		branchIf(z || !cf || u)
	case insts.BruBequ:
		branchIf(z || u)
	case insts.BruBneu:
		branchIf(!z || u)
	case insts.BruBra:
		addPC(relative24())
	case insts.BruCallr:
		c.regs.Gpi[RegLR] = linkValue()
		addPC(relative24())
	case insts.BruJump:
		c.regs.Pc = uint32(absolute24())
	case insts.BruCall:
		c.regs.Gpi[RegLR] = linkValue()
		c.regs.Pc = uint32(absolute24())
	case insts.BruIndirectCallr:
		c.regs.Gpi[op.RegA()] = linkValue()
		addPC(int64(c.regs.Gpi[op.RegB()]))
	case insts.BruIndirectCall:
		c.regs.Gpi[op.RegA()] = linkValue()
		c.regs.Pc = uint32(c.regs.Gpi[op.RegB()])
	default:
		return fmt.Errorf("%w: BRU operation %d", ErrOpInvalid, op.Operation())
	}

	return nil
}
