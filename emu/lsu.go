package emu

import (
	"fmt"

	"github.com/altairx-project/altairx-vm/insts"
)

// executeLSU runs one load/store opcode. The acc pseudo-register
// follows the ALU rule: writes land in the slot's own BL bypass cell,
// reads take the other slot's BL cell. FP variants keep their bypass
// cells in the FP file.
func (c *Core) executeLSU(op insts.Opcode, slot uint32, imm24 uint64) error {
	writeback := func(value uint64) {
		c.regs.Gpi[RegBL1+slot] = value
		if op.RegA() != RegAcc {
			c.regs.Gpi[op.RegA()] = value
		}
	}

	writebackFloat := func(value uint64) {
		c.regs.Gpf[RegBL1+slot] = value
		if op.RegA() != RegAcc {
			c.regs.Gpf[op.RegA()] = value
		}
	}

	readReg := func(reg uint32) uint64 {
		if reg == RegAcc {
			return c.regs.Gpi[RegBL1+(1-slot)]
		}
		return c.regs.Gpi[reg]
	}

	addrReg := func() uint64 {
		return readReg(op.RegB()) + readReg(op.RegC())<<op.LsuShift()
	}

	// Signed 10-bit offset widened by the MOVEIX payload; two's
	// complement addition handles the signedness.
	addrImm := func() uint64 {
		off := SextBitsize(uint64(op.LsuImm10()), 10) ^ (imm24 << 9)
		return readReg(op.RegB()) + off
	}

	// FP access sizes remap to the integer codes: f32 -> word, f64 -> dword.
	fsizeToIsize := func() (uint32, error) {
		if op.Size() > 1 {
			return 0, fmt.Errorf("%w: FP access size %d", ErrSizeInvalid, op.Size())
		}
		return op.Size() + 2, nil
	}

	bytes := func(size uint32) uint32 { return 1 << size }
	sext := func(value uint64) uint64 { return SextBytesize(value, 1<<op.Size()) }

	load := func(addr uint64, size uint32) (uint64, error) {
		return c.mem.Load(addr, bytes(size))
	}
	store := func(value, addr uint64, size uint32) error {
		return c.mem.Store(addr, bytes(size), value&SizeMask[size])
	}

	loadInt := func(addr uint64, signed bool) error {
		value, err := load(addr, op.Size())
		if err != nil {
			return err
		}
		if signed {
			value = sext(value)
		}
		writeback(value)
		return nil
	}

	loadFloat := func(addr uint64) error {
		size, err := fsizeToIsize()
		if err != nil {
			return err
		}
		value, err := load(addr, size)
		if err != nil {
			return err
		}
		writebackFloat(value)
		return nil
	}

	storeFloat := func(addr uint64) error {
		size, err := fsizeToIsize()
		if err != nil {
			return err
		}
		value := c.regs.Gpf[op.RegA()]
		if op.RegA() == RegAcc {
			value = c.regs.Gpf[RegBL1+(1-slot)]
		}
		return store(value, addr, size)
	}

	switch op.Operation() {
	case insts.LsuLd:
		return loadInt(addrReg(), false)
	case insts.LsuLds:
		return loadInt(addrReg(), true)
	case insts.LsuFld:
		return loadFloat(addrReg())
	case insts.LsuSt:
		return store(readReg(op.RegA()), addrReg(), op.Size())
	case insts.LsuFst:
		return storeFloat(addrReg())
	case insts.LsuLdi:
		return loadInt(addrImm(), false)
	case insts.LsuLdis:
		return loadInt(addrImm(), true)
	case insts.LsuFldi:
		return loadFloat(addrImm())
	case insts.LsuSti:
		return store(readReg(op.RegA()), addrImm(), op.Size())
	case insts.LsuFsti:
		return storeFloat(addrImm())
	}

	return fmt.Errorf("%w: LSU operation %d", ErrOpInvalid, op.Operation())
}
