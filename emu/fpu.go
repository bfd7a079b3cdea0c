package emu

import (
	"fmt"

	"github.com/altairx-project/altairx-vm/insts"
)

// executeFPU runs one FPU opcode in the given slot. Sizes 0 and 1
// select f32/f64; size 3 selects the conversion overloaded onto the
// same operation code. Arithmetic writebacks canonicalise: a result
// that is not finite-normal or zero decays to a quiet NaN before it
// reaches the register file. Move, set and int-result ops write raw
// patterns. A write to the acc pseudo-register lands in the slot's own
// BF cell; a read of acc takes the other slot's BF cell.
func (c *Core) executeFPU(op insts.Opcode, slot uint32) error {
	writeRaw := func(raw uint64) {
		c.regs.Gpf[RegBF1+slot] = raw
		if op.RegA() != RegAcc {
			c.regs.Gpf[op.RegA()] = raw
		}
	}

	write32 := func(value float32) {
		if !isRealF32(value) {
			writeRaw(uint64(quietNaN32))
			return
		}
		writeRaw(f32ToReg(value))
	}

	write64 := func(value float64) {
		if !isRealF64(value) {
			writeRaw(quietNaN64)
			return
		}
		writeRaw(f64ToReg(value))
	}

	readRaw := func(reg uint32) uint64 {
		if reg == RegAcc {
			return c.regs.Gpf[RegBF1+(1-slot)]
		}
		return c.regs.Gpf[reg]
	}

	left32 := func() float32 { return f32FromReg(readRaw(op.RegB())) }
	right32 := func() float32 { return f32FromReg(readRaw(op.RegC())) }
	left64 := func() float64 { return f64FromReg(readRaw(op.RegB())) }
	right64 := func() float64 { return f64FromReg(readRaw(op.RegC())) }

	sizeErr := func() error {
		return fmt.Errorf("%w: FPU size %d for operation %d", ErrSizeInvalid, op.Size(), op.Operation())
	}

	switch op.Operation() {
	case insts.FpuFadd: // size 3: HTOF
		switch op.Size() {
		case 0:
			write32(left32() + right32())
		case 1:
			write64(left64() + right64())
		case 3:
			write32(HalfToFloat(uint16(readRaw(op.RegB()))))
		default:
			return sizeErr()
		}
	case insts.FpuFsub: // size 3: FTOH
		switch op.Size() {
		case 0:
			write32(left32() - right32())
		case 1:
			write64(left64() - right64())
		case 3:
			writeRaw(uint64(FloatToHalf(left32())))
		default:
			return sizeErr()
		}
	case insts.FpuFmul: // size 3: ITOF
		switch op.Size() {
		case 0:
			write32(left32() * right32())
		case 1:
			write64(left64() * right64())
		case 3:
			write32(float32(int64(readRaw(op.RegB()))))
		default:
			return sizeErr()
		}
	case insts.FpuFnmul: // size 3: FTOI
		switch op.Size() {
		case 0:
			write32(-left32() * right32())
		case 1:
			write64(-left64() * right64())
		case 3:
			writeRaw(uint64(int64(left32())))
		default:
			return sizeErr()
		}
	case insts.FpuFmin: // size 3: FTOD
		switch op.Size() {
		case 0:
			write32(min(left32(), right32()))
		case 1:
			write64(min(left64(), right64()))
		case 3:
			write64(float64(left32()))
		default:
			return sizeErr()
		}
	case insts.FpuFmax: // size 3: DTOF
		switch op.Size() {
		case 0:
			write32(max(left32(), right32()))
		case 1:
			write64(max(left64(), right64()))
		case 3:
			write32(float32(left64()))
		default:
			return sizeErr()
		}
	case insts.FpuFneg: // size 3: ITOD
		switch op.Size() {
		case 0:
			write32(-left32())
		case 1:
			write64(-left64())
		case 3:
			write64(float64(int64(readRaw(op.RegB()))))
		default:
			return sizeErr()
		}
	case insts.FpuFabs: // size 3: DTOI
		switch op.Size() {
		case 0:
			write32(abs32(left32()))
		case 1:
			write64(abs64(left64()))
		case 3:
			writeRaw(uint64(int64(left64())))
		default:
			return sizeErr()
		}
	case insts.FpuFcmove:
		// Values are only copied; compare and move the raw patterns.
		if readRaw(op.RegB()) != 0 {
			writeRaw(readRaw(op.RegC()))
		}
	case insts.FpuFe:
		switch op.Size() {
		case 0:
			writeRaw(boolToReg(left32() == right32()))
		case 1:
			writeRaw(boolToReg(left64() == right64()))
		default:
			return sizeErr()
		}
	case insts.FpuFen:
		switch op.Size() {
		case 0:
			writeRaw(boolToReg(left32() != right32()))
		case 1:
			writeRaw(boolToReg(left64() != right64()))
		default:
			return sizeErr()
		}
	case insts.FpuFslt:
		switch op.Size() {
		case 0:
			writeRaw(boolToReg(left32() < right32()))
		case 1:
			writeRaw(boolToReg(left64() < right64()))
		default:
			return sizeErr()
		}
	case insts.FpuFmove:
		writeRaw(readRaw(op.RegB()))
	case insts.FpuFcmp:
		switch op.Size() {
		case 0:
			compareF32(&c.regs.Fr, left32(), right32())
		case 1:
			compareF64(&c.regs.Fr, left64(), right64())
		default:
			return sizeErr()
		}
	default:
		return fmt.Errorf("%w: FPU operation %d", ErrOpInvalid, op.Operation())
	}

	return nil
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func abs64(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
