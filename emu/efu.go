package emu

import (
	"fmt"
	"math"

	"github.com/altairx-project/altairx-vm/insts"
)

// executeEFU runs one extended-float opcode. The EFU is single-issue
// and writes its transcendental results to the dedicated EfuQ register;
// SETEF/GETEF move between EfuQ and the FP file. Results canonicalise
// the same way FPU writebacks do.
func (c *Core) executeEFU(op insts.Opcode) error {
	write32 := func(value float32) {
		if !isRealF32(value) {
			c.regs.EfuQ = uint64(quietNaN32)
			return
		}
		c.regs.EfuQ = f32ToReg(value)
	}

	write64 := func(value float64) {
		if !isRealF64(value) {
			c.regs.EfuQ = quietNaN64
			return
		}
		c.regs.EfuQ = f64ToReg(value)
	}

	left32 := func() float32 { return f32FromReg(c.regs.Gpf[op.RegB()]) }
	right32 := func() float32 { return f32FromReg(c.regs.Gpf[op.RegC()]) }
	left64 := func() float64 { return f64FromReg(c.regs.Gpf[op.RegB()]) }
	right64 := func() float64 { return f64FromReg(c.regs.Gpf[op.RegC()]) }

	// unary applies fn at the operation size; the f32 case evaluates
	// fn in float64 and rounds the result to f32.
	unary := func(fn func(float64) float64) error {
		switch op.Size() {
		case 0:
			write32(float32(fn(float64(left32()))))
		case 1:
			write64(fn(left64()))
		default:
			return fmt.Errorf("%w: EFU size %d", ErrSizeInvalid, op.Size())
		}
		return nil
	}

	switch op.Operation() {
	case insts.EfuFdiv:
		switch op.Size() {
		case 0:
			write32(left32() / right32())
		case 1:
			write64(left64() / right64())
		default:
			return fmt.Errorf("%w: EFU size %d", ErrSizeInvalid, op.Size())
		}
	case insts.EfuFatan2:
		switch op.Size() {
		case 0:
			write32(float32(math.Atan2(float64(left32()), float64(right32()))))
		case 1:
			write64(math.Atan2(left64(), right64()))
		default:
			return fmt.Errorf("%w: EFU size %d", ErrSizeInvalid, op.Size())
		}
	case insts.EfuFsqrt:
		return unary(math.Sqrt)
	case insts.EfuFsin:
		return unary(math.Sin)
	case insts.EfuFatan:
		return unary(math.Atan)
	case insts.EfuFexp:
		return unary(math.Exp)
	case insts.EfuInvsqrt:
		return unary(func(x float64) float64 { return 1 / math.Sqrt(x) })
	case insts.EfuSetef:
		c.regs.EfuQ = c.regs.Gpf[op.RegA()]
	case insts.EfuGetef:
		c.regs.Gpf[op.RegA()] = c.regs.EfuQ
	default:
		return fmt.Errorf("%w: EFU operation %d", ErrOpInvalid, op.Operation())
	}

	return nil
}
