package emu_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/altairx-project/altairx-vm/emu"
	"github.com/altairx-project/altairx-vm/insts"
)

var _ = Describe("EFU", func() {
	var core *emu.Core

	BeforeEach(func() {
		core = newTestCore()
	})

	run := func(op insts.Opcode) {
		Expect(core.Execute(op, insts.MakeNop())).To(Equal(uint32(1)))
		Expect(core.Err()).NotTo(HaveOccurred())
	}

	efuQ64 := func() float64 { return math.Float64frombits(core.Registers().EfuQ) }
	efuQ32 := func() float32 { return math.Float32frombits(uint32(core.Registers().EfuQ)) }

	It("should divide into EfuQ", func() {
		core.Registers().Gpf[1] = f64reg(7)
		core.Registers().Gpf[2] = f64reg(2)
		run(insts.MakeEfu(insts.EfuFdiv, 1, insts.NoReg, 1, 2))
		Expect(efuQ64()).To(Equal(3.5))
	})

	It("should compute square roots at both sizes", func() {
		core.Registers().Gpf[1] = f64reg(9)
		run(insts.MakeEfu(insts.EfuFsqrt, 1, insts.NoReg, 1, insts.NoReg))
		Expect(efuQ64()).To(Equal(3.0))

		core.Registers().Gpf[1] = f32reg(16)
		run(insts.MakeEfu(insts.EfuFsqrt, 0, insts.NoReg, 1, insts.NoReg))
		Expect(efuQ32()).To(Equal(float32(4)))
	})

	It("should compute atan2 from both operands", func() {
		core.Registers().Gpf[1] = f64reg(1)
		core.Registers().Gpf[2] = f64reg(1)
		run(insts.MakeEfu(insts.EfuFatan2, 1, insts.NoReg, 1, 2))
		Expect(efuQ64()).To(BeNumerically("~", math.Pi/4, 1e-15))
	})

	It("should compute sin, atan and exp", func() {
		core.Registers().Gpf[1] = f64reg(0)
		run(insts.MakeEfu(insts.EfuFsin, 1, insts.NoReg, 1, insts.NoReg))
		Expect(efuQ64()).To(Equal(0.0))

		run(insts.MakeEfu(insts.EfuFatan, 1, insts.NoReg, 1, insts.NoReg))
		Expect(efuQ64()).To(Equal(0.0))

		run(insts.MakeEfu(insts.EfuFexp, 1, insts.NoReg, 1, insts.NoReg))
		Expect(efuQ64()).To(Equal(1.0))
	})

	It("should compute the inverse square root", func() {
		core.Registers().Gpf[1] = f64reg(4)
		run(insts.MakeEfu(insts.EfuInvsqrt, 1, insts.NoReg, 1, insts.NoReg))
		Expect(efuQ64()).To(Equal(0.5))
	})

	It("should decay non-real results to quiet NaN", func() {
		core.Registers().Gpf[1] = f64reg(-1)
		run(insts.MakeEfu(insts.EfuFsqrt, 1, insts.NoReg, 1, insts.NoReg))
		Expect(core.Registers().EfuQ).To(Equal(uint64(0x7FF8000000000000)))
	})

	It("should move between EfuQ and the FP file", func() {
		core.Registers().Gpf[5] = f64reg(1.25)
		run(insts.MakeEfu(insts.EfuSetef, 1, 5, insts.NoReg, insts.NoReg))
		Expect(core.Registers().EfuQ).To(Equal(f64reg(1.25)))

		run(insts.MakeEfu(insts.EfuGetef, 1, 6, insts.NoReg, insts.NoReg))
		Expect(core.Registers().Gpf[6]).To(Equal(f64reg(1.25)))
	})

	It("should reject sizes above f64", func() {
		core.Execute(insts.MakeEfu(insts.EfuFsqrt, 2, insts.NoReg, 1, insts.NoReg), insts.MakeNop())
		Expect(core.Err()).To(MatchError(emu.ErrSizeInvalid))
	})
})
