package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/altairx-project/altairx-vm/emu"
	"github.com/altairx-project/altairx-vm/insts"
)

var _ = Describe("BRU", func() {
	var core *emu.Core

	BeforeEach(func() {
		core = newTestCore()
		core.Registers().Pc = 100
	})

	// takes reports whether op branches under the given flag register.
	takes := func(op uint32, fr uint32) bool {
		core.Registers().Pc = 100
		core.Registers().Fr = fr
		count := core.Execute(insts.MakeBruCond(op, 5), insts.MakeNop())
		Expect(core.Err()).NotTo(HaveOccurred())
		if count == 0 {
			Expect(core.Registers().Pc).To(Equal(uint32(105)))
			return true
		}
		return false
	}

	Describe("Conditional branches", func() {
		It("should evaluate BEQ as z and not u", func() {
			Expect(takes(insts.BruBeq, emu.ZMask)).To(BeTrue())
			Expect(takes(insts.BruBeq, 0)).To(BeFalse())
			Expect(takes(insts.BruBeq, emu.ZMask|emu.UMask)).To(BeFalse())
		})

		It("should evaluate BNE as not z and not u", func() {
			Expect(takes(insts.BruBne, 0)).To(BeTrue())
			Expect(takes(insts.BruBne, emu.ZMask)).To(BeFalse())
			Expect(takes(insts.BruBne, emu.UMask)).To(BeFalse())
		})

		It("should evaluate BLT as n xor o, not u", func() {
			Expect(takes(insts.BruBlt, emu.NMask)).To(BeTrue())
			Expect(takes(insts.BruBlt, emu.OMask)).To(BeTrue())
			Expect(takes(insts.BruBlt, emu.NMask|emu.OMask)).To(BeFalse())
			Expect(takes(insts.BruBlt, 0)).To(BeFalse())
			Expect(takes(insts.BruBlt, emu.NMask|emu.UMask)).To(BeFalse())
		})

		It("should evaluate BGE as z or n equals o, not u", func() {
			Expect(takes(insts.BruBge, 0)).To(BeTrue())
			Expect(takes(insts.BruBge, emu.NMask|emu.OMask)).To(BeTrue())
			Expect(takes(insts.BruBge, emu.ZMask|emu.NMask)).To(BeTrue())
			Expect(takes(insts.BruBge, emu.NMask)).To(BeFalse())
			Expect(takes(insts.BruBge, emu.UMask)).To(BeFalse())
		})

		It("should evaluate BLTU as c or u", func() {
			Expect(takes(insts.BruBltu, emu.CMask)).To(BeTrue())
			Expect(takes(insts.BruBltu, emu.UMask)).To(BeTrue())
			Expect(takes(insts.BruBltu, 0)).To(BeFalse())
			Expect(takes(insts.BruBltu, emu.ZMask)).To(BeFalse())
		})

		It("should evaluate BGEU as z or not c or u", func() {
			Expect(takes(insts.BruBgeu, 0)).To(BeTrue())
			Expect(takes(insts.BruBgeu, emu.ZMask|emu.CMask)).To(BeTrue())
			Expect(takes(insts.BruBgeu, emu.UMask|emu.CMask)).To(BeTrue())
			Expect(takes(insts.BruBgeu, emu.CMask)).To(BeFalse())
		})

		It("should evaluate BEQU as z or u", func() {
			Expect(takes(insts.BruBequ, emu.ZMask)).To(BeTrue())
			Expect(takes(insts.BruBequ, emu.UMask)).To(BeTrue())
			Expect(takes(insts.BruBequ, 0)).To(BeFalse())
		})

		It("should evaluate BNEU as not z or u", func() {
			Expect(takes(insts.BruBneu, 0)).To(BeTrue())
			Expect(takes(insts.BruBneu, emu.UMask|emu.ZMask)).To(BeTrue())
			Expect(takes(insts.BruBneu, emu.ZMask)).To(BeFalse())
		})

		It("should branch backwards with negative displacements", func() {
			core.Registers().Fr = emu.ZMask
			Expect(core.Execute(insts.MakeBruCond(insts.BruBeq, -10), insts.MakeNop())).To(Equal(uint32(0)))
			Expect(core.Registers().Pc).To(Equal(uint32(90)))
		})
	})

	Describe("Unconditional branches", func() {
		It("should add the 24-bit displacement for BRA", func() {
			Expect(core.Execute(insts.MakeBruRel24(insts.BruBra, -30), insts.MakeNop())).To(Equal(uint32(0)))
			Expect(core.Registers().Pc).To(Equal(uint32(70)))
		})

		It("should link past the bundle for CALLR", func() {
			first, second := insts.MakeBundle(
				insts.MakeBruRel24(insts.BruCallr, 20),
				insts.MakeNop())
			Expect(core.Execute(first, second)).To(Equal(uint32(0)))
			Expect(core.Registers().Pc).To(Equal(uint32(120)))
			Expect(core.Registers().Gpi[emu.RegLR]).To(Equal(uint64(102)))
		})

		It("should link one slot past a single CALLR", func() {
			Expect(core.Execute(insts.MakeBruRel24(insts.BruCallr, 20), insts.MakeNop())).To(Equal(uint32(0)))
			Expect(core.Registers().Gpi[emu.RegLR]).To(Equal(uint64(101)))
		})

		It("should jump to an absolute target", func() {
			Expect(core.Execute(insts.MakeBruAbs24(insts.BruJump, 0x1234), insts.MakeNop())).To(Equal(uint32(0)))
			Expect(core.Registers().Pc).To(Equal(uint32(0x1234)))
		})

		It("should widen absolute targets by OR", func() {
			first, second := insts.MakeBundle(
				insts.MakeBruAbs24(insts.BruCall, 0x345678),
				insts.MakeMoveix(0x12))
			Expect(core.Execute(first, second)).To(Equal(uint32(0)))
			Expect(core.Registers().Pc).To(Equal(uint32(0x12345678)))
			Expect(core.Registers().Gpi[emu.RegLR]).To(Equal(uint64(102)))
		})

		It("should call indirectly through a register", func() {
			core.Registers().Gpi[2] = 0x2000
			Expect(core.Execute(insts.MakeBruIndirect(insts.BruIndirectCall, 5, 2), insts.MakeNop())).To(Equal(uint32(0)))
			Expect(core.Registers().Pc).To(Equal(uint32(0x2000)))
			Expect(core.Registers().Gpi[5]).To(Equal(uint64(101)))
		})

		It("should branch relatively through a register", func() {
			core.Registers().Gpi[2] = ^uint64(0) // -1
			Expect(core.Execute(insts.MakeBruIndirect(insts.BruIndirectCallr, 5, 2), insts.MakeNop())).To(Equal(uint32(0)))
			Expect(core.Registers().Pc).To(Equal(uint32(99)))
			Expect(core.Registers().Gpi[5]).To(Equal(uint64(101)))
		})
	})

	Describe("Branch not taken", func() {
		It("should leave the PC for the dispatcher to advance", func() {
			core.Registers().Fr = 0
			Expect(core.Execute(insts.MakeBruCond(insts.BruBeq, 5), insts.MakeNop())).To(Equal(uint32(1)))
			Expect(core.Registers().Pc).To(Equal(uint32(100)))
		})
	})
})
