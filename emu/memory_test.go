package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/altairx-project/altairx-vm/emu"
)

var _ = Describe("Memory", func() {
	var mem *emu.Memory

	BeforeEach(func() {
		mem = emu.NewMemory(1<<16, 1<<12, 1<<12)
	})

	Describe("Load and Store", func() {
		It("should round-trip all access sizes little-endian", func() {
			Expect(mem.Store(0x100, 8, 0x1122334455667788)).To(Succeed())

			value, err := mem.Load(0x100, 8)
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(uint64(0x1122334455667788)))

			value, err = mem.Load(0x100, 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(uint64(0x55667788)))

			value, err = mem.Load(0x100, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(uint64(0x7788)))

			value, err = mem.Load(0x100, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(uint64(0x88)))
		})

		It("should store into each region by base address", func() {
			for _, base := range []uint64{emu.WRAMBegin, emu.ROMBegin, emu.SPMTBegin, emu.SPM2Begin} {
				Expect(mem.Store(base+8, 4, 0xABCD)).To(Succeed())
				value, err := mem.Load(base+8, 4)
				Expect(err).NotTo(HaveOccurred())
				Expect(value).To(Equal(uint64(0xABCD)))
			}
		})

		It("should reject access sizes outside 1/2/4/8", func() {
			Expect(mem.Store(0, 3, 0)).To(MatchError(emu.ErrMemoryFault))
			_, err := mem.Load(0, 0)
			Expect(err).To(MatchError(emu.ErrMemoryFault))
		})

		It("should reject out-of-range accesses", func() {
			_, err := mem.Load(uint64(1<<16)-4, 8)
			Expect(err).To(MatchError(emu.ErrMemoryFault))
			Expect(mem.Store(emu.SPMTBegin+1<<12, 1, 0)).To(MatchError(emu.ErrMemoryFault))
		})
	})

	Describe("Map", func() {
		It("should expose a stable view aliased with Load/Store", func() {
			wram, err := mem.Map(emu.WRAMBegin)
			Expect(err).NotTo(HaveOccurred())
			Expect(wram).To(HaveLen(1 << 16))

			Expect(mem.Store(0x10, 1, 0x5A)).To(Succeed())
			Expect(wram[0x10]).To(Equal(byte(0x5A)))

			wram[0x11] = 0xA5
			value, err := mem.Load(0x11, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(uint64(0xA5)))
		})

		It("should reject bases that are not region starts", func() {
			_, err := mem.Map(0x1234)
			Expect(err).To(MatchError(emu.ErrMemoryFault))
		})
	})

	Describe("Observer", func() {
		It("should report every load and store", func() {
			type access struct {
				write bool
				addr  uint64
				size  uint32
			}
			var seen []access
			mem.SetObserver(func(write bool, addr uint64, size uint32) {
				seen = append(seen, access{write, addr, size})
			})

			Expect(mem.Store(0x20, 4, 1)).To(Succeed())
			_, err := mem.Load(0x20, 2)
			Expect(err).NotTo(HaveOccurred())

			Expect(seen).To(Equal([]access{
				{true, 0x20, 4},
				{false, 0x20, 2},
			}))
		})

		It("should not fire for faulting accesses", func() {
			fired := false
			mem.SetObserver(func(bool, uint64, uint32) { fired = true })
			_, err := mem.Load(uint64(1<<16), 8)
			Expect(err).To(HaveOccurred())
			Expect(fired).To(BeFalse())
		})
	})
})
