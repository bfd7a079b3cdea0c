package cachesim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/altairx-project/altairx-vm/cachesim"
	"github.com/altairx-project/altairx-vm/emu"
)

var _ = Describe("Cache", func() {
	var cache *cachesim.Cache

	BeforeEach(func() {
		cache = cachesim.New(cachesim.Config{
			Size:          1024,
			Associativity: 2,
			BlockSize:     64,
		})
	})

	Describe("Read", func() {
		It("should miss cold and hit warm", func() {
			Expect(cache.Read(0x100).Hit).To(BeFalse())
			Expect(cache.Read(0x100).Hit).To(BeTrue())
			Expect(cache.Read(0x104).Hit).To(BeTrue(), "same line")

			stats := cache.Stats()
			Expect(stats.Reads).To(Equal(uint64(3)))
			Expect(stats.Misses).To(Equal(uint64(1)))
			Expect(stats.Hits).To(Equal(uint64(2)))
		})

		It("should evict the LRU way when a set overflows", func() {
			// 1024/(2*64) = 8 sets; these three block addresses land in set 0.
			Expect(cache.Read(0x000).Hit).To(BeFalse())
			Expect(cache.Read(0x200).Hit).To(BeFalse())

			result := cache.Read(0x400)
			Expect(result.Hit).To(BeFalse())
			Expect(result.Evicted).To(BeTrue())
			Expect(result.EvictedAddr).To(Equal(uint64(0x000)))
			Expect(cache.Stats().Evictions).To(Equal(uint64(1)))

			Expect(cache.Read(0x200).Hit).To(BeTrue(), "most recent ways survive")
			Expect(cache.Read(0x000).Hit).To(BeFalse())
		})
	})

	Describe("Write", func() {
		It("should allocate on write miss and count a writeback on dirty eviction", func() {
			Expect(cache.Write(0x000).Hit).To(BeFalse())
			Expect(cache.Write(0x000).Hit).To(BeTrue())

			cache.Read(0x200)
			cache.Read(0x400) // evicts the dirty 0x000 line

			stats := cache.Stats()
			Expect(stats.Evictions).To(Equal(uint64(1)))
			Expect(stats.Writebacks).To(Equal(uint64(1)))
		})
	})

	Describe("Invalidate and Reset", func() {
		It("should force a miss after invalidation", func() {
			cache.Read(0x100)
			cache.Invalidate(0x104)
			Expect(cache.Read(0x100).Hit).To(BeFalse())
		})

		It("should clear lines and statistics on reset", func() {
			cache.Read(0x100)
			cache.Reset()
			Expect(cache.Stats()).To(Equal(cachesim.Statistics{}))
			Expect(cache.Read(0x100).Hit).To(BeFalse())
		})
	})

	Describe("Geometries", func() {
		It("should expose the architectural I/D shapes", func() {
			icfg := cachesim.ICacheConfig()
			Expect(icfg.Size).To(Equal(64 * 1024))
			Expect(icfg.Associativity).To(Equal(4))

			dcfg := cachesim.DCacheConfig()
			Expect(dcfg.Size).To(Equal(32 * 1024))
			Expect(dcfg.Associativity).To(Equal(4))
		})
	})
})

var _ = Describe("CoreObserver", func() {
	It("should count data traffic through the memory observer", func() {
		mem := emu.NewMemory(1<<16, 1<<12, 1<<12)
		observer := cachesim.NewCoreObserver(mem)

		Expect(mem.Store(0x40, 4, 1)).To(Succeed())
		_, err := mem.Load(0x40, 4)
		Expect(err).NotTo(HaveOccurred())

		stats := observer.DCache().Stats()
		Expect(stats.Writes).To(Equal(uint64(1)))
		Expect(stats.Reads).To(Equal(uint64(1)))
		Expect(stats.Hits).To(Equal(uint64(1)))
		Expect(stats.Misses).To(Equal(uint64(1)))
	})

	It("should count fetches on the instruction side", func() {
		mem := emu.NewMemory(1<<16, 1<<12, 1<<12)
		observer := cachesim.NewCoreObserver(mem)

		observer.ObserveFetch(0)
		observer.ObserveFetch(1)
		observer.ObserveFetch(0x80000002)

		stats := observer.ICache().Stats()
		Expect(stats.Reads).To(Equal(uint64(3)))
		Expect(stats.Misses).To(Equal(uint64(1)))
		Expect(stats.Hits).To(Equal(uint64(2)))
	})
})
