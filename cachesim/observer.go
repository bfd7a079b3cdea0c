package cachesim

import "github.com/altairx-project/altairx-vm/emu"

// CoreObserver feeds a core's memory traffic and fetch stream into
// I/D cache models.
type CoreObserver struct {
	icache *Cache
	dcache *Cache
}

// NewCoreObserver builds the observer and hooks the data side into the
// memory's access observer. The instruction side is fed per cycle via
// ObserveFetch.
func NewCoreObserver(mem *emu.Memory) *CoreObserver {
	obs := &CoreObserver{
		icache: New(ICacheConfig()),
		dcache: New(DCacheConfig()),
	}

	mem.SetObserver(func(write bool, addr uint64, size uint32) {
		if write {
			obs.dcache.Write(addr)
		} else {
			obs.dcache.Read(addr)
		}
	})

	return obs
}

// ObserveFetch records one bundle fetch at the given PC (in slots).
func (o *CoreObserver) ObserveFetch(pc uint32) {
	o.icache.Read(uint64(pc&0x7FFFFFFF) * 4)
}

// ICache returns the instruction-side model.
func (o *CoreObserver) ICache() *Cache { return o.icache }

// DCache returns the data-side model.
func (o *CoreObserver) DCache() *Cache { return o.dcache }
