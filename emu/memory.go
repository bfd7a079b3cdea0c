package emu

import (
	"encoding/binary"
	"fmt"
)

// Memory region base addresses. All regions are byte-addressable and
// little-endian.
const (
	WRAMBegin uint64 = 0x00000000 // working RAM, also the fetch window
	ROMBegin  uint64 = 0x10000000 // kernel image
	SPMTBegin uint64 = 0x20000000 // scratchpad memory (texture)
	SPM2Begin uint64 = 0x30000000 // scratchpad memory 2
)

// DefaultROMSize is the size of the kernel region.
const DefaultROMSize = 1 << 20

// Observer receives every Load/Store the core performs. Used by the
// cache model and by tracing front-ends.
type Observer func(write bool, addr uint64, size uint32)

// Memory is the flat memory collaborator: typed load/store by address
// and size, plus a stable contiguous view per region for the fetch
// path. It owns no core state and carries no locking; the core is
// single-threaded.
type Memory struct {
	wram []byte
	rom  []byte
	spmt []byte
	spm2 []byte

	observer Observer
}

// NewMemory allocates a memory with the given region sizes in bytes.
func NewMemory(wramSize, spmtSize, spm2Size uint64) *Memory {
	return &Memory{
		wram: make([]byte, wramSize),
		rom:  make([]byte, DefaultROMSize),
		spmt: make([]byte, spmtSize),
		spm2: make([]byte, spm2Size),
	}
}

// SetObserver registers a load/store observer. A nil observer disables
// observation.
func (m *Memory) SetObserver(obs Observer) {
	m.observer = obs
}

// region resolves an address to its backing slice and offset.
func (m *Memory) region(addr uint64) ([]byte, uint64) {
	switch {
	case addr >= SPM2Begin:
		return m.spm2, addr - SPM2Begin
	case addr >= SPMTBegin:
		return m.spmt, addr - SPMTBegin
	case addr >= ROMBegin:
		return m.rom, addr - ROMBegin
	default:
		return m.wram, addr - WRAMBegin
	}
}

// Map returns the contiguous byte view of the region starting at base.
// The view is stable for the memory's lifetime; the core fetches
// bundles through the WRAM view without going through Load.
func (m *Memory) Map(base uint64) ([]byte, error) {
	switch base {
	case WRAMBegin:
		return m.wram, nil
	case ROMBegin:
		return m.rom, nil
	case SPMTBegin:
		return m.spmt, nil
	case SPM2Begin:
		return m.spm2, nil
	}
	return nil, fmt.Errorf("%w: no region at 0x%X", ErrMemoryFault, base)
}

// Load reads a size-byte little-endian value, zero-extended.
// size must be one of 1, 2, 4, 8.
func (m *Memory) Load(addr uint64, size uint32) (uint64, error) {
	buf, off := m.region(addr)
	if err := checkAccess(buf, off, addr, size); err != nil {
		return 0, err
	}
	if m.observer != nil {
		m.observer(false, addr, size)
	}

	switch size {
	case 1:
		return uint64(buf[off]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(buf[off:])), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(buf[off:])), nil
	default:
		return binary.LittleEndian.Uint64(buf[off:]), nil
	}
}

// Store writes the low size bytes of val little-endian.
// size must be one of 1, 2, 4, 8.
func (m *Memory) Store(addr uint64, size uint32, val uint64) error {
	buf, off := m.region(addr)
	if err := checkAccess(buf, off, addr, size); err != nil {
		return err
	}
	if m.observer != nil {
		m.observer(true, addr, size)
	}

	switch size {
	case 1:
		buf[off] = byte(val)
	case 2:
		binary.LittleEndian.PutUint16(buf[off:], uint16(val))
	case 4:
		binary.LittleEndian.PutUint32(buf[off:], uint32(val))
	default:
		binary.LittleEndian.PutUint64(buf[off:], val)
	}
	return nil
}

func checkAccess(buf []byte, off, addr uint64, size uint32) error {
	switch size {
	case 1, 2, 4, 8:
	default:
		return fmt.Errorf("%w: access size %d at 0x%X", ErrMemoryFault, size, addr)
	}
	if off+uint64(size) > uint64(len(buf)) {
		return fmt.Errorf("%w: 0x%X+%d out of range", ErrMemoryFault, addr, size)
	}
	return nil
}
