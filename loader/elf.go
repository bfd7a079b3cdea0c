package loader

import (
	"bytes"
	"debug/elf"
	"fmt"
	"io"

	"github.com/altairx-project/altairx-vm/emu"
)

// Segment is a loadable segment from an ELF binary.
type Segment struct {
	// VirtAddr is the load address inside WRAM.
	VirtAddr uint64
	// Data holds the segment contents from the file.
	Data []byte
	// MemSize may exceed len(Data); the gap is BSS and stays zero.
	MemSize uint64
}

// Program is a parsed executable ready to install into a core.
type Program struct {
	// EntryPC is the entry point in instruction slots.
	EntryPC uint32
	// Segments are the PT_LOAD segments in file order.
	Segments []Segment
}

// LoadELF parses an AltairX ELF binary. The profile is little-endian
// 64-bit; the machine field is not checked because the architecture
// has no assigned value.
func LoadELF(path string) (*Program, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ELF file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readProgram(f)
}

// ParseELF parses an ELF binary held in memory.
func ParseELF(image []byte) (*Program, error) {
	f, err := elf.NewFile(bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ELF image: %w", err)
	}

	return readProgram(f)
}

func readProgram(f *elf.File) (*Program, error) {
	if f.Class != elf.ELFCLASS64 {
		return nil, fmt.Errorf("not a 64-bit ELF file")
	}
	if f.Data != elf.ELFDATA2LSB {
		return nil, fmt.Errorf("not a little-endian ELF file")
	}

	prog := &Program{
		EntryPC: uint32(f.Entry / 4),
	}

	for _, phdr := range f.Progs {
		if phdr.Type != elf.PT_LOAD {
			continue
		}

		data := make([]byte, phdr.Filesz)
		if phdr.Filesz > 0 {
			n, err := phdr.ReadAt(data, 0)
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("failed to read segment at 0x%x: %w", phdr.Vaddr, err)
			}
			if uint64(n) != phdr.Filesz {
				return nil, fmt.Errorf("short read for segment at 0x%x: got %d bytes, expected %d",
					phdr.Vaddr, n, phdr.Filesz)
			}
		}

		prog.Segments = append(prog.Segments, Segment{
			VirtAddr: phdr.Vaddr,
			Data:     data,
			MemSize:  phdr.Memsz,
		})
	}

	return prog, nil
}

// Install copies a parsed program into the core's WRAM and sets the
// entry PC.
func Install(core *emu.Core, prog *Program) error {
	wram, err := core.Memory().Map(emu.WRAMBegin)
	if err != nil {
		return err
	}

	for _, seg := range prog.Segments {
		end := seg.VirtAddr + seg.MemSize
		if end > uint64(len(wram)) || end < seg.VirtAddr {
			return fmt.Errorf("segment at 0x%x of %d bytes exceeds WRAM", seg.VirtAddr, seg.MemSize)
		}
		copy(wram[seg.VirtAddr:], seg.Data)
		for i := seg.VirtAddr + uint64(len(seg.Data)); i < end; i++ {
			wram[i] = 0
		}
	}

	core.Registers().Pc = prog.EntryPC
	return nil
}
