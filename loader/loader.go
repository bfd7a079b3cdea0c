// Package loader loads AltairX programs and kernel images into a
// core's memory: raw executables, kernel ROM images and ELF binaries.
package loader

import (
	"fmt"
	"os"

	"github.com/altairx-project/altairx-vm/emu"
)

// RawEntryPC is the entry slot for raw executables: slot 4, byte
// offset 16 of WRAM.
const RawEntryPC uint32 = 4

// LoadKernel copies a kernel image into the ROM region.
func LoadKernel(core *emu.Core, path string) error {
	image, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read kernel: %w", err)
	}

	rom, err := core.Memory().Map(emu.ROMBegin)
	if err != nil {
		return err
	}
	if len(image) > len(rom) {
		return fmt.Errorf("kernel image of %d bytes exceeds ROM", len(image))
	}

	copy(rom, image)
	return nil
}

// LoadRaw copies a raw executable into WRAM and sets the entry PC.
func LoadRaw(core *emu.Core, path string) error {
	image, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read program: %w", err)
	}
	return InstallRaw(core, image)
}

// InstallRaw places an in-memory raw executable.
func InstallRaw(core *emu.Core, image []byte) error {
	wram, err := core.Memory().Map(emu.WRAMBegin)
	if err != nil {
		return err
	}
	if len(image) > len(wram) {
		return fmt.Errorf("program of %d bytes exceeds WRAM", len(image))
	}

	copy(wram, image)
	core.Registers().Pc = RawEntryPC
	return nil
}

// LoadProgram loads an executable, preferring ELF and falling back to
// the raw format when the file does not parse as ELF.
func LoadProgram(core *emu.Core, path string) error {
	prog, err := LoadELF(path)
	if err == nil {
		return Install(core, prog)
	}

	return LoadRaw(core, path)
}
