// Package main provides the AltairX VM command line runner.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"github.com/altairx-project/altairx-vm/cachesim"
	"github.com/altairx-project/altairx-vm/emu"
	"github.com/altairx-project/altairx-vm/insts"
	"github.com/altairx-project/altairx-vm/loader"
)

var (
	kernelPath = flag.String("kernel", "", "Path to a kernel image loaded into ROM")
	wramSize   = flag.Uint64("wram", 8, "WRAM size in MiB")
	spmSize    = flag.Uint64("spm", 16, "Scratchpad region sizes in KiB")
	trace      = flag.Bool("trace", false, "Disassemble each bundle as it executes")
	cacheStats = flag.Bool("cachestats", false, "Report I/D cache statistics")
	maxCycles  = flag.Uint64("maxcycles", 0, "Stop after this many cycles (0 = no limit)")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: axvm [options] <program>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	os.Exit(run(flag.Arg(0)))
}

func run(programPath string) int {
	memory := emu.NewMemory(*wramSize<<20, *spmSize<<10, *spmSize<<10)
	core := emu.NewCore(memory)

	var observer *cachesim.CoreObserver
	if *cacheStats {
		observer = cachesim.NewCoreObserver(memory)
	}

	if *kernelPath != "" {
		if err := loader.LoadKernel(core, *kernelPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading kernel: %v\n", err)
			return 1
		}
	}

	if err := loader.LoadProgram(core, programPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		return 1
	}

	if *verbose {
		fmt.Printf("Loaded: %s\n", programPath)
		fmt.Printf("Entry PC: 0x%X\n", core.Registers().Pc)
	}

	handler := emu.NewDefaultSyscallHandler()

	wram, _ := memory.Map(emu.WRAMBegin)
	for core.Err() == nil && !handler.Exited() && handler.Err() == nil {
		if *maxCycles > 0 && uint64(core.Registers().Cc) >= *maxCycles {
			fmt.Fprintf(os.Stderr, "Cycle limit reached at PC 0x%X\n", core.Registers().Pc)
			break
		}

		pc := core.Registers().Pc
		if observer != nil {
			observer.ObserveFetch(pc)
		}
		if *trace {
			traceBundle(wram, pc)
		}

		core.Cycle()
		core.Syscall(handler)
	}

	if err := core.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Execution error at PC 0x%X: %v\n", core.Registers().Pc, err)
		return 1
	}
	if err := handler.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Host error: %v\n", err)
		return 1
	}

	if *verbose {
		fmt.Printf("\nCycles: %d\n", core.Registers().Cc)
		fmt.Printf("Instructions: %d\n", core.Registers().Ic)
	}
	if observer != nil {
		printCacheStats("I-cache", observer.ICache().Stats())
		printCacheStats("D-cache", observer.DCache().Stats())
	}

	return int(handler.ExitCode())
}

func traceBundle(wram []byte, pc uint32) {
	off := uint64(pc&0x7FFFFFFF) * 4
	if off+8 > uint64(len(wram)) {
		return
	}

	first := insts.Opcode(binary.LittleEndian.Uint32(wram[off:]))
	second := insts.Opcode(binary.LittleEndian.Uint32(wram[off+4:]))

	slot1, slot2 := insts.DisassembleBundle(first, second)
	if slot2 != "" {
		fmt.Fprintf(os.Stderr, "%08X:\t%s ;; %s\n", pc, slot1, slot2)
	} else {
		fmt.Fprintf(os.Stderr, "%08X:\t%s\n", pc, slot1)
	}
}

func printCacheStats(name string, stats cachesim.Statistics) {
	total := stats.Hits + stats.Misses
	ratio := 0.0
	if total > 0 {
		ratio = float64(stats.Hits) / float64(total) * 100
	}
	fmt.Printf("%s: %d accesses, %d hits (%.1f%%), %d evictions\n",
		name, total, stats.Hits, ratio, stats.Evictions)
}
