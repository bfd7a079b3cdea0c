package emu

import (
	"encoding/binary"
	"fmt"

	"github.com/altairx-project/altairx-vm/insts"
)

// SPMSize is the per-core scratchpad size in bytes.
const SPMSize = 0x4000

// SyscallEntryPC is the PC (in instruction slots) control transfers to
// when a SYSCALL executes. The high bit is stripped by the fetch path.
const SyscallEntryPC uint32 = 0x80000000

// Core is the AltairX execution core: a single-threaded deterministic
// state machine. One Cycle call executes one bundle of one or two
// opcodes. The core owns its register file and scratchpad exclusively
// and shares the memory by reference.
type Core struct {
	regs RegisterSet
	mem  *Memory
	wram []byte
	spm  [SPMSize]byte

	err            error
	syscallPending bool
}

// NewCore creates a core bound to the given memory. The register file
// starts zeroed; the WRAM view is mapped once and stays stable for the
// core's lifetime.
func NewCore(mem *Memory) *Core {
	wram, _ := mem.Map(WRAMBegin)
	return &Core{
		mem:  mem,
		wram: wram,
	}
}

// Registers returns the architectural register file.
func (c *Core) Registers() *RegisterSet { return &c.regs }

// Memory returns the memory collaborator.
func (c *Core) Memory() *Memory { return c.mem }

// Scratchpad returns the core-private scratchpad bytes.
func (c *Core) Scratchpad() []byte { return c.spm[:] }

// Err returns the latched execution error, nil while the core is
// healthy. Once set, further Cycle calls are no-ops and the PC stays
// on the faulting bundle.
func (c *Core) Err() error { return c.err }

// PendingSyscall reports whether the last executed bundle latched a
// syscall notification.
func (c *Core) PendingSyscall() bool { return c.syscallPending }

// Cycle fetches and executes the next bundle from WRAM and advances
// the PC unless the bundle branched.
func (c *Core) Cycle() {
	if c.err != nil {
		return
	}

	realPC := uint64(c.regs.Pc & 0x7FFFFFFF)
	off := realPC * 4
	if off+8 > uint64(len(c.wram)) {
		c.err = fmt.Errorf("%w: fetch at slot 0x%X", ErrMemoryFault, realPC)
		return
	}

	first := insts.Opcode(binary.LittleEndian.Uint32(c.wram[off:]))
	second := insts.Opcode(binary.LittleEndian.Uint32(c.wram[off+4:]))
	count := c.Execute(first, second)
	if c.err != nil {
		return
	}

	c.regs.Cc += 1
	if first.IsBundle() {
		c.regs.Ic += 2
	} else {
		c.regs.Ic++
	}
	c.regs.Pc += count
}

// Execute runs first and, for a bundle, second. A slot-2 MOVEIX only
// contributes its payload to the slot-1 immediate and is never
// dispatched. Returns 0 when the executed instructions moved the PC,
// otherwise the number of opcodes consumed (1 or 2).
func (c *Core) Execute(first, second insts.Opcode) uint32 {
	oldPC := c.regs.Pc

	var imm24 uint64
	if first.IsBundle() && second.IsMoveix() {
		imm24 = uint64(second.MoveixImm24())
	}

	c.executeUnit(first, 0, imm24)
	if c.err != nil {
		return 0
	}

	if first.IsBundle() && !second.IsMoveix() {
		c.executeUnit(second, 1, imm24)
		if c.err != nil {
			return 0
		}
	}

	if oldPC != c.regs.Pc {
		// The next instruction is wherever we jumped.
		return 0
	}

	if first.IsBundle() {
		return 2
	}
	return 1
}

// Syscall invokes handler if the syscall latch is set, then clears the
// latch. The host calls this after every Cycle; the handler runs at
// most once per executed SYSCALL and may mutate registers and memory.
func (c *Core) Syscall(handler SyscallHandler) {
	if !c.syscallPending {
		return
	}
	c.syscallPending = false
	if handler != nil {
		handler.Handle(c)
	}
}

/*
Issue keys, (slot << 3) | unit:

	UNIT ID |    UNIT NAME    |    Issue key
	        | SLOT 1 | SLOT 2 | SLOT 1 | SLOT 2
	   0    |  ALU-A |  ALU-A |   0    |   8
	   1    |  ALU-B |  ALU-B |   1    |   9
	   2    |  LSU   |  LSU   |   2    |   10
	   3    |  FPU   |  FPU   |   3    |   11
	   4    |  /     |   /    |   /    |   /
	   5    |  EFU   |   CU   |   5    |   13
	   6    |  MDU   |   VU   |   6    |   14
	   7    |  BRU   |   /    |   7    |   /
*/
func (c *Core) executeUnit(op insts.Opcode, slot uint32, imm24 uint64) {
	// Reset the zero registers before doing anything.
	c.regs.Gpi[RegZero] = 0
	c.regs.Gpf[RegZero] = 0

	var err error
	issue := slot<<3 | op.Unit()
	switch issue {
	case 0, 1, 8, 9:
		err = c.executeALU(op, slot, imm24)
	case 2, 10:
		err = c.executeLSU(op, slot, imm24)
	case 3, 11:
		err = c.executeFPU(op, slot)
	case 5:
		err = c.executeEFU(op)
	case 6:
		err = c.executeMDU(op, imm24)
	case 7:
		err = c.executeBRU(op, imm24)
	case 13:
		err = c.executeCU(op)
	case 14:
		err = fmt.Errorf("%w: VU", ErrNotImplemented)
	default:
		err = fmt.Errorf("%w: key %d for opcode 0x%08X", ErrIssueInvalid, issue, uint32(op))
	}

	if err != nil && c.err == nil {
		c.err = err
	}
}
