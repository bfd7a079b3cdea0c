package emu

import (
	"fmt"

	"github.com/altairx-project/altairx-vm/insts"
)

// executeCU runs one control opcode (slot 2 only). SYSCALL saves the
// return PC to IR, redirects to the syscall entry and latches the
// notification the host consumes through Syscall; RETI comes back.
func (c *Core) executeCU(op insts.Opcode) error {
	switch op.Operation() {
	case insts.CuSyscall:
		// CU only ever issues in slot 2, so the bundle is two slots.
		c.regs.Ir = c.regs.Pc + 2
		c.regs.Pc = SyscallEntryPC
		c.syscallPending = true
	case insts.CuReti:
		c.regs.Pc = c.regs.Ir
	case insts.CuGetir, insts.CuSetfr, insts.CuMmu, insts.CuSync:
		return fmt.Errorf("%w: CU operation %d", ErrNotImplemented, op.Operation())
	default:
		return fmt.Errorf("%w: CU operation %d", ErrOpInvalid, op.Operation())
	}

	return nil
}
