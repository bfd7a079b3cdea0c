package emu

import "errors"

// Execution error kinds. All abort the current bundle; the core
// latches the first one and the driver is expected to stop cycling.
var (
	// ErrIssueInvalid reports an issue key with no unit behind it.
	ErrIssueInvalid = errors.New("invalid issue")

	// ErrOpInvalid reports an unknown opcode within a unit.
	ErrOpInvalid = errors.New("invalid operation")

	// ErrSizeInvalid reports a size code the operation does not support.
	ErrSizeInvalid = errors.New("invalid operand size")

	// ErrNotImplemented reports a reserved opcode family.
	ErrNotImplemented = errors.New("operation not implemented")

	// ErrMemoryFault reports a failed load or store.
	ErrMemoryFault = errors.New("memory fault")

	// ErrBadFileHandle reports a host syscall with an unmapped handle.
	ErrBadFileHandle = errors.New("bad file handle")
)
