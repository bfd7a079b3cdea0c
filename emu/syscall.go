package emu

import (
	"fmt"
	"io"
	"os"
)

// Guest syscall ids. The id arrives in gpi[1], arguments follow in
// gpi[2..4], and the result (when there is one) replaces gpi[1].
const (
	SyscallExit  uint64 = 1 // code
	SyscallRead  uint64 = 2 // handle, buffer, size
	SyscallWrite uint64 = 3 // handle, buffer, size
)

// SyscallHandler is the host side of the syscall handshake. It runs
// synchronously, at most once per executed SYSCALL, and may freely
// read and write the core's registers and memory. The core never
// inspects anything it does.
type SyscallHandler interface {
	Handle(core *Core)
}

// DefaultSyscallHandler implements the exit/read/write guest contract
// against host streams.
type DefaultSyscallHandler struct {
	files *FDTable

	exited   bool
	exitCode int64
	err      error
}

// HandlerOption configures a DefaultSyscallHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// WithStdin sets the guest's standard input.
func WithStdin(r io.Reader) HandlerOption {
	return func(cfg *handlerConfig) { cfg.stdin = r }
}

// WithStdout sets the guest's standard output.
func WithStdout(w io.Writer) HandlerOption {
	return func(cfg *handlerConfig) { cfg.stdout = w }
}

// WithStderr sets the guest's standard error.
func WithStderr(w io.Writer) HandlerOption {
	return func(cfg *handlerConfig) { cfg.stderr = w }
}

// NewDefaultSyscallHandler creates a handler bound to the process
// streams unless options override them.
func NewDefaultSyscallHandler(opts ...HandlerOption) *DefaultSyscallHandler {
	cfg := handlerConfig{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &DefaultSyscallHandler{
		files: NewFDTable(cfg.stdin, cfg.stdout, cfg.stderr),
	}
}

// Files returns the handler's file-handle table.
func (h *DefaultSyscallHandler) Files() *FDTable { return h.files }

// Exited reports whether the guest requested termination.
func (h *DefaultSyscallHandler) Exited() bool { return h.exited }

// ExitCode returns the guest's exit status once Exited is true.
func (h *DefaultSyscallHandler) ExitCode() int64 { return h.exitCode }

// Err returns the first host-side failure, such as a bad file handle.
func (h *DefaultSyscallHandler) Err() error { return h.err }

// Handle dispatches one guest syscall.
func (h *DefaultSyscallHandler) Handle(core *Core) {
	args := core.Registers().Gpi[1:5]

	switch args[0] {
	case SyscallExit:
		h.exited = true
		h.exitCode = int64(args[1])
	case SyscallRead:
		h.read(core, args[1], args[2], args[3])
	case SyscallWrite:
		h.write(core, args[1], args[2], args[3])
	default:
		h.fail(fmt.Errorf("%w: unknown syscall %d", ErrOpInvalid, args[0]))
	}
}

func (h *DefaultSyscallHandler) read(core *Core, handle, addr, size uint64) {
	reader, err := h.files.Reader(handle)
	if err != nil {
		h.fail(err)
		return
	}

	buf := make([]byte, size)
	n, err := reader.Read(buf)
	if err != nil && n == 0 {
		// EOF reads back as zero bytes.
		core.Registers().Gpi[1] = 0
		return
	}

	for i := 0; i < n; i++ {
		if err := core.Memory().Store(addr+uint64(i), 1, uint64(buf[i])); err != nil {
			h.fail(err)
			return
		}
	}
	core.Registers().Gpi[1] = uint64(n)
}

func (h *DefaultSyscallHandler) write(core *Core, handle, addr, size uint64) {
	writer, err := h.files.Writer(handle)
	if err != nil {
		h.fail(err)
		return
	}

	buf := make([]byte, size)
	for i := range buf {
		value, err := core.Memory().Load(addr+uint64(i), 1)
		if err != nil {
			h.fail(err)
			return
		}
		buf[i] = byte(value)
	}

	n, err := writer.Write(buf)
	if err != nil {
		h.fail(err)
		return
	}
	core.Registers().Gpi[1] = uint64(n)
}

func (h *DefaultSyscallHandler) fail(err error) {
	if h.err == nil {
		h.err = err
	}
}
