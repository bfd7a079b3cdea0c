package emu

import (
	"fmt"
	"io"
)

// FileHandle is a guest file handle. Handles 0, 1 and 2 are the
// standard streams; nothing above them is allocated by the default
// host.
type FileHandle = uint64

// Standard stream handles.
const (
	HandleStdin  FileHandle = 0
	HandleStdout FileHandle = 1
	HandleStderr FileHandle = 2
)

// fdEntry is one open handle. Streams carry whichever side they
// support; the other stays nil.
type fdEntry struct {
	reader io.Reader
	writer io.Writer
}

// FDTable maps guest file handles to host streams for the syscall
// host.
type FDTable struct {
	entries map[FileHandle]*fdEntry
	next    FileHandle
}

// NewFDTable creates a table with the standard streams bound.
func NewFDTable(stdin io.Reader, stdout, stderr io.Writer) *FDTable {
	return &FDTable{
		entries: map[FileHandle]*fdEntry{
			HandleStdin:  {reader: stdin},
			HandleStdout: {writer: stdout},
			HandleStderr: {writer: stderr},
		},
		next: 3,
	}
}

// Reader resolves a handle for reading.
func (t *FDTable) Reader(handle FileHandle) (io.Reader, error) {
	entry, ok := t.entries[handle]
	if !ok || entry.reader == nil {
		return nil, fmt.Errorf("%w: %d not readable", ErrBadFileHandle, handle)
	}
	return entry.reader, nil
}

// Writer resolves a handle for writing.
func (t *FDTable) Writer(handle FileHandle) (io.Writer, error) {
	entry, ok := t.entries[handle]
	if !ok || entry.writer == nil {
		return nil, fmt.Errorf("%w: %d not writable", ErrBadFileHandle, handle)
	}
	return entry.writer, nil
}

// Bind installs a stream under a fresh handle and returns it.
func (t *FDTable) Bind(reader io.Reader, writer io.Writer) FileHandle {
	handle := t.next
	t.next++
	t.entries[handle] = &fdEntry{reader: reader, writer: writer}
	return handle
}

// Close drops a handle. Closing a standard stream only unbinds it.
func (t *FDTable) Close(handle FileHandle) error {
	if _, ok := t.entries[handle]; !ok {
		return fmt.Errorf("%w: %d not open", ErrBadFileHandle, handle)
	}
	delete(t.entries, handle)
	return nil
}
