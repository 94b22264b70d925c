// Package syncpipe provides the one-byte anonymous-pipe barrier used to
// order the tracer's ptrace setup against the target's filter load.
package syncpipe

import (
	"fmt"
	"io"
	"os"

	"seccbox/internal/errs"
)

// Barrier is a single anonymous pipe with close-on-exec set on both ends
// at creation. The target holds the read end; the tracer holds the write
// end. The byte's value carries no meaning — the transfer event is the
// signal.
type Barrier struct {
	read  *os.File
	write *os.File
}

// New creates a fresh pipe. Both ends are close-on-exec by construction
// (os.Pipe uses pipe2(O_CLOEXEC) on Linux); the tracer process carries its
// end across its own exec explicitly via exec.Cmd.ExtraFiles, which
// Go's os/exec package is documented to preserve regardless of the
// close-on-exec bit on the parent's copy of the descriptor.
func New() (*Barrier, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, errs.Wrap("create sync pipe", errs.Kernel, err)
	}
	return &Barrier{read: r, write: w}, nil
}

// ReadFile returns the read end, held by the target (parent role).
func (b *Barrier) ReadFile() *os.File { return b.read }

// WriteFile returns the write end, held by the tracer (child role).
func (b *Barrier) WriteFile() *os.File { return b.write }

// CloseRead closes the read end.
func (b *Barrier) CloseRead() error {
	if b.read == nil {
		return nil
	}
	return b.read.Close()
}

// CloseWrite closes the write end.
func (b *Barrier) CloseWrite() error {
	if b.write == nil {
		return nil
	}
	return b.write.Close()
}

// Close closes both ends.
func (b *Barrier) Close() {
	b.CloseRead()
	b.CloseWrite()
}

// Wait blocks until a byte arrives on the read end. A short read (the
// write end closed without a byte written) means the tracer failed before
// reaching the barrier; it is reported as ErrBarrierBroken so the caller
// aborts before loading any filter.
func Wait(r *os.File) error {
	buf := make([]byte, 1)
	n, err := r.Read(buf)
	if n == 0 && (err == nil || err == io.EOF) {
		return errs.Wrap("wait on sync barrier", errs.Race, errs.ErrBarrierBroken)
	}
	if err != nil {
		return errs.Wrap("wait on sync barrier", errs.Race, err)
	}
	return nil
}

// Signal writes the single barrier byte. Called only after the tracer has
// completed attach, the initial stop, and SETOPTIONS on the target.
func Signal(w *os.File) error {
	_, err := w.Write([]byte{0})
	if err != nil {
		return fmt.Errorf("signal sync barrier: %w", err)
	}
	return nil
}
