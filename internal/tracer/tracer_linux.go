//go:build linux

// Package tracer implements the ptrace choreography that suspends seccomp
// enforcement on a target process long enough for it to load a filter,
// then re-arms the filter at the instant the target's exec takes effect.
package tracer

import (
	"os"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"seccbox/internal/errs"
	"seccbox/internal/syncpipe"
)

// Kernel ptrace option bits. syscall.PTRACE_O_TRACEEXEC and
// unix.PTRACE_O_EXITKILL are exported by the standard library and
// golang.org/x/sys respectively; PTRACE_O_SUSPEND_SECCOMP is a newer
// (5.3+) bit neither package defines yet, so it is named here the way
// low-level ptrace code in this neighborhood names option bits the
// binding libraries haven't caught up with (see linux/ptrace.h).
const ptraceOSuspendSeccomp = 0x00200000

const (
	attachOptions = syscall.PTRACE_O_TRACEEXEC | ptraceOSuspendSeccomp | unix.PTRACE_O_EXITKILL
	rearmOptions  = syscall.PTRACE_O_TRACEEXEC
)

// Run executes the full choreographer state machine against targetPID:
// attach, wait for the initial stop, set options, signal the barrier,
// wait for the exec-stop, re-arm, detach. If the target exits or is
// signalled before the exec-stop, Run logs it and returns nil without
// re-arming. barrierWrite is the tracer's end of the one-byte pipe; Run
// writes to it exactly once, right after SETOPTIONS succeeds.
func Run(targetPID int, barrierWrite *os.File, log *logrus.Logger) error {
	if err := unix.Prctl(unix.PR_SET_PDEATHSIG, uintptr(unix.SIGKILL), 0, 0, 0); err != nil {
		log.WithError(err).Warn("failed to set PDEATHSIG; orphaned tracer will not self-terminate")
	}

	if err := syscall.PtraceAttach(targetPID); err != nil {
		return errs.Wrap("ptrace attach", errs.Kernel, err)
	}

	var ws syscall.WaitStatus
	if _, err := syscall.Wait4(targetPID, &ws, 0, nil); err != nil {
		return errs.Wrap("wait for initial stop", errs.Kernel, err)
	}

	if err := syscall.PtraceSetOptions(targetPID, attachOptions); err != nil {
		return errs.Wrap("ptrace setoptions (suspend seccomp)", errs.Kernel, err)
	}

	if err := syncpipe.Signal(barrierWrite); err != nil {
		return errs.Wrap("signal sync barrier", errs.Race, err)
	}

	reachedExec, err := waitForExecStop(targetPID, ws, log)
	if err != nil {
		return err
	}
	if !reachedExec {
		// The target terminated before its exec; there is nothing left to
		// re-arm or detach from.
		return nil
	}

	if err := syscall.PtraceSetOptions(targetPID, rearmOptions); err != nil {
		return errs.Wrap("ptrace setoptions (re-arm)", errs.Kernel, err)
	}

	if err := syscall.PtraceDetach(targetPID); err != nil {
		return errs.Wrap("ptrace detach", errs.Kernel, err)
	}

	return nil
}

// waitForExecStop processes wait statuses until the target either
// terminates or hits the commit-point exec-event stop. ws is the status
// already in hand from the caller's initial waitpid (the attach-induced
// stop, still parked since nothing has continued it yet); any other stop
// — including that first one — is resumed with PTRACE_CONT before the
// next waitpid, the same way the reference implementation feeds its
// initial waitpid result into the first iteration of its wait loop rather
// than discarding it. It reports true when the exec-event stop was
// reached and false when the target exited or was signalled first.
func waitForExecStop(targetPID int, ws syscall.WaitStatus, log *logrus.Logger) (bool, error) {
	for {
		switch {
		case ws.Exited():
			log.WithField("code", ws.ExitStatus()).Info("target exited before reaching exec")
			return false, nil
		case ws.Signaled():
			log.WithField("signal", ws.Signal()).Info("target was signalled before reaching exec")
			return false, nil
		case ws.Stopped():
			sig := ws.StopSignal()
			if sig == syscall.SIGTRAP && ws.TrapCause() == syscall.PTRACE_EVENT_EXEC {
				return true, nil
			}
			if err := syscall.PtraceCont(targetPID, 0); err != nil {
				return false, errs.Wrap("ptrace cont", errs.Kernel, err)
			}
		default:
			log.Warn("unexpected wait status, ignoring")
		}

		if _, err := syscall.Wait4(targetPID, &ws, 0, nil); err != nil {
			return false, errs.Wrap("wait for exec stop", errs.Kernel, err)
		}
	}
}
