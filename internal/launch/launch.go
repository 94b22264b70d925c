// Package launch wires the policy parser, filter builder, synchronisation
// barrier, and ptrace choreographer together into the two-process
// protocol described by the launcher: the process the user invokes plays
// the target role, and re-execs itself into the tracer role so that role
// never has to run inside a raw-forked, not-yet-exec'd copy of the Go
// runtime.
package launch

import (
	"os"
	"os/exec"
	"strconv"

	"golang.org/x/sys/unix"

	"seccbox/internal/diag"
	"seccbox/internal/envutil"
	"seccbox/internal/errs"
	"seccbox/internal/policy"
	"seccbox/internal/seccompfilter"
	"seccbox/internal/syncpipe"
	"seccbox/internal/tracer"
)

// TracerArg is the hidden subcommand a re-exec'd instance of the binary
// dispatches to. It is checked before any flag-parsing library runs, the
// way the teacher's own hidden internal re-exec mode is dispatched.
const TracerArg = "--seccbox-tracer"

// Target runs the target role: the process the user invoked. It spawns a
// tracer (a re-exec of the same binary), blocks on the synchronisation
// barrier, then lowers privileges, loads the compiled filter, strips the
// policy environment variables, and execs into the target program. On
// success this function never returns — the process image has been
// replaced. On failure it returns a *errs.LaunchError describing what
// went wrong, and the target program is never exec'd.
func Target(targetPath string, targetArgs []string, debug bool) error {
	log := diag.New(debug)

	env := os.Environ()
	pol, err := policy.Parse(env)
	if err != nil {
		return err
	}

	self, err := os.Executable()
	if err != nil {
		return errs.Wrap("resolve own executable path", errs.Internal, err)
	}

	barrier, err := syncpipe.New()
	if err != nil {
		return err
	}
	defer barrier.Close()

	tracerCmd := exec.Command(self, TracerArg, strconv.Itoa(os.Getpid()), strconv.FormatBool(debug))
	tracerCmd.ExtraFiles = []*os.File{barrier.WriteFile()}
	tracerCmd.Stderr = os.Stderr
	if err := tracerCmd.Start(); err != nil {
		return errs.Wrap("start tracer", errs.Kernel, err)
	}

	// Yama's restricted ptrace_scope would otherwise refuse the tracer's
	// ATTACH even though it is a direct child; nominate it explicitly.
	// EINVAL means Yama is not loaded at all, which is tolerated; any other
	// error is fatal.
	if err := unix.Prctl(unix.PR_SET_PTRACER, uintptr(tracerCmd.Process.Pid), 0, 0, 0); err != nil && err != unix.EINVAL {
		return errs.Wrap("prctl ptracer", errs.Kernel, err)
	}

	// The write end now belongs to the tracer's ExtraFiles copy; close our
	// reference so a failed tracer's exit closes the pipe for real.
	if err := barrier.CloseWrite(); err != nil {
		log.WithError(err).Debug("closing local copy of barrier write end")
	}

	if err := syncpipe.Wait(barrier.ReadFile()); err != nil {
		return err
	}

	// Ordering matters: NO_NEW_PRIVS must not move earlier than the
	// barrier wait, so that any failure here is diagnosable while seccomp
	// is still suspended rather than silently enforced against us.
	if err := unix.Prctl(unix.PR_SET_NO_NEW_PRIVS, 1, 0, 0, 0); err != nil {
		return errs.Wrap("prctl no_new_privs", errs.Kernel, err)
	}

	if err := seccompfilter.Load(pol, log); err != nil {
		return err
	}

	newEnv := envutil.Strip(env, policy.EnvVars())

	execPath, err := exec.LookPath(targetPath)
	if err != nil {
		return errs.Wrap("resolve target path", errs.Configuration, err)
	}

	argv := append([]string{targetPath}, targetArgs...)
	if err := unix.Exec(execPath, argv, newEnv); err != nil {
		return errs.Wrap("exec target", errs.Kernel, err)
	}

	panic("unreachable: exec replaced the process image")
}

// Tracer runs the tracer role, dispatched into by a re-exec'd instance of
// the binary. fd 3 is the barrier write end, inherited via ExtraFiles.
func Tracer(targetPID int, debug bool) error {
	log := diag.New(debug)
	barrierWrite := os.NewFile(uintptr(3), "seccbox-barrier-write")
	defer barrierWrite.Close()

	if err := tracer.Run(targetPID, barrierWrite, log); err != nil {
		return err
	}
	return nil
}
