// Package errs provides the typed error taxonomy used across the launcher.
package errs

import "errors"

// Kind classifies a launch failure the way the error-handling design in
// the launcher's taxonomy table expects callers to branch on.
type Kind int

const (
	// Internal covers bugs: states the taxonomy does not otherwise name.
	Internal Kind = iota
	// Configuration covers bad policy input: unknown syscall names,
	// over-length names.
	Configuration
	// Environment covers failures mutating the process environment.
	Environment
	// Kernel covers ptrace/seccomp syscalls refused by the kernel or an LSM.
	Kernel
	// Race covers abnormal ordering: the tracer died before the barrier.
	Race
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration"
	case Environment:
		return "environment"
	case Kernel:
		return "kernel"
	case Race:
		return "race"
	default:
		return "internal"
	}
}

// LaunchError names the operation that failed and classifies it.
type LaunchError struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *LaunchError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.String()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *LaunchError) Unwrap() error { return e.Err }

// New builds a LaunchError with no wrapped cause.
func New(op string, kind Kind) *LaunchError {
	return &LaunchError{Op: op, Kind: kind}
}

// Wrap attaches an operation name and kind to an existing error.
func Wrap(op string, kind Kind, err error) *LaunchError {
	if err == nil {
		return nil
	}
	return &LaunchError{Op: op, Kind: kind, Err: err}
}

// Is reports whether the first *LaunchError in err's chain carries the
// given Kind. LaunchErrors nested deeper in the chain are not consulted.
func Is(err error, kind Kind) bool {
	var le *LaunchError
	if errors.As(err, &le) {
		return le.Kind == kind
	}
	return false
}

// Sentinel errors for conditions callers may want to match directly.
var (
	ErrUnknownSyscall  = errors.New("unknown syscall name")
	ErrNameTooLong     = errors.New("syscall name exceeds maximum length")
	ErrBarrierBroken   = errors.New("synchronisation barrier closed without a byte written")
	ErrUnexpectedWait  = errors.New("unexpected wait status")
	ErrFilterNotLoaded = errors.New("filter was not loaded before use")
)

var (
	Unwrap = errors.Unwrap
	As     = errors.As
)
