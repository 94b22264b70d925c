// Package seccompfilter compiles a policy.Policy into a loaded seccomp-BPF
// program via libseccomp.
package seccompfilter

import (
	"fmt"
	"os"

	libseccomp "github.com/seccomp/libseccomp-golang"
	"github.com/sirupsen/logrus"

	"seccbox/internal/errs"
	"seccbox/internal/policy"
)

// Load compiles pol into a seccomp context and loads it into the calling
// process. It is a no-op returning nil when pol.Mode is policy.Disabled.
//
// The context is released on every exit path: resolution failure, rule-add
// failure, and load failure all release before returning, and a
// successful load also releases immediately afterward since the compiled
// program lives in the kernel, not in the context handle.
func Load(pol policy.Policy, log *logrus.Logger) error {
	if pol.Mode == policy.Disabled {
		return nil
	}

	defaultAction, syscallAction := actions(pol)

	ctx, err := libseccomp.NewFilter(defaultAction)
	if err != nil {
		return errs.Wrap("seccomp init", errs.Kernel, err)
	}
	defer ctx.Release()

	for _, name := range pol.Syscalls {
		nr, err := libseccomp.GetSyscallFromName(name)
		if err != nil {
			return errs.Wrap(fmt.Sprintf("resolve syscall %q", name), errs.Configuration, errs.ErrUnknownSyscall)
		}
		if err := ctx.AddRuleExact(nr, syscallAction); err != nil {
			return errs.Wrap(fmt.Sprintf("add rule for %q", name), errs.Kernel, err)
		}
		log.WithFields(logrus.Fields{"syscall": name}).Info("adding syscall to seccomp filter")
	}

	if err := ctx.Load(); err != nil {
		return errs.Wrap("seccomp load", errs.Kernel, err)
	}

	return nil
}

// actions derives the default and per-syscall actions from the policy's
// mode, per the reference: allow-list enforces the violation action as the
// default and allows the listed calls; deny-list allows everything by
// default and enforces the violation action on the listed calls.
func actions(pol policy.Policy) (defaultAction, syscallAction libseccomp.ScmpAction) {
	violation := libseccomp.ActKillProcess
	if pol.ViolationAction == policy.LogOnly {
		violation = libseccomp.ActLog
	}

	switch pol.Mode {
	case policy.AllowList:
		return violation, libseccomp.ActAllow
	case policy.DenyList:
		return libseccomp.ActAllow, violation
	default:
		return libseccomp.ActAllow, libseccomp.ActAllow
	}
}

// NewLogger returns the logger seccbox uses for rule-add diagnostics when
// a caller (e.g. a unit test) doesn't want to wire internal/diag.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log
}
