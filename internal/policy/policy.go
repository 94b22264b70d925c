// Package policy turns the three seccomp environment variables into a
// structured Policy value. It never reads the process environment itself;
// callers pass a snapshot so the parser stays a pure function.
package policy

import (
	"strings"

	"seccbox/internal/errs"
)

// EnvDefaultAction, EnvSyscallAllow, and EnvSyscallDeny name the three
// environment variables this launcher's policy is configured from. They
// are exported so internal/launch can strip them from the target's
// environment after a successful build.
const (
	EnvDefaultAction = "SECCOMP_DEFAULT_ACTION"
	EnvSyscallAllow  = "SECCOMP_SYSCALL_ALLOW"
	EnvSyscallDeny   = "SECCOMP_SYSCALL_DENY"
)

// maxSyscallNameLen mirrors the reference implementation's 128-byte stack
// buffer (127 usable bytes plus the terminator).
const maxSyscallNameLen = 127

// Mode selects which list the filter builder treats as the governed set.
type Mode int

const (
	// Disabled means neither SECCOMP_SYSCALL_ALLOW nor _DENY was set.
	Disabled Mode = iota
	AllowList
	DenyList
)

// ViolationAction is what happens to a syscall the policy does not permit.
type ViolationAction int

const (
	KillProcess ViolationAction = iota
	LogOnly
)

// Policy is the parsed result: what the filter builder needs and nothing
// more.
type Policy struct {
	Mode            Mode
	Syscalls        []string
	ViolationAction ViolationAction
}

// EnvVars lists the three variable names this package consumes, in the
// order they should be stripped from a child's environment.
func EnvVars() []string {
	return []string{EnvDefaultAction, EnvSyscallAllow, EnvSyscallDeny}
}

func lookup(env []string, key string) (string, bool) {
	prefix := key + "="
	for _, e := range env {
		if strings.HasPrefix(e, prefix) {
			return e[len(prefix):], true
		}
	}
	return "", false
}

// Parse reads a Policy out of an environment snapshot. It never mutates or
// re-reads env; removal of the three variables is the caller's job once
// the build has succeeded.
func Parse(env []string) (Policy, error) {
	violation := KillProcess
	if v, ok := lookup(env, EnvDefaultAction); ok && strings.HasPrefix(v, "log") {
		violation = LogOnly
	}

	allow, hasAllow := lookup(env, EnvSyscallAllow)
	deny, hasDeny := lookup(env, EnvSyscallDeny)

	var mode Mode
	var list string
	switch {
	case hasAllow:
		mode = AllowList
		list = allow
	case hasDeny:
		mode = DenyList
		list = deny
	default:
		return Policy{Mode: Disabled}, nil
	}

	syscalls, err := splitSyscallList(list)
	if err != nil {
		return Policy{}, err
	}

	return Policy{
		Mode:            mode,
		Syscalls:        syscalls,
		ViolationAction: violation,
	}, nil
}

// splitSyscallList splits on ':', silently skipping empty fields, and
// rejects any name over maxSyscallNameLen bytes.
func splitSyscallList(list string) ([]string, error) {
	var names []string
	for _, field := range strings.Split(list, ":") {
		if field == "" {
			continue
		}
		if len(field) > maxSyscallNameLen {
			return nil, errs.Wrap("parse syscall list", errs.Configuration, errs.ErrNameTooLong)
		}
		names = append(names, field)
	}
	return names, nil
}
