// Package seccbox provides a public API for inspecting the seccomp-BPF
// policy that the three SECCOMP_* variables in a given environment
// configure. It does not launch programs; that is done by the seccbox
// command.
package seccbox

import "seccbox/internal/policy"

// Policy mirrors the internal parsed form so callers embedding this
// package can inspect what a given environment would produce without
// launching anything.
type Policy = policy.Policy

// Mode re-exports policy.Mode's constants for callers outside this module.
const (
	Disabled  = policy.Disabled
	AllowList = policy.AllowList
	DenyList  = policy.DenyList
)

// ParsePolicy parses the three SECCOMP_* variables out of an environment
// snapshot (such as os.Environ()) without side effects.
func ParsePolicy(env []string) (Policy, error) {
	return policy.Parse(env)
}

// EnvVars lists the environment variable names seccbox reads and, on a
// successful launch, removes before the target program runs.
func EnvVars() []string {
	return policy.EnvVars()
}
