// Package envutil strips named variables from an environment slice so a
// sandboxed target cannot read back the policy that governs it.
package envutil

import "strings"

// Strip returns a copy of env with every variable whose key is in names
// removed. Matching is by exact key, not prefix — unlike the dangerous
// LD_*/DYLD_* prefix stripping this is adapted from, the three
// configuration variables this launcher removes have fixed, known names.
func Strip(env []string, names []string) []string {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}

	filtered := make([]string, 0, len(env))
	for _, e := range env {
		key := e
		if idx := strings.IndexByte(e, '='); idx != -1 {
			key = e[:idx]
		}
		if !drop[key] {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Stripped returns the subset of names actually present in env, useful for
// a debug diagnostic naming what was removed.
func Stripped(env []string, names []string) []string {
	present := make(map[string]bool, len(env))
	for _, e := range env {
		if idx := strings.IndexByte(e, '='); idx != -1 {
			present[e[:idx]] = true
		} else {
			present[e] = true
		}
	}

	var out []string
	for _, n := range names {
		if present[n] {
			out = append(out, n)
		}
	}
	return out
}
