// Package main implements the seccbox CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"seccbox/internal/launch"
)

var exitCode int

func main() {
	// Check for the internal tracer dispatch before cobra ever parses
	// argv, the same way a hidden internal re-exec mode must be checked
	// ahead of flag parsing to avoid the hidden mode's own arguments being
	// mistaken for flags.
	if len(os.Args) >= 2 && os.Args[1] == launch.TracerArg {
		runTracer()
		return
	}

	rootCmd := &cobra.Command{
		Use:                "seccbox PROG [ARGS]",
		Short:              "Run a program under a seccomp-BPF syscall filter",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args:               cobra.ArbitraryArgs,
		RunE:               runTarget,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "seccbox: %v\n", err)
		exitCode = 1
	}
	os.Exit(exitCode)
}

func runTarget(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s PROG [ARGS]\n", progName())
		exitCode = 1
		return nil
	}

	debug := os.Getenv("SECCBOX_DEBUG") != ""

	err := launch.Target(args[0], args[1:], debug)
	if err == nil {
		// launch.Target only returns nil if the target was never reached,
		// which should not happen on the success path (a successful exec
		// replaces this process image entirely).
		return nil
	}

	fmt.Fprintf(os.Stderr, "seccbox: %v\n", err)
	exitCode = 1
	return nil
}

func runTracer() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "seccbox: internal tracer mode requires a target pid")
		os.Exit(1)
	}

	targetPID, err := strconv.Atoi(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "seccbox: invalid tracer target pid %q: %v\n", os.Args[2], err)
		os.Exit(1)
	}

	debug := len(os.Args) > 3 && os.Args[3] == "true"

	if err := launch.Tracer(targetPID, debug); err != nil {
		fmt.Fprintf(os.Stderr, "seccbox: tracer: %v\n", err)
		os.Exit(1)
	}
}

func progName() string {
	if len(os.Args) > 0 {
		return filepath.Base(os.Args[0])
	}
	return "seccbox"
}
