//go:build !linux

package tracer

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
)

// Run is unavailable outside Linux: ptrace's SUSPEND_SECCOMP option and
// seccomp-BPF itself are Linux-only kernel facilities.
func Run(targetPID int, barrierWrite *os.File, log *logrus.Logger) error {
	return errors.New("seccbox: seccomp sandboxing requires Linux")
}
