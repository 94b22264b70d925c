// Package diag configures the logrus logger seccbox uses for the
// human-readable diagnostics the launcher writes to stderr: one line per
// rule added, plus warning and debug lines. Fatal errors are not logged
// here; cmd/seccbox prints them directly.
package diag

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing text lines to stderr in logrus's text
// format. Timestamps are disabled; each line still carries the level, the
// message ("adding syscall to seccomp filter") and any fields such as
// syscall=read.
func New(debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    false,
	})
	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
