//go:build linux

package launch

import (
	"os"
	"testing"

	"seccbox/internal/errs"
)

// TestTargetFailsBeforeExecWhenTargetMissing exercises the ordinary error
// path: a target binary that does not exist must fail before any exec
// happens, leaving the calling process (this test binary) still running.
// Policy is left disabled so no filter is loaded. LookPath happens only
// after the barrier, so the tracer must still be spawned, attach, and
// release the barrier before resolution can fail; this exercises that
// sequence in the common case where no filter is configured.
func TestTargetFailsBeforeExecWhenTargetMissing(t *testing.T) {
	if os.Getenv("SECCBOX_SKIP_PTRACE_TESTS") != "" {
		t.Skip("skipping: ptrace tests disabled for this environment")
	}

	err := Target("/nonexistent/seccbox-test-binary", nil, false)
	if err == nil {
		t.Fatal("expected error for nonexistent target")
	}
	if !errs.Is(err, errs.Configuration) {
		t.Fatalf("expected Configuration kind, got %v", err)
	}
}
