package seccompfilter

import (
	"testing"

	libseccomp "github.com/seccomp/libseccomp-golang"

	"seccbox/internal/policy"
)

func TestActionsAllowList(t *testing.T) {
	def, sc := actions(policy.Policy{Mode: policy.AllowList, ViolationAction: policy.KillProcess})
	if def != libseccomp.ActKillProcess {
		t.Fatalf("expected default action KillProcess, got %v", def)
	}
	if sc != libseccomp.ActAllow {
		t.Fatalf("expected syscall action Allow, got %v", sc)
	}
}

func TestActionsDenyListLogOnly(t *testing.T) {
	def, sc := actions(policy.Policy{Mode: policy.DenyList, ViolationAction: policy.LogOnly})
	if def != libseccomp.ActAllow {
		t.Fatalf("expected default action Allow, got %v", def)
	}
	if sc != libseccomp.ActLog {
		t.Fatalf("expected syscall action Log, got %v", sc)
	}
}

func TestLoadDisabledIsNoop(t *testing.T) {
	if err := Load(policy.Policy{Mode: policy.Disabled}, NewLogger()); err != nil {
		t.Fatalf("unexpected error for disabled policy: %v", err)
	}
}
