package envutil

import "testing"

func TestStripRemovesExactKeysOnly(t *testing.T) {
	env := []string{
		"PATH=/usr/bin",
		"SECCOMP_SYSCALL_ALLOW=read:write",
		"SECCOMP_SYSCALL_ALLOWED=keepme",
		"SECCOMP_DEFAULT_ACTION=log",
	}
	got := Strip(env, []string{"SECCOMP_SYSCALL_ALLOW", "SECCOMP_DEFAULT_ACTION", "SECCOMP_SYSCALL_DENY"})

	want := []string{"PATH=/usr/bin", "SECCOMP_SYSCALL_ALLOWED=keepme"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestStrippedReportsPresentNamesOnly(t *testing.T) {
	env := []string{"SECCOMP_SYSCALL_ALLOW=read", "PATH=/usr/bin"}
	got := Stripped(env, []string{"SECCOMP_SYSCALL_ALLOW", "SECCOMP_SYSCALL_DENY"})
	if len(got) != 1 || got[0] != "SECCOMP_SYSCALL_ALLOW" {
		t.Fatalf("unexpected result: %v", got)
	}
}
