package errs

import (
	"errors"
	"testing"
)

func TestWrapNilReturnsNil(t *testing.T) {
	if Wrap("op", Kernel, nil) != nil {
		t.Fatal("expected nil wrap of nil error")
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := Wrap("resolve syscall", Configuration, ErrUnknownSyscall)
	if !Is(err, Configuration) {
		t.Fatal("expected Configuration kind to match")
	}
	if Is(err, Kernel) {
		t.Fatal("did not expect Kernel kind to match")
	}
}

func TestUnwrapReachesSentinel(t *testing.T) {
	err := Wrap("resolve syscall", Configuration, ErrUnknownSyscall)
	if !errors.Is(err, ErrUnknownSyscall) {
		t.Fatal("expected errors.Is to reach the sentinel through Unwrap")
	}
}

func TestKindStringNamesEachKind(t *testing.T) {
	cases := map[Kind]string{
		Internal:      "internal",
		Configuration: "configuration",
		Environment:   "environment",
		Kernel:        "kernel",
		Race:          "race",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
