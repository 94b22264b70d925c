package syncpipe

import (
	"testing"

	"seccbox/internal/errs"
)

func TestSignalThenWaitSucceeds(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Close()

	if err := Signal(b.WriteFile()); err != nil {
		t.Fatalf("Signal: %v", err)
	}
	if err := Wait(b.ReadFile()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestWaitAfterCloseWithoutSignalIsBroken(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Close()

	if err := b.CloseWrite(); err != nil {
		t.Fatalf("CloseWrite: %v", err)
	}
	err = Wait(b.ReadFile())
	if err == nil {
		t.Fatal("expected error on short read")
	}
	if !errs.Is(err, errs.Race) {
		t.Fatalf("expected Race kind, got %v", err)
	}
}
