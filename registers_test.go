package main

import "testing"

func TestRegistersR0AlwaysZero(t *testing.T) {
	r := NewRegisters()
	r.Write(0, 0xDEADBEEF)
	if got := r.Read(0); got != 0 {
		t.Fatalf("R0 = %#08x, want 0", got)
	}
}

func TestRegistersReadWriteRoundTrip(t *testing.T) {
	r := NewRegisters()
	r.Write(5, 0x12345678)
	if got := r.Read(5); got != 0x12345678 {
		t.Fatalf("R5 = %#08x, want 0x12345678", got)
	}
}

func TestRegistersPCRoundTrip(t *testing.T) {
	r := NewRegisters()
	r.SetPC(0xBFC00000)
	if got := r.PC(); got != 0xBFC00000 {
		t.Fatalf("PC = %#08x, want 0xBFC00000", got)
	}
}

func TestRegistersHILORoundTrip(t *testing.T) {
	r := NewRegisters()
	r.SetHI(0x11111111)
	r.SetLO(0x22222222)
	if got := r.HI(); got != 0x11111111 {
		t.Fatalf("HI = %#08x, want 0x11111111", got)
	}
	if got := r.LO(); got != 0x22222222 {
		t.Fatalf("LO = %#08x, want 0x22222222", got)
	}
}

func TestRegistersDelayedBranchSingleSlot(t *testing.T) {
	r := NewRegisters()
	if r.HasDelayedBranch() {
		t.Fatalf("fresh register file should have no pending branch")
	}

	r.SetDelayedBranch(0x1000)
	if !r.HasDelayedBranch() {
		t.Fatalf("expected a pending branch after SetDelayedBranch")
	}

	target, ok := r.TakeDelayedBranch()
	if !ok || target != 0x1000 {
		t.Fatalf("TakeDelayedBranch = (%#08x, %v), want (0x1000, true)", target, ok)
	}

	if r.HasDelayedBranch() {
		t.Fatalf("branch slot should be cleared after being taken")
	}
	if _, ok := r.TakeDelayedBranch(); ok {
		t.Fatalf("taking an already-consumed branch should report ok=false")
	}
}

func TestRegistersDelayedBranchOverwrite(t *testing.T) {
	r := NewRegisters()
	r.SetDelayedBranch(0x1000)
	r.SetDelayedBranch(0x2000)
	target, ok := r.TakeDelayedBranch()
	if !ok || target != 0x2000 {
		t.Fatalf("TakeDelayedBranch = (%#08x, %v), want (0x2000, true)", target, ok)
	}
}
