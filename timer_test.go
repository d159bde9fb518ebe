package main

import "testing"

func TestTimerIRQAtTarget(t *testing.T) {
	tm := NewTimer()
	tm.SetTarget(4)
	tm.WriteMode(timerModeIRQAtTarget)

	var raised bool
	for i := 0; i < 4; i++ {
		raised = tm.Tick()
	}

	if !raised {
		t.Fatalf("expected IRQ on reaching target, counter=%d", tm.Counter())
	}
	if tm.Counter() != 4 {
		t.Fatalf("counter = %d, want 4 (reset-after-target not enabled)", tm.Counter())
	}
}

func TestTimerResetAfterTarget(t *testing.T) {
	tm := NewTimer()
	tm.SetTarget(3)
	tm.WriteMode(timerModeIRQAtTarget | timerModeResetAfterTarget)

	var raised bool
	for i := 0; i < 3; i++ {
		raised = tm.Tick()
	}
	if tm.Counter() != 3 {
		t.Fatalf("counter = %d, want 3 before wrap", tm.Counter())
	}

	if !raised {
		t.Fatalf("expected IRQ on the tick that reaches target")
	}
	tm.Tick() // counter reaches target+1 and wraps
	if tm.Counter() != 0 {
		t.Fatalf("counter = %d, want 0 after reset-after-target wrap", tm.Counter())
	}
}

func TestTimerOneShotStopsRepeating(t *testing.T) {
	tm := NewTimer()
	tm.SetTarget(2)
	tm.WriteMode(timerModeIRQAtTarget) // repeat off by default

	for i := 0; i < 2; i++ {
		tm.Tick()
	}
	if tm.allowIRQ {
		t.Fatalf("allowIRQ should be latched false after a one-shot raise")
	}

	// Run the counter all the way around; since allowIRQ is now false, the
	// timer must never raise again until WriteMode is called.
	sawSecondRaise := false
	for i := 0; i < 1<<16; i++ {
		if tm.Tick() {
			sawSecondRaise = true
		}
	}
	if sawSecondRaise {
		t.Fatalf("one-shot timer raised again without a mode rewrite")
	}
}

func TestTimerRepeatModeRearms(t *testing.T) {
	tm := NewTimer()
	tm.SetTarget(1)
	tm.WriteMode(timerModeIRQAtTarget | timerModeRepeat)

	firstRaise := false
	for i := 0; i < 1; i++ {
		firstRaise = tm.Tick()
	}
	if !firstRaise {
		t.Fatalf("expected first raise at target")
	}
	if !tm.allowIRQ {
		t.Fatalf("repeat mode must restore allowIRQ after a raise")
	}
}

func TestTimerToggleFlipsModeBit(t *testing.T) {
	tm := NewTimer()
	tm.SetTarget(1)
	tm.WriteMode(timerModeIRQAtTarget | timerModeToggleSelect)

	before := tm.Mode() & timerModeIRQLine
	tm.Tick()
	after := tm.Mode() & timerModeIRQLine

	if before == after {
		t.Fatalf("toggle mode must flip bit 10 (IRQ line) on raise")
	}
}

func TestTimerPulseClearsIRQLine(t *testing.T) {
	tm := NewTimer()
	tm.SetTarget(1)
	tm.WriteMode(timerModeIRQAtTarget) // toggleSelect off: pulse mode

	if tm.Mode()&timerModeIRQLine == 0 {
		t.Fatalf("IRQ line must start deasserted (high) after WriteMode")
	}
	tm.Tick()
	if tm.Mode()&timerModeIRQLine != 0 {
		t.Fatalf("pulse mode must clear the IRQ line on raise")
	}
}

func TestTimerWriteModeResetsCounterAndRearms(t *testing.T) {
	tm := NewTimer()
	tm.SetCounter(500)
	tm.allowIRQ = false

	tm.WriteMode(timerModeIRQAtTarget)

	if tm.Counter() != 0 {
		t.Fatalf("WriteMode must reset the counter, got %d", tm.Counter())
	}
	if !tm.allowIRQ {
		t.Fatalf("WriteMode must re-arm allowIRQ")
	}
	if tm.Mode()&timerModeIRQLine == 0 {
		t.Fatalf("WriteMode must force bit 10 high (IRQ line deasserted)")
	}
}
