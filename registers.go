// registers.go - General-purpose register file for the MIPS R3000A-compatible core

package main

// Registers holds the 32 general-purpose registers, the program counter,
// the HI/LO multiply/divide result pair, and the single pending branch
// target awaiting its delay slot.
//
// R0 is hardwired to zero: reads always return 0 and writes are dropped.
type Registers struct {
	gpr [32]uint32

	pc uint32
	hi uint32
	lo uint32

	// delayedBranch holds the target of a branch/jump whose delay slot
	// has not yet executed. hasBranch is false when no branch is pending.
	delayedBranch uint32
	hasBranch     bool
}

// NewRegisters returns a zeroed register file.
func NewRegisters() *Registers {
	return &Registers{}
}

// Read returns the value of general-purpose register i. i must be in
// 0..31; the index space is fixed by the instruction decoder, so an
// out-of-range index is a host programming error.
func (r *Registers) Read(i uint32) uint32 {
	if i == 0 {
		return 0
	}
	return r.gpr[i]
}

// Write stores v into register i. Writes to R0 are silently dropped.
func (r *Registers) Write(i uint32, v uint32) {
	if i == 0 {
		return
	}
	r.gpr[i] = v
}

// PC returns the current program counter.
func (r *Registers) PC() uint32 { return r.pc }

// SetPC overwrites the program counter.
func (r *Registers) SetPC(pc uint32) { r.pc = pc }

// HI returns the high word of the last multiply/divide result.
func (r *Registers) HI() uint32 { return r.hi }

// SetHI overwrites HI.
func (r *Registers) SetHI(v uint32) { r.hi = v }

// LO returns the low word of the last multiply/divide result.
func (r *Registers) LO() uint32 { return r.lo }

// SetLO overwrites LO.
func (r *Registers) SetLO(v uint32) { r.lo = v }

// SetDelayedBranch schedules target to become PC once the instruction in
// the delay slot retires.
func (r *Registers) SetDelayedBranch(target uint32) {
	r.delayedBranch = target
	r.hasBranch = true
}

// TakeDelayedBranch consumes the pending branch, if any, returning its
// target and whether one was pending. The slot is cleared either way.
func (r *Registers) TakeDelayedBranch() (target uint32, ok bool) {
	target, ok = r.delayedBranch, r.hasBranch
	r.hasBranch = false
	return target, ok
}

// HasDelayedBranch reports whether a branch is pending without consuming it.
func (r *Registers) HasDelayedBranch() bool { return r.hasBranch }
