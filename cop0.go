// cop0.go - System control coprocessor (COP0): SR, Cause, EPC, BadVaddr and friends

package main

// SR bit layout.
const (
	srIEc  = 1 << 0 // current interrupt enable
	srKUc  = 1 << 1 // current mode, 0 = kernel
	srMask = 0xFF00 // bits 8-15, interrupt mask
	srBEV  = 1 << 22

	srWritableMask = 0x507FFF2F
)

// Cause bit layout.
const (
	causeExcCodeShift = 2
	causeExcCodeMask  = 0x7C // bits 2-6
	causeIPMask       = 0xFF00
	causeIP2          = 1 << 10 // aggregate "hardware" pending bit used by the bus
	causeBD           = 1 << 31

	causeWritableMask = 0x300 // bits 8-9 only
)

// Cop0 is the system control coprocessor: exception/mode state plus the
// handful of debug registers the PS1 BIOS probes but this core does not
// implement.
type Cop0 struct {
	sr       uint32
	cause    uint32
	epc      uint32
	badVaddr uint32

	// Debug registers, stored but functionally inert (no breakpoint unit).
	bpc      uint32
	bda      uint32
	target   uint32
	debugCtl uint32
	bdam     uint32
	bpcm     uint32
}

// NewCop0 returns a COP0 in its post-reset state.
func NewCop0() *Cop0 {
	return &Cop0{}
}

// cop0PRID is the fixed value of register 15 on a PS1.
const cop0PRID = 0x00000002

// Read maps register indices 0..31 onto the COP0 register file. Reserved
// indices (0-2, 4, 10) surface as a "reserved instruction" exception to
// the caller rather than returning garbage.
func (c *Cop0) Read(reg uint32) (uint32, ExceptionType) {
	switch reg {
	case 0, 1, 2, 4, 10:
		return 0, ExceptionType{Kind: ExcReserved}
	case 3:
		return c.bpc, noException
	case 5:
		return c.bda, noException
	case 6:
		return c.target, noException
	case 7:
		return c.debugCtl, noException
	case 8:
		return c.badVaddr, noException
	case 9:
		return c.bdam, noException
	case 11:
		return c.bpcm, noException
	case 12:
		return c.sr, noException
	case 13:
		return c.cause, noException
	case 14:
		return c.epc, noException
	case 15:
		return cop0PRID, noException
	default: // 16..31
		return 0, noException
	}
}

// Write updates the mapped register. Writes to BadVaddr, EPC, PRID and
// Target are hardware-read-only (or side-channel) and are silently
// dropped. SR and Cause pass through their register-specific write masks.
func (c *Cop0) Write(reg uint32, v uint32) {
	switch reg {
	case 3:
		c.bpc = v
	case 5:
		c.bda = v
	case 6, 8, 14, 15:
		// read-only / side-channel: ignored
	case 7:
		c.debugCtl = v
	case 9:
		c.bdam = v
	case 11:
		c.bpcm = v
	case 12:
		c.sr = (c.sr &^ srWritableMask) | (v & srWritableMask)
	case 13:
		c.cause = (c.cause &^ causeWritableMask) | (v & causeWritableMask)
	default:
		// reserved / unimplemented upper range: writes have no effect
	}
}

// SR returns the raw status register.
func (c *Cop0) SR() uint32 { return c.sr }

// Cause returns the raw cause register.
func (c *Cop0) Cause() uint32 { return c.cause }

// EPC returns the exception program counter.
func (c *Cop0) EPC() uint32 { return c.epc }

// SetEPC overwrites EPC. Unlike Write(14, ...), this bypasses the
// hardware-read-only guard because it is how the exception prologue
// (which is not a coprocessor instruction) updates it.
func (c *Cop0) SetEPC(v uint32) { c.epc = v }

// SetBadVaddr overwrites BadVaddr for the same reason as SetEPC.
func (c *Cop0) SetBadVaddr(v uint32) { c.badVaddr = v }

// SetExceptionCode writes the 5-bit exception code into Cause bits 2-6.
func (c *Cop0) SetExceptionCode(k ExceptionKind) {
	code := exceptionCode[k]
	c.cause = (c.cause &^ causeExcCodeMask) | ((code << causeExcCodeShift) & causeExcCodeMask)
}

// SetBranchDelay writes Cause.BD (bit 31).
func (c *Cop0) SetBranchDelay(b bool) {
	if b {
		c.cause |= causeBD
	} else {
		c.cause &^= causeBD
	}
}

// SetInterruptPending writes Cause.IP2 (bit 10), the aggregate hardware
// interrupt line fed by the bus's IRQ status/mask comparison.
func (c *Cop0) SetInterruptPending(b bool) {
	if b {
		c.cause |= causeIP2
	} else {
		c.cause &^= causeIP2
	}
}

// InterruptPending reads the full Cause interrupt-pending byte (bits 8-15).
func (c *Cop0) InterruptPending() uint32 {
	return c.cause & causeIPMask
}

// InterruptEnabled reads SR.IEc.
func (c *Cop0) InterruptEnabled() bool {
	return c.sr&srIEc != 0
}

// InterruptMask reads SR bits 8-15.
func (c *Cop0) InterruptMask() uint32 {
	return c.sr & srMask
}

// BEV reads the boot exception vector flag (SR bit 22).
func (c *Cop0) BEV() bool {
	return c.sr&srBEV != 0
}

// SetInterruptEnable forces SR.IEc, used by the exception prologue.
func (c *Cop0) SetInterruptEnable(b bool) {
	if b {
		c.sr |= srIEc
	} else {
		c.sr &^= srIEc
	}
}

// SetKernelMode forces SR.KUc, used by the exception prologue.
func (c *Cop0) SetKernelMode(kernel bool) {
	if kernel {
		c.sr &^= srKUc
	} else {
		c.sr |= srKUc
	}
}

// PushInterrupt shifts the low six mode/enable bits left by two, as RFE's
// inverse: the previous pair moves into the old pair (bits 4-5, whose
// former value is dropped), the current pair moves into the previous
// pair, and the current pair is cleared. Used on exception entry.
func (c *Cop0) PushInterrupt() {
	c.sr = (c.sr &^ 0x3F) | ((c.sr & 0x0F) << 2)
}

// PopInterrupt reverses PushInterrupt. Used by RFE.
func (c *Cop0) PopInterrupt() {
	c.sr = (c.sr &^ 0x0F) | ((c.sr & 0x3F) >> 2)
}
