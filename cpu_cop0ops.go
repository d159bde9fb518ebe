// cpu_cop0ops.go - Coprocessor 0 instructions: MFC0, MTC0, RFE, and the stubs around them

package main

// execCop0 dispatches opcode 0x10 (COP0) by its rs field: MF (0x00), MT
// (0x04), or the CO group (0x10) containing RFE. TLB opcodes have no rs
// encoding on this core (no TLB exists) and fall through to Reserved.
func (c *CPU) execCop0(word uint32) ExceptionType {
	switch rsField(word) {
	case 0x00: // MFC0
		v, exc := c.Cop0.Read(rdField(word))
		if exc.Kind != ExcNone {
			return exc
		}
		c.Regs.Write(rtField(word), v)
		return noException
	case 0x04: // MTC0
		c.Cop0.Write(rdField(word), c.Regs.Read(rtField(word)))
		return noException
	case 0x10: // CO group
		if funct(word) == 0x10 { // RFE
			c.Cop0.PopInterrupt()
			return noException
		}
		return ExceptionType{Kind: ExcReserved}
	default:
		return ExceptionType{Kind: ExcReserved}
	}
}
