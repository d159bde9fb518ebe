// cpu.go - Fetch/decode/execute loop and exception delivery

package main

// CPU wires together the register file, COP0, and bus and drives the
// per-instruction step described in section 4.6. Instruction handlers
// are split across cpu_alu.go, cpu_branch.go, cpu_loadstore.go, and
// cpu_cop0ops.go; this file owns only the step loop, field decoding, and
// the exception prologue.
type CPU struct {
	Regs *Registers
	Cop0 *Cop0
	Bus  *Bus
}

// NewCPU returns a CPU with a fresh register file and COP0 wired to bus.
func NewCPU(bus *Bus) *CPU {
	return &CPU{
		Regs: NewRegisters(),
		Cop0: NewCop0(),
		Bus:  bus,
	}
}

// Instruction field decoding, per section 4.6's bit layout.
func opcode(word uint32) uint32   { return word >> 26 }
func rsField(word uint32) uint32  { return (word >> 21) & 0x1F }
func rtField(word uint32) uint32  { return (word >> 16) & 0x1F }
func rdField(word uint32) uint32  { return (word >> 11) & 0x1F }
func shamt(word uint32) uint32    { return (word >> 6) & 0x1F }
func funct(word uint32) uint32    { return word & 0x3F }
func imm16(word uint32) uint32    { return word & 0xFFFF }
func target26(word uint32) uint32 { return word & 0x3FFFFFF }

// signExtImm16 sign-extends the 16-bit immediate field to 32 bits.
func signExtImm16(word uint32) uint32 {
	return uint32(int32(int16(word)))
}

// Step executes exactly one instruction, implementing the seven
// sub-steps of section 4.6 in order.
func (c *CPU) Step() {
	pc := c.Regs.PC()

	// Next-PC computation is logically step 5, but nothing between here
	// and there can set a new delayed branch, so it is safe to consume
	// it up front and reuse the same boolean as "this instruction sits
	// in a delay slot" for the interrupt-latch and fetch stages too.
	branchTarget, inDelaySlot := c.Regs.TakeDelayedBranch()

	// 1. Interrupt latch.
	pending := c.Bus.IRQStatus()&c.Bus.IRQMask() != 0
	c.Cop0.SetInterruptPending(pending)

	// 2. Interrupt dispatch.
	if c.Cop0.InterruptEnabled() && c.Cop0.InterruptMask()&c.Cop0.InterruptPending() != 0 {
		c.enterException(ExceptionType{Kind: ExcInterrupt}, pc, inDelaySlot)
		return
	}

	// 3. Alignment check.
	if pc%4 != 0 {
		c.enterException(addressErrorLoad(pc), pc, false)
		return
	}

	// 4. Fetch.
	word, exc := c.Bus.ReadWord(pc)
	if exc.Kind != ExcNone {
		c.enterException(exc, pc, inDelaySlot)
		return
	}

	var nextPC uint32
	if inDelaySlot {
		nextPC = branchTarget
	} else {
		nextPC = pc + 4
	}

	// 6. Execute.
	exc = c.execute(word, pc)
	c.Bus.Tick(2)

	// 7. Commit.
	if exc.Kind != ExcNone {
		c.enterException(exc, pc, inDelaySlot)
		return
	}
	c.Regs.SetPC(nextPC)
}

// execute decodes and runs one instruction word, returning its
// ExceptionType (the zero value on success).
func (c *CPU) execute(word uint32, pc uint32) ExceptionType {
	switch opcode(word) {
	case 0x00: // SPECIAL
		return c.execSpecial(word, pc)
	case 0x01: // REGIMM
		return c.execRegimm(word, pc)
	case 0x02:
		return c.execJ(word, pc)
	case 0x03:
		return c.execJAL(word, pc)
	case 0x04:
		return c.execBEQ(word, pc)
	case 0x05:
		return c.execBNE(word, pc)
	case 0x06:
		return c.execBLEZ(word, pc)
	case 0x07:
		return c.execBGTZ(word, pc)
	case 0x08:
		return c.execADDI(word)
	case 0x09:
		return c.execADDIU(word)
	case 0x0A:
		return c.execSLTI(word)
	case 0x0B:
		return c.execSLTIU(word)
	case 0x0C:
		return c.execANDI(word)
	case 0x0D:
		return c.execORI(word)
	case 0x0E:
		return c.execXORI(word)
	case 0x0F:
		return c.execLUI(word)
	case 0x10: // COP0
		return c.execCop0(word)
	case 0x11, 0x13: // COP1, COP3
		return ExceptionType{Kind: ExcCoprocessorUnusable}
	case 0x12: // COP2 (GTE): stubbed, accepted and ignored
		return noException
	case 0x20:
		return c.execLB(word)
	case 0x21:
		return c.execLH(word)
	case 0x22:
		return c.execLWL(word)
	case 0x23:
		return c.execLW(word)
	case 0x24:
		return c.execLBU(word)
	case 0x25:
		return c.execLHU(word)
	case 0x26:
		return c.execLWR(word)
	case 0x28:
		return c.execSB(word)
	case 0x29:
		return c.execSH(word)
	case 0x2A:
		return c.execSWL(word)
	case 0x2B:
		return c.execSW(word)
	case 0x2E:
		return c.execSWR(word)
	default:
		return ExceptionType{Kind: ExcReserved}
	}
}

// enterException implements the section 4.7 exception prologue.
func (c *CPU) enterException(exc ExceptionType, faultPC uint32, inDelaySlot bool) {
	epc := faultPC
	if inDelaySlot {
		epc = faultPC - 4
	}
	c.Cop0.SetEPC(epc)
	c.Cop0.SetBranchDelay(inDelaySlot)
	c.Cop0.SetExceptionCode(exc.Kind)
	c.Cop0.PushInterrupt()
	c.Cop0.SetInterruptEnable(false)
	c.Cop0.SetKernelMode(true)

	if exc.Kind == ExcAddressErrorLoad || exc.Kind == ExcAddressErrorStore {
		c.Cop0.SetBadVaddr(exc.Addr)
	}

	if c.Cop0.BEV() {
		c.Regs.SetPC(0xBFC00180)
	} else {
		c.Regs.SetPC(0x80000080)
	}
}
